package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lake-fishing-reservation/internal/model"
	"github.com/iliyamo/lake-fishing-reservation/internal/repository"
)

// ReviewHandler serves lake reviews: public read, authenticated write, one
// review per user per lake.
type ReviewHandler struct {
	ReviewRepo *repository.ReviewRepo
	LakeRepo   *repository.LakeRepo
}

func NewReviewHandler(reviewRepo *repository.ReviewRepo, lakeRepo *repository.LakeRepo) *ReviewHandler {
	return &ReviewHandler{ReviewRepo: reviewRepo, LakeRepo: lakeRepo}
}

type reviewReq struct {
	LakeID  uint64 `json:"lake_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func validateReviewReq(req *reviewReq) string {
	if req.Rating < model.MinReviewRating || req.Rating > model.MaxReviewRating {
		return "rating must be between 1 and 5"
	}
	req.Comment = strings.TrimSpace(req.Comment)
	if len(req.Comment) < model.MinReviewCommentLen || len(req.Comment) > model.MaxReviewCommentLen {
		return "comment must be between 10 and 1000 characters"
	}
	return ""
}

// ListByLake handles GET /v1/reviews/lake/:lakeId. Public; newest first,
// with the aggregate rating alongside.
func (h *ReviewHandler) ListByLake(c echo.Context) error {
	lakeID, ok := parseIDParam(c, "lakeId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lake id"})
	}
	ctx := c.Request().Context()
	if _, err := h.LakeRepo.GetByID(ctx, lakeID); err != nil {
		if errors.Is(err, repository.ErrLakeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "lake not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load lake"})
	}
	reviews, err := h.ReviewRepo.ListByLake(ctx, lakeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
	}
	avg, total, err := h.ReviewRepo.AverageForLake(ctx, lakeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"lake_id":        lakeID,
		"average_rating": avg,
		"count":          total,
		"reviews":        reviews,
	})
}

// Create handles POST /v1/reviews. One review per user per lake; a second
// attempt conflicts.
func (h *ReviewHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.LakeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "lake_id required"})
	}
	if msg := validateReviewReq(&req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	if _, err := h.LakeRepo.GetByID(ctx, req.LakeID); err != nil {
		if errors.Is(err, repository.ErrLakeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "lake not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load lake"})
	}
	review := &model.Review{
		UserID:  userID,
		LakeID:  req.LakeID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := h.ReviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "you have already reviewed this lake"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create review"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"review": review})
}

// ListMine handles GET /v1/reviews/my, the caller's reviews newest first.
func (h *ReviewHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reviews, err := h.ReviewRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":   len(reviews),
		"reviews": reviews,
	})
}

// ListAllAdmin handles GET /v1/reviews/admin/all.
func (h *ReviewHandler) ListAllAdmin(c echo.Context) error {
	reviews, err := h.ReviewRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":   len(reviews),
		"reviews": reviews,
	})
}

// Update handles PUT /v1/reviews/:id. Only the author may edit.
func (h *ReviewHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reviewID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := validateReviewReq(&req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	review, err := h.ReviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load review"})
	}
	if review.UserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	review.Rating = req.Rating
	review.Comment = req.Comment
	if err := h.ReviewRepo.Update(ctx, review); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update review"})
	}
	return c.JSON(http.StatusOK, echo.Map{"review": review})
}

// Delete handles DELETE /v1/reviews/:id. The author or an admin may delete.
func (h *ReviewHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reviewID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}
	ctx := c.Request().Context()
	review, err := h.ReviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load review"})
	}
	if review.UserID != userID && !isAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.ReviewRepo.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete review"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "review deleted"})
}
