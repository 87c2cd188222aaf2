package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pantryos/internal/service"
)

// ResolveReviewRequest is the JSON body for resolving a review item.
type ResolveReviewRequest struct {
	CorrectedName string `json:"corrected_name" binding:"required"`
}

// ReviewHandler handles the human-review queue endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ListPending handles GET /api/v1/review
func (h *ReviewHandler) ListPending(c *gin.Context) {
	householdID, ok := householdFromContext(c)
	if !ok {
		return
	}
	offset, limit := pagination(c)

	rows, total, err := h.reviewService.ListPending(c.Request.Context(), householdID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, rows, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Resolve handles POST /api/v1/review/:id/resolve
func (h *ReviewHandler) Resolve(c *gin.Context) {
	householdID, ok := householdFromContext(c)
	if !ok {
		return
	}
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid review item id")
		return
	}

	var req ResolveReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	row, err := h.reviewService.Resolve(c.Request.Context(), householdID, reviewID, req.CorrectedName)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, row)
}
