package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pantryos/internal/service"
)

// ParseRequest is the JSON body for parse submissions. OCRConfidence is
// the upstream OCR engine's own confidence for the text, when the client
// has one.
type ParseRequest struct {
	RawText       string  `json:"raw_text" binding:"required"`
	OCRConfidence float64 `json:"ocr_confidence" binding:"omitempty,gt=0,lte=1"`
}

// ParseHandler handles receipt text submission endpoints.
type ParseHandler struct {
	parseService service.ParseService
}

// NewParseHandler creates a new ParseHandler.
func NewParseHandler(parseService service.ParseService) *ParseHandler {
	return &ParseHandler{parseService: parseService}
}

// Parse handles POST /api/v1/receipts/parse
func (h *ParseHandler) Parse(c *gin.Context) {
	householdID, ok := householdFromContext(c)
	if !ok {
		return
	}

	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	out, err := h.parseService.Parse(c.Request.Context(), &service.ParseInput{
		HouseholdID:   householdID,
		RawText:       req.RawText,
		OCRConfidence: req.OCRConfidence,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	if out.Duplicate {
		RespondOK(c, out)
		return
	}
	RespondCreated(c, out)
}

// ParseAsync handles POST /api/v1/receipts/parse-async
func (h *ParseHandler) ParseAsync(c *gin.Context) {
	householdID, ok := householdFromContext(c)
	if !ok {
		return
	}

	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	receipt, err := h.parseService.Enqueue(c.Request.Context(), &service.ParseInput{
		HouseholdID: householdID,
		RawText:     req.RawText,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondAccepted(c, receipt)
}
