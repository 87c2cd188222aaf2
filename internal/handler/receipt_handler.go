package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pantryos/internal/service"
	"pantryos/internal/xlsxexport"
)

// ReceiptHandler handles receipt read endpoints.
type ReceiptHandler struct {
	receiptService service.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(receiptService service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// List handles GET /api/v1/receipts
func (h *ReceiptHandler) List(c *gin.Context) {
	householdID, ok := householdFromContext(c)
	if !ok {
		return
	}
	offset, limit := pagination(c)

	receipts, total, err := h.receiptService.List(c.Request.Context(), householdID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, receipts, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/receipts/:id
func (h *ReceiptHandler) GetByID(c *gin.Context) {
	householdID, ok := householdFromContext(c)
	if !ok {
		return
	}
	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid receipt id")
		return
	}

	detail, err := h.receiptService.GetByID(c.Request.Context(), householdID, receiptID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// Export handles GET /api/v1/receipts/export
func (h *ReceiptHandler) Export(c *gin.Context) {
	householdID, ok := householdFromContext(c)
	if !ok {
		return
	}

	receipts, itemsByReceipt, err := h.receiptService.ListAllItems(c.Request.Context(), householdID)
	if err != nil {
		HandleError(c, err)
		return
	}

	f, err := xlsxexport.Build(receipts, itemsByReceipt)
	if err != nil {
		HandleError(c, err)
		return
	}
	defer func() { _ = f.Close() }()

	filename := xlsxexport.BuildFilename("receipts_" + householdID.String())
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if _, err := f.WriteTo(c.Writer); err != nil {
		// Headers already sent, nothing left to do but log.
		log.Printf("receiptHandler: export write: %v", err)
	}
}
