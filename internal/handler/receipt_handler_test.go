package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pantryos/internal/domain"
	"pantryos/internal/service"
	"pantryos/mocks"
)

func TestReceiptList_Paginated(t *testing.T) {
	receiptSvc := new(mocks.MockReceiptService)
	h := NewReceiptHandler(receiptSvc)
	householdID := uuid.New()

	receipts := []domain.Receipt{{ID: uuid.New(), Store: "COSTCO"}}
	receiptSvc.On("List", mock.Anything, householdID, 0, 50).Return(receipts, 1, nil).Once()

	c, w := newJSONContext(t, http.MethodGet, "/api/v1/receipts", nil)
	setHousehold(c, householdID)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
	receiptSvc.AssertExpectations(t)
}

func TestReceiptGetByID_NotFound(t *testing.T) {
	receiptSvc := new(mocks.MockReceiptService)
	h := NewReceiptHandler(receiptSvc)
	householdID := uuid.New()
	receiptID := uuid.New()

	receiptSvc.On("GetByID", mock.Anything, householdID, receiptID).
		Return(nil, domain.ErrReceiptNotFound).Once()

	c, w := newJSONContext(t, http.MethodGet, "/api/v1/receipts/"+receiptID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: receiptID.String()}}
	setHousehold(c, householdID)

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "RECEIPT_NOT_FOUND")
}

func TestReceiptGetByID_InvalidID(t *testing.T) {
	receiptSvc := new(mocks.MockReceiptService)
	h := NewReceiptHandler(receiptSvc)

	c, w := newJSONContext(t, http.MethodGet, "/api/v1/receipts/not-a-uuid", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	setHousehold(c, uuid.New())

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	receiptSvc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestReceiptGetByID_ReturnsDetail(t *testing.T) {
	receiptSvc := new(mocks.MockReceiptService)
	h := NewReceiptHandler(receiptSvc)
	householdID := uuid.New()
	receiptID := uuid.New()

	detail := &service.ReceiptDetail{
		Receipt: &domain.Receipt{ID: receiptID, Store: "KROGER"},
		Items:   []domain.ReceiptItem{{Name: "BANANAS", Price: 1.99}},
	}
	receiptSvc.On("GetByID", mock.Anything, householdID, receiptID).Return(detail, nil).Once()

	c, w := newJSONContext(t, http.MethodGet, "/api/v1/receipts/"+receiptID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: receiptID.String()}}
	setHousehold(c, householdID)

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "BANANAS")
}

func TestReceiptExport_XLSX(t *testing.T) {
	receiptSvc := new(mocks.MockReceiptService)
	h := NewReceiptHandler(receiptSvc)
	householdID := uuid.New()
	receiptID := uuid.New()

	receipts := []domain.Receipt{{ID: receiptID, HouseholdID: householdID, Store: "SAFEWAY", Total: 7.69}}
	itemsByReceipt := map[uuid.UUID][]domain.ReceiptItem{
		receiptID: {{ID: uuid.New(), ReceiptID: receiptID, Name: "BREAD WHT", Price: 3.49}},
	}
	receiptSvc.On("ListAllItems", mock.Anything, householdID).Return(receipts, itemsByReceipt, nil).Once()

	c, w := newJSONContext(t, http.MethodGet, "/api/v1/receipts/export", nil)
	setHousehold(c, householdID)

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	// XLSX files are zip archives
	body := w.Body.Bytes()
	require.True(t, len(body) > 4)
	assert.Equal(t, []byte{'P', 'K'}, body[:2])
	receiptSvc.AssertExpectations(t)
}
