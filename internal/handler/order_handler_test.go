package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"digital-city/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService is a mock implementation of service.OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) GetByID(ctx context.Context, id string) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func TestOrderHandler_GetByID(t *testing.T) {
	svc := new(MockOrderService)
	order := &model.Order{
		ID:            "ORDER-1700000000000",
		Total:         46500,
		PaymentMethod: model.PaymentCashOnDelivery,
		OrderDate:     time.Now().UTC(),
		Status:        model.StatusPending,
	}
	svc.On("GetByID", mock.Anything, order.ID).Return(order, nil)

	h := NewOrderHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/orders/ORDER-1700000000000", nil)
	w := httptest.NewRecorder()

	h.GetByID(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got model.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, float64(46500), got.Total)
}

func TestOrderHandler_GetByIDNotFound(t *testing.T) {
	svc := new(MockOrderService)
	svc.On("GetByID", mock.Anything, "ORDER-missing").Return(nil, model.ErrOrderNotFound)

	h := NewOrderHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/orders/ORDER-missing", nil)
	w := httptest.NewRecorder()

	h.GetByID(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.ErrCodeOrderNotFound, resp.Error)
}

func TestOrderHandler_GetByIDMethodNotAllowed(t *testing.T) {
	h := NewOrderHandler(new(MockOrderService), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/orders/ORDER-1", nil)
	w := httptest.NewRecorder()

	h.GetByID(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
