package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"digital-city/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of repository.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Append(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func TestOrderService_GetByID(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewOrderService(repo, zerolog.Nop())

	want := &model.Order{
		ID:            "ORDER-1700000000000",
		Total:         7500,
		PaymentMethod: model.PaymentCashOnDelivery,
		OrderDate:     time.Now(),
		Status:        model.StatusPending,
	}
	repo.On("GetByID", mock.Anything, want.ID).Return(want, nil)

	order, err := svc.GetByID(context.Background(), want.ID)

	require.NoError(t, err)
	assert.Equal(t, want, order)
	repo.AssertExpectations(t)
}

func TestOrderService_GetByIDNotFound(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewOrderService(repo, zerolog.Nop())

	repo.On("GetByID", mock.Anything, "ORDER-missing").Return(nil, nil)

	order, err := svc.GetByID(context.Background(), "ORDER-missing")

	assert.ErrorIs(t, err, model.ErrOrderNotFound)
	assert.Nil(t, order)
}

func TestOrderService_GetByIDEmptyID(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewOrderService(repo, zerolog.Nop())

	order, err := svc.GetByID(context.Background(), "")

	assert.ErrorIs(t, err, model.ErrOrderNotFound)
	assert.Nil(t, order)
	repo.AssertNotCalled(t, "GetByID")
}

func TestOrderService_GetByIDRepositoryError(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewOrderService(repo, zerolog.Nop())

	repo.On("GetByID", mock.Anything, "ORDER-1").Return(nil, errors.New("disk failure"))

	order, err := svc.GetByID(context.Background(), "ORDER-1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrOrderNotFound)
	assert.Nil(t, order)
}
