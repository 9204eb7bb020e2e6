package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pollos/internal/domain"
	apperrors "pollos/internal/errors"
)

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order domain.Order) (string, error) {
	args := m.Called(ctx, order)
	return args.String(0), args.Error(1)
}

func (m *mockOrderRepository) FindByPhone(ctx context.Context, phone string) ([]domain.Order, error) {
	args := m.Called(ctx, phone)
	orders, _ := args.Get(0).([]domain.Order)
	return orders, args.Error(1)
}

func (m *mockOrderRepository) UpdateComment(ctx context.Context, id string, comment string) error {
	args := m.Called(ctx, id, comment)
	return args.Error(0)
}

var fixedNow = time.Date(2025, 3, 14, 19, 30, 45, 500, time.UTC)

func newTestOrderService(repo OrderRepository) *OrderService {
	svc := NewOrderService(repo, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestPlaceOrder_Success(t *testing.T) {
	repo := &mockOrderRepository{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(o domain.Order) bool {
		return o.CustomerName == "Ana Lopez" &&
			o.Phone == "5551234" &&
			o.Product == "Combo" &&
			o.Price == 8.5 &&
			o.Status == domain.OrderStatusPending &&
			o.Comment == "" &&
			o.CreatedAt.Equal(fixedNow.Truncate(time.Second))
	})).Return("order-1", nil)

	svc := newTestOrderService(repo)
	order, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		Name: "ana lopez", Phone: "5551234", Product: "Combo", Price: "8.50",
	})

	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, "Ana Lopez", order.CustomerName)
	repo.AssertExpectations(t)
}

func TestPlaceOrder_NonNumericPrice(t *testing.T) {
	repo := &mockOrderRepository{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(o domain.Order) bool {
		return o.Price == 0.0
	})).Return("order-2", nil)

	svc := newTestOrderService(repo)
	order, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		Name: "luis", Phone: "555", Product: "Alitas", Price: "doce",
	})

	require.NoError(t, err)
	assert.Equal(t, 0.0, order.Price)
	repo.AssertExpectations(t)
}

func TestPlaceOrder_BlankProduct(t *testing.T) {
	repo := &mockOrderRepository{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(o domain.Order) bool {
		return o.Product == domain.ProductUnspecified
	})).Return("order-3", nil)

	svc := newTestOrderService(repo)
	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{Name: "luis", Phone: "555"})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestPlaceOrder_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		req    PlaceOrderRequest
		fields []string
	}{
		{"missing name", PlaceOrderRequest{Phone: "555"}, []string{"nombre"}},
		{"missing phone", PlaceOrderRequest{Name: "ana"}, []string{"telefono"}},
		{"blank both", PlaceOrderRequest{Name: "  ", Phone: "\t"}, []string{"nombre", "telefono"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockOrderRepository{}
			svc := newTestOrderService(repo)

			order, err := svc.PlaceOrder(context.Background(), tt.req)

			assert.Nil(t, order)
			ve, ok := apperrors.IsValidationError(err)
			require.True(t, ok)

			var fields []string
			for _, d := range ve.Details {
				fields = append(fields, d.Field)
			}
			assert.Equal(t, tt.fields, fields)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestPlaceOrder_StoreError(t *testing.T) {
	repo := &mockOrderRepository{}
	repo.On("Create", mock.Anything, mock.Anything).Return("", errors.New("connection reset"))

	svc := newTestOrderService(repo)
	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{Name: "ana", Phone: "555"})

	assert.ErrorContains(t, err, "connection reset")
	_, isValidation := apperrors.IsValidationError(err)
	assert.False(t, isValidation)
	var internal *apperrors.InternalError
	assert.ErrorAs(t, err, &internal)
}

func TestHistory_EmptyPhoneSkipsStore(t *testing.T) {
	repo := &mockOrderRepository{}
	svc := newTestOrderService(repo)

	orders, err := svc.History(context.Background(), "   ")

	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
	repo.AssertNotCalled(t, "FindByPhone", mock.Anything, mock.Anything)
}

func TestHistory_TrimsPhone(t *testing.T) {
	repo := &mockOrderRepository{}
	repo.On("FindByPhone", mock.Anything, "5551234").Return([]domain.Order{{ID: "a"}, {ID: "b"}}, nil)

	svc := newTestOrderService(repo)
	orders, err := svc.History(context.Background(), " 5551234 ")

	require.NoError(t, err)
	assert.Len(t, orders, 2)
	repo.AssertExpectations(t)
}

func TestHistory_StoreError(t *testing.T) {
	repo := &mockOrderRepository{}
	repo.On("FindByPhone", mock.Anything, "555").Return(nil, errors.New("timeout"))

	svc := newTestOrderService(repo)
	_, err := svc.History(context.Background(), "555")

	assert.ErrorContains(t, err, "timeout")
}

func TestSaveComment_Success(t *testing.T) {
	repo := &mockOrderRepository{}
	repo.On("UpdateComment", mock.Anything, "order-1", "Sin cebolla").Return(nil)

	svc := newTestOrderService(repo)
	err := svc.SaveComment(context.Background(), "order-1", "  Sin cebolla ")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSaveComment_Empty(t *testing.T) {
	repo := &mockOrderRepository{}
	svc := newTestOrderService(repo)

	err := svc.SaveComment(context.Background(), "order-1", "   ")

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
	repo.AssertNotCalled(t, "UpdateComment", mock.Anything, mock.Anything, mock.Anything)
}

func TestSaveComment_NotFound(t *testing.T) {
	repo := &mockOrderRepository{}
	repo.On("UpdateComment", mock.Anything, "missing", "hola").Return(apperrors.NewNotFoundError("order with id missing not found"))

	svc := newTestOrderService(repo)
	err := svc.SaveComment(context.Background(), "missing", "hola")

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
