package service

import (
	"context"
	"strings"
	"time"

	"pollos/internal/domain"
	apperrors "pollos/internal/errors"

	"go.uber.org/zap"
)

type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) (string, error)
	FindByPhone(ctx context.Context, phone string) ([]domain.Order, error)
	UpdateComment(ctx context.Context, id string, comment string) error
}

// PlaceOrderRequest carries the raw form values of an order submission.
type PlaceOrderRequest struct {
	Name    string
	Phone   string
	Product string
	Price   string
	Image   string
}

type OrderService struct {
	repo   OrderRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewOrderService(repo OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *OrderService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*domain.Order, error) {
	var details []apperrors.ValidationDetail
	if strings.TrimSpace(req.Name) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "nombre", Message: "name is required"})
	}
	if strings.TrimSpace(req.Phone) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "telefono", Message: "phone is required"})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("name and phone are required", details...)
	}

	order := domain.NewPendingOrder(req.Name, req.Phone, req.Product, req.Price, req.Image, s.now().Truncate(time.Second))

	id, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, apperrors.NewInternalError("creating order", err)
	}
	order.ID = id

	s.logger.Info("order placed",
		zap.String("orderId", id),
		zap.String("phone", order.Phone),
		zap.String("product", order.Product),
		zap.Float64("price", order.Price),
	)

	return &order, nil
}

// History returns the orders placed with phone. A blank phone never reaches
// the store.
func (s *OrderService) History(ctx context.Context, phone string) ([]domain.Order, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return []domain.Order{}, nil
	}

	orders, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, apperrors.NewInternalError("listing orders", err)
	}

	return orders, nil
}

func (s *OrderService) SaveComment(ctx context.Context, id string, comment string) error {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return apperrors.NewValidationError("comment is empty", apperrors.ValidationDetail{
			Field:   "comentario",
			Message: "comment must not be empty",
		})
	}

	if err := s.repo.UpdateComment(ctx, id, comment); err != nil {
		return err
	}

	s.logger.Info("order comment saved", zap.String("orderId", id))
	return nil
}
