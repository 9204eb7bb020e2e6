package order

import (
	"pollos/internal/order/controller"
	"pollos/internal/order/service"
	"pollos/internal/web"

	"go.uber.org/zap"
)

func NewModule(repo service.OrderRepository, renderer web.PageRenderer, flasher web.Flasher, logger *zap.Logger) *controller.OrderController {
	svc := service.NewOrderService(repo, logger)
	return controller.NewOrderController(svc, renderer, flasher, logger)
}
