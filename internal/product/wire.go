package product

import (
	"pollos/internal/product/service"

	"go.uber.org/zap"
)

func NewModule(repo service.ProductRepository, logger *zap.Logger) *service.ProductService {
	return service.NewProductService(repo, logger)
}
