package pages

import (
	"pollos/internal/pages/controller"
	"pollos/internal/web"

	"go.uber.org/zap"
)

func NewModule(catalog controller.Catalog, renderer web.PageRenderer, flasher web.Flasher, logger *zap.Logger) *controller.PagesController {
	return controller.NewPagesController(catalog, renderer, flasher, logger)
}
