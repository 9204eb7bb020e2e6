package controller

import (
	"context"
	"net/http"

	"pollos/internal/domain"
	"pollos/internal/web"

	"go.uber.org/zap"
)

const msgMenuUnavailable = "No pudimos cargar el menú. Intenta de nuevo en unos minutos."

type Catalog interface {
	ListActive(ctx context.Context) ([]domain.Product, error)
}

// PagesController serves the informational pages.
type PagesController struct {
	catalog  Catalog
	renderer web.PageRenderer
	flasher  web.Flasher
	logger   *zap.Logger
}

func NewPagesController(catalog Catalog, renderer web.PageRenderer, flasher web.Flasher, logger *zap.Logger) *PagesController {
	return &PagesController{
		catalog:  catalog,
		renderer: renderer,
		flasher:  flasher,
		logger:   logger,
	}
}

func (c *PagesController) Home(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, web.ViewHome, "Inicio", nil, nil)
}

func (c *PagesController) Promotions(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, web.ViewPromotions, "Promociones", nil, nil)
}

func (c *PagesController) About(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, web.ViewAbout, "Nosotros", nil, nil)
}

// Menu lists the active catalog. A catalog failure still renders the page
// with an empty menu.
func (c *PagesController) Menu(w http.ResponseWriter, r *http.Request) {
	var extra []web.Flash

	products, err := c.catalog.ListActive(r.Context())
	if err != nil {
		c.logger.Error("loading catalog failed",
			zap.String("traceId", web.TraceID(r.Context())),
			zap.Error(err),
		)
		extra = append(extra, web.Flash{Category: web.FlashDanger, Message: msgMenuUnavailable})
		products = []domain.Product{}
	}

	c.render(w, r, web.ViewMenu, "Menú", web.MenuData{Products: products}, extra)
}

func (c *PagesController) render(w http.ResponseWriter, r *http.Request, view, title string, data any, extra []web.Flash) {
	page := web.Page{
		Title:   title,
		Flashes: append(c.flasher.Pop(w, r), extra...),
		Data:    data,
	}

	if err := c.renderer.Render(w, http.StatusOK, view, page); err != nil {
		c.logger.Error("rendering page failed",
			zap.String("traceId", web.TraceID(r.Context())),
			zap.String("view", view),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
