package web

import (
	"net/http"

	"pollos/internal/domain"
)

// View names.
const (
	ViewHome       = "index"
	ViewMenu       = "menu"
	ViewPromotions = "promociones"
	ViewAbout      = "nosotros"
	ViewContact    = "contacto"
	ViewHistory    = "mis_pedidos"
)

type MenuData struct {
	Products []domain.Product
}

type HistoryData struct {
	Phone  string
	Orders []domain.Order
}

// PageRenderer renders a named view.
type PageRenderer interface {
	Render(w http.ResponseWriter, status int, name string, page Page) error
}

// Flasher queues and drains one-shot messages across a redirect.
type Flasher interface {
	Add(w http.ResponseWriter, r *http.Request, category, message string) error
	Pop(w http.ResponseWriter, r *http.Request) []Flash
}
