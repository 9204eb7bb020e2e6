package server

import (
	"context"
	"net/http"
	"time"

	"pollos/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type PagesHandler interface {
	Home(w http.ResponseWriter, r *http.Request)
	Menu(w http.ResponseWriter, r *http.Request)
	Promotions(w http.ResponseWriter, r *http.Request)
	About(w http.ResponseWriter, r *http.Request)
}

type OrdersHandler interface {
	PlaceOrder(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	SaveComment(w http.ResponseWriter, r *http.Request)
}

type ContactHandler interface {
	Form(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
}

// Pinger reports whether the backing stores are reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handlers struct {
	Pages   PagesHandler
	Orders  OrdersHandler
	Contact ContactHandler
	Health  Pinger
}

const healthTimeout = 2 * time.Second

func NewRouter(h Handlers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(web.Trace(logger))
	r.Use(middleware.Recoverer)

	r.Get("/", h.Pages.Home)
	r.Get("/menu", h.Pages.Menu)
	r.Get("/promociones", h.Pages.Promotions)
	r.Get("/nosotros", h.Pages.About)

	r.Get("/contacto", h.Contact.Form)
	r.Post("/contacto", h.Contact.Submit)

	r.Post("/ordenar", h.Orders.PlaceOrder)
	r.Get("/mis_pedidos", h.Orders.History)
	r.Post("/guardar_comentario/{id}", h.Orders.SaveComment)

	r.Get("/healthz", health(h.Health, logger))

	return r
}

func health(p Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := p.Ping(ctx); err != nil {
			logger.Warn("health check failed",
				zap.String("traceId", web.TraceID(r.Context())),
				zap.Error(err),
			)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("unavailable"))
			return
		}
		_, _ = w.Write([]byte("ok"))
	}
}
