package controller

import (
	"context"
	"net/http"
	"net/url"

	"pollos/internal/domain"
	apperrors "pollos/internal/errors"
	"pollos/internal/order/service"
	"pollos/internal/web"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	msgMissingFields = "Debes ingresar nombre y número."
	msgOrderPlaced   = "Pedido registrado correctamente."
	msgOrderFailed   = "Error guardando el pedido."

	msgEmptyComment  = "Comentario vacío"
	msgOrderNotFound = "Pedido no encontrado"
	msgCommentSaved  = "Comentario guardado correctamente"
	msgCommentFailed = "Error guardando el comentario"
	msgHistoryFailed = "No pudimos cargar tus pedidos."
)

type OrderService interface {
	PlaceOrder(ctx context.Context, req service.PlaceOrderRequest) (*domain.Order, error)
	History(ctx context.Context, phone string) ([]domain.Order, error)
	SaveComment(ctx context.Context, id string, comment string) error
}

type OrderController struct {
	service  OrderService
	renderer web.PageRenderer
	flasher  web.Flasher
	logger   *zap.Logger
}

func NewOrderController(svc OrderService, renderer web.PageRenderer, flasher web.Flasher, logger *zap.Logger) *OrderController {
	return &OrderController{
		service:  svc,
		renderer: renderer,
		flasher:  flasher,
		logger:   logger,
	}
}

// PlaceOrder handles the order form posted from the menu.
func (c *OrderController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", web.TraceID(r.Context())))

	if err := r.ParseForm(); err != nil {
		logger.Warn("invalid order form", zap.Error(err))
		c.flash(w, r, logger, web.FlashWarning, msgMissingFields)
		http.Redirect(w, r, "/menu", http.StatusSeeOther)
		return
	}

	req := service.PlaceOrderRequest{
		Name:    r.PostFormValue("nombre"),
		Phone:   r.PostFormValue("telefono"),
		Product: r.PostFormValue("producto"),
		Price:   r.PostFormValue("precio"),
		Image:   r.PostFormValue("imagen"),
	}

	order, err := c.service.PlaceOrder(r.Context(), req)
	if err != nil {
		if isValidation(err) {
			c.flash(w, r, logger, web.FlashWarning, msgMissingFields)
			http.Redirect(w, r, "/menu", http.StatusSeeOther)
			return
		}

		logger.Error("placing order failed", zap.Error(err))
		c.flash(w, r, logger, web.FlashDanger, msgOrderFailed)
		http.Redirect(w, r, historyURL(req.Phone), http.StatusSeeOther)
		return
	}

	c.flash(w, r, logger, web.FlashSuccess, msgOrderPlaced)
	http.Redirect(w, r, historyURL(order.Phone), http.StatusSeeOther)
}

// History renders the orders placed with the telefono query parameter.
func (c *OrderController) History(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", web.TraceID(r.Context())))
	phone := r.URL.Query().Get("telefono")

	flashes := c.flasher.Pop(w, r)

	orders, err := c.service.History(r.Context(), phone)
	if err != nil {
		logger.Error("listing orders failed", zap.String("phone", phone), zap.Error(err))
		flashes = append(flashes, web.Flash{Category: web.FlashDanger, Message: msgHistoryFailed})
		orders = []domain.Order{}
	}

	page := web.Page{
		Title:   "Mis pedidos",
		Flashes: flashes,
		Data:    web.HistoryData{Phone: phone, Orders: orders},
	}
	if err := c.renderer.Render(w, http.StatusOK, web.ViewHistory, page); err != nil {
		logger.Error("rendering history failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// SaveComment stores the customer's comment on an order and answers in plain
// text.
func (c *OrderController) SaveComment(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", web.TraceID(r.Context())))
	id := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		logger.Warn("invalid comment form", zap.Error(err))
		writeText(w, http.StatusBadRequest, msgEmptyComment)
		return
	}

	err := c.service.SaveComment(r.Context(), id, r.PostFormValue("comentario"))
	switch {
	case err == nil:
		writeText(w, http.StatusOK, msgCommentSaved)
	case isValidation(err):
		writeText(w, http.StatusBadRequest, msgEmptyComment)
	case isNotFound(err):
		logger.Warn("comment for unknown order", zap.String("orderId", id))
		writeText(w, http.StatusNotFound, msgOrderNotFound)
	default:
		logger.Error("saving comment failed", zap.String("orderId", id), zap.Error(err))
		writeText(w, http.StatusInternalServerError, msgCommentFailed)
	}
}

func (c *OrderController) flash(w http.ResponseWriter, r *http.Request, logger *zap.Logger, category, message string) {
	if err := c.flasher.Add(w, r, category, message); err != nil {
		logger.Warn("storing flash message failed", zap.Error(err))
	}
}

func historyURL(phone string) string {
	return "/mis_pedidos?" + url.Values{"telefono": {phone}}.Encode()
}

func isValidation(err error) bool {
	_, ok := apperrors.IsValidationError(err)
	return ok
}

func isNotFound(err error) bool {
	_, ok := apperrors.IsNotFoundError(err)
	return ok
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
