package controller

import (
	"context"
	"net/http"

	"pollos/internal/contact/service"
	apperrors "pollos/internal/errors"
	"pollos/internal/web"

	"go.uber.org/zap"
)

const (
	msgMissingFields = "Debes llenar todos los campos."
	msgSent          = "Tu mensaje fue enviado correctamente."
	msgNotNotified   = "Recibimos tu mensaje, pero no pudimos enviar la notificación."
	msgFailed        = "Error enviando el mensaje."
)

type ContactService interface {
	Submit(ctx context.Context, req service.SubmitRequest) (service.SubmitResult, error)
}

type ContactController struct {
	service  ContactService
	renderer web.PageRenderer
	flasher  web.Flasher
	logger   *zap.Logger
}

func NewContactController(svc ContactService, renderer web.PageRenderer, flasher web.Flasher, logger *zap.Logger) *ContactController {
	return &ContactController{
		service:  svc,
		renderer: renderer,
		flasher:  flasher,
		logger:   logger,
	}
}

func (c *ContactController) Form(w http.ResponseWriter, r *http.Request) {
	page := web.Page{Title: "Contacto", Flashes: c.flasher.Pop(w, r)}
	if err := c.renderer.Render(w, http.StatusOK, web.ViewContact, page); err != nil {
		c.logger.Error("rendering contact form failed",
			zap.String("traceId", web.TraceID(r.Context())),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// Submit handles the contact form and always redirects back to it.
func (c *ContactController) Submit(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", web.TraceID(r.Context())))

	category, message := c.submit(r, logger)
	if err := c.flasher.Add(w, r, category, message); err != nil {
		logger.Warn("storing flash message failed", zap.Error(err))
	}
	http.Redirect(w, r, "/contacto", http.StatusSeeOther)
}

func (c *ContactController) submit(r *http.Request, logger *zap.Logger) (string, string) {
	if err := r.ParseForm(); err != nil {
		logger.Warn("invalid contact form", zap.Error(err))
		return web.FlashWarning, msgMissingFields
	}

	result, err := c.service.Submit(r.Context(), service.SubmitRequest{
		Email:   r.PostFormValue("correo"),
		Subject: r.PostFormValue("asunto"),
		Body:    r.PostFormValue("mensaje"),
	})
	if err != nil {
		if _, ok := apperrors.IsValidationError(err); ok {
			return web.FlashWarning, msgMissingFields
		}
		logger.Error("submitting contact message failed", zap.Error(err))
		return web.FlashDanger, msgFailed
	}

	if !result.Notified {
		return web.FlashWarning, msgNotNotified
	}
	return web.FlashSuccess, msgSent
}
