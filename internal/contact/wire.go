package contact

import (
	"pollos/internal/contact/controller"
	"pollos/internal/contact/service"
	"pollos/internal/web"

	"go.uber.org/zap"
)

func NewModule(repo service.MessageRepository, mailer service.Mailer, recipient string, renderer web.PageRenderer, flasher web.Flasher, logger *zap.Logger) *controller.ContactController {
	svc := service.NewContactService(repo, mailer, recipient, logger)
	return controller.NewContactController(svc, renderer, flasher, logger)
}
