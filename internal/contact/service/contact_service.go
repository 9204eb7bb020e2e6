package service

import (
	"context"
	"strings"
	"time"

	"pollos/internal/domain"
	apperrors "pollos/internal/errors"

	"go.uber.org/zap"
)

type MessageRepository interface {
	Create(ctx context.Context, msg domain.ContactMessage) (string, error)
}

type Mailer interface {
	Send(ctx context.Context, subject, body, recipient string) error
}

type SubmitRequest struct {
	Email   string
	Subject string
	Body    string
}

// SubmitResult reports the two independent outcomes of a submission.
type SubmitResult struct {
	Saved    bool
	Notified bool
}

type ContactService struct {
	repo      MessageRepository
	mailer    Mailer
	recipient string
	logger    *zap.Logger
	now       func() time.Time
}

func NewContactService(repo MessageRepository, mailer Mailer, recipient string, logger *zap.Logger) *ContactService {
	return &ContactService{
		repo:      repo,
		mailer:    mailer,
		recipient: recipient,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit stores the message and then notifies the restaurant. The two steps
// are independent: a failed save still sends the notification and a failed
// notification keeps the stored message. The returned error only reflects
// the save.
func (s *ContactService) Submit(ctx context.Context, req SubmitRequest) (SubmitResult, error) {
	msg := domain.ContactMessage{
		Email:     strings.TrimSpace(req.Email),
		Subject:   strings.TrimSpace(req.Subject),
		Body:      strings.TrimSpace(req.Body),
		CreatedAt: s.now().Truncate(time.Second),
	}

	var details []apperrors.ValidationDetail
	if msg.Email == "" {
		details = append(details, apperrors.ValidationDetail{Field: "correo", Message: "email is required"})
	}
	if msg.Subject == "" {
		details = append(details, apperrors.ValidationDetail{Field: "asunto", Message: "subject is required"})
	}
	if msg.Body == "" {
		details = append(details, apperrors.ValidationDetail{Field: "mensaje", Message: "message is required"})
	}
	if len(details) > 0 {
		return SubmitResult{}, apperrors.NewValidationError("all contact fields are required", details...)
	}

	var result SubmitResult

	id, saveErr := s.repo.Create(ctx, msg)
	if saveErr != nil {
		s.logger.Error("saving contact message failed", zap.String("email", msg.Email), zap.Error(saveErr))
	} else {
		result.Saved = true
		s.logger.Info("contact message saved", zap.String("messageId", id), zap.String("email", msg.Email))
	}

	if err := s.mailer.Send(ctx, msg.NotificationSubject(), msg.NotificationBody(), s.recipient); err != nil {
		s.logger.Error("contact notification failed", zap.String("messageId", id), zap.Error(err))
	} else {
		result.Notified = true
	}

	if saveErr != nil {
		return result, apperrors.NewInternalError("saving contact message", saveErr)
	}
	return result, nil
}
