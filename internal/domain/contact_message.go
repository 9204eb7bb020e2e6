package domain

import (
	"fmt"
	"time"
)

// ContactMessage is a submission of the public contact form.
type ContactMessage struct {
	ID        string
	Email     string
	Subject   string
	Body      string
	CreatedAt time.Time
}

const MessageTimeLayout = "02/01/2006 15:04:05"

func (m ContactMessage) NotificationSubject() string {
	return fmt.Sprintf("Nuevo mensaje: %s", m.Subject)
}

func (m ContactMessage) NotificationBody() string {
	return fmt.Sprintf("De: %s\n\nMensaje:\n%s", m.Email, m.Body)
}
