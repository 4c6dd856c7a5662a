// Package mailer hands mail work off to the external delivery service via
// the message bus. This backend never talks SMTP itself; it publishes a
// JSON event and the mail service picks it up from the MAIL_EVENTS stream.
package mailer

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

const subjectPasswordReset = "mail.password_reset"

type Publisher interface {
	Publish(subject string, data []byte) error
}

type Mailer interface {
	SendResetCode(to, code string) error
}

// Event is the wire format consumed by the mail service.
type Event struct {
	ID     string    `json:"id"`
	Type   string    `json:"type"`
	From   string    `json:"from"`
	To     string    `json:"to"`
	Code   string    `json:"code"`
	SentAt time.Time `json:"sent_at"`
}

type BusMailer struct {
	pub  Publisher
	from string
}

func NewBusMailer(pub Publisher, from string) *BusMailer {
	return &BusMailer{pub: pub, from: from}
}

func (m *BusMailer) SendResetCode(to, code string) error {
	event := Event{
		ID:     uuid.NewString(),
		Type:   "password_reset",
		From:   m.from,
		To:     to,
		Code:   code,
		SentAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode mail event: %w", err)
	}

	if err := m.pub.Publish(subjectPasswordReset, data); err != nil {
		return fmt.Errorf("publish mail event: %w", err)
	}

	log.Printf("INFO queued password reset mail to=%s event=%s", to, event.ID)
	return nil
}
