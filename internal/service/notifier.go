package service

import (
	"errors"
	"log"

	"github.com/unclebandit/fitkitchen-backend/internal/model"
)

var ErrSendFailed = errors.New("welcome message not delivered")

// Notifier sends a welcome message for every newly created customer.
type Notifier struct {
	Template string
	SendFunc func(customerID int, msg string) bool
}

// Constructor
func NewNotifier(template string, sendFunc func(customerID int, msg string) bool) *Notifier {
	if template == "" {
		template = DefaultWelcomeTemplate
	}
	return &Notifier{Template: template, SendFunc: sendFunc}
}

// HandleEvent renders and sends the welcome message for created events.
// A failed send is returned so the queue can retry.
func (n *Notifier) HandleEvent(event model.CustomerEvent) error {
	if event.Type != model.CustomerCreated {
		log.Printf("Event %s: %s for customer %d, nothing to send", event.EventID, event.Type, event.CustomerID)
		return nil
	}
	if event.Customer == nil {
		log.Printf("⚠️ Event %s has no customer payload, skipping", event.EventID)
		return nil
	}

	rendered := RenderTemplate(n.Template, CustomerPlaceholders(*event.Customer))
	if !n.SendFunc(event.CustomerID, rendered) {
		return ErrSendFailed
	}

	log.Printf("✅ Welcome message sent to customer %d", event.CustomerID)
	return nil
}

// LogSender is the default SendFunc: it writes the message to the log.
func LogSender(customerID int, msg string) bool {
	log.Printf("📨 To customer %d: %s", customerID, msg)
	return true
}
