// Package notify delivers fire-and-forget notifications to group members.
// The core never depends on delivery succeeding: implementations log failures
// and move on, and callers ignore the outcome entirely.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/models"
)

// Notifier announces ledger events to group members.
type Notifier interface {
	// RoundCompleted announces a finalized round to every member with a phone.
	RoundCompleted(ctx context.Context, recipient string, amount int64, members []*models.Member)

	// PaymentRecorded announces a direct payment to the payee.
	PaymentRecorded(ctx context.Context, payer, payee string, amount int64, payeePhone string)
}

// SMSSimulator is a Notifier that logs the SMS messages a real gateway would
// send. It stands in for an SMS provider integration.
type SMSSimulator struct{}

// NewSMSSimulator creates a simulated SMS notifier.
func NewSMSSimulator() *SMSSimulator {
	return &SMSSimulator{}
}

// RoundCompleted logs a simulated SMS per member with a phone number.
func (n *SMSSimulator) RoundCompleted(ctx context.Context, recipient string, amount int64, members []*models.Member) {
	msg := fmt.Sprintf("Round completed! %s received Tsh %d", recipient, amount)
	for _, m := range members {
		if m.Phone == "" {
			continue
		}
		slog.InfoContext(ctx, "Simulated SMS", "to", m.Phone, "message", msg)
	}
}

// PaymentRecorded logs a simulated SMS to the payee.
func (n *SMSSimulator) PaymentRecorded(ctx context.Context, payer, payee string, amount int64, payeePhone string) {
	if payeePhone == "" {
		return
	}
	msg := fmt.Sprintf("Payment of Tsh %d received from %s", amount, payer)
	slog.InfoContext(ctx, "Simulated SMS", "to", payeePhone, "message", msg)
}
