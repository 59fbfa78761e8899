package notify

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// MobileMoneyReceipt is the acknowledgement returned by a mobile-money provider.
type MobileMoneyReceipt struct {
	Provider      string
	TransactionID string
}

// MobileMoney disburses money to a member's phone. The core treats disbursal
// as a fire-and-forget side effect; no real network integration exists here.
type MobileMoney interface {
	Disburse(ctx context.Context, phone string, amount int64, purpose string) MobileMoneyReceipt
}

// StubMobileMoney is a MobileMoney implementation that only logs and returns
// a synthetic transaction reference.
type StubMobileMoney struct {
	Provider string
}

// NewStubMobileMoney creates a stub provider. Provider defaults to "M-Pesa".
func NewStubMobileMoney() *StubMobileMoney {
	return &StubMobileMoney{Provider: "M-Pesa"}
}

// Disburse logs the simulated transfer and returns a synthetic receipt.
func (s *StubMobileMoney) Disburse(ctx context.Context, phone string, amount int64, purpose string) MobileMoneyReceipt {
	receipt := MobileMoneyReceipt{
		Provider:      s.Provider,
		TransactionID: "MM-" + uuid.New().String(),
	}
	slog.InfoContext(ctx, "Simulated mobile money disbursal",
		"provider", s.Provider,
		"to", phone,
		"amount", amount,
		"purpose", purpose,
		"transaction_id", receipt.TransactionID,
	)
	return receipt
}
