package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentInput carries the user-supplied transaction identifier from the
// payment confirmation step.
type PaymentInput struct {
	TransactionID string `json:"transaction_id"`
}

// PaymentResult is the processor's answer for a charge attempt.
type PaymentResult struct {
	Reference string
	ChargedAt time.Time
}

// ErrPaymentDeclined signals that the processor refused the charge.
var ErrPaymentDeclined = errors.New("payment declined")

// PaymentProcessor verifies a payment for an order total.
type PaymentProcessor interface {
	Charge(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, input PaymentInput) (*PaymentResult, error)
}

// failKeyword is the scripted decline trigger so the failure path can be
// exercised without a real gateway.
const failKeyword = "fail"

// MockProcessor simulates payment verification: it waits for the configured
// latency and accepts any transaction identifier unless it carries the
// scripted failure keyword.
type MockProcessor struct {
	Latency time.Duration
}

// NewMockProcessor builds the simulator with the configured round-trip delay.
func NewMockProcessor(latency time.Duration) *MockProcessor {
	return &MockProcessor{Latency: latency}
}

func (p *MockProcessor) Charge(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, input PaymentInput) (*PaymentResult, error) {
	if p.Latency > 0 {
		select {
		case <-time.After(p.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if amount.Sign() <= 0 {
		return nil, ErrPaymentDeclined
	}
	txn := strings.TrimSpace(input.TransactionID)
	if strings.Contains(strings.ToLower(txn), failKeyword) {
		return nil, ErrPaymentDeclined
	}
	return &PaymentResult{
		Reference: txn,
		ChargedAt: time.Now().UTC(),
	}, nil
}
