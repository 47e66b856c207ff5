package expense

import (
	"github.com/mmwale/expense-tracker/internal/core/money"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the closed set of expense statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo encodes the approval workflow: a pending expense is
// approved or rejected, and a decided one can be put back to pending.
func (s Status) CanTransitionTo(to Status) bool {
	switch s {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected
	case StatusApproved, StatusRejected:
		return to == StatusPending
	}
	return false
}

// Expense is the persisted expense record. JSON keys match the stored layout.
type Expense struct {
	ID          string       `json:"id"`
	Subject     string       `json:"subject"`
	Employee    string       `json:"employee"`
	Team        string       `json:"team"`
	Amount      money.Amount `json:"amount"`
	Category    string       `json:"category,omitempty"`
	Description string       `json:"description,omitempty"`
	ReceiptText string       `json:"receiptText,omitempty"`
	Date        string       `json:"date"`
	Status      Status       `json:"status"`
	Reported    bool         `json:"reported,omitempty"`
	TripID      string       `json:"tripId,omitempty"`
}

func (e *Expense) Approve() {
	e.Status = StatusApproved
}

func (e *Expense) Reject() {
	e.Status = StatusRejected
}

func (e *Expense) IsPending() bool {
	return e.Status == StatusPending
}

// IsProcessed is true once a manager has approved or rejected the expense.
func (e *Expense) IsProcessed() bool {
	return e.Status == StatusApproved || e.Status == StatusRejected
}
