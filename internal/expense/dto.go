package expense

import (
	"github.com/mmwale/expense-tracker/internal/core/money"
)

// CreateExpenseDTO is the input to Store.AddExpense. Zero values mean
// "not supplied" and are filled from the defaults in NewExpense.
type CreateExpenseDTO struct {
	Subject     string
	Employee    string
	Team        string
	Amount      money.Amount
	Category    string
	Description string
	ReceiptText string
	Date        string
	Status      *Status
	Reported    bool
	TripID      string
}

// Validate only checks what the store itself owns: the status variant.
// Required fields are the caller's business.
func (dto CreateExpenseDTO) Validate() error {
	if dto.Status != nil && !dto.Status.Valid() {
		return ErrInvalidExpenseStatus
	}
	return nil
}

// NewExpense applies the creation defaults: today's date, pending status and
// a "0" amount.
func NewExpense(id, today string, dto CreateExpenseDTO) Expense {
	e := Expense{
		ID:          id,
		Subject:     dto.Subject,
		Employee:    dto.Employee,
		Team:        dto.Team,
		Amount:      dto.Amount,
		Category:    dto.Category,
		Description: dto.Description,
		ReceiptText: dto.ReceiptText,
		Date:        dto.Date,
		Status:      StatusPending,
		Reported:    dto.Reported,
		TripID:      dto.TripID,
	}
	if e.Date == "" {
		e.Date = today
	}
	if dto.Status != nil {
		e.Status = *dto.Status
	}
	if e.Amount.IsEmpty() {
		e.Amount = money.Zero
	}
	return e
}

// Filter combines the criteria used by the dashboard report and the list
// views. Empty fields do not filter.
type Filter struct {
	Team           string
	Category       string
	Status         Status
	TripID         string
	From           string
	To             string
	UnreportedOnly bool
}
