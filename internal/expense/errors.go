package expense

import "github.com/mmwale/expense-tracker/internal"

var (
	ErrExpenseNotFound         = internal.ErrExpenseNotFound
	ErrInvalidExpenseStatus    = internal.ErrInvalidExpenseStatus
	ErrInvalidStatusTransition = internal.ErrInvalidStatusTransition
)
