package tracker

import (
	"github.com/mmwale/expense-tracker/internal/core/money"
	"github.com/shopspring/decimal"
)

// amountFromInput normalizes a typed amount the way the receipt form does:
// a parseable value is stored in canonical decimal text, anything else is
// kept verbatim.
func amountFromInput(raw string) money.Amount {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return money.FromString(raw)
	}
	return money.FromString(d.String())
}
