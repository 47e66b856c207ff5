// Package money holds the Amount value used by expenses and trip budgets.
//
// An Amount keeps exactly what the user typed, either a JSON string or a JSON
// number, so persisted records round-trip unchanged. Arithmetic goes through
// Decimal, which maps anything unparseable or negative to zero.
package money

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

type Amount struct {
	raw    string
	number bool
}

// Zero is the amount assigned to an expense created without one.
var Zero = FromString("0")

func FromString(s string) Amount {
	return Amount{raw: s}
}

// FromDecimal builds a numeric amount, encoded as a JSON number.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount{raw: d.String(), number: true}
}

func (a Amount) String() string {
	return a.raw
}

// IsEmpty reports whether no amount was supplied at all.
func (a Amount) IsEmpty() bool {
	return a.raw == ""
}

// IsZero lets `omitzero` drop unset amounts from encoded records.
func (a Amount) IsZero() bool {
	return a.IsEmpty()
}

// Parse returns the decimal value of the raw text.
func (a Amount) Parse() (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(a.raw))
}

// Valid reports whether the amount parses to a non-negative number.
func (a Amount) Valid() bool {
	d, err := a.Parse()
	return err == nil && !d.IsNegative()
}

// Decimal is the value used in aggregates: malformed or negative input counts as zero.
func (a Amount) Decimal() decimal.Decimal {
	d, err := a.Parse()
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if a.raw == "" && !a.number {
		return []byte("null"), nil
	}
	if a.number {
		return []byte(a.raw), nil
	}
	return json.Marshal(a.raw)
}

// UnmarshalJSON accepts a string, a number or null. Any other literal is kept
// as text so a single odd record never fails a whole collection load.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = Amount{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount{raw: s}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*a = Amount{raw: n.String(), number: true}
		return nil
	}
	*a = Amount{raw: string(data)}
	return nil
}

// Sum adds the aggregate value of every amount.
func Sum(amounts ...Amount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.Decimal())
	}
	return total
}
