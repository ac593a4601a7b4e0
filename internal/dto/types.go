package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Money serializes a decimal amount as a bare JSON number with two fractional digits.
type Money decimal.Decimal

// NewMoney converts a decimal to Money.
func NewMoney(d decimal.Decimal) Money {
	return Money(d)
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return decimal.Decimal(m)
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(m).StringFixed(2)), nil
}

// dateLayout is the wire format of calendar dates.
const dateLayout = "2006-01-02"

// Date serializes a time as a YYYY-MM-DD calendar date.
type Date time.Time

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(d).Format(dateLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("date must be a string in %s format", dateLayout)
	}
	t, err := time.Parse(dateLayout, s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("date must be in %s format: %w", dateLayout, err)
	}
	*d = Date(t)
	return nil
}

// Time returns the underlying time value.
func (d Date) Time() time.Time {
	return time.Time(d)
}

// MessageResponse is a plain acknowledgment.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the error body shared by all handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}
