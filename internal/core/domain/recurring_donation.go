package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	errAmountRequired = errors.New("amount required")
	errAmountNegative = errors.New("amount must be positive")
	// ErrInvalidFrequency is returned for anything other than monthly, quarterly or annually.
	ErrInvalidFrequency = errors.New("invalid donation frequency")
)

// Frequency is the repeat interval of a recurring donation.
type Frequency string

const (
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnually  Frequency = "annually"
)

// ParseFrequency accepts exactly monthly, quarterly or annually. one_time is rejected.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case FrequencyMonthly, FrequencyQuarterly, FrequencyAnnually:
		return Frequency(s), nil
	}
	return "", ErrInvalidFrequency
}

// DonationType returns the category label shared with one-time donations.
func (f Frequency) DonationType() DonationType {
	return DonationType(f)
}

// NextDate returns the first occurrence after from, as a calendar date (midnight, from's location).
// Month arithmetic clamps the day to the last day of the target month, so Jan 31 monthly is
// Feb 28 (or 29). Feb 29 annually becomes Feb 28 in a non-leap year.
func (f Frequency) NextDate(from time.Time) (time.Time, error) {
	year, month, day := from.Date()
	m := int(month)

	switch f {
	case FrequencyMonthly:
		if m == 12 {
			m = 1
			year++
		} else {
			m++
		}
	case FrequencyQuarterly:
		m += 3
		if m > 12 {
			m -= 12
			year++
		}
	case FrequencyAnnually:
		year++
	default:
		return time.Time{}, ErrInvalidFrequency
	}

	if last := DaysIn(time.Month(m), year); day > last {
		day = last
	}
	return time.Date(year, time.Month(m), day, 0, 0, 0, 0, from.Location()), nil
}

// DaysIn returns the number of days in month of year.
func DaysIn(month time.Month, year int) int {
	// day 0 of the following month is the last day of month
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// RecurringDonation is a scheduled repeating contribution.
type RecurringDonation struct {
	RecurringDonationID string          `json:"recurringDonationID"`
	DonorID             string          `json:"donorID"`
	CharityID           string          `json:"charityID"`
	Amount              decimal.Decimal `json:"amount"`
	Frequency           Frequency       `json:"frequency"`
	NextDonationDate    time.Time       `json:"nextDonationDate"`
	IsActive            bool            `json:"isActive"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// RecurringDonationView adds the charity display name.
type RecurringDonationView struct {
	RecurringDonation
	CharityName string `json:"charityName"`
}
