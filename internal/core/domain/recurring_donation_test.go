package domain_test

import (
	"testing"
	"time"

	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFrequency_NextDate(t *testing.T) {
	tests := []struct {
		name      string
		frequency domain.Frequency
		from      time.Time
		want      time.Time
	}{
		{"monthly end of january in leap year", domain.FrequencyMonthly, date(2024, time.January, 31), date(2024, time.February, 29)},
		{"monthly end of january in common year", domain.FrequencyMonthly, date(2023, time.January, 31), date(2023, time.February, 28)},
		{"monthly december wraps year", domain.FrequencyMonthly, date(2024, time.December, 15), date(2025, time.January, 15)},
		{"monthly march 31 clamps to april 30", domain.FrequencyMonthly, date(2024, time.March, 31), date(2024, time.April, 30)},
		{"monthly mid month", domain.FrequencyMonthly, date(2024, time.June, 10), date(2024, time.July, 10)},
		{"quarterly november wraps and clamps", domain.FrequencyQuarterly, date(2024, time.November, 30), date(2025, time.February, 28)},
		{"quarterly october wraps to january", domain.FrequencyQuarterly, date(2024, time.October, 31), date(2025, time.January, 31)},
		{"quarterly september lands in december", domain.FrequencyQuarterly, date(2024, time.September, 30), date(2024, time.December, 30)},
		{"quarterly may 31 clamps to august 31", domain.FrequencyQuarterly, date(2024, time.May, 31), date(2024, time.August, 31)},
		{"annually plain", domain.FrequencyAnnually, date(2024, time.March, 5), date(2025, time.March, 5)},
		{"annually leap day clamps", domain.FrequencyAnnually, date(2024, time.February, 29), date(2025, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.frequency.NextDate(tt.from)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.After(tt.from))
		})
	}
}

func TestFrequency_NextDate_DropsTimeOfDay(t *testing.T) {
	from := time.Date(2024, time.January, 31, 23, 59, 59, 0, time.UTC)
	got, err := domain.FrequencyMonthly.NextDate(from)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.February, 29), got)
}

func TestParseFrequency(t *testing.T) {
	for _, ok := range []string{"monthly", "quarterly", "annually"} {
		f, err := domain.ParseFrequency(ok)
		assert.NoError(t, err)
		assert.Equal(t, ok, string(f))
	}
	for _, bad := range []string{"one_time", "weekly", "", "Monthly"} {
		_, err := domain.ParseFrequency(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidFrequency, bad)
	}

	_, err := domain.Frequency("weekly").NextDate(date(2024, 1, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidFrequency)
}

func TestParseDonationType(t *testing.T) {
	dt, ok := domain.ParseDonationType("")
	assert.True(t, ok)
	assert.Equal(t, domain.DonationOneTime, dt)

	dt, ok = domain.ParseDonationType("quarterly")
	assert.True(t, ok)
	assert.Equal(t, domain.DonationQuarterly, dt)

	_, ok = domain.ParseDonationType("weekly")
	assert.False(t, ok)
}

func TestNormalizeAmount(t *testing.T) {
	got, err := domain.NormalizeAmount(decimal.RequireFromString("100.456"))
	require.NoError(t, err)
	assert.Equal(t, "100.46", got.StringFixed(2))

	_, err = domain.NormalizeAmount(decimal.Zero)
	assert.EqualError(t, err, "amount required")

	_, err = domain.NormalizeAmount(decimal.RequireFromString("0.001"))
	assert.EqualError(t, err, "amount required")

	_, err = domain.NormalizeAmount(decimal.NewFromInt(-5))
	assert.EqualError(t, err, "amount must be positive")
}

func TestUser_ResetTokenValid(t *testing.T) {
	now := time.Now()
	token := "abc"
	expiry := now.Add(time.Hour)
	u := domain.User{ResetToken: &token, ResetTokenExpiry: &expiry}

	assert.True(t, u.ResetTokenValid("abc", now))
	assert.False(t, u.ResetTokenValid("abd", now))
	assert.False(t, u.ResetTokenValid("abc", now.Add(2*time.Hour)))
	assert.False(t, (&domain.User{}).ResetTokenValid("", now))
}
