package license

import (
	"testing"
	"time"

	"licenseshop/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func inDays(d int) time.Time {
	return now.Add(time.Duration(d) * 24 * time.Hour)
}

func TestDaysRemaining(t *testing.T) {
	tests := []struct {
		name       string
		expiration time.Time
		expected   int
	}{
		{name: "Five days ahead", expiration: inDays(5), expected: 5},
		{name: "Exactly now", expiration: now, expected: 0},
		{name: "Yesterday", expiration: inDays(-1), expected: -1},
		{name: "Partial day rounds up", expiration: now.Add(36 * time.Hour), expected: 2},
		{name: "Thirty days ahead", expiration: inDays(30), expected: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysRemaining(tt.expiration, now))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		expected Tier
	}{
		{name: "Negative is expired", days: -1, expected: TierExpired},
		{name: "Zero is critical", days: 0, expected: TierCritical},
		{name: "Five is critical", days: 5, expected: TierCritical},
		{name: "Seven is critical boundary", days: 7, expected: TierCritical},
		{name: "Eight is warning", days: 8, expected: TierWarning},
		{name: "Thirty is warning boundary", days: 30, expected: TierWarning},
		{name: "Thirty-one is ok", days: 31, expected: TierOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.days))
		})
	}
}

func TestClassifyAll(t *testing.T) {
	ledger := []model.SoldLicense{
		{ID: 1, ProductName: "VPN Pro", ExpirationDate: inDays(5)},
		{ID: 2, ProductName: "Antivirus", ExpirationDate: inDays(-2)},
		{ID: 3, ProductName: "Office", ExpirationDate: inDays(45)},
	}

	classified := ClassifyAll(ledger, now)
	require.Len(t, classified, 3)
	assert.Equal(t, TierCritical, classified[0].Tier)
	assert.Equal(t, 5, classified[0].DaysRemaining)
	assert.Equal(t, TierExpired, classified[1].Tier)
	assert.Equal(t, TierOK, classified[2].Tier)
}

func TestExpiringSoon(t *testing.T) {
	ledger := []model.SoldLicense{
		{ID: 1, ExpirationDate: inDays(-3)}, // expired, excluded
		{ID: 2, ExpirationDate: inDays(0)},
		{ID: 3, ExpirationDate: inDays(14)},
		{ID: 4, ExpirationDate: inDays(30)},
		{ID: 5, ExpirationDate: inDays(31)}, // outside window
	}

	t.Run("Default window", func(t *testing.T) {
		got := ExpiringSoon(ledger, now, 0)
		require.Len(t, got, 3)
		assert.Equal(t, int64(2), got[0].ID)
		assert.Equal(t, int64(3), got[1].ID)
		assert.Equal(t, int64(4), got[2].ID)
	})

	t.Run("Narrow window", func(t *testing.T) {
		got := ExpiringSoon(ledger, now, 7)
		require.Len(t, got, 1)
		assert.Equal(t, int64(2), got[0].ID)
	})
}

func TestReminderMessage(t *testing.T) {
	lic := model.SoldLicense{
		CustomerName:   "Carlos",
		ProductName:    "VPN Pro",
		ExpirationDate: inDays(5),
	}

	msg := ReminderMessage(lic, now)
	assert.Contains(t, msg, "Carlos")
	assert.Contains(t, msg, "VPN Pro")
	assert.Contains(t, msg, "5 días")

	lic.ExpirationDate = inDays(-1)
	msg = ReminderMessage(lic, now)
	assert.Contains(t, msg, "venció")
}
