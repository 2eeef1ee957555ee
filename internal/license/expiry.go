package license

import (
	"fmt"
	"math"
	"time"

	"licenseshop/internal/model"
)

// Tier is the renewal-urgency classification of a sold license.
type Tier string

const (
	TierExpired  Tier = "expired"
	TierCritical Tier = "critical" // 7 days or fewer remaining
	TierWarning  Tier = "warning"  // 8 to 30 days remaining
	TierOK       Tier = "ok"
)

// DefaultExpiringWindow is the days-remaining window the renewal screen
// queries when none is given.
const DefaultExpiringWindow = 30

// DaysRemaining returns the number of days until expiration, rounded up.
// An expiration earlier than now yields a negative count.
func DaysRemaining(expiration, now time.Time) int {
	return int(math.Ceil(expiration.Sub(now).Hours() / 24))
}

// Classify buckets a days-remaining count into a tier. Precedence is
// expired, then critical, then warning.
func Classify(daysRemaining int) Tier {
	switch {
	case daysRemaining < 0:
		return TierExpired
	case daysRemaining <= 7:
		return TierCritical
	case daysRemaining <= 30:
		return TierWarning
	default:
		return TierOK
	}
}

// ClassifiedLicense pairs a ledger entry with its computed urgency.
type ClassifiedLicense struct {
	model.SoldLicense
	DaysRemaining int  `json:"daysRemaining"`
	Tier          Tier `json:"tier"`
}

// ClassifyAll evaluates the whole ledger against a single "now" so one pass
// is internally consistent.
func ClassifyAll(licenses []model.SoldLicense, now time.Time) []ClassifiedLicense {
	out := make([]ClassifiedLicense, len(licenses))
	for i, l := range licenses {
		days := DaysRemaining(l.ExpirationDate, now)
		out[i] = ClassifiedLicense{SoldLicense: l, DaysRemaining: days, Tier: Classify(days)}
	}
	return out
}

// ExpiringSoon filters the ledger to licenses with 0 to days days remaining,
// the set worth proactive renewal outreach. Already expired licenses are
// excluded; they get the expired tier instead.
func ExpiringSoon(licenses []model.SoldLicense, now time.Time, days int) []ClassifiedLicense {
	if days <= 0 {
		days = DefaultExpiringWindow
	}

	var out []ClassifiedLicense
	for _, c := range ClassifyAll(licenses, now) {
		if c.DaysRemaining >= 0 && c.DaysRemaining <= days {
			out = append(out, c)
		}
	}
	return out
}

// ReminderMessage builds the WhatsApp renewal text the admin screen sends
// to a customer whose license is about to lapse.
func ReminderMessage(l model.SoldLicense, now time.Time) string {
	days := DaysRemaining(l.ExpirationDate, now)
	expiration := l.ExpirationDate.Format("02/01/2006")

	if days < 0 {
		return fmt.Sprintf(
			"Hola %s, tu licencia de %s venció el %s. Escríbenos para renovarla y recuperar el acceso.",
			l.CustomerName, l.ProductName, expiration,
		)
	}
	return fmt.Sprintf(
		"Hola %s, tu licencia de %s vence en %d días (fecha de vencimiento: %s). Escríbenos para renovarla a tiempo.",
		l.CustomerName, l.ProductName, days, expiration,
	)
}
