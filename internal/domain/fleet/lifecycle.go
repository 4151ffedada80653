package fleet

import "time"

// Tier is the lifecycle classification of a tracked cylinder, derived
// purely from its expiry date against a reference time. It is never stored:
// every read path recomputes it, so a day boundary crossing while the
// application stays open self-corrects on the next read.
type Tier string

const (
	TierExpired Tier = "expired"
	TierDueSoon Tier = "due_soon"
	TierNormal  Tier = "normal"
)

// DueSoonWindowDays is the single due-soon threshold, inclusive. Status
// badges, the call worklist, and exports all classify through Classify, so
// this window cannot diverge between call sites.
const DueSoonWindowDays = 30

// Classify maps an expiry date and a reference time to a lifecycle tier.
// Both are truncated to local midnight first, so time-of-day never affects
// the result. With d = days until expiry: d < 0 is expired, 0..30 is due
// soon, above 30 is normal. Total for any pair of valid dates.
func Classify(expiry, now time.Time) Tier {
	days := daysBetween(now, expiry)
	switch {
	case days < 0:
		return TierExpired
	case days <= DueSoonWindowDays:
		return TierDueSoon
	default:
		return TierNormal
	}
}

// daysBetween returns the whole days from a to b. Both are reduced to their
// calendar date first and re-anchored at UTC midnight, which keeps the count
// exact across DST transitions.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	au := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bu := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au) / (24 * time.Hour))
}
