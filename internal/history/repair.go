package history

import (
	"time"

	"StandingsScraper/internal/domain"
	"StandingsScraper/internal/snapshot"
)

// backfillSpacing separates reconstructed dates of synthetic snapshots.
const backfillSpacing = 7 * 24 * time.Hour

// RepairReport counts the fields a repair pass filled.
type RepairReport struct {
	RoundsFilled    int
	DatesFilled     int
	MatchdaysFilled int
}

// Changed reports whether the pass modified anything.
func (r RepairReport) Changed() bool {
	return r.RoundsFilled > 0 || r.DatesFilled > 0 || r.MatchdaysFilled > 0
}

// Repair fills absent rounds from played counts, and for synthetic snapshots
// the legacy matchday from the round and absent dates spaced a week apart
// ending at now, by position in the season sequence. Existing values are
// never overwritten, so a second pass changes nothing.
func Repair(h domain.SeasonHistory, now time.Time) RepairReport {
	var report RepairReport
	for season, seq := range h {
		for i := range seq {
			snap := &seq[i]
			if snap.Round == nil {
				if round := snapshot.DefaultRound(snap.Clubs); round != nil {
					snap.Round = round
					report.RoundsFilled++
				}
			}
			if !snap.Synthetic() {
				continue
			}
			if snap.Matchday == nil && snap.Round != nil {
				snap.Matchday = domain.IntPtr(*snap.Round)
				report.MatchdaysFilled++
			}
			if snap.Date == "" {
				weeksBack := time.Duration(len(seq)-1-i) * backfillSpacing
				snap.Date = domain.FormatTimestamp(now.Add(-weeksBack))
				report.DatesFilled++
			}
		}
		h[season] = seq
	}
	return report
}
