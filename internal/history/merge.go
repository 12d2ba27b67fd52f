// Package history merges new snapshots into season histories and repairs
// metadata missing from stored ones.
package history

import "StandingsScraper/internal/domain"

// Action names the decision Merge took.
type Action string

const (
	ActionAppend  Action = "append"
	ActionReplace Action = "replace"
	ActionReset   Action = "reset"
)

// Options tunes a single merge.
type Options struct {
	// Reset discards the whole sequence before inserting, used by the first
	// snapshot of a fresh sweep.
	Reset bool
}

// Merge returns a new sequence with snap appended. Round-scoped snapshots
// replace any round-scoped entry of the same round; the replacement goes to
// the end so order keeps reflecting fetch recency. seq is not modified.
func Merge(seq []domain.Snapshot, snap domain.Snapshot, opts Options) ([]domain.Snapshot, Action) {
	if opts.Reset {
		return []domain.Snapshot{snap}, ActionReset
	}

	out := make([]domain.Snapshot, 0, len(seq)+1)
	action := ActionAppend
	for _, existing := range seq {
		if snap.RoundScoped() && existing.RoundScoped() && *existing.Round == *snap.Round {
			action = ActionReplace
			continue
		}
		out = append(out, existing)
	}
	return append(out, snap), action
}

// Apply merges snap into the season's sequence of h in place.
func Apply(h domain.SeasonHistory, season string, snap domain.Snapshot, opts Options) Action {
	merged, action := Merge(h[season], snap, opts)
	h[season] = merged
	return action
}
