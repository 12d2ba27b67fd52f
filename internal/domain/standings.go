package domain

import (
	"strings"
	"time"
)

// ClubRow is one club's line in a standings table.
type ClubRow struct {
	Position       *int   `json:"position"`
	Name           string `json:"name"`
	Points         *int   `json:"points"`
	Played         *int   `json:"played"`
	GoalDifference *int   `json:"goal_difference"`
	Wins           *int   `json:"wins"`
	Draws          *int   `json:"draws"`
	Losses         *int   `json:"losses"`
	GoalsFor       *int   `json:"goals_for"`
	GoalsAgainst   *int   `json:"goals_against"`
}

// SnapshotType enumerates the kinds of tables a snapshot can hold.
type SnapshotType string

const (
	SnapshotGeneral            SnapshotType = "general"
	SnapshotHome               SnapshotType = "home"
	SnapshotAway               SnapshotType = "away"
	SnapshotMatchday           SnapshotType = "matchday"
	SnapshotRoundStandings     SnapshotType = "round_standings"
	SnapshotFinalStandings     SnapshotType = "final_standings"
	SnapshotSyntheticEvolution SnapshotType = "synthetic-evolution"
)

// footMercatoHost identifies whole-table pages by their source URL.
const footMercatoHost = "footmercato"

// SyntheticSource is the source identifier of generated evolution snapshots.
const SyntheticSource = "synthetic-evolution"

// WholeTable reports whether the type describes a full-table view that is
// never de-duplicated by round.
func (t SnapshotType) WholeTable() bool {
	switch t {
	case SnapshotGeneral, SnapshotHome, SnapshotAway, SnapshotSyntheticEvolution:
		return true
	default:
		return false
	}
}

// RoundWindow is the matchday range a round-scoped fetch covered.
type RoundWindow struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Snapshot is one extracted and timestamped standings table.
type Snapshot struct {
	Date         string       `json:"date,omitempty"`
	Source       string       `json:"source"`
	URL          string       `json:"url,omitempty"`
	Params       *RoundWindow `json:"params,omitempty"`
	Season       string       `json:"season,omitempty"`
	Round        *int         `json:"round,omitempty"`
	Matchday     *int         `json:"matchday,omitempty"`
	SnapshotType SnapshotType `json:"snapshot_type,omitempty"`
	Clubs        []ClubRow    `json:"clubs"`
}

// RoundScoped reports whether the snapshot takes part in replace-by-round.
// Synthetic snapshots and untyped footmercato tables stored before types
// were recorded are whole tables even once a round has been backfilled.
func (s Snapshot) RoundScoped() bool {
	if s.Round == nil || s.SnapshotType.WholeTable() || s.Synthetic() {
		return false
	}
	return s.SnapshotType != "" || !s.fromFootMercato()
}

func (s Snapshot) fromFootMercato() bool {
	return strings.Contains(strings.ToLower(s.Source), footMercatoHost)
}

// Synthetic reports whether the snapshot was generated rather than fetched.
func (s Snapshot) Synthetic() bool {
	return s.Source == SyntheticSource || s.SnapshotType == SnapshotSyntheticEvolution
}

// MaxPlayed returns the highest played count across clubs, ok=false when no
// club carries one.
func (s Snapshot) MaxPlayed() (int, bool) {
	return MaxPlayed(s.Clubs)
}

// MaxPlayed returns the highest non-absent played value in clubs.
func MaxPlayed(clubs []ClubRow) (int, bool) {
	best, found := 0, false
	for _, club := range clubs {
		if club.Played == nil {
			continue
		}
		if !found || *club.Played > best {
			best, found = *club.Played, true
		}
	}
	return best, found
}

// SeasonHistory maps a season key to its snapshots in fetch order.
type SeasonHistory map[string][]Snapshot

// Clone returns a copy whose sequences can be modified independently.
func (h SeasonHistory) Clone() SeasonHistory {
	out := make(SeasonHistory, len(h))
	for season, seq := range h {
		out[season] = append([]Snapshot(nil), seq...)
	}
	return out
}

// timestampLayout matches the millisecond UTC form used in stored histories.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t as the stored snapshot date.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ParseTimestamp reads a stored snapshot date.
func ParseTimestamp(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
