package history

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"strings"

	"StandingsScraper/internal/domain"
	"StandingsScraper/internal/extract"
)

// SynthesizeOptions controls synthetic evolution generation.
type SynthesizeOptions struct {
	FromRound int
	ToRound   int
	Top       int
	Rand      *rand.Rand
}

// LatestFrom returns the most recent snapshot whose source mentions source.
func LatestFrom(seq []domain.Snapshot, source string) (domain.Snapshot, bool) {
	for i := len(seq) - 1; i >= 0; i-- {
		if strings.Contains(seq[i].Source, source) {
			return seq[i], true
		}
	}
	return domain.Snapshot{}, false
}

// LatestFootMercato returns the latest whole-table snapshot of the season.
func LatestFootMercato(seq []domain.Snapshot) (domain.Snapshot, bool) {
	return LatestFrom(seq, extract.SourceFootMercato)
}

// Synthesize derives one snapshot per round from base's top clubs, adding
// random points and goals, then re-ranking by points and goal difference.
// Generated snapshots carry no date; Repair assigns one.
func Synthesize(base domain.Snapshot, season string, opts SynthesizeOptions) []domain.Snapshot {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	top := opts.Top
	if top <= 0 || top > len(base.Clubs) {
		top = len(base.Clubs)
	}

	var out []domain.Snapshot
	for round := opts.FromRound; round <= opts.ToRound; round++ {
		clubs := make([]domain.ClubRow, 0, top)
		for _, club := range base.Clubs[:top] {
			gf := valueOf(club.GoalsFor) + round/3 + rng.IntN(2)
			ga := valueOf(club.GoalsAgainst) + round/4 + rng.IntN(2)
			clubs = append(clubs, domain.ClubRow{
				Name:           club.Name,
				Points:         domain.IntPtr(valueOf(club.Points) + round/2 + rng.IntN(3)),
				Played:         domain.IntPtr(round),
				GoalDifference: domain.IntPtr(gf - ga),
				Wins:           club.Wins,
				Draws:          club.Draws,
				Losses:         club.Losses,
				GoalsFor:       domain.IntPtr(gf),
				GoalsAgainst:   domain.IntPtr(ga),
			})
		}

		slices.SortStableFunc(clubs, func(a, b domain.ClubRow) int {
			if c := cmp.Compare(*b.Points, *a.Points); c != 0 {
				return c
			}
			return cmp.Compare(*b.GoalDifference, *a.GoalDifference)
		})
		for i := range clubs {
			clubs[i].Position = domain.IntPtr(i + 1)
		}

		out = append(out, domain.Snapshot{
			Source:       domain.SyntheticSource,
			Season:       season,
			Round:        domain.IntPtr(round),
			Matchday:     domain.IntPtr(round),
			SnapshotType: domain.SnapshotSyntheticEvolution,
			Clubs:        clubs,
		})
	}
	return out
}

func valueOf(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
