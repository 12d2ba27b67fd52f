package usecase

import (
	"fmt"
	"strings"

	"StandingsScraper/internal/domain"
	"StandingsScraper/internal/extract"
)

// ScrapeRequest is the command-line view of a scrape run.
type ScrapeRequest struct {
	Source string
	Season string
	// Round selects a single transfermarkt matchday; zero when absent.
	Round      int
	Min        int
	Max        int
	Views      []domain.SnapshotType
	Cumulative bool
	Final      bool
	Fresh      bool
}

// Plan is the ordered list of fetches of one run against one season.
type Plan struct {
	Source  string
	Season  string
	Windows []extract.Params
	// Fresh discards the season's history before the first snapshot.
	Fresh bool
}

// NewPlan resolves defaults: no source and no round means the footmercato
// general table; a round alone means that transfermarkt matchday. A
// transfermarkt sweep from round 1 over several rounds starts fresh.
func NewPlan(req ScrapeRequest) (Plan, error) {
	source := strings.ToLower(strings.TrimSpace(req.Source))
	if source == "" {
		source = extract.SourceFootMercato
		if req.Round > 0 {
			source = extract.SourceTransfermarkt
		}
	}

	plan := Plan{
		Source: source,
		Season: domain.NormalizeSeason(req.Season),
		Fresh:  req.Fresh,
	}

	switch source {
	case extract.SourceFootMercato:
		views := req.Views
		if len(views) == 0 {
			views = []domain.SnapshotType{domain.SnapshotGeneral}
		}
		for _, view := range views {
			plan.Windows = append(plan.Windows, extract.Params{Season: plan.Season, View: view})
		}
		return plan, nil

	case extract.SourceTransfermarkt:
		minRound, maxRound := req.Min, req.Max
		if req.Round > 0 && minRound == 0 && maxRound == 0 {
			minRound, maxRound = req.Round, req.Round
		}
		if minRound <= 0 {
			minRound = 1
		}
		if maxRound <= 0 {
			maxRound = minRound
		}
		if maxRound < minRound {
			return Plan{}, fmt.Errorf("invalid round range %d..%d", minRound, maxRound)
		}

		for r := minRound; r <= maxRound; r++ {
			window := extract.Params{Season: plan.Season, Min: r, Max: r}
			if req.Cumulative {
				window.Min = 1
			}
			window.Final = req.Final && r == maxRound
			plan.Windows = append(plan.Windows, window)
		}
		if minRound == 1 && maxRound > minRound {
			plan.Fresh = true
		}
		return plan, nil

	default:
		return Plan{}, fmt.Errorf("source %s is not supported", req.Source)
	}
}
