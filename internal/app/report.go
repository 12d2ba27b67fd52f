package app

import (
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"StandingsScraper/internal/usecase"
)

// RenderSummaries writes one table row per season.
func RenderSummaries(w io.Writer, summaries []usecase.SeasonSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Season", "Snapshots", "Valid", "Latest clubs", "Leader", "Points", "Last update"})

	for _, s := range summaries {
		points := "-"
		if s.LeaderPoints != nil {
			points = strconv.Itoa(*s.LeaderPoints)
		}
		leader := s.Leader
		if leader == "" {
			leader = "-"
		}
		updated := "-"
		if !s.LastUpdated.IsZero() {
			updated = s.LastUpdated.Format(time.DateOnly)
		}
		t.AppendRow(table.Row{s.Season, s.Snapshots, s.Valid, s.LatestClubs, leader, points, updated})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}
