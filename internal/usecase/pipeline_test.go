package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"StandingsScraper/internal/domain"
	"StandingsScraper/internal/history"
	"StandingsScraper/internal/infrastructure/parser"
)

const standingsPage = `<html><body><table>
  <tr><td>1</td><td>Lens</td><td>34</td><td>15</td><td>+13</td><td>11</td><td>1</td><td>3</td><td>25</td><td>12</td></tr>
  <tr><td>2</td><td> </td><td>33</td><td>15</td><td>+17</td><td>10</td><td>3</td><td>2</td><td>30</td><td>13</td></tr>
  <tr><td>3</td><td>Marseille</td><td>30</td><td>14</td><td>+12</td><td>9</td><td>3</td><td>2</td><td>28</td><td>16</td></tr>
</table></body></html>`

const formPage = `<table class="items"><tbody>
  <tr><td>1</td><td></td><td class="hauptlink"><a href="/lens">RC Lens</a></td><td>1</td><td>1</td><td>0</td><td>0</td><td>2:0</td><td>+2</td><td>3</td></tr>
  <tr><td>2</td><td></td><td class="hauptlink"><a href="/om">Marseille</a></td><td>1</td><td>0</td><td>1</td><td>0</td><td>1:1</td><td>0</td><td>1</td></tr>
</tbody></table>`

func formURL(round int) string {
	return fmt.Sprintf("%s?saison_id=2025&min=%d&max=%d", parser.TransfermarktBaseURL, round, round)
}

func oldRound(round int) domain.Snapshot {
	return domain.Snapshot{
		Source:       "old",
		Round:        domain.IntPtr(round),
		SnapshotType: domain.SnapshotMatchday,
		Clubs:        []domain.ClubRow{},
	}
}

func TestScrapeDropsNamelessRows(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{pages: map[string]string{parser.FootMercatoURL: standingsPage}}
	store := &memoryStore{data: domain.SeasonHistory{}}

	plan, err := NewPlan(ScrapeRequest{})
	require.NoError(t, err)

	res, err := newTestPipeline(fetcher, store).Scrape(context.Background(), plan)
	require.NoError(t, err)
	require.Equal(t, "2025/2026", res.Season)
	require.Len(t, res.Snapshots, 1)

	stored := store.data["2025/2026"]
	require.Len(t, stored, 1)
	snap := stored[0]
	require.Len(t, snap.Clubs, 2)
	require.Equal(t, "Lens", snap.Clubs[0].Name)
	require.Equal(t, "Marseille", snap.Clubs[1].Name)
	require.Equal(t, parser.FootMercatoURL, snap.Source)
	require.Equal(t, "2025-11-20T09:00:00.000Z", snap.Date)
	require.Equal(t, 15, *snap.Round)
	require.Equal(t, domain.SnapshotGeneral, snap.SnapshotType)
}

func TestScrapeGeneralTablesAccumulate(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{pages: map[string]string{parser.FootMercatoURL: standingsPage}}
	store := &memoryStore{data: domain.SeasonHistory{}}
	pipeline := newTestPipeline(fetcher, store)

	plan, err := NewPlan(ScrapeRequest{Source: "footmercato"})
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		res, err := pipeline.Scrape(context.Background(), plan)
		require.NoError(t, err)
		require.Equal(t, []history.Action{history.ActionAppend}, res.Actions)
	}
	require.Len(t, store.data["2025/2026"], 2)
}

func TestScrapeFreshSweepResetsSeason(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{pages: map[string]string{
		formURL(1): formPage,
		formURL(2): formPage,
		formURL(3): formPage,
	}}
	store := &memoryStore{data: domain.SeasonHistory{
		"2025/2026": {oldRound(1), oldRound(2), oldRound(5)},
		"2024/2025": {oldRound(34)},
	}}

	plan, err := NewPlan(ScrapeRequest{Source: "transfermarkt", Season: "2025", Min: 1, Max: 3})
	require.NoError(t, err)
	require.True(t, plan.Fresh)

	res, err := newTestPipeline(fetcher, store).Scrape(context.Background(), plan)
	require.NoError(t, err)
	require.Equal(t, []history.Action{history.ActionReset, history.ActionAppend, history.ActionAppend}, res.Actions)
	require.Equal(t, 3, store.saves)

	seq := store.data["2025/2026"]
	require.Len(t, seq, 3)
	for i, snap := range seq {
		require.Equal(t, "transfermarkt", snap.Source)
		require.Equal(t, i+1, *snap.Round)
		require.Equal(t, formURL(i+1), snap.URL)
		require.Equal(t, &domain.RoundWindow{Min: i + 1, Max: i + 1}, snap.Params)
		require.Equal(t, domain.SnapshotMatchday, snap.SnapshotType)
		require.Len(t, snap.Clubs, 2)
	}
	require.Len(t, store.data["2024/2025"], 1)
}

func TestScrapeSingleRoundReplaces(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{pages: map[string]string{formURL(2): formPage}}
	store := &memoryStore{data: domain.SeasonHistory{
		"2025/2026": {oldRound(1), oldRound(2), oldRound(3)},
	}}

	plan, err := NewPlan(ScrapeRequest{Round: 2, Season: "2025/2026"})
	require.NoError(t, err)
	require.False(t, plan.Fresh)

	res, err := newTestPipeline(fetcher, store).Scrape(context.Background(), plan)
	require.NoError(t, err)
	require.Equal(t, []history.Action{history.ActionReplace}, res.Actions)

	seq := store.data["2025/2026"]
	require.Len(t, seq, 3)
	require.Equal(t, 1, *seq[0].Round)
	require.Equal(t, 3, *seq[1].Round)
	require.Equal(t, 2, *seq[2].Round)
	require.Equal(t, "transfermarkt", seq[2].Source)
}

func TestScrapeFetchFailureKeepsEarlierSnapshots(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{pages: map[string]string{formURL(3): formPage, formURL(5): formPage}}
	store := &memoryStore{data: domain.SeasonHistory{}}

	plan, err := NewPlan(ScrapeRequest{Source: "transfermarkt", Season: "2025", Min: 3, Max: 5})
	require.NoError(t, err)

	_, err = newTestPipeline(fetcher, store).Scrape(context.Background(), plan)
	require.ErrorIs(t, err, errUnreachable)
	require.Equal(t, []string{formURL(3), formURL(4)}, fetcher.calls)
	require.Equal(t, 1, store.saves)
	require.Len(t, store.data["2025/2026"], 1)
	require.Equal(t, 3, *store.data["2025/2026"][0].Round)
}

func TestScrapeMalformedHistoryStartsEmpty(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{pages: map[string]string{parser.FootMercatoURL: standingsPage}}
	store := &memoryStore{malformed: true}

	plan, err := NewPlan(ScrapeRequest{})
	require.NoError(t, err)

	_, err = newTestPipeline(fetcher, store).Scrape(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, store.data, 1)
	require.Len(t, store.data["2025/2026"], 1)
}

func TestScrapeUnknownSource(t *testing.T) {
	t.Parallel()

	_, err := newTestPipeline(&fakeFetcher{}, &memoryStore{}).Scrape(context.Background(), Plan{Source: "lequipe"})
	require.Error(t, err)
}
