package parser

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"StandingsScraper/internal/config"
	"StandingsScraper/internal/domain"
	"StandingsScraper/internal/extract"
)

const transfermarktPage = `
<table class="items">
  <thead><tr><th>#</th><th></th><th>Club</th><th>M</th><th>V</th><th>N</th><th>D</th><th>Buts</th><th>+/-</th><th>Pts</th></tr></thead>
  <tbody>
    <tr><td>1</td><td><img alt="Lens"></td><td class="hauptlink"><a href="/rc-lens">RC Lens</a></td><td>5</td><td>4</td><td>1</td><td>0</td><td>12:5</td><td>+7</td><td>13</td></tr>
    <tr><td>2</td><td><img alt="PSG"></td><td class="hauptlink"><a href="/psg">Paris Saint-Germain</a></td><td>5</td><td>3</td><td>2</td><td>0</td><td>10:4</td><td>+6</td><td>11</td></tr>
    <tr><td colspan="10">Sélectionner une équipe</td><td>0</td></tr>
  </tbody>
</table>`

func TestTransfermarktURL(t *testing.T) {
	t.Parallel()

	src := NewTransfermarkt("")
	u, err := src.URL(extract.Params{Season: "2025/2026", Min: 3, Max: 3})
	require.NoError(t, err)
	require.Equal(t, TransfermarktBaseURL+"?saison_id=2025&min=3&max=3", u)

	parsed, err := url.Parse(u)
	require.NoError(t, err)
	require.Equal(t, "www.transfermarkt.fr", parsed.Host)

	_, err = src.URL(extract.Params{Season: "soon", Min: 1, Max: 1})
	require.Error(t, err)
	_, err = src.URL(extract.Params{Season: "2025", Min: 4, Max: 2})
	require.Error(t, err)
}

func TestTransfermarktTable(t *testing.T) {
	t.Parallel()

	params := extract.Params{Season: "2025", Min: 5, Max: 5}
	res := NewTransfermarkt("").Extract(extract.NewDocument([]byte(transfermarktPage)), params)

	require.Equal(t, "table", res.Strategy)
	require.Equal(t, "2025/2026", res.Season)
	require.Equal(t, domain.SnapshotMatchday, res.SnapshotType)
	require.Equal(t, 5, *res.Round)
	require.Equal(t, &domain.RoundWindow{Min: 5, Max: 5}, res.Window)
	require.Len(t, res.Clubs, 2)

	lens := res.Clubs[0]
	require.Equal(t, "RC Lens", lens.Name)
	require.Equal(t, 1, *lens.Position)
	require.Equal(t, 5, *lens.Played)
	require.Equal(t, 4, *lens.Wins)
	require.Equal(t, 1, *lens.Draws)
	require.Equal(t, 0, *lens.Losses)
	require.Equal(t, 12, *lens.GoalsFor)
	require.Equal(t, 5, *lens.GoalsAgainst)
	require.Equal(t, 7, *lens.GoalDifference)
	require.Equal(t, 13, *lens.Points)
}

func TestTransfermarktSparseRows(t *testing.T) {
	t.Parallel()

	page := `<table>
	  <tr><td>1.</td><td>1. Olympique Lyonnais</td><td>9</td></tr>
	  <tr><td>2.</td><td>Logo Nice</td><td>7</td></tr>
	</table>`

	res := NewTransfermarkt("").Extract(extract.NewDocument([]byte(page)), extract.Params{Season: "2025", Min: 1, Max: 3})
	require.Equal(t, domain.SnapshotRoundStandings, res.SnapshotType)
	require.Len(t, res.Clubs, 2)
	require.Equal(t, "Olympique Lyonnais", res.Clubs[0].Name)
	require.Equal(t, 1, *res.Clubs[0].Position)
	require.Equal(t, 9, *res.Clubs[0].Points)
	require.Nil(t, res.Clubs[0].Played)
	require.Equal(t, "Nice", res.Clubs[1].Name)
}

func TestTransfermarktMarkupFallback(t *testing.T) {
	t.Parallel()

	// Rows without an enclosing table are dropped by the HTML parser; only the
	// raw markup still carries them.
	page := `<tr class="odd"><td class="rank"><span>1</span></td><td><a href="/lens">RC Lens</a></td><td>13</td></tr>` +
		`<tr class="even"><td class="rank"><span>2</span></td><td><a href="/psg">PSG</a></td><td>11</td></tr>`

	res := NewTransfermarkt("").Extract(extract.NewDocument([]byte(page)), extract.Params{Season: "2025", Min: 2, Max: 2, Final: true})
	require.Equal(t, "pattern", res.Strategy)
	require.Equal(t, domain.SnapshotFinalStandings, res.SnapshotType)
	require.Len(t, res.Clubs, 2)
	require.Equal(t, "RC Lens", res.Clubs[0].Name)
	require.Equal(t, 13, *res.Clubs[0].Points)
	require.Equal(t, 2, *res.Clubs[1].Position)
}

func TestSourcesResolve(t *testing.T) {
	t.Parallel()

	sources := NewSources(config.SourcesConfig{
		FootMercato: config.FootMercatoConfig{Views: map[string]string{"Home": "https://example.org/home"}},
	})

	ex, err := sources.Resolve("FootMercato")
	require.NoError(t, err)
	require.Equal(t, extract.SourceFootMercato, ex.Name())

	u, err := ex.URL(extract.Params{View: domain.SnapshotHome})
	require.NoError(t, err)
	require.Equal(t, "https://example.org/home", u)

	ex, err = sources.Resolve("transfermarkt")
	require.NoError(t, err)
	require.Equal(t, extract.SourceTransfermarkt, ex.Name())

	_, err = sources.Resolve("lequipe")
	require.Error(t, err)
}
