package parser

import (
	"fmt"
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"StandingsScraper/internal/domain"
	"StandingsScraper/internal/extract"
	"StandingsScraper/internal/normalize"
)

// FootMercatoURL is the general standings page.
const FootMercatoURL = "https://www.footmercato.net/france/ligue-1/classement"

// footMercatoColumns is the minimum cell count of a data row:
// pos, club, pts, played, gd, w, d, l, gf and an optional ga.
const footMercatoColumns = 9

var (
	seasonExpr = regexp.MustCompile(`(\d{4}/\d{4})`)

	// | 1 | Logo Lens Lens | 34 | 15 | +13 | 11 | 1 | 3 | 25 | 12 |
	pipeRowExpr = regexp.MustCompile(`\|\s*(\d+)\s*\|\s*([^|]+)\|\s*(\d+)\s*\|\s*(\d+)\s*\|\s*([+\-−–]?\d+)\s*\|\s*(\d+)\s*\|\s*(\d+)\s*\|\s*(\d+)\s*\|\s*(\d+)\s*\|\s*(\d+)\s*\|`)
)

// FootMercato extracts whole-table standings (general, home, away views).
type FootMercato struct {
	views map[domain.SnapshotType]string
}

var _ extract.Extractor = (*FootMercato)(nil)

// NewFootMercato wires view URLs; the general view defaults to FootMercatoURL.
func NewFootMercato(views map[domain.SnapshotType]string) *FootMercato {
	resolved := map[domain.SnapshotType]string{domain.SnapshotGeneral: FootMercatoURL}
	for view, u := range views {
		if u != "" {
			resolved[view] = u
		}
	}
	return &FootMercato{views: resolved}
}

// Name identifies the source.
func (f *FootMercato) Name() string {
	return extract.SourceFootMercato
}

// URL returns the page of the requested view.
func (f *FootMercato) URL(params extract.Params) (string, error) {
	view := viewOrGeneral(params.View)
	u, ok := f.views[view]
	if !ok {
		return "", fmt.Errorf("footmercato has no %s view configured", view)
	}
	return u, nil
}

// Extract runs the table strategy, then the pipe-pattern fallback.
func (f *FootMercato) Extract(doc *extract.Document, params extract.Params) extract.Result {
	clubs, used := extract.Run(doc, params,
		extract.Strategy{Name: "table", Extract: footMercatoTable},
		extract.Strategy{Name: "pattern", Extract: footMercatoPattern},
	)

	u, _ := f.URL(params)
	return extract.Result{
		Season:       detectSeason(doc),
		URL:          u,
		SnapshotType: viewOrGeneral(params.View),
		Strategy:     used,
		Clubs:        clubs,
	}
}

func footMercatoTable(doc *extract.Document, _ extract.Params) []domain.ClubRow {
	html, ok := doc.HTML()
	if !ok {
		return nil
	}

	table := mostRowsTable(html, footMercatoColumns)
	if table == nil {
		return nil
	}

	var clubs []domain.ClubRow
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := cellTexts(tr)
		if len(cells) < footMercatoColumns {
			return
		}
		clubs = append(clubs, domain.ClubRow{
			Position:       normalize.ParseIntSafe(cells[0]),
			Name:           normalize.CleanName(cells[1]),
			Points:         normalize.ParseIntSafe(cells[2]),
			Played:         normalize.ParseIntSafe(cells[3]),
			GoalDifference: normalize.ParseIntSafe(cells[4]),
			Wins:           normalize.ParseIntSafe(cells[5]),
			Draws:          normalize.ParseIntSafe(cells[6]),
			Losses:         normalize.ParseIntSafe(cells[7]),
			GoalsFor:       normalize.ParseIntSafe(cells[8]),
			GoalsAgainst:   normalize.ParseIntSafe(cellAt(cells, 9)),
		})
	})
	return clubs
}

func footMercatoPattern(doc *extract.Document, _ extract.Params) []domain.ClubRow {
	raw := doc.Raw()
	if clubs := pipeRows(raw); len(clubs) > 0 {
		return clubs
	}
	return pipeRows(flattenMarkup(raw))
}

func pipeRows(text string) []domain.ClubRow {
	var clubs []domain.ClubRow
	for _, m := range pipeRowExpr.FindAllStringSubmatch(text, -1) {
		clubs = append(clubs, domain.ClubRow{
			Position:       normalize.ParseIntSafe(m[1]),
			Name:           normalize.CleanName(m[2]),
			Points:         normalize.ParseIntSafe(m[3]),
			Played:         normalize.ParseIntSafe(m[4]),
			GoalDifference: normalize.ParseIntSafe(m[5]),
			Wins:           normalize.ParseIntSafe(m[6]),
			Draws:          normalize.ParseIntSafe(m[7]),
			Losses:         normalize.ParseIntSafe(m[8]),
			GoalsFor:       normalize.ParseIntSafe(m[9]),
			GoalsAgainst:   normalize.ParseIntSafe(m[10]),
		})
	}
	return clubs
}

// mostRowsTable picks the table with the most rows of at least minCells
// cells; the earliest wins a tie. nil when no table has such a row.
func mostRowsTable(html *goquery.Document, minCells int) *goquery.Selection {
	var (
		best     *goquery.Selection
		bestRows int
	)
	html.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := 0
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			if tr.Find("td").Length() >= minCells {
				rows++
			}
		})
		if rows > bestRows {
			best, bestRows = table, rows
		}
	})
	return best
}

func detectSeason(doc *extract.Document) string {
	text := doc.Raw()
	if html, ok := doc.HTML(); ok {
		text = html.Find("body").Text()
	}
	if m := seasonExpr.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

func viewOrGeneral(view domain.SnapshotType) domain.SnapshotType {
	if view == "" {
		return domain.SnapshotGeneral
	}
	return view
}
