package parser

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"StandingsScraper/internal/domain"
	"StandingsScraper/internal/extract"
	"StandingsScraper/internal/normalize"
)

// TransfermarktBaseURL is the Ligue 1 form table, scoped by saison_id/min/max.
const TransfermarktBaseURL = "https://www.transfermarkt.fr/ligue-1/formtabelle/wettbewerb/FR1"

var (
	clubNameExpr   = regexp.MustCompile(`[A-Za-zÀ-ÿ\- ]{3,}`)
	rankPrefixExpr = regexp.MustCompile(`^\d+\.?\s*`)

	// <tr><td><span>1</span></td> ... <a>Club</a> ... <td>34</td>
	markupRowExpr = regexp.MustCompile(`<tr[^>]*>\s*<td[^>]*>\s*(?:<span[^>]*>\s*)?(\d+)[^<]*<[^>]*>\s*(?:.*?)<a[^>]*>([^<]+)</a>(?:[\s\S]*?)<td[^>]*>\s*(\d+)\s*</td>`)
)

// Transfermarkt extracts round-window standings.
type Transfermarkt struct {
	baseURL string
}

var _ extract.Extractor = (*Transfermarkt)(nil)

// NewTransfermarkt wires the form-table base URL; empty means the default.
func NewTransfermarkt(baseURL string) *Transfermarkt {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = TransfermarktBaseURL
	}
	return &Transfermarkt{baseURL: baseURL}
}

// Name identifies the source.
func (t *Transfermarkt) Name() string {
	return extract.SourceTransfermarkt
}

// URL builds the form-table address for the season and round window.
func (t *Transfermarkt) URL(params extract.Params) (string, error) {
	year, ok := domain.SeasonStartYear(params.Season)
	if !ok {
		return "", fmt.Errorf("transfermarkt needs a season year, got %q", params.Season)
	}
	if params.Min < 1 || params.Max < params.Min {
		return "", fmt.Errorf("invalid round window %d..%d", params.Min, params.Max)
	}
	return fmt.Sprintf("%s?saison_id=%s&min=%s&max=%s",
		t.baseURL,
		url.QueryEscape(strconv.Itoa(year)),
		url.QueryEscape(strconv.Itoa(params.Min)),
		url.QueryEscape(strconv.Itoa(params.Max)),
	), nil
}

// Extract runs the table strategy, then the markup-pattern fallback.
func (t *Transfermarkt) Extract(doc *extract.Document, params extract.Params) extract.Result {
	clubs, used := extract.Run(doc, params,
		extract.Strategy{Name: "table", Extract: transfermarktTable},
		extract.Strategy{Name: "pattern", Extract: transfermarktPattern},
	)

	u, _ := t.URL(params)
	round := params.Max
	return extract.Result{
		Season:       domain.NormalizeSeason(params.Season),
		Round:        &round,
		URL:          u,
		Window:       &domain.RoundWindow{Min: params.Min, Max: params.Max},
		SnapshotType: windowType(params),
		Strategy:     used,
		Clubs:        clubs,
	}
}

func windowType(params extract.Params) domain.SnapshotType {
	switch {
	case params.Final:
		return domain.SnapshotFinalStandings
	case params.Min == 1 && params.Max > 1:
		return domain.SnapshotRoundStandings
	default:
		return domain.SnapshotMatchday
	}
}

func transfermarktTable(doc *extract.Document, _ extract.Params) []domain.ClubRow {
	html, ok := doc.HTML()
	if !ok {
		return nil
	}

	table := html.Find("table.items").First()
	if table.Length() == 0 {
		table = html.Find("table").First()
	}
	if table.Length() == 0 {
		return nil
	}

	var clubs []domain.ClubRow
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := cellTexts(tr)
		if len(cells) < 2 {
			return
		}

		nameAt, name := -1, ""
		if link := tr.Find("td.hauptlink a").First(); link.Length() > 0 {
			nameAt = tr.Find("td").IndexOfSelection(link.Closest("td"))
			name = link.Text()
		}
		if nameAt < 0 {
			for i, c := range cells {
				if clubNameExpr.MatchString(c) {
					nameAt, name = i, c
					break
				}
			}
		}
		if nameAt < 0 {
			return
		}

		row := rowFromCells(cells, nameAt)
		row.Name = transfermarktName(name)
		clubs = append(clubs, row)
	})
	return clubs
}

// rowFromCells maps the numeric cells around the name. The full layout is
// played, wins, draws, losses, "gf:ga", goal difference, points; anything
// else keeps only the first numeric cell as position and the last as points.
func rowFromCells(cells []string, nameAt int) domain.ClubRow {
	var row domain.ClubRow

	for i := 0; i < len(cells); i++ {
		if i == nameAt {
			continue
		}
		if n := normalize.ParseIntSafe(cells[i]); n != nil {
			row.Position = n
			break
		}
	}
	for i := len(cells) - 1; i >= 0; i-- {
		if i == nameAt {
			continue
		}
		if n := normalize.ParseIntSafe(cells[i]); n != nil {
			row.Points = n
			break
		}
	}

	var stats []string
	for _, c := range cells[nameAt+1:] {
		if normalize.ParseIntSafe(c) != nil {
			stats = append(stats, c)
		}
	}
	if len(stats) < 7 {
		return row
	}
	stats = stats[len(stats)-7:]
	gf, ga, ok := goalsPair(stats[4])
	if !ok {
		return row
	}

	row.Played = normalize.ParseIntSafe(stats[0])
	row.Wins = normalize.ParseIntSafe(stats[1])
	row.Draws = normalize.ParseIntSafe(stats[2])
	row.Losses = normalize.ParseIntSafe(stats[3])
	row.GoalsFor, row.GoalsAgainst = gf, ga
	row.GoalDifference = normalize.ParseIntSafe(stats[5])
	row.Points = normalize.ParseIntSafe(stats[6])
	return row
}

func transfermarktPattern(doc *extract.Document, _ extract.Params) []domain.ClubRow {
	var clubs []domain.ClubRow
	for _, m := range markupRowExpr.FindAllStringSubmatch(doc.Raw(), -1) {
		clubs = append(clubs, domain.ClubRow{
			Position: normalize.ParseIntSafe(m[1]),
			Name:     transfermarktName(m[2]),
			Points:   normalize.ParseIntSafe(m[3]),
		})
	}
	return clubs
}

// transfermarktName cleans a club cell and drops a leading rank ("1. PSG").
func transfermarktName(text string) string {
	return normalize.CleanName(rankPrefixExpr.ReplaceAllString(normalize.CleanName(text), ""))
}
