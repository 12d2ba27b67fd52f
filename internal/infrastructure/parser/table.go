package parser

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"StandingsScraper/internal/normalize"
)

var (
	cellTagExpr  = regexp.MustCompile(`(?i)</?t[dh][^>]*>`)
	rowTagExpr   = regexp.MustCompile(`(?i)<tr[^>]*>`)
	anyTagExpr   = regexp.MustCompile(`<[^>]+>`)
	pipeRunExpr  = regexp.MustCompile(`\|[ \t]*(?:\|[ \t]*)+`)
	goalsPairExp = regexp.MustCompile(`^\s*(\d+)\s*:\s*(\d+)\s*$`)
)

// cellTexts returns the trimmed text of every td in the row.
func cellTexts(tr *goquery.Selection) []string {
	tds := tr.Find("td")
	cells := make([]string, 0, tds.Length())
	tds.Each(func(_ int, td *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(td.Text()))
	})
	return cells
}

// cellAt returns cells[i] or "" when the row is shorter.
func cellAt(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}

// flattenMarkup rewrites table markup into pipe-delimited lines so the
// pipe-shaped patterns also match sources that drifted away from text tables.
func flattenMarkup(raw string) string {
	out := rowTagExpr.ReplaceAllString(raw, "\n")
	out = cellTagExpr.ReplaceAllString(out, "|")
	out = anyTagExpr.ReplaceAllString(out, " ")
	return pipeRunExpr.ReplaceAllString(out, "|")
}

// goalsPair splits a "23:10" cell into goals for and against.
func goalsPair(cell string) (*int, *int, bool) {
	m := goalsPairExp.FindStringSubmatch(cell)
	if m == nil {
		return nil, nil, false
	}
	return normalize.ParseIntSafe(m[1]), normalize.ParseIntSafe(m[2]), true
}
