// Package extract defines the extractor contract shared by the standings
// sources and the ordered strategy chain they run.
package extract

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"

	"StandingsScraper/internal/domain"
	"StandingsScraper/internal/normalize"
)

// Source identifiers accepted on the command line and stored in snapshots.
const (
	SourceFootMercato   = "footmercato"
	SourceTransfermarkt = "transfermarkt"
)

// Params carries the per-request extraction parameters.
type Params struct {
	Season string
	// Min and Max bound the matchday window; both zero for whole-table views.
	Min   int
	Max   int
	View  domain.SnapshotType
	Final bool
}

// Result is the extractor output handed to the snapshot builder.
type Result struct {
	Season       string
	Round        *int
	URL          string
	Window       *domain.RoundWindow
	SnapshotType domain.SnapshotType
	Strategy     string
	Clubs        []domain.ClubRow
}

// Extractor is implemented by each upstream source.
type Extractor interface {
	Name() string
	URL(params Params) (string, error)
	Extract(doc *Document, params Params) Result
}

// Document wraps the raw markup and parses it lazily.
type Document struct {
	raw    []byte
	html   *goquery.Document
	parsed bool
}

// NewDocument wraps fetched markup.
func NewDocument(raw []byte) *Document {
	return &Document{raw: raw}
}

// Raw returns the unparsed markup.
func (d *Document) Raw() string {
	return string(d.raw)
}

// HTML returns the parsed tree, ok=false when the markup cannot be parsed.
func (d *Document) HTML() (*goquery.Document, bool) {
	if !d.parsed {
		d.parsed = true
		if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(d.raw)); err == nil {
			d.html = doc
		}
	}
	return d.html, d.html != nil
}

// Strategy is one way of turning a document into rows.
type Strategy struct {
	Name    string
	Extract func(doc *Document, params Params) []domain.ClubRow
}

// Run tries strategies in order and returns the rows of the first one that
// yields at least one valid row, together with its name. Zero rows from every
// strategy is a valid outcome and returns an empty, non-nil slice.
func Run(doc *Document, params Params, strategies ...Strategy) ([]domain.ClubRow, string) {
	for _, strategy := range strategies {
		rows := Sanitize(strategy.Extract(doc, params))
		if len(rows) > 0 {
			return rows, strategy.Name
		}
	}
	return []domain.ClubRow{}, ""
}

// Sanitize drops rows whose name is empty or a UI placeholder.
func Sanitize(rows []domain.ClubRow) []domain.ClubRow {
	kept := make([]domain.ClubRow, 0, len(rows))
	for _, row := range rows {
		if !normalize.ValidName(row.Name) {
			continue
		}
		kept = append(kept, row)
	}
	return kept
}
