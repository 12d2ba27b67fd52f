package parser

import (
	"fmt"
	"strings"

	"StandingsScraper/internal/config"
	"StandingsScraper/internal/domain"
	"StandingsScraper/internal/extract"
)

// Sources is the closed set of supported upstream sources.
type Sources struct {
	FootMercato   *FootMercato
	Transfermarkt *Transfermarkt
}

// NewSources builds both extractors from configuration.
func NewSources(cfg config.SourcesConfig) Sources {
	views := make(map[domain.SnapshotType]string, len(cfg.FootMercato.Views))
	for view, u := range cfg.FootMercato.Views {
		views[domain.SnapshotType(strings.ToLower(view))] = u
	}
	return Sources{
		FootMercato:   NewFootMercato(views),
		Transfermarkt: NewTransfermarkt(cfg.Transfermarkt.BaseURL),
	}
}

// Resolve returns the extractor registered under name.
func (s Sources) Resolve(name string) (extract.Extractor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case extract.SourceFootMercato:
		return s.FootMercato, nil
	case extract.SourceTransfermarkt:
		return s.Transfermarkt, nil
	default:
		return nil, fmt.Errorf("source %s is not supported", name)
	}
}
