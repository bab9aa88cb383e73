package app

import (
	"context"
	"fmt"
	"time"

	"tour_service/internal/domain"
)

const (
	probeTimeout         = 5 * time.Second
	maxListedCollections = 10
	maxErrText           = 50
)

// DiagnosticsReport is a best-effort snapshot of the datastore wiring. Failures
// are folded into the status strings.
type DiagnosticsReport struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      *string  `json:"database_url" nullable:"true"`
	DatabaseName     *string  `json:"database_name" nullable:"true"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

type DiagnosticsService struct {
	store  domain.DocumentStore
	urlSet bool
}

// NewDiagnosticsService: urlSet reports whether a connection string was configured.
func NewDiagnosticsService(st domain.DocumentStore, urlSet bool) *DiagnosticsService {
	return &DiagnosticsService{store: st, urlSet: urlSet}
}

func (s *DiagnosticsService) Report(ctx context.Context) (r DiagnosticsReport) {
	r = DiagnosticsReport{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}
	defer func() {
		if p := recover(); p != nil {
			r.Database = "❌ Error: " + truncate(fmt.Sprint(p), maxErrText)
		}
	}()

	if s.store == nil {
		r.Database = "⚠️  Available but not initialized"
		return r
	}

	r.Database = "✅ Available"
	url := "❌ Not Set"
	if s.urlSet {
		url = "✅ Set"
	}
	r.DatabaseURL = &url
	name := s.store.Name()
	if name == "" {
		name = "✅ Connected"
	}
	r.DatabaseName = &name
	r.ConnectionStatus = "Connected"

	pctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	names, err := s.store.ListCollectionNames(pctx)
	if err != nil {
		r.Database = "⚠️  Connected but Error: " + truncate(err.Error(), maxErrText)
		return r
	}
	if len(names) > maxListedCollections {
		names = names[:maxListedCollections]
	}
	if names != nil {
		r.Collections = names
	}
	r.Database = "✅ Connected & Working"
	return r
}

// truncate keeps the first n characters (not bytes).
func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n])
}
