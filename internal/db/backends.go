package db

import "github.com/ashkan-3rdlaw/pdf-scan/internal/scanner"

// Backends bundles one concrete implementation of each repository plus the
// scanner. It is built once at startup by NewBackends and passed explicitly
// to every consumer; there is no package-level instance. Implementations are
// responsible for their own thread-safety, so a single Backends value is
// shared by all concurrent requests.
type Backends struct {
	Documents DocumentRepository
	Findings  FindingRepository
	Metrics   MetricsRepository
	Scanner   scanner.Scanner

	closer func() error
}

// NewBackends binds concrete repository and scanner instances together.
// closer may be nil for compositions with nothing to release.
func NewBackends(docs DocumentRepository, findings FindingRepository, metrics MetricsRepository, sc scanner.Scanner, closer func() error) *Backends {
	return &Backends{
		Documents: docs,
		Findings:  findings,
		Metrics:   metrics,
		Scanner:   sc,
		closer:    closer,
	}
}

// Close releases any underlying connections. Safe to call on the in-memory
// composition, where it is a no-op.
func (b *Backends) Close() error {
	if b.closer != nil {
		return b.closer()
	}
	return nil
}
