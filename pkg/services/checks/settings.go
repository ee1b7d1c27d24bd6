package checks

import "time"

// Settings contains the thresholds and probe limits used by the checks.
type Settings struct {
	// LinkTimeout bounds each broken-link HEAD probe (default: 5s)
	LinkTimeout time.Duration
	// ImageTimeout bounds each image-size HEAD probe (default: 10s)
	ImageTimeout time.Duration
	// StylesheetTimeout bounds each linked stylesheet GET (default: 10s)
	StylesheetTimeout time.Duration
	// Concurrency caps in-flight probes per check (default: 8)
	Concurrency int
	// LargeImageBytes is the Content-Length above which an image is large (default: 204800)
	LargeImageBytes int64
	// MaxTables is the table count tolerated before flagging layout tables (default: 5)
	MaxTables int
	// DoctypePrefix is how many leading bytes are searched for the doctype (default: 300)
	DoctypePrefix int
}

// DefaultSettings returns the default check configuration.
func DefaultSettings() Settings {
	return Settings{
		LinkTimeout:       5 * time.Second,
		ImageTimeout:      10 * time.Second,
		StylesheetTimeout: 10 * time.Second,
		Concurrency:       8,
		LargeImageBytes:   200 * 1024,
		MaxTables:         5,
		DoctypePrefix:     300,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.LinkTimeout <= 0 {
		s.LinkTimeout = d.LinkTimeout
	}
	if s.ImageTimeout <= 0 {
		s.ImageTimeout = d.ImageTimeout
	}
	if s.StylesheetTimeout <= 0 {
		s.StylesheetTimeout = d.StylesheetTimeout
	}
	if s.Concurrency <= 0 {
		s.Concurrency = d.Concurrency
	}
	if s.LargeImageBytes <= 0 {
		s.LargeImageBytes = d.LargeImageBytes
	}
	if s.MaxTables <= 0 {
		s.MaxTables = d.MaxTables
	}
	if s.DoctypePrefix <= 0 {
		s.DoctypePrefix = d.DoctypePrefix
	}
	return s
}
