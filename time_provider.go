package quakeagent

import "time"

// TimeProvider supplies the current time to the prompt template, so the
// model can resolve date-relative questions ("last month"). Inject a fixed
// provider in tests to keep prompt rendering deterministic.
//
// Template access is via the .Time field:
//
//	Today's date is {{.Time.Today}}.
type TimeProvider interface {
	// Now returns the current time.
	Now() time.Time

	// Today returns today's date as YYYY-MM-DD.
	//
	// Template: {{.Time.Today}}
	// Output: 2025-02-15
	Today() string

	// Format returns the current time formatted with the given Go layout.
	//
	// Template: {{.Time.Format "Monday, January 2, 2006"}}
	// Output: Saturday, February 15, 2025
	Format(layout string) string
}

// DefaultTimeProvider is the standard TimeProvider using the system clock.
type DefaultTimeProvider struct{}

// NewDefaultTimeProvider creates a new DefaultTimeProvider.
func NewDefaultTimeProvider() *DefaultTimeProvider {
	return &DefaultTimeProvider{}
}

// Now returns the current system time.
func (p *DefaultTimeProvider) Now() time.Time {
	return time.Now()
}

// Today returns today's date as YYYY-MM-DD.
func (p *DefaultTimeProvider) Today() string {
	return p.Now().Format("2006-01-02")
}

// Format returns the current time formatted with the given layout.
func (p *DefaultTimeProvider) Format(layout string) string {
	return p.Now().Format(layout)
}

// FixedTimeProvider is a TimeProvider pinned to a single instant.
type FixedTimeProvider struct {
	// Instant is the time every method reports.
	Instant time.Time
}

// Now returns the pinned instant.
func (p *FixedTimeProvider) Now() time.Time {
	return p.Instant
}

// Today returns the pinned date as YYYY-MM-DD.
func (p *FixedTimeProvider) Today() string {
	return p.Instant.Format("2006-01-02")
}

// Format returns the pinned instant formatted with the given layout.
func (p *FixedTimeProvider) Format(layout string) string {
	return p.Instant.Format(layout)
}
