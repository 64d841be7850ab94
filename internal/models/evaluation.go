package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// EvaluationRecord - Database Entity (matches call_evaluations table)
type EvaluationRecord struct {
	ID             string          `json:"id"`
	CallID         string          `json:"call_id"`
	ClientID       string          `json:"client_id"`
	AgentName      string          `json:"agent_name,omitempty"`
	EvaluatedAt    time.Time       `json:"evaluated_at"`
	FailureReasons json.RawMessage `json:"failure_reasons,omitempty"` // JSONB column, any shape
	Notes          string          `json:"notes,omitempty"`
	QualityScore   *float64        `json:"quality_score,omitempty"`
}

// HasFailureData reports whether the record carries any failure text
func (e *EvaluationRecord) HasFailureData() bool {
	raw := strings.TrimSpace(string(e.FailureReasons))
	if raw != "" && raw != "null" && raw != `""` && raw != "[]" && raw != "{}" {
		return true
	}
	return strings.TrimSpace(e.Notes) != ""
}

// ErrInvalidRange is returned when a date range cannot be used for a query
var ErrInvalidRange = errors.New("invalid date range")

// DateRange is a half-open [Start, End) time window
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Validate checks that the range is non-empty
func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidRange)
	}
	if !r.Start.Before(r.End) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidRange)
	}
	return nil
}

// Duration returns the length of the window
func (r DateRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Previous returns the window of equal length immediately before r
func (r DateRange) Previous() DateRange {
	return DateRange{Start: r.Start.Add(-r.Duration()), End: r.Start}
}

// ParseDateRange parses ISO 8601 timestamps or plain YYYY-MM-DD dates.
// A plain end date is inclusive, so the window extends to the following midnight.
func ParseDateRange(start, end string) (DateRange, error) {
	s, _, err := parseTimestamp(start)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: start: %v", ErrInvalidRange, err)
	}
	e, dateOnly, err := parseTimestamp(end)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: end: %v", ErrInvalidRange, err)
	}
	if dateOnly {
		e = e.AddDate(0, 0, 1)
	}

	r := DateRange{Start: s, End: e}
	return r, r.Validate()
}

func parseTimestamp(value string) (time.Time, bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false, errors.New("value is required")
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), false, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.UTC(), true, nil
	}
	return time.Time{}, false, fmt.Errorf("unrecognized timestamp %q", value)
}

// TrailingWindow returns the window covering the last days calendar days (UTC), today included
func TrailingWindow(now time.Time, days int) DateRange {
	if days < 1 {
		days = 1
	}
	y, m, d := now.UTC().Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return DateRange{Start: end.AddDate(0, 0, -days), End: end}
}
