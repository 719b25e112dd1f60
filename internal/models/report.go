package models

import "encoding/json"

// Report is a cached AI-generated summary for a date range. At most one
// report per distinct (StartDate, EndDate) pair is retained; a newer save
// replaces the older one. Data is kept opaque: the summarizer's output is
// produced outside this service.
type Report struct {
	StartDate string          `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string          `json:"endDate" validate:"required,datetime=2006-01-02"`
	CreatedAt int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data" validate:"required"`
}
