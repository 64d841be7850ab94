package models

import "encoding/json"

// BasicResponse is returned by simple status endpoints
type BasicResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ErrorResponse is the error envelope used by every JSON endpoint
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// KeywordsRequest asks for the top keywords of a free-text failure description
type KeywordsRequest struct {
	Text        string `json:"text"`
	MaxKeywords int    `json:"max_keywords,omitempty"`
}

type KeywordsResponse struct {
	Keywords []string `json:"keywords"`
}

type CategorizeRequest struct {
	Text string `json:"text"`
}

type CategorizeResponse struct {
	Category FailureCategory `json:"category"`
}

// NormalizeRequest carries any JSON value stored in a failure field
type NormalizeRequest struct {
	Input json.RawMessage `json:"input"`
}

type NormalizeResponse struct {
	Fragments []string `json:"fragments"`
}

type PatternsRequest struct {
	Texts          []string `json:"texts"`
	MinOccurrences int      `json:"min_occurrences,omitempty"`
}

type PatternsResponse struct {
	Patterns []FailurePattern `json:"patterns"`
}

type TrendsRequest struct {
	Historical []KeywordBucket `json:"historical"`
	Current    []KeywordBucket `json:"current"`
}

type TrendsResponse struct {
	Trends []KeywordTrend `json:"trends"`
}

// CacheInvalidationResponse reports how many cached reports were dropped
type CacheInvalidationResponse struct {
	ClientID string `json:"client_id,omitempty"`
	Removed  int    `json:"removed"`
}
