package server

import (
	"tagdiff/internal/difftree"
	"tagdiff/internal/diffview"
)

// PredicateRequest is one predicate as sent by a client.
type PredicateRequest struct {
	Term    string `json:"term"`
	IsRegex bool   `json:"is_regex"`
}

// FilterRequest is the body of POST /v1/filter.
type FilterRequest struct {
	Tree       []difftree.Node    `json:"tree" binding:"required"`
	Predicates []PredicateRequest `json:"predicates"`
}

// FilterResponse mirrors export.Document so CLI and API output agree.
type FilterResponse struct {
	Rows      []diffview.Row `json:"rows"`
	NoMatches bool           `json:"no_matches"`
	Matches   int            `json:"matches"`
	Visible   int            `json:"visible"`
	Total     int            `json:"total"`
}

type PredicateResponse struct {
	Term    string `json:"term"`
	IsRegex bool   `json:"is_regex"`
	Label   string `json:"label"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
