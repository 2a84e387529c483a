package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tagdiff/internal/diffview"
	"tagdiff/internal/filter"
	"tagdiff/internal/logger"
	"tagdiff/internal/search"
)

// Handlers serves the filtering engine over HTTP. It holds no tree state;
// every request carries its own tree and predicates.
type Handlers struct {
	version string
}

func NewHandlers(version string) *Handlers {
	if version == "" {
		version = "dev"
	}
	return &Handlers{version: version}
}

// HandleFilter handles POST /v1/filter.
//
//	200 OK: FilterResponse
//	400 Bad Request: malformed body or invalid predicate
func (h *Handlers) HandleFilter(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	log := logger.L.With("request_id", requestID, "handler", "HandleFilter")

	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	preds := make([]search.Predicate, 0, len(req.Predicates))
	for _, pr := range req.Predicates {
		p, err := search.New(pr.Term, pr.IsRegex)
		if err != nil {
			log.Warn("Invalid predicate", "term", pr.Term, "regex", pr.IsRegex, "error", err)
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_PREDICATE",
			})
			return
		}
		preds = append(preds, p)
	}

	res := filter.Filter(req.Tree, preds)
	rows := diffview.ProjectAll(res)
	if rows == nil {
		rows = []diffview.Row{}
	}

	log.Info("Filtered tree", "predicates", len(preds), "matches", res.Matches, "visible", res.Visible)
	c.JSON(http.StatusOK, FilterResponse{
		Rows:      rows,
		NoMatches: res.NoMatches(),
		Matches:   res.Matches,
		Visible:   res.Visible,
		Total:     res.Total,
	})
}

// HandlePredicate handles POST /v1/predicates. It validates a single
// predicate so clients can reject input before adding a chip.
func (h *Handlers) HandlePredicate(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	log := logger.L.With("request_id", requestID, "handler", "HandlePredicate")

	var req PredicateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	p, err := search.New(req.Term, req.IsRegex)
	if err != nil {
		code := "INVALID_PATTERN"
		if errors.Is(err, search.ErrEmptyTerm) {
			code = "EMPTY_TERM"
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: code})
		return
	}

	c.JSON(http.StatusOK, PredicateResponse{
		Term:    p.Term,
		IsRegex: p.IsRegex,
		Label:   p.Label(),
	})
}

func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Version: h.version})
}

func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}
