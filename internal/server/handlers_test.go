package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestRouter() *gin.Engine {
	router := gin.New()
	v1 := router.Group("/v1")
	RegisterRoutes(v1, NewHandlers("1.2.3"))
	return router
}

func do(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, bytes.NewReader([]byte(body)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const treeJSON = `[
  {"tag": "(0010,0010)", "name": "PatientName", "vr": "PN", "val1": "DOE^JOHN", "val2": "DOE^JANE", "status": "diff"},
  {"tag": "(0008,1111)", "name": "ReferencedSeq", "vr": "SQ", "val1": "", "val2": "", "status": "diff", "children": [
    {"tag": "(0008,1150)", "name": "RefClassUID", "vr": "UI", "val1": "1.2", "val2": "1.2", "status": "match"},
    {"tag": "(0008,1155)", "name": "RefInstanceUID", "vr": "UI", "val1": "", "val2": "9.9", "status": "missing_1"}
  ]}
]`

func TestHandlers_HandleHealth(t *testing.T) {
	w := do(t, setupTestRouter(), http.MethodGet, "/v1/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
}

func TestHandlers_HandleFilter_PrunesAndExpands(t *testing.T) {
	body := `{"tree": ` + treeJSON + `, "predicates": [{"term": "instance"}]}`
	w := do(t, setupTestRouter(), http.MethodPost, "/v1/filter", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Rows []struct {
			Tag       string `json:"tag"`
			HasToggle bool   `json:"has_toggle"`
			Expanded  bool   `json:"expanded"`
			Children  []struct {
				Name          string `json:"name"`
				DirectMatch   bool   `json:"direct_match"`
				Val1Highlight string `json:"val1_highlight"`
				Val2Highlight string `json:"val2_highlight"`
			} `json:"children"`
		} `json:"rows"`
		NoMatches bool `json:"no_matches"`
		Matches   int  `json:"matches"`
		Total     int  `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.False(t, resp.NoMatches)
	assert.Equal(t, 1, resp.Matches)
	assert.Equal(t, 4, resp.Total)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "(0008,1111)", resp.Rows[0].Tag)
	assert.True(t, resp.Rows[0].HasToggle)
	assert.True(t, resp.Rows[0].Expanded)
	require.Len(t, resp.Rows[0].Children, 1)
	assert.Equal(t, "RefInstanceUID", resp.Rows[0].Children[0].Name)
	assert.True(t, resp.Rows[0].Children[0].DirectMatch)
	assert.Equal(t, "none", resp.Rows[0].Children[0].Val1Highlight)
	assert.Equal(t, "added", resp.Rows[0].Children[0].Val2Highlight)
}

func TestHandlers_HandleFilter_NoPredicatesReturnsWholeTreeCollapsed(t *testing.T) {
	w := do(t, setupTestRouter(), http.MethodPost, "/v1/filter", `{"tree": `+treeJSON+`}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp FilterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.NoMatches)
	assert.Len(t, resp.Rows, 2)
	assert.Equal(t, 4, resp.Visible)
	assert.False(t, resp.Rows[1].Expanded)
}

func TestHandlers_HandleFilter_NoMatches(t *testing.T) {
	body := `{"tree": ` + treeJSON + `, "predicates": [{"term": "^zzz$", "is_regex": true}]}`
	w := do(t, setupTestRouter(), http.MethodPost, "/v1/filter", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp FilterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.NoMatches)
	assert.NotNil(t, resp.Rows)
	assert.Empty(t, resp.Rows)
	assert.Contains(t, w.Body.String(), `"rows":[]`)
}

func TestHandlers_HandleFilter_InvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{name: "malformed json", body: `{"tree": [`, code: "INVALID_REQUEST"},
		{name: "missing tree", body: `{"predicates": []}`, code: "INVALID_REQUEST"},
		{name: "empty predicate", body: `{"tree": [], "predicates": [{"term": "  "}]}`, code: "INVALID_PREDICATE"},
		{name: "bad regex", body: `{"tree": [], "predicates": [{"term": "(", "is_regex": true}]}`, code: "INVALID_PREDICATE"},
	}

	router := setupTestRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodPost, "/v1/filter", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandlers_HandlePredicate(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
		label  string
	}{
		{name: "literal", body: `{"term": " Patient "}`, status: http.StatusOK, label: "Patient"},
		{name: "regex", body: `{"term": "^pat", "is_regex": true}`, status: http.StatusOK, label: "/^pat/"},
		{name: "literal paren", body: `{"term": "("}`, status: http.StatusOK, label: "("},
		{name: "empty", body: `{"term": ""}`, status: http.StatusBadRequest, code: "EMPTY_TERM"},
		{name: "bad pattern", body: `{"term": "[a-", "is_regex": true}`, status: http.StatusBadRequest, code: "INVALID_PATTERN"},
	}

	router := setupTestRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodPost, "/v1/predicates", tt.body)
			require.Equal(t, tt.status, w.Code)

			if tt.status != http.StatusOK {
				var resp ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.code, resp.Code)
				return
			}
			var resp PredicateResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.label, resp.Label)
		})
	}
}

func TestGetOrCreateRequestIDEchoesHeader(t *testing.T) {
	router := setupTestRouter()
	req, err := http.NewRequest(http.MethodPost, "/v1/predicates", bytes.NewReader([]byte(`{"term":"a"}`)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func TestGetOrCreateRequestIDGeneratesOne(t *testing.T) {
	w := do(t, setupTestRouter(), http.MethodPost, "/v1/predicates", `{"term":"a"}`)
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}
