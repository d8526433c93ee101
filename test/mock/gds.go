package mock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
)

// GDS paths served by the fake.
const (
	GDSTokenPath   = "/Account/token"
	GDSHistoryPath = "/FlightSearchHistory/AddSearch"
	GDSSearchPath  = "/FlightSearch/RoundTripRemake"
	GDSDetailPath  = "/FlightPricing/QuotationDetail"
)

// GDS is an httptest server speaking the wholesaler API. It issues
// sequential bearer tokens, accepts only the latest one and answers search
// and detail calls with canned payloads.
type GDS struct {
	Server *httptest.Server

	mu      sync.Mutex
	search  []byte
	details map[string][]byte
	issued  int
	current string
	reject  int
	fail    int
	calls   map[string]int
	headers http.Header
}

// NewGDS starts a fake GDS. details maps quotation ids to detail payloads;
// unknown ids answer 404.
func NewGDS(search []byte, details map[string][]byte) *GDS {
	g := &GDS{
		search:  search,
		details: details,
		calls:   map[string]int{},
	}
	g.Server = httptest.NewServer(http.HandlerFunc(g.serve))
	return g
}

// URL returns the base URL of the fake.
func (g *GDS) URL() string {
	return g.Server.URL
}

// Close shuts the server down.
func (g *GDS) Close() {
	g.Server.Close()
}

// RejectTokens answers the next n authenticated calls with 401.
func (g *GDS) RejectTokens(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reject = n
}

// FailNext answers the next n search or detail calls with 503.
func (g *GDS) FailNext(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fail = n
}

// Calls returns how many requests path received.
func (g *GDS) Calls(path string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[path]
}

// TokensIssued returns how many tokens were handed out.
func (g *GDS) TokensIssued() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.issued
}

// LastHeader returns a header of the last authenticated request.
func (g *GDS) LastHeader(name string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.headers == nil {
		return ""
	}
	return g.headers.Get(name)
}

func (g *GDS) serve(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls[r.URL.Path]++

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if r.URL.Path == GDSTokenPath {
		g.issueToken(w, r)
		return
	}

	g.headers = r.Header.Clone()
	if g.reject > 0 || r.Header.Get("Authorization") != "Bearer "+g.current {
		if g.reject > 0 {
			g.reject--
		}
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	switch r.URL.Path {
	case GDSHistoryPath:
		writeRaw(w, http.StatusOK, []byte(`{}`))
	case GDSSearchPath:
		if g.consumeFailure(w) {
			return
		}
		writeRaw(w, http.StatusOK, g.search)
	case GDSDetailPath:
		if g.consumeFailure(w) {
			return
		}
		var req struct {
			QuotationID string `json:"quotationId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeRaw(w, http.StatusBadRequest, []byte(`{"message":"bad body"}`))
			return
		}
		body, ok := g.details[req.QuotationID]
		if !ok {
			writeRaw(w, http.StatusNotFound, []byte(`{"message":"quotation not found"}`))
			return
		}
		writeRaw(w, http.StatusOK, body)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (g *GDS) issueToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil || r.PostForm.Get("username") == "" || r.PostForm.Get("mode") != "pass" {
		writeRaw(w, http.StatusBadRequest, []byte(`{"error":"invalid_grant"}`))
		return
	}

	g.issued++
	g.current = fmt.Sprintf("tok-%d", g.issued)
	writeRaw(w, http.StatusOK, []byte(fmt.Sprintf(`{"access_token":%q,"expires_in":3600}`, g.current)))
}

func (g *GDS) consumeFailure(w http.ResponseWriter) bool {
	if g.fail == 0 {
		return false
	}
	g.fail--
	writeRaw(w, http.StatusServiceUnavailable, []byte(`{"message":"try later"}`))
	return true
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
