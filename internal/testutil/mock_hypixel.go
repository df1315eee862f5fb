// Package testutil provides a configurable mock of the Hypixel auctions API
// for testing.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// FailForever makes a page fail on every request.
const FailForever = -1

// MockAuctionHouse is a configurable mock auction API server. Pages are
// served as `{"success":true,"page":N,"totalPages":T,"auctions":[...]}` with
// the total derived from the configured page count.
type MockAuctionHouse struct {
	server *httptest.Server

	mu           sync.Mutex
	pages        [][]string // listing JSON objects per page index
	failures     map[int]int
	failStatus   int
	requestCount int
	pageHits     map[int]int
}

// NewMockAuctionHouse creates a started mock server with no pages.
func NewMockAuctionHouse() *MockAuctionHouse {
	m := &MockAuctionHouse{
		failures:   make(map[int]int),
		failStatus: http.StatusBadGateway,
		pageHits:   make(map[int]int),
	}
	m.server = httptest.NewServer(http.HandlerFunc(m.handle))
	return m
}

// URL returns the mock server base URL.
func (m *MockAuctionHouse) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAuctionHouse) Close() {
	m.server.Close()
}

// SetPages replaces the served pages. Each page is a slice of listing JSON
// objects, typically built with ListingJSON.
func (m *MockAuctionHouse) SetPages(pages ...[]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages = pages
}

// FailPage forces the next `times` requests for a page to fail with the
// configured status. Pass FailForever to fail every request.
func (m *MockAuctionHouse) FailPage(page, times int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[page] = times
}

// SetFailStatus changes the HTTP status returned for forced failures.
func (m *MockAuctionHouse) SetFailStatus(status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failStatus = status
}

// RequestCount returns the total number of requests served.
func (m *MockAuctionHouse) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requestCount
}

// PageHits returns how often a page was requested.
func (m *MockAuctionHouse) PageHits(page int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pageHits[page]
}

func (m *MockAuctionHouse) handle(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	m.mu.Lock()
	m.requestCount++
	m.pageHits[page]++

	remaining := m.failures[page]
	if remaining > 0 {
		m.failures[page] = remaining - 1
	}
	fail := remaining != 0
	status := m.failStatus

	total := len(m.pages)
	var auctions []string
	if page >= 0 && page < total {
		auctions = m.pages[page]
	}
	m.mu.Unlock()

	if fail {
		http.Error(w, `{"success":false,"cause":"upstream unavailable"}`, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	body := `{"success":true,"page":` + strconv.Itoa(page) +
		`,"totalPages":` + strconv.Itoa(total) +
		`,"auctions":[` + strings.Join(auctions, ",") + `]}`
	w.Write([]byte(body))
}

// ListingJSON builds a complete listing object for a mock page.
func ListingJSON(uuid, name, lore, tier string, bin bool, startingBid int64) string {
	b, _ := json.Marshal(map[string]any{
		"uuid":         uuid,
		"item_name":    name,
		"item_lore":    lore,
		"category":     "armor",
		"tier":         tier,
		"claimed":      false,
		"bin":          bin,
		"starting_bid": startingBid,
	})
	return string(b)
}

// PartialListingJSON builds a listing object from arbitrary fields, for
// exercising the malformed-entry path.
func PartialListingJSON(fields map[string]any) string {
	b, _ := json.Marshal(fields)
	return string(b)
}
