// Package listview models the customer list view. The visible state (page,
// search text, city filter) is derived entirely from shareable URL query
// parameters, so a bookmarked URL reproduces the same view.
package listview

import (
	"net/url"
	"strconv"
)

// State is the view state encoded in the URL. Page is 1-based; empty Search
// and City mean "match all".
type State struct {
	Page   int
	Search string
	City   string
}

// StateFromQuery derives view state from URL query parameters. Missing or
// malformed page values fall back to 1.
func StateFromQuery(q url.Values) State {
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return State{
		Page:   page,
		Search: q.Get("q"),
		City:   q.Get("city"),
	}
}

// Query renders the state back into shareable URL parameters. Empty filters
// are omitted so URLs stay clean.
func (s State) Query() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(s.Page))
	if s.Search != "" {
		q.Set("q", s.Search)
	}
	if s.City != "" {
		q.Set("city", s.City)
	}
	return q
}

// WithSearch changes the search text and resets the page to 1.
func (s State) WithSearch(search string) State {
	s.Search = search
	s.Page = 1
	return s
}

// WithCity changes the city filter and resets the page to 1.
func (s State) WithCity(city string) State {
	s.City = city
	s.Page = 1
	return s
}

// WithPage changes only the page, leaving filters untouched.
func (s State) WithPage(page int) State {
	if page < 1 {
		page = 1
	}
	s.Page = page
	return s
}

// Pager decides whether the previous/next controls are enabled for one
// rendered page. TotalKnown is false when a fetch failed and only the
// previously rendered rows are available.
type Pager struct {
	Page       int
	PageSize   int
	Total      int
	TotalKnown bool
	Rows       int // rows rendered on the current page
}

// LastPage is ceil(Total/PageSize) with a floor of 1. Returns 0 when the
// total is unknown.
func (p Pager) LastPage() int {
	if !p.TotalKnown || p.PageSize <= 0 {
		return 0
	}
	last := (p.Total + p.PageSize - 1) / p.PageSize
	if last < 1 {
		last = 1
	}
	return last
}

// CanPrev reports whether a previous page exists.
func (p Pager) CanPrev() bool { return p.Page > 1 }

// CanNext reports whether a next page may exist. With a known total this is
// exact; otherwise a full page of rows is taken as a hint that more follow.
func (p Pager) CanNext() bool {
	if p.TotalKnown {
		return p.Page < p.LastPage()
	}
	return p.Rows == p.PageSize
}
