package searchparams

import (
	"net/http"
	"net/url"
)

// RequestHistory is a History over an incoming request. Replaced states are
// recorded so a handler can answer with a redirect instead of navigating.
type RequestHistory struct {
	original string
	current  *url.URL
}

func FromRequest(r *http.Request) *RequestHistory {
	u := *r.URL
	return &RequestHistory{original: u.RequestURI(), current: &u}
}

func (h *RequestHistory) Location() *url.URL {
	u := *h.current
	return &u
}

func (h *RequestHistory) ReplaceState(target string) {
	u, err := url.ParseRequestURI(target)
	if err != nil {
		return
	}
	h.current = u
}

// Target returns the current location and whether it differs from the request.
func (h *RequestHistory) Target() (string, bool) {
	target := h.current.RequestURI()
	return target, target != h.original
}
