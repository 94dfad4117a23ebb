// Package searchparams rewrites a location's query string in place of the current history entry.
//
// Pair order is preserved, which url.Values cannot do.
package searchparams

import (
	"net/url"
	"strings"
)

// Value is what a key is set to: nothing, one string, or an ordered list.
type Value struct {
	values []string
	many   bool
}

// None removes the key.
var None = Value{}

// One sets the key. An empty string removes it.
func One(v string) Value {
	if v == "" {
		return None
	}
	return Value{values: []string{v}}
}

// Many replaces every occurrence of the key with one pair per element, in order.
func Many(vs ...string) Value {
	return Value{values: append([]string{}, vs...), many: true}
}

func (v Value) falsy() bool {
	return !v.many && len(v.values) == 0
}

// History is the part of the browser history API the rewrite needs.
type History interface {
	Location() *url.URL
	// ReplaceState swaps the current entry's URL without navigating.
	ReplaceState(target string)
}

// Set rewrites key on the current location and replaces the history entry.
func Set(h History, key string, v Value) {
	h.ReplaceState(Rewrite(h.Location(), key, v))
}

// Rewrite returns loc's path followed by the rewritten query, with no "?" when nothing is left.
func Rewrite(loc *url.URL, key string, v Value) string {
	params := parse(loc.RawQuery)

	switch {
	case v.falsy():
		params = params.without(key)
	case v.many:
		params = params.without(key)
		for _, value := range v.values {
			params = append(params, pair{key: key, value: value})
		}
	default:
		params = params.set(key, v.values[0])
	}

	path := loc.EscapedPath()
	if path == "" {
		path = "/"
	}
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.encode()
}

type pair struct {
	key   string
	value string
}

type pairs []pair

func parse(raw string) pairs {
	out := make(pairs, 0)
	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		out = append(out, pair{key: decode(k), value: decode(v)})
	}
	return out
}

// decode turns "+" into a space and valid %XX escapes into bytes.
// A malformed escape is kept as a literal "%".
func decode(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			b = append(b, ' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b = append(b, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
		default:
			b = append(b, c)
		}
	}
	return string(b)
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case c <= '9':
		return c - '0'
	case c <= 'F':
		return c - 'A' + 10
	default:
		return c - 'a' + 10
	}
}

func (p pairs) without(key string) pairs {
	out := make(pairs, 0, len(p))
	for _, kv := range p {
		if kv.key != key {
			out = append(out, kv)
		}
	}
	return out
}

// set replaces the first occurrence in place and drops the rest, or appends.
func (p pairs) set(key, value string) pairs {
	out := make(pairs, 0, len(p)+1)
	found := false
	for _, kv := range p {
		if kv.key != key {
			out = append(out, kv)
			continue
		}
		if !found {
			out = append(out, pair{key: key, value: value})
			found = true
		}
	}
	if !found {
		out = append(out, pair{key: key, value: value})
	}
	return out
}

func (p pairs) encode() string {
	var b strings.Builder
	for i, kv := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.value))
	}
	return b.String()
}
