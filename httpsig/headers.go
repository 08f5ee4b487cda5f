package httpsig

import (
	"iter"
	"net/http"
	"sort"
	"strings"
)

// Header names produced by Signer.
const (
	HeaderContentDigest    = "Content-Digest"
	HeaderSignatureKey     = "x-ebay-signature-key"
	HeaderSignatureInput   = "Signature-Input"
	HeaderSignature        = "Signature"
	HeaderEnforceSignature = "x-ebay-enforce-signature"
)

type headerEntry struct {
	name  string
	value string
}

// Headers is an insertion-ordered header set. Lookups are
// case-insensitive; names keep the casing they were set with.
//
// The zero value is ready to use. Headers is not safe for concurrent
// mutation.
type Headers struct {
	entries []headerEntry
	index   map[string]int
}

// NewHeaders builds a header set from name/value pairs. It panics if
// pairs has an odd length.
func NewHeaders(pairs ...string) *Headers {
	if len(pairs)%2 != 0 {
		panic("httpsig: NewHeaders called with odd number of arguments")
	}

	h := &Headers{}
	for i := 0; i < len(pairs); i += 2 {
		h.Set(pairs[i], pairs[i+1])
	}

	return h
}

// HeadersFromHTTP converts an http.Header. Multiple values for one name
// are joined with ", ". Names are added in sorted order since http.Header
// has no order of its own.
func HeadersFromHTTP(header http.Header) *Headers {
	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}

	sort.Strings(names)

	h := &Headers{}
	for _, name := range names {
		h.Set(name, strings.Join(header[name], ", "))
	}

	return h
}

// Set adds or replaces a header. Replacing keeps the original position
// but adopts the new name casing.
func (h *Headers) Set(name, value string) {
	key := strings.ToLower(name)

	if i, ok := h.index[key]; ok {
		h.entries[i] = headerEntry{name: name, value: value}
		return
	}

	if h.index == nil {
		h.index = make(map[string]int)
	}

	h.index[key] = len(h.entries)
	h.entries = append(h.entries, headerEntry{name: name, value: value})
}

// Get returns the value for name, matched case-insensitively.
func (h *Headers) Get(name string) (string, bool) {
	if h == nil {
		return "", false
	}

	i, ok := h.index[strings.ToLower(name)]
	if !ok {
		return "", false
	}

	return h.entries[i].value, true
}

// Has reports whether name is present.
func (h *Headers) Has(name string) bool {
	_, ok := h.Get(name)
	return ok
}

// Len returns the number of headers.
func (h *Headers) Len() int {
	if h == nil {
		return 0
	}

	return len(h.entries)
}

// All iterates over headers in insertion order.
func (h *Headers) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if h == nil {
			return
		}

		for _, e := range h.entries {
			if !yield(e.name, e.value) {
				return
			}
		}
	}
}

// Clone returns an independent copy. Cloning nil yields an empty set.
func (h *Headers) Clone() *Headers {
	out := &Headers{}
	if h == nil || len(h.entries) == 0 {
		return out
	}

	out.entries = make([]headerEntry, len(h.entries))
	copy(out.entries, h.entries)

	out.index = make(map[string]int, len(h.index))
	for k, v := range h.index {
		out.index[k] = v
	}

	return out
}

// Map returns the headers as a plain map keyed by the stored names.
func (h *Headers) Map() map[string]string {
	out := make(map[string]string, h.Len())
	for name, value := range h.All() {
		out[name] = value
	}

	return out
}

// HTTPHeader returns the headers as an http.Header. The original casing
// is kept as the map key so that non-canonical names such as
// "x-ebay-signature-key" go on the wire as written.
func (h *Headers) HTTPHeader() http.Header {
	out := make(http.Header, h.Len())
	for name, value := range h.All() {
		out[name] = []string{value}
	}

	return out
}
