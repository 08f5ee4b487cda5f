package httpsig

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(h *Headers) [][2]string {
	var out [][2]string
	for name, value := range h.All() {
		out = append(out, [2]string{name, value})
	}

	return out
}

func TestHeaders(t *testing.T) {
	t.Run("case-insensitive lookup keeps casing", func(t *testing.T) {
		h := NewHeaders("Content-Type", "application/json", "X-Custom", "v")

		v, ok := h.Get("content-type")
		require.True(t, ok)
		assert.Equal(t, "application/json", v)

		v, ok = h.Get("X-CUSTOM")
		require.True(t, ok)
		assert.Equal(t, "v", v)

		assert.Equal(t, [][2]string{
			{"Content-Type", "application/json"},
			{"X-Custom", "v"},
		}, collect(h))
	})

	t.Run("set replaces in place", func(t *testing.T) {
		h := NewHeaders("A", "1", "B", "2", "C", "3")
		h.Set("b", "two")

		assert.Equal(t, 3, h.Len())
		assert.Equal(t, [][2]string{
			{"A", "1"},
			{"b", "two"},
			{"C", "3"},
		}, collect(h))
	})

	t.Run("missing header", func(t *testing.T) {
		h := NewHeaders()
		_, ok := h.Get("missing")
		assert.False(t, ok)
		assert.False(t, h.Has("missing"))
	})

	t.Run("zero value is usable", func(t *testing.T) {
		var h Headers
		h.Set("Accept", "*/*")
		assert.True(t, h.Has("accept"))
	})

	t.Run("nil receiver reads", func(t *testing.T) {
		var h *Headers
		_, ok := h.Get("a")
		assert.False(t, ok)
		assert.Equal(t, 0, h.Len())
		assert.Empty(t, collect(h))
	})

	t.Run("odd pairs panic", func(t *testing.T) {
		assert.Panics(t, func() { NewHeaders("A") })
	})

	t.Run("clone is independent", func(t *testing.T) {
		orig := NewHeaders("A", "1")
		clone := orig.Clone()
		clone.Set("B", "2")
		clone.Set("a", "changed")

		assert.Equal(t, [][2]string{{"A", "1"}}, collect(orig))
		assert.Equal(t, [][2]string{{"a", "changed"}, {"B", "2"}}, collect(clone))
	})

	t.Run("clone of nil", func(t *testing.T) {
		var h *Headers
		clone := h.Clone()
		require.NotNil(t, clone)
		clone.Set("A", "1")
		assert.Equal(t, 1, clone.Len())
	})

	t.Run("map", func(t *testing.T) {
		h := NewHeaders("A", "1", "x-ebay-signature-key", "k")
		assert.Equal(t, map[string]string{"A": "1", "x-ebay-signature-key": "k"}, h.Map())
	})

	t.Run("http header keeps literal names", func(t *testing.T) {
		h := NewHeaders("Content-Digest", "d", "x-ebay-enforce-signature", "true")
		hdr := h.HTTPHeader()

		assert.Equal(t, []string{"d"}, hdr["Content-Digest"])
		assert.Equal(t, []string{"true"}, hdr["x-ebay-enforce-signature"])
	})

	t.Run("from http header", func(t *testing.T) {
		hdr := http.Header{}
		hdr.Set("Content-Type", "application/json")
		hdr.Add("Accept", "text/plain")
		hdr.Add("Accept", "application/json")

		h := HeadersFromHTTP(hdr)
		assert.Equal(t, [][2]string{
			{"Accept", "text/plain, application/json"},
			{"Content-Type", "application/json"},
		}, collect(h))
	})
}
