package main

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, params string) (ed25519.PublicKey, string) {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	der, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)

	dir := t.TempDir()
	keyPath := filepath.Join(dir, "key.pem")
	require.NoError(t, os.WriteFile(keyPath, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), 0o600))

	cfgPath := filepath.Join(dir, "config.json")
	cfg := `{"digestAlgorithm":"sha-256","privateKey":"` + keyPath + `","jwe":"cli-jwe","signatureParams":` + params + `}`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	return pub, cfgPath
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard

	err := app.Run(append([]string{"ebaysig"}, args...))

	return out.String(), err
}

func TestParseHeaders(t *testing.T) {
	t.Run("ordered", func(t *testing.T) {
		headers, err := parseHeaders([]string{"Content-Type: application/json", "X-Trace:abc:def"})
		require.NoError(t, err)

		var names []string
		for name := range headers.All() {
			names = append(names, name)
		}
		assert.Equal(t, []string{"Content-Type", "X-Trace"}, names)

		value, _ := headers.Get("x-trace")
		assert.Equal(t, "abc:def", value)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := parseHeaders([]string{"no-colon"})
		assert.Error(t, err)

		_, err = parseHeaders([]string{": value"})
		assert.Error(t, err)
	})
}

func TestHeadersCommand(t *testing.T) {
	pub, cfgPath := writeConfig(t, `["content-digest","x-ebay-signature-key","@method","@path","@authority"]`)

	t.Run("with body", func(t *testing.T) {
		out, err := runApp(t, "--config", cfgPath, "headers",
			"--url", "https://api.ebay.com/sell/fulfillment/v1/order",
			"--method", "post",
			"--header", "Content-Type: application/json",
			"--body", `{"hello":"world"}`,
		)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 6)

		assert.Equal(t, "Content-Type: application/json", lines[0])
		assert.Equal(t, "Content-Digest: sha-256=:X48E9qOokqqrvdts8nOJRJN3OWDUoyWxBf7kbu9DBPE=:", lines[1])
		assert.Equal(t, "x-ebay-signature-key: cli-jwe", lines[2])
		assert.True(t, strings.HasPrefix(lines[3], `Signature-Input: sig1=("content-digest" "x-ebay-signature-key" "@method" "@path" "@authority");created=`))
		assert.True(t, strings.HasPrefix(lines[4], "Signature: sig1=:"))
		assert.Equal(t, "x-ebay-enforce-signature: true", lines[5])

		params := strings.TrimPrefix(lines[3], "Signature-Input: sig1=")
		base := `"content-digest": sha-256=:X48E9qOokqqrvdts8nOJRJN3OWDUoyWxBf7kbu9DBPE=:` + "\n" +
			`"x-ebay-signature-key": cli-jwe` + "\n" +
			`"@method": POST` + "\n" +
			`"@path": /sell/fulfillment/v1/order` + "\n" +
			`"@authority": api.ebay.com` + "\n" +
			`"@signature-params": ` + params

		raw := strings.TrimSuffix(strings.TrimPrefix(lines[4], "Signature: sig1=:"), ":")
		sig, err := base64.StdEncoding.DecodeString(raw)
		require.NoError(t, err)
		assert.True(t, ed25519.Verify(pub, []byte(base), sig))
	})

	t.Run("without body", func(t *testing.T) {
		out, err := runApp(t, "--config", cfgPath, "headers", "--url", "https://api.ebay.com/sell/orders")
		require.NoError(t, err)

		assert.NotContains(t, out, "Content-Digest")
		assert.Contains(t, out, `sig1=("x-ebay-signature-key" "@method" "@path" "@authority")`)
	})

	t.Run("body file", func(t *testing.T) {
		bodyPath := filepath.Join(t.TempDir(), "body.json")
		require.NoError(t, os.WriteFile(bodyPath, []byte(`{"hello":"world"}`), 0o600))

		out, err := runApp(t, "--config", cfgPath, "headers", "--url", "https://api.ebay.com/x", "--body-file", bodyPath)
		require.NoError(t, err)
		assert.Contains(t, out, "Content-Digest: sha-256=:X48E9qOokqqrvdts8nOJRJN3OWDUoyWxBf7kbu9DBPE=:")
	})

	t.Run("body flags conflict", func(t *testing.T) {
		_, err := runApp(t, "--config", cfgPath, "headers", "--url", "https://api.ebay.com/x", "--body", "a", "--body-file", "b")
		assert.ErrorIs(t, err, errBodyConflict)
	})

	t.Run("bad config", func(t *testing.T) {
		_, err := runApp(t, "--config", filepath.Join(t.TempDir(), "missing.json"), "headers", "--url", "https://api.ebay.com/x")
		assert.Error(t, err)
	})
}

func TestRequestCommand(t *testing.T) {
	_, cfgPath := writeConfig(t, `["content-digest","x-request-id","@method","@path"]`)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		assert.NotEmpty(t, r.Header.Get("Content-Digest"))
		assert.Contains(t, r.Header.Get("Signature-Input"), `"x-request-id"`)
		assert.Equal(t, "cli-jwe", r.Header.Get("X-Ebay-Signature-Key"))

		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("accepted"))
	}))
	defer server.Close()

	out, err := runApp(t, "--config", cfgPath, "request", "--url", server.URL+"/items/1", "--method", "PUT", "--body", "data")
	require.NoError(t, err)

	assert.Equal(t, "202 Accepted\naccepted", out)
}
