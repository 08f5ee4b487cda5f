package httpsig

import (
	"fmt"
	"net/url"
	"strings"
)

// Derived component identifiers understood by the signature base builder.
const (
	ComponentMethod    = "@method"
	ComponentAuthority = "@authority"
	ComponentPath      = "@path"
	ComponentQuery     = "@query"
	ComponentTargetURI = "@target-uri"
	ComponentScheme    = "@scheme"

	// ComponentContentDigest is the header component dropped from the
	// signature when a request carries no body.
	ComponentContentDigest = "content-digest"
)

// defaultPorts lists the ports omitted from @authority per scheme.
var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

// endpointURL parses an absolute endpoint URL.
func endpointURL(endpoint string) (*url.URL, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}

	return u, nil
}

// endpointPath returns the path of endpoint. An empty path is "/".
func endpointPath(endpoint string) (string, error) {
	u, err := endpointURL(endpoint)
	if err != nil {
		return "", err
	}

	if u.Opaque != "" {
		return "", fmt.Errorf("%w: %q has no hierarchical path", ErrInvalidEndpoint, endpoint)
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}

	return path, nil
}

// endpointAuthority returns host[:port]. The port is kept only when it
// is explicit and not the default for the scheme.
func endpointAuthority(endpoint string) (string, error) {
	u, err := endpointURL(endpoint)
	if err != nil {
		return "", err
	}

	host := u.Hostname()
	if host == "" {
		return "", fmt.Errorf("%w: %q has no host", ErrInvalidEndpoint, endpoint)
	}

	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}

	port := u.Port()
	if port == "" || defaultPorts[strings.ToLower(u.Scheme)] == port {
		return host, nil
	}

	return host + ":" + port, nil
}

// endpointScheme returns the URL scheme.
func endpointScheme(endpoint string) (string, error) {
	u, err := endpointURL(endpoint)
	if err != nil {
		return "", err
	}

	if u.Scheme == "" {
		return "", fmt.Errorf("%w: %q has no scheme", ErrInvalidEndpoint, endpoint)
	}

	return u.Scheme, nil
}

// endpointQuery returns the raw query string without the leading "?".
// An endpoint without a query is an error since there is nothing to
// cover.
func endpointQuery(endpoint string) (string, error) {
	u, err := endpointURL(endpoint)
	if err != nil {
		return "", err
	}

	if u.RawQuery == "" {
		return "", fmt.Errorf("%w: %q has no query", ErrInvalidEndpoint, endpoint)
	}

	return u.RawQuery, nil
}

// isContentDigest reports whether param names the content-digest header.
func isContentDigest(param string) bool {
	return strings.EqualFold(param, ComponentContentDigest)
}
