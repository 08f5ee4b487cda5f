package httpsig

import (
	"net/http"

	"github.com/google/uuid"
)

// TransportConfig configures a signing Transport.
type TransportConfig struct {
	// Signer signs every outgoing request. Required.
	Signer *Signer

	// RequestIDHeader, when set, names a header that receives a fresh
	// request ID before signing unless the request already has one. List
	// the same name in the signature params to cover it.
	RequestIDHeader string

	// GenerateID returns a new request ID. Defaults to a UUID v4.
	GenerateID func() string
}

// Transport is an http.RoundTripper that adds signature headers to
// outgoing requests.
type Transport struct {
	base   http.RoundTripper
	config TransportConfig
}

// NewTransport creates a signing Transport that delegates to base after
// signing each request. When base is nil, a clone of http.DefaultTransport
// is used, giving an independent connection pool with default proxy, TLS,
// and timeout settings.
//
//	base := &http.Transport{
//	    Proxy:           http.ProxyFromEnvironment,
//	    TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS13},
//	}
//	transport := httpsig.NewTransport(base, httpsig.TransportConfig{Signer: signer})
func NewTransport(base *http.Transport, cfg TransportConfig) *Transport {
	var rt http.RoundTripper
	if base != nil {
		rt = base
	} else {
		rt = http.DefaultTransport.(*http.Transport).Clone()
	}

	if cfg.GenerateID == nil {
		cfg.GenerateID = uuid.NewString
	}

	return &Transport{
		base:   rt,
		config: cfg,
	}
}

// RoundTrip signs the request and then delegates to the base transport.
// The original request is cloned before signing to avoid mutation.
// When GetBody is available, the clone receives its own body copy so
// that digest computation does not consume the caller's body.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.config.Signer == nil {
		return nil, ErrNoSigner
	}

	clone := req.Clone(req.Context())

	if clone.Body != nil && clone.Body != http.NoBody && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}

		clone.Body = body
	}

	if h := t.config.RequestIDHeader; h != "" && clone.Header.Get(h) == "" {
		clone.Header.Set(h, t.config.GenerateID())
	}

	if err := t.config.Signer.SignRequest(clone); err != nil {
		return nil, err
	}

	return t.base.RoundTrip(clone)
}
