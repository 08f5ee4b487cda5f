package httpsig

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"slices"
	"time"

	"go.uber.org/zap"
)

// enforceSignatureValue is the fixed value of x-ebay-enforce-signature.
const enforceSignatureValue = "true"

// SignerConfig configures a Signer.
type SignerConfig struct {
	// Key signs the signature base. Required.
	Key Key

	// KeyID is passed through unchanged in the x-ebay-signature-key header.
	KeyID string

	// DigestAlgorithm names the Content-Digest hash, e.g. "sha-256".
	// Defaults to DigestSHA256.
	DigestAlgorithm string

	// SignatureParams lists, in order, the components covered by the
	// signature. Duplicates are kept. Required.
	SignatureParams []string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Logger receives a debug entry per generated header set. Defaults to
	// a no-op logger.
	Logger *zap.Logger
}

// Signer produces signature headers for outgoing requests. It is
// immutable after construction and safe for concurrent use as long as its
// Key is.
type Signer struct {
	key             Key
	keyID           string
	digestAlgorithm string
	params          []string
	now             func() time.Time
	logger          *zap.Logger
}

// NewSigner validates cfg and returns a Signer.
func NewSigner(cfg SignerConfig) (*Signer, error) {
	if cfg.Key == nil {
		return nil, ErrNoKey
	}

	if len(cfg.SignatureParams) == 0 {
		return nil, ErrNoSignatureParams
	}

	digestAlg := cfg.DigestAlgorithm
	if digestAlg == "" {
		digestAlg = string(DigestSHA256)
	}

	if !SupportedDigest(digestAlg) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDigest, digestAlg)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Signer{
		key:             cfg.Key,
		keyID:           cfg.KeyID,
		digestAlgorithm: digestAlg,
		params:          slices.Clone(cfg.SignatureParams),
		now:             now,
		logger:          logger,
	}, nil
}

// Params returns a copy of the configured signature parameters.
func (s *Signer) Params() []string {
	return slices.Clone(s.params)
}

// GenerateHeaders returns headers extended with the signature headers for
// a request to endpoint. A nil body means the request has no body; an
// empty non-nil body is a body and gets a Content-Digest.
//
// The caller's headers are never modified. On error nothing is returned.
func (s *Signer) GenerateHeaders(headers *Headers, endpoint, method string, body []byte) (*Headers, error) {
	bodyPresent := body != nil
	out := headers.Clone()

	if bodyPresent {
		digest, err := ComputeDigest(body, s.digestAlgorithm)
		if err != nil {
			return nil, err
		}

		out.Set(HeaderContentDigest, digest)
	}

	created := s.now().Unix()

	out.Set(HeaderSignatureKey, s.keyID)
	out.Set(HeaderSignatureInput, BuildSignatureInput(s.params, bodyPresent, created))

	base, err := BuildSignatureBase(s.params, BaseRequest{
		Method:      method,
		Endpoint:    endpoint,
		Headers:     out,
		Created:     created,
		BodyPresent: bodyPresent,
	})
	if err != nil {
		return nil, err
	}

	sig, err := s.key.Sign([]byte(base))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}

	out.Set(HeaderSignature, signatureLabel+"=:"+base64.StdEncoding.EncodeToString(sig)+":")
	out.Set(HeaderEnforceSignature, enforceSignatureValue)

	s.logger.Debug("generated signature headers",
		zap.String("key_id", s.keyID),
		zap.String("algorithm", s.key.Algorithm().String()),
		zap.Strings("params", coveredParams(s.params, bodyPresent)),
		zap.Bool("body", bodyPresent),
		zap.Int64("created", created),
	)

	return out, nil
}

// SignRequest signs r in place using its URL, method and body. The body
// is read and restored; a nil body or http.NoBody counts as no body.
func (s *Signer) SignRequest(r *http.Request) error {
	body, err := readAndRestoreBody(r)
	if err != nil {
		return err
	}

	signed, err := s.GenerateHeaders(HeadersFromHTTP(r.Header), r.URL.String(), r.Method, body)
	if err != nil {
		return err
	}

	for _, name := range producedHeaders {
		value, ok := signed.Get(name)
		if !ok {
			continue
		}

		// Stored under the literal name so lower-case names stay lower-case
		// on the wire.
		r.Header.Del(name)
		r.Header[name] = []string{value}
	}

	return nil
}

// producedHeaders lists the headers GenerateHeaders may add.
var producedHeaders = []string{
	HeaderContentDigest,
	HeaderSignatureKey,
	HeaderSignatureInput,
	HeaderSignature,
	HeaderEnforceSignature,
}
