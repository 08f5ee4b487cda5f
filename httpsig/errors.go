package httpsig

import "errors"

// Signing errors.
var (
	// ErrNoSigner is returned when TransportConfig has no Signer.
	ErrNoSigner = errors.New("httpsig: signer must not be nil")

	// ErrNoKey is returned when SignerConfig has no Key configured.
	ErrNoKey = errors.New("httpsig: signing key must not be nil")

	// ErrNoSignatureParams is returned when the configured signature
	// parameter list is empty.
	ErrNoSignatureParams = errors.New("httpsig: signature params must not be empty")

	// ErrSigningFailed is returned when the signing primitive fails. The
	// primitive's own error is kept in the chain.
	ErrSigningFailed = errors.New("httpsig: signing failed")
)

// Endpoint errors.
var (
	// ErrInvalidEndpoint is returned when a URL component required by a
	// signature parameter cannot be extracted from the endpoint.
	ErrInvalidEndpoint = errors.New("httpsig: invalid endpoint")
)

// Key material errors.
var (
	// ErrInvalidKey is returned when key material is invalid (unparsable
	// PEM, wrong curve, insufficient size, algorithm mismatch, etc.).
	ErrInvalidKey = errors.New("httpsig: invalid key material")

	// ErrUnsupportedAlgorithm is returned when a signature algorithm
	// name is not recognized.
	ErrUnsupportedAlgorithm = errors.New("httpsig: unsupported signature algorithm")
)

// Digest errors.
var (
	// ErrUnsupportedDigest is returned when the digest algorithm is not
	// supported.
	ErrUnsupportedDigest = errors.New("httpsig: unsupported digest algorithm")
)
