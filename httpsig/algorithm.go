package httpsig

import (
	"fmt"
	"strings"
)

// Algorithm identifies the signature algorithm applied to the signature
// base.
type Algorithm string

const (
	// AlgorithmRSAPSSSHA256 is RSASSA-PSS using SHA-256 with MGF1-SHA-256
	// and a salt as long as the hash. This is the default for RSA keys.
	AlgorithmRSAPSSSHA256 Algorithm = "rsa-pss-sha256"

	// AlgorithmRSAPSSSHA512 is RSASSA-PSS using SHA-512.
	AlgorithmRSAPSSSHA512 Algorithm = "rsa-pss-sha512"

	// AlgorithmRSAv15SHA256 is RSASSA-PKCS1-v1_5 using SHA-256.
	AlgorithmRSAv15SHA256 Algorithm = "rsa-v1_5-sha256"

	// AlgorithmECDSAP256SHA256 is ECDSA using curve P-256 and SHA-256.
	AlgorithmECDSAP256SHA256 Algorithm = "ecdsa-p256-sha256"

	// AlgorithmECDSAP384SHA384 is ECDSA using curve P-384 and SHA-384.
	AlgorithmECDSAP384SHA384 Algorithm = "ecdsa-p384-sha384"

	// AlgorithmEd25519 is Edwards-Curve Digital Signature Algorithm
	// using curve 25519.
	AlgorithmEd25519 Algorithm = "ed25519"
)

// algorithmAliases maps short names accepted in configuration files to
// their canonical algorithm.
var algorithmAliases = map[string]Algorithm{
	"rsa":     AlgorithmRSAPSSSHA256,
	"rsa-pss": AlgorithmRSAPSSSHA256,
	"eddsa":   AlgorithmEd25519,
}

// String returns the string representation of the algorithm.
func (a Algorithm) String() string {
	return string(a)
}

// ParseAlgorithm resolves an algorithm name, case-insensitively. An empty
// name yields the empty Algorithm, which means "derive from the key type".
func ParseAlgorithm(name string) (Algorithm, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", nil
	}

	if alg, ok := algorithmAliases[name]; ok {
		return alg, nil
	}

	switch alg := Algorithm(name); alg {
	case AlgorithmRSAPSSSHA256, AlgorithmRSAPSSSHA512, AlgorithmRSAv15SHA256,
		AlgorithmECDSAP256SHA256, AlgorithmECDSAP384SHA384, AlgorithmEd25519:
		return alg, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, name)
	}
}

// Key signs signature base strings with an asymmetric private key.
// Implementations must be safe for concurrent use.
type Key interface {
	// Sign produces a signature over the given message bytes.
	Sign(message []byte) ([]byte, error)

	// Algorithm returns the algorithm identifier for this key.
	Algorithm() Algorithm
}
