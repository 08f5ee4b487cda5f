package httpsig

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"strings"

	"golang.org/x/crypto/ssh"
)

// Minimum RSA key size in bits.
const minRSAKeyBits = 2048

// ParsePrivateKey loads a PEM-encoded private key (PKCS#1, PKCS#8, SEC 1
// or OpenSSH) and returns a Key for it.
//
// When alg is empty the algorithm follows the key type: RSA keys use
// rsa-pss-sha256, Ed25519 keys use ed25519 and ECDSA keys use the
// algorithm matching their curve.
func ParsePrivateKey(pemData string, alg Algorithm) (Key, error) {
	if strings.TrimSpace(pemData) == "" {
		return nil, fmt.Errorf("%w: empty private key", ErrInvalidKey)
	}

	raw, err := ssh.ParseRawPrivateKey([]byte(pemData))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	switch key := raw.(type) {
	case *rsa.PrivateKey:
		return rsaKey(key, alg)

	case ed25519.PrivateKey:
		return ed25519Key(key, alg)

	case *ed25519.PrivateKey:
		return ed25519Key(*key, alg)

	case *ecdsa.PrivateKey:
		return ecdsaKey(key, alg)

	default:
		return nil, fmt.Errorf("%w: unsupported key type %T", ErrInvalidKey, raw)
	}
}

func rsaKey(key *rsa.PrivateKey, alg Algorithm) (Key, error) {
	switch alg {
	case "", AlgorithmRSAPSSSHA256:
		return NewRSAPSSKey(key)
	case AlgorithmRSAPSSSHA512:
		return NewRSAPSSSHA512Key(key)
	case AlgorithmRSAv15SHA256:
		return NewRSAv15Key(key)
	default:
		return nil, fmt.Errorf("%w: algorithm %s does not match an RSA key", ErrInvalidKey, alg)
	}
}

func ed25519Key(key ed25519.PrivateKey, alg Algorithm) (Key, error) {
	if alg != "" && alg != AlgorithmEd25519 {
		return nil, fmt.Errorf("%w: algorithm %s does not match an ed25519 key", ErrInvalidKey, alg)
	}

	return NewEd25519Key(key)
}

func ecdsaKey(key *ecdsa.PrivateKey, alg Algorithm) (Key, error) {
	if alg == "" {
		switch key.Curve {
		case elliptic.P256():
			alg = AlgorithmECDSAP256SHA256
		case elliptic.P384():
			alg = AlgorithmECDSAP384SHA384
		}
	}

	switch alg {
	case AlgorithmECDSAP256SHA256:
		return NewECDSAP256Key(key)
	case AlgorithmECDSAP384SHA384:
		return NewECDSAP384Key(key)
	default:
		return nil, fmt.Errorf("%w: algorithm %q does not match an ECDSA key", ErrInvalidKey, alg)
	}
}

// --- Ed25519 ---

type ed25519Signer struct {
	key ed25519.PrivateKey
}

// NewEd25519Key creates a Key using Ed25519.
func NewEd25519Key(key ed25519.PrivateKey) (Key, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: ed25519 private key must be %d bytes", ErrInvalidKey, ed25519.PrivateKeySize)
	}

	return &ed25519Signer{key: key}, nil
}

func (s *ed25519Signer) Sign(message []byte) ([]byte, error) {
	return ed25519.Sign(s.key, message), nil
}

func (s *ed25519Signer) Algorithm() Algorithm { return AlgorithmEd25519 }

// --- ECDSA ---

type ecdsaSigner struct {
	key    *ecdsa.PrivateKey
	alg    Algorithm
	digest func([]byte) []byte
}

// NewECDSAP256Key creates a Key using ECDSA with curve P-256 and SHA-256.
func NewECDSAP256Key(key *ecdsa.PrivateKey) (Key, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: ecdsa private key must not be nil", ErrInvalidKey)
	}

	if key.Curve != elliptic.P256() {
		return nil, fmt.Errorf("%w: key curve must be P-256", ErrInvalidKey)
	}

	return &ecdsaSigner{
		key: key,
		alg: AlgorithmECDSAP256SHA256,
		digest: func(m []byte) []byte {
			d := sha256.Sum256(m)
			return d[:]
		},
	}, nil
}

// NewECDSAP384Key creates a Key using ECDSA with curve P-384 and SHA-384.
func NewECDSAP384Key(key *ecdsa.PrivateKey) (Key, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: ecdsa private key must not be nil", ErrInvalidKey)
	}

	if key.Curve != elliptic.P384() {
		return nil, fmt.Errorf("%w: key curve must be P-384", ErrInvalidKey)
	}

	return &ecdsaSigner{
		key: key,
		alg: AlgorithmECDSAP384SHA384,
		digest: func(m []byte) []byte {
			d := sha512.Sum384(m)
			return d[:]
		},
	}, nil
}

func (s *ecdsaSigner) Sign(message []byte) ([]byte, error) {
	return ecdsa.SignASN1(rand.Reader, s.key, s.digest(message))
}

func (s *ecdsaSigner) Algorithm() Algorithm { return s.alg }

// --- RSA ---

type rsaSigner struct {
	key  *rsa.PrivateKey
	alg  Algorithm
	hash crypto.Hash
	pss  bool
}

func checkRSAKey(key *rsa.PrivateKey) error {
	if key == nil {
		return fmt.Errorf("%w: rsa private key must not be nil", ErrInvalidKey)
	}

	if key.N.BitLen() < minRSAKeyBits {
		return fmt.Errorf("%w: rsa key must be at least %d bits", ErrInvalidKey, minRSAKeyBits)
	}

	return nil
}

// NewRSAPSSKey creates a Key using RSASSA-PSS with SHA-256.
func NewRSAPSSKey(key *rsa.PrivateKey) (Key, error) {
	if err := checkRSAKey(key); err != nil {
		return nil, err
	}

	return &rsaSigner{key: key, alg: AlgorithmRSAPSSSHA256, hash: crypto.SHA256, pss: true}, nil
}

// NewRSAPSSSHA512Key creates a Key using RSASSA-PSS with SHA-512.
func NewRSAPSSSHA512Key(key *rsa.PrivateKey) (Key, error) {
	if err := checkRSAKey(key); err != nil {
		return nil, err
	}

	return &rsaSigner{key: key, alg: AlgorithmRSAPSSSHA512, hash: crypto.SHA512, pss: true}, nil
}

// NewRSAv15Key creates a Key using RSASSA-PKCS1-v1_5 with SHA-256.
func NewRSAv15Key(key *rsa.PrivateKey) (Key, error) {
	if err := checkRSAKey(key); err != nil {
		return nil, err
	}

	return &rsaSigner{key: key, alg: AlgorithmRSAv15SHA256, hash: crypto.SHA256}, nil
}

func (s *rsaSigner) Sign(message []byte) ([]byte, error) {
	h := s.hash.New()
	h.Write(message)
	digest := h.Sum(nil)

	if s.pss {
		return rsa.SignPSS(rand.Reader, s.key, s.hash, digest, &rsa.PSSOptions{
			SaltLength: rsa.PSSSaltLengthEqualsHash,
		})
	}

	return rsa.SignPKCS1v15(rand.Reader, s.key, s.hash, digest)
}

func (s *rsaSigner) Algorithm() Algorithm { return s.alg }
