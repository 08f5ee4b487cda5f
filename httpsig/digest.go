package httpsig

import (
	"bytes"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"hash"
	"io"
	"net/http"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// DigestAlgorithm names the hash algorithm for Content-Digest, e.g.
// "sha-256". Names are matched case-insensitively.
type DigestAlgorithm string

const (
	// DigestSHA256 uses SHA-256 for content digest.
	DigestSHA256 DigestAlgorithm = "sha-256"

	// DigestSHA512 uses SHA-512 for content digest.
	DigestSHA512 DigestAlgorithm = "sha-512"
)

// hashFactories is keyed by the hash identifier: the algorithm name
// lower-cased with every hyphen removed.
var hashFactories = map[string]func() hash.Hash{
	"md5":        md5.New,
	"sha1":       sha1.New,
	"sha224":     sha256.New224,
	"sha256":     sha256.New,
	"sha384":     sha512.New384,
	"sha512":     sha512.New,
	"sha512/224": sha512.New512_224,
	"sha512/256": sha512.New512_256,
	"sha3224":    sha3.New224,
	"sha3256":    sha3.New256,
	"sha3384":    sha3.New384,
	"sha3512":    sha3.New512,
	"blake2b256": func() hash.Hash { h, _ := blake2b.New256(nil); return h },
	"blake2b384": func() hash.Hash { h, _ := blake2b.New384(nil); return h },
	"blake2b512": func() hash.Hash { h, _ := blake2b.New512(nil); return h },
}

// normalizeDigestName returns the label used in the Content-Digest value
// ("sha-256") and the hash identifier used for lookup ("sha256").
func normalizeDigestName(name string) (label, id string) {
	label = strings.ToLower(strings.TrimSpace(name))
	id = strings.ReplaceAll(label, "-", "")

	return label, id
}

// SupportedDigest reports whether the named digest algorithm can be
// computed.
func SupportedDigest(name string) bool {
	_, id := normalizeDigestName(name)
	_, ok := hashFactories[id]

	return ok
}

// ComputeDigest hashes body with the named algorithm and formats the
// result as a Content-Digest value: "<algorithm>=:<base64>:".
func ComputeDigest(body []byte, algorithm string) (string, error) {
	label, id := normalizeDigestName(algorithm)

	newHash, ok := hashFactories[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedDigest, algorithm)
	}

	h := newHash()
	h.Write(body)

	return label + "=:" + base64.StdEncoding.EncodeToString(h.Sum(nil)) + ":", nil
}

// readAndRestoreBody reads the entire request body and replaces it with a
// new reader so the body can be sent afterwards. A nil or http.NoBody
// body yields nil.
func readAndRestoreBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	if body == nil {
		body = []byte{}
	}

	return body, nil
}
