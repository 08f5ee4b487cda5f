// Package config loads signing configuration files.
//
// A configuration is a JSON (or YAML) document:
//
//	{
//	  "digestAlgorithm": "sha-256",
//	  "privateKey": "/path/to/private_key.pem",
//	  "jwe": "eyJ6aXAiOiJERUYiLCJraWQiOi...",
//	  "signatureParams": ["content-digest", "x-ebay-signature-key", "@method", "@path", "@authority"]
//	}
//
// The key material is given either inline as privateKeyStr or as a file
// path in privateKey; the inline value wins when both are set.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/http/httpguts"
	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/vitalvas/ebaysig/httpsig"
)

// Config is the signing configuration.
type Config struct {
	// DigestAlgorithm names the Content-Digest hash, e.g. "sha-256".
	DigestAlgorithm string `json:"digestAlgorithm" yaml:"digestAlgorithm"`

	// Algorithm optionally forces the signature algorithm. Empty derives
	// it from the key type.
	Algorithm string `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`

	// PrivateKey is a path to a PEM file, read when PrivateKeyStr is empty.
	PrivateKey string `json:"privateKey,omitempty" yaml:"privateKey,omitempty"`

	// PrivateKeyStr is the PEM-encoded private key.
	PrivateKeyStr string `json:"privateKeyStr,omitempty" yaml:"privateKeyStr,omitempty"`

	// JWE is the key identifier sent in x-ebay-signature-key.
	JWE string `json:"jwe" yaml:"jwe"`

	// SignatureParams lists the covered components in order.
	SignatureParams []string `json:"signatureParams" yaml:"signatureParams"`
}

// Load reads the configuration at path, resolves the private key and
// validates the result. Files ending in .yaml or .yml are parsed as YAML,
// anything else as JSON.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg *Config

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err = ParseYAML(data)
	default:
		cfg, err = ParseJSON(data)
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ResolvePrivateKey(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ParseJSON decodes a JSON configuration without resolving or validating
// it.
func ParseJSON(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to decode json: %v", ErrInvalidConfig, err)
	}

	return cfg, nil
}

// ParseYAML decodes a YAML configuration without resolving or validating
// it.
func ParseYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to decode yaml: %v", ErrInvalidConfig, err)
	}

	return cfg, nil
}

// ResolvePrivateKey reads PrivateKey into PrivateKeyStr when no inline key
// is set. Relative paths are taken relative to the working directory.
func (c *Config) ResolvePrivateKey() error {
	if c.PrivateKeyStr != "" || c.PrivateKey == "" {
		return nil
	}

	data, err := os.ReadFile(c.PrivateKey)
	if err != nil {
		return fmt.Errorf("failed to read private key file: %w", err)
	}

	c.PrivateKeyStr = string(data)

	return nil
}

// Validate checks required fields and the values that can be checked
// without parsing the key.
func (c *Config) Validate() error {
	var allErrors field.ErrorList

	if strings.TrimSpace(c.DigestAlgorithm) == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("digestAlgorithm"), "digestAlgorithm is required"))
	} else if !httpsig.SupportedDigest(c.DigestAlgorithm) {
		allErrors = append(allErrors, field.NotSupported(field.NewPath("digestAlgorithm"), c.DigestAlgorithm, []string{"sha-256", "sha-384", "sha-512", "sha3-256", "sha3-512", "blake2b-256", "blake2b-512"}))
	}

	if _, err := httpsig.ParseAlgorithm(c.Algorithm); err != nil {
		allErrors = append(allErrors, field.Invalid(field.NewPath("algorithm"), c.Algorithm, err.Error()))
	}

	if strings.TrimSpace(c.PrivateKeyStr) == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("privateKeyStr"), "privateKeyStr or privateKey is required"))
	}

	if c.JWE == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("jwe"), "jwe is required"))
	}

	paramsPath := field.NewPath("signatureParams")
	if len(c.SignatureParams) == 0 {
		allErrors = append(allErrors, field.Required(paramsPath, "signatureParams must not be empty"))
	}

	for i, p := range c.SignatureParams {
		if strings.HasPrefix(p, "@") {
			continue
		}

		if !httpguts.ValidHeaderFieldName(p) {
			allErrors = append(allErrors, field.Invalid(paramsPath.Index(i), p, "not a valid header field name"))
		}
	}

	if len(allErrors) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, allErrors.ToAggregate())
	}

	return nil
}

// NewSigner parses the private key and builds a Signer from the
// configuration. logger may be nil.
func (c *Config) NewSigner(logger *zap.Logger) (*httpsig.Signer, error) {
	alg, err := httpsig.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	key, err := httpsig.ParsePrivateKey(c.PrivateKeyStr, alg)
	if err != nil {
		return nil, err
	}

	return httpsig.NewSigner(httpsig.SignerConfig{
		Key:             key,
		KeyID:           c.JWE,
		DigestAlgorithm: c.DigestAlgorithm,
		SignatureParams: c.SignatureParams,
		Logger:          logger,
	})
}

// NewSignerFromFile loads the configuration at path and builds a Signer.
func NewSignerFromFile(path string, logger *zap.Logger) (*httpsig.Signer, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	return cfg.NewSigner(logger)
}
