// Package httpsig generates the signature headers eBay APIs expect on
// signed requests, following the HTTP Message Signatures model (RFC 9421)
// with a Content-Digest (RFC 9530) over the body.
//
// For every request a Signer produces:
//
//   - Content-Digest (only when the request has a body)
//   - x-ebay-signature-key (the configured key identifier)
//   - Signature-Input
//   - Signature
//   - x-ebay-enforce-signature: true
//
// # Signature Base
//
// The signed string has one line per configured signature parameter,
// followed by the @signature-params line:
//
//	"content-digest": sha-256=:X48E9qOokqqrvdts8nOJRJN3OWDUoyWxBf7kbu9DBPE=:
//	"x-ebay-signature-key": eyJ6aXAiOi...
//	"@method": POST
//	"@path": /sell/fulfillment/v1/order/14-00032-43825/issue_refund
//	"@authority": api.sandbox.ebay.com
//	"@signature-params": ("content-digest" "x-ebay-signature-key" "@method" "@path" "@authority");created=1663459378
//
// Supported derived parameters are @method, @path, @authority, @scheme,
// @query and @target-uri. Any other parameter is a header name looked up
// case-insensitively; missing headers are left out. Without a body the
// content-digest parameter is dropped from both the base and
// Signature-Input.
//
// # Generating Headers
//
//	key, err := httpsig.ParsePrivateKey(pemString, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	signer, err := httpsig.NewSigner(httpsig.SignerConfig{
//	    Key:             key,
//	    KeyID:           jwe,
//	    DigestAlgorithm: "sha-256",
//	    SignatureParams: []string{"content-digest", "x-ebay-signature-key", "@method", "@path", "@authority"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	headers := httpsig.NewHeaders("Content-Type", "application/json")
//	signed, err := signer.GenerateHeaders(headers, endpoint, http.MethodPost, body)
//
// # Client Transport
//
// NewTransport creates an http.RoundTripper that signs all outgoing
// requests:
//
//	client := &http.Client{
//	    Transport: httpsig.NewTransport(nil, httpsig.TransportConfig{
//	        Signer: signer,
//	    }),
//	}
package httpsig
