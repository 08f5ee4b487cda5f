package httpsig

import (
	"strconv"
	"strings"
)

// signatureLabel names the single signature emitted in Signature and
// Signature-Input.
const signatureLabel = "sig1"

// BaseRequest carries the request components the signature base covers.
type BaseRequest struct {
	Method   string
	Endpoint string
	Headers  *Headers

	// Created is the signature creation time in seconds since the epoch.
	Created int64

	// BodyPresent reports whether the request carries a body. When false,
	// content-digest is removed from the covered parameters.
	BodyPresent bool
}

// coveredParams returns params in order, dropping content-digest when
// there is no body. The result is a fresh slice.
func coveredParams(params []string, bodyPresent bool) []string {
	out := make([]string, 0, len(params))
	for _, p := range params {
		if !bodyPresent && isContentDigest(p) {
			continue
		}

		out = append(out, p)
	}

	return out
}

// serializeSignatureParams renders the inner list and created parameter
// shared by Signature-Input and the @signature-params line:
//
//	("@method" "@path");created=1700000000
func serializeSignatureParams(params []string, created int64) string {
	var b strings.Builder

	b.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			b.WriteByte(' ')
		}

		b.WriteByte('"')
		b.WriteString(p)
		b.WriteByte('"')
	}
	b.WriteString(");created=")
	b.WriteString(strconv.FormatInt(created, 10))

	return b.String()
}

// BuildSignatureInput returns the Signature-Input header value:
// sig1=(<params>);created=<created>.
func BuildSignatureInput(params []string, bodyPresent bool, created int64) string {
	return signatureLabel + "=" + serializeSignatureParams(coveredParams(params, bodyPresent), created)
}

// BuildSignatureBase constructs the string to be signed. Each covered
// parameter contributes one line
//
//	"<name>": <value>\n
//
// and the final line, without a trailing newline, is
//
//	"@signature-params": (<params>);created=<created>
//
// Header parameters missing from req.Headers are skipped entirely. The
// @target-uri parameter carries the full endpoint but is labelled
// "@authority" on its line; the @signature-params list still names it
// "@target-uri".
func BuildSignatureBase(params []string, req BaseRequest) (string, error) {
	if len(params) == 0 {
		return "", ErrNoSignatureParams
	}

	covered := coveredParams(params, req.BodyPresent)

	var b strings.Builder

	for _, p := range covered {
		label, value, ok, err := paramLine(p, req)
		if err != nil {
			return "", err
		}

		if !ok {
			continue
		}

		b.WriteByte('"')
		b.WriteString(label)
		b.WriteString(`": `)
		b.WriteString(value)
		b.WriteByte('\n')
	}

	b.WriteString(`"@signature-params": `)
	b.WriteString(serializeSignatureParams(covered, req.Created))

	return b.String(), nil
}

// paramLine resolves the label and value of a single base line. ok is
// false when a header parameter is absent and the line must be skipped.
func paramLine(param string, req BaseRequest) (label, value string, ok bool, err error) {
	switch param {
	case ComponentMethod:
		return param, req.Method, true, nil

	case ComponentPath:
		value, err = endpointPath(req.Endpoint)

	case ComponentAuthority:
		value, err = endpointAuthority(req.Endpoint)

	case ComponentTargetURI:
		return ComponentAuthority, req.Endpoint, true, nil

	case ComponentScheme:
		value, err = endpointScheme(req.Endpoint)

	case ComponentQuery:
		value, err = endpointQuery(req.Endpoint)

	default:
		value, ok = req.Headers.Get(param)
		return param, value, ok, nil
	}

	if err != nil {
		return "", "", false, err
	}

	return param, value, true, nil
}
