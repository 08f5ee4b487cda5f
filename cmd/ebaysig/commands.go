package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vitalvas/ebaysig/config"
	"github.com/vitalvas/ebaysig/httpsig"
)

var errBodyConflict = errors.New("--body and --body-file are mutually exclusive")

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return cfg.Build()
}

func createSigner(c *cli.Context) (*httpsig.Signer, *zap.Logger, error) {
	logger, err := newLogger(c.Bool("debug"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	signer, err := config.NewSignerFromFile(c.String("config"), logger)
	if err != nil {
		return nil, nil, err
	}

	return signer, logger, nil
}

// parseHeaders turns repeated name:value flags into an ordered header set.
func parseHeaders(values []string) (*httpsig.Headers, error) {
	headers := httpsig.NewHeaders()

	for _, v := range values {
		name, value, ok := strings.Cut(v, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q, expected name:value", v)
		}

		headers.Set(name, strings.TrimSpace(value))
	}

	return headers, nil
}

// readBody returns nil when neither --body nor --body-file is set.
func readBody(c *cli.Context) ([]byte, error) {
	if c.IsSet("body") && c.IsSet("body-file") {
		return nil, errBodyConflict
	}

	if c.IsSet("body") {
		return []byte(c.String("body")), nil
	}

	if path := c.String("body-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read body file: %w", err)
		}

		if data == nil {
			data = []byte{}
		}

		return data, nil
	}

	return nil, nil
}

func headersCommand(c *cli.Context) error {
	signer, logger, err := createSigner(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	headers, err := parseHeaders(c.StringSlice("header"))
	if err != nil {
		return err
	}

	body, err := readBody(c)
	if err != nil {
		return err
	}

	out, err := signer.GenerateHeaders(headers, c.String("url"), strings.ToUpper(c.String("method")), body)
	if err != nil {
		return err
	}

	for name, value := range out.All() {
		fmt.Fprintf(c.App.Writer, "%s: %s\n", name, value)
	}

	return nil
}

func requestCommand(c *cli.Context) error {
	signer, logger, err := createSigner(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	headers, err := parseHeaders(c.StringSlice("header"))
	if err != nil {
		return err
	}

	body, err := readBody(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(c.String("method")), c.String("url"), reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header = headers.HTTPHeader()

	client := &http.Client{
		Transport: httpsig.NewTransport(nil, httpsig.TransportConfig{
			Signer:          signer,
			RequestIDHeader: c.String("request-id-header"),
		}),
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	logger.Debug("received response",
		zap.String("url", c.String("url")),
		zap.Int("status", resp.StatusCode),
	)

	fmt.Fprintln(c.App.Writer, resp.Status)

	if _, err := io.Copy(c.App.Writer, resp.Body); err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	return nil
}
