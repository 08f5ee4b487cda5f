package main

import (
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	requestFlags := []cli.Flag{
		&cli.StringFlag{
			Name:     "url",
			Usage:    "Full request URL, e.g. https://api.ebay.com/sell/fulfillment/v1/order",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "method",
			Usage: "HTTP method",
			Value: "GET",
		},
		&cli.StringSliceFlag{
			Name:    "header",
			Aliases: []string{"H"},
			Usage:   "Request header as name:value, repeatable",
		},
		&cli.StringFlag{
			Name:  "body",
			Usage: "Request body",
		},
		&cli.StringFlag{
			Name:  "body-file",
			Usage: "Read the request body from a file",
		},
	}

	return &cli.App{
		Name:  "ebaysig",
		Usage: "Generate eBay HTTP message signature headers",
		Description: `Builds the Content-Digest, x-ebay-signature-key, Signature-Input and
Signature headers for a request using the key and parameters in a JSON or
YAML configuration file.`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Path to the signature configuration (.json, .yaml)",
				EnvVars:  []string{"EBAYSIG_CONFIG"},
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "headers",
				Usage:  "Print the signed header set",
				Flags:  requestFlags,
				Action: headersCommand,
			},
			{
				Name:  "request",
				Usage: "Send the signed request and print the response",
				Flags: append(requestFlags,
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Request timeout",
						Value: 30 * time.Second,
					},
					&cli.StringFlag{
						Name:  "request-id-header",
						Usage: "Header carrying a generated request id, empty to disable",
						Value: "X-Request-Id",
					},
				),
				Action: requestCommand,
			},
		},
	}
}
