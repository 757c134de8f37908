package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/brojonat/gofferup/offerup"
	"github.com/brojonat/gofferup/server"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "gofferup",
		Usage: "Scrape OfferUp listing pages.",
		Commands: []*cli.Command{
			{
				Name:      "run",
				Aliases:   []string{"scrape"},
				Usage:     "Scrape a single listing URL and print the record.",
				ArgsUsage: "<url>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Value:   "json",
						Usage:   "Output format: json, text, or csv.",
					},
					&cli.BoolFlag{
						Name:    "download-image",
						Aliases: []string{"d"},
						Usage:   "Download the first image to local storage.",
					},
					&cli.StringFlag{
						Name:  "image-dir",
						Usage: "Directory to save downloaded images.",
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Show scraping progress on stderr.",
					},
				},
				Action: func(ctx *cli.Context) error {
					return scrape_listing(ctx)
				},
			},
			{
				Name:  "run-http-server",
				Usage: "Run the HTTP API on the specified port.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "listen-port",
						Aliases: []string{"port", "p"},
						Value:   "8080",
						EnvVars: []string{"LISTEN_PORT"},
						Usage:   "Port to listen on.",
					},
				},
				Action: func(ctx *cli.Context) error {
					return serve_http(ctx)
				},
			},
		}}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if offerup.ErrorKind(err) == offerup.KindInterrupted || errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

func getLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}

func scrape_listing(ctx *cli.Context) error {
	rawURL := ctx.Args().First()
	if rawURL == "" {
		return fmt.Errorf("missing required argument: listing URL")
	}

	logger := getLogger(ctx.Bool("verbose"))
	cfg := offerup.DefaultConfig()
	if dir := ctx.String("image-dir"); dir != "" {
		cfg.ImageDir = dir
	}
	scraper, err := offerup.NewScraper(cfg, logger)
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt)
	defer stop()

	rec, err := scraper.Scrape(sigCtx, rawURL, offerup.ScrapeOptions{
		DownloadImage: ctx.Bool("download-image"),
	})
	if err != nil {
		return err
	}

	out, err := formatListing(rec, ctx.String("output"))
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func serve_http(ctx *cli.Context) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	scraper, err := offerup.NewScraper(offerup.DefaultConfig(), logger)
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt)
	defer stop()

	return server.RunHTTPServer(
		sigCtx,
		logger,
		scraper,
		ctx.String("listen-port"),
	)
}
