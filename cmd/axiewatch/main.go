// Package main serves as the entry-point for the Axie listing report.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/franco-grobler/axie-price-watch/internal/config"
	"github.com/franco-grobler/axie-price-watch/internal/logging"
	"github.com/franco-grobler/axie-price-watch/internal/report"
	"github.com/franco-grobler/axie-price-watch/pkg/marketplace"
	"github.com/franco-grobler/axie-price-watch/pkg/printer"
	"github.com/franco-grobler/axie-price-watch/pkg/quote"
	"github.com/franco-grobler/axie-price-watch/pkg/transport"
)

func main() {
	// Setup Context with graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cfg, loadErr := config.Load()

	cmd := &cobra.Command{
		Use:           "axiewatch",
		Short:         "List Axies for sale with their USD and ETH prices",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if loadErr != nil {
				return printErr(stderr, loadErr)
			}
			cfg.Normalize()
			if err := cfg.Validate(); err != nil {
				return printErr(stderr, err)
			}

			log := logging.New(stderr, cfg.LogFormat, cfg.LogLevel)
			runner := newRunner(cfg, log, stdout)

			sum := runner.Run(cmd.Context())
			log.Debug("run complete",
				"fetched", sum.Fetched,
				"displayed", sum.Displayed,
				"skipped", sum.Skipped,
			)
			return nil
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.IntSliceVar(&cfg.BreedCounts, "breed-count", cfg.BreedCounts, "breed counts to match")
	flags.IntVar(&cfg.Size, "size", cfg.Size, "number of listings to fetch")
	flags.IntVar(&cfg.From, "from", cfg.From, "offset of the first listing")
	flags.StringVar(&cfg.RateSource, "rate-source", cfg.RateSource, "exchange rate source (coingecko|binance)")
	flags.StringVarP(&cfg.Output, "output", "o", cfg.Output, "output format (text|json)")

	return cmd
}

func printErr(w io.Writer, err error) error {
	fmt.Fprintf(w, "axiewatch: %v\n", err)
	return err
}

// newRunner builds the report from configuration.
func newRunner(cfg config.Config, log *slog.Logger, stdout io.Writer) *report.Runner {
	httpClient := transport.NewHTTPClient(cfg.HTTPTimeout)

	var rates quote.Source
	switch cfg.RateSource {
	case config.RateSourceBinance:
		rates = quote.NewBinanceTicker(transport.NewCoderClient(), cfg.BinanceWSURL, cfg.TickerSymbol)
	default:
		rates = quote.NewCoinGecko(httpClient, cfg.CoinGeckoURL, cfg.Asset, cfg.VsCurrency)
	}

	var out printer.Printer
	switch cfg.Output {
	case config.OutputJSON:
		out = printer.NewJSONLines(stdout)
	default:
		out = printer.NewStdout(stdout, printer.Units{Fiat: cfg.FiatSymbol, Crypto: cfg.CryptoSymbol})
	}

	return &report.Runner{
		Rates:    rates,
		Listings: marketplace.NewClient(httpClient, cfg.MarketplaceURL),
		Printer:  out,
		Logger:   log,
		Criteria: marketplace.Criteria{
			AuctionType: cfg.AuctionType,
			BreedCounts: cfg.BreedCounts,
			From:        cfg.From,
			Size:        cfg.Size,
		},
	}
}
