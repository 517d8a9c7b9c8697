package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/unicode/norm"

	"github.com/Vepler/http-sdk/pkg/location"
)

var locationCmd = &cobra.Command{
	Use:   "location",
	Short: "Autocomplete places and match addresses to UPRNs",
}

var locationAutocompleteCmd = &cobra.Command{
	Use:   "autocomplete <text>",
	Short: "Suggest places, addresses or streets for a prefix",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")
		limit, _ := cmd.Flags().GetInt("limit")
		q := strings.Join(args, " ")

		sdk, err := newSDK()
		if err != nil {
			return err
		}
		defer sdk.Close()

		var out *location.AutocompleteResponse
		switch kind {
		case "place":
			out, err = sdk.Location.Autocomplete(cmd.Context(), location.AutocompleteParams{Q: q, Limit: &limit})
		case "address":
			out, err = sdk.Location.AutocompleteAddress(cmd.Context(), location.AddressParams{Q: q, Limit: &limit})
		case "street":
			out, err = sdk.Location.AutocompleteStreet(cmd.Context(), location.StreetParams{Q: q, Limit: &limit})
		default:
			return eris.Errorf("location autocomplete: unknown kind %q (want place, address or street)", kind)
		}
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), cfg.Output, out)
	},
}

var locationLookupCmd = &cobra.Command{
	Use:   "lookup <address>",
	Short: "Match a free-text address to UPRNs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sdk, err := newSDK()
		if err != nil {
			return err
		}
		defer sdk.Close()

		out, err := sdk.Location.Lookup(cmd.Context(), strings.Join(args, " "), lookupOptions(cmd))
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), cfg.Output, out)
	},
}

var locationLookupBatchCmd = &cobra.Command{
	Use:   "lookup-batch",
	Short: "Match every address in a file to UPRNs",
	Long:  "Reads one address per line (blank lines and lines starting with # are skipped) and looks them up concurrently. Use --file - for stdin.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		path, _ := cmd.Flags().GetString("file")
		concurrency := cfg.Batch.Concurrency
		if cmd.Flags().Changed("concurrency") {
			concurrency, _ = cmd.Flags().GetInt("concurrency")
			cfg.Batch.Concurrency = concurrency
		}

		var in io.Reader = os.Stdin
		if path != "-" {
			f, err := os.Open(path)
			if err != nil {
				return eris.Wrapf(err, "lookup-batch: open %s", path)
			}
			defer f.Close() //nolint:errcheck
			in = f
		}
		charset, _ := cmd.Flags().GetString("charset")
		in, err := charsetReader(in, charset)
		if err != nil {
			return err
		}
		inputs, err := readAddresses(in)
		if err != nil {
			return err
		}

		sdk, err := newSDK()
		if err != nil {
			return err
		}
		defer sdk.Close()

		results, err := lookupBatch(ctx, sdk.Location, inputs, concurrency, lookupOptions(cmd))
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), cfg.Output, results)
	},
}

func init() {
	locationAutocompleteCmd.Flags().String("kind", "place", "suggestion kind: place, address or street")
	locationAutocompleteCmd.Flags().Int("limit", 10, "maximum suggestions")

	for _, c := range []*cobra.Command{locationLookupCmd, locationLookupBatchCmd} {
		f := c.Flags()
		f.Int("confidence", location.DefaultConfidenceThreshold, "minimum match confidence (0-100)")
		f.Int("fallback", location.DefaultFallbackThreshold, "postcode fallback confidence (0-100)")
		f.Int("max-results", location.DefaultMaxResults, "maximum matches per address (1-10)")
		f.Bool("no-fallback", false, "disable postcode fallback matching")
		f.Bool("details", false, "include processing steps")
		f.Duration("timeout", location.DefaultLookupTimeout, "server-side processing budget (10s-5m)")
	}

	locationLookupBatchCmd.Flags().String("file", "", "file of addresses, one per line (- for stdin)")
	locationLookupBatchCmd.Flags().Int("concurrency", 4, "parallel lookups (overrides batch.concurrency)")
	locationLookupBatchCmd.Flags().String("charset", "utf-8", "input encoding, e.g. windows-1252 for spreadsheet exports")
	_ = locationLookupBatchCmd.MarkFlagRequired("file")

	locationCmd.AddCommand(locationAutocompleteCmd, locationLookupCmd, locationLookupBatchCmd)
	rootCmd.AddCommand(locationCmd)
}

func lookupOptions(cmd *cobra.Command) location.LookupOptions {
	f := cmd.Flags()
	confidence, _ := f.GetInt("confidence")
	fallback, _ := f.GetInt("fallback")
	maxResults, _ := f.GetInt("max-results")
	noFallback, _ := f.GetBool("no-fallback")
	details, _ := f.GetBool("details")
	timeout, _ := f.GetDuration("timeout")
	return location.LookupOptions{
		ConfidenceThreshold:      confidence,
		FallbackThreshold:        fallback,
		MaxResults:               maxResults,
		DisableFallback:          noFallback,
		IncludeProcessingDetails: details,
		Timeout:                  timeout,
	}
}

// addressInput is one address and the line it was read from.
type addressInput struct {
	Line    int
	Address string
}

// charsetReader decodes r from the named encoding to UTF-8.
func charsetReader(r io.Reader, charset string) (io.Reader, error) {
	if charset == "" {
		return r, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, eris.Wrapf(err, "lookup-batch: unsupported charset %q", charset)
	}
	return enc.NewDecoder().Reader(r), nil
}

// readAddresses returns the non-blank, non-comment lines of r in NFC form.
func readAddresses(r io.Reader) ([]addressInput, error) {
	var out []addressInput
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := norm.NFC.String(strings.TrimSpace(sc.Text()))
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		out = append(out, addressInput{Line: line, Address: text})
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrap(err, "lookup-batch: read addresses")
	}
	return out, nil
}

// lookupResult is the outcome for one input address. Error is set instead
// of Matches when the lookup failed.
type lookupResult struct {
	Line       int              `json:"line"`
	Address    string           `json:"address"`
	Confidence float64          `json:"confidence,omitempty"`
	Matches    []location.Match `json:"matches,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// lookupBatch runs up to concurrency lookups at once. A failed address is
// recorded in its result; only cancellation of ctx aborts the batch.
func lookupBatch(ctx context.Context, svc *location.Service, inputs []addressInput, concurrency int, opts location.LookupOptions) ([]lookupResult, error) {
	results := make([]lookupResult, len(inputs))
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))

	var failed atomic.Int64
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			res := lookupResult{Line: in.Line, Address: in.Address}
			out, err := svc.Lookup(gctx, in.Address, opts)
			switch {
			case err != nil:
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				res.Error = err.Error()
			case out.Error != nil:
				res.Error = out.Error.Message
			case out.Result != nil:
				res.Confidence = out.Result.Confidence
				res.Matches = out.Result.Matches
			}
			if res.Error != "" {
				failed.Add(1)
				zap.L().Warn("address lookup failed",
					zap.Int("line", in.Line),
					zap.String("error", res.Error),
				)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "lookup-batch: cancelled")
	}

	zap.L().Info("lookup batch complete",
		zap.Int("total", len(inputs)),
		zap.Int64("failed", failed.Load()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results, nil
}
