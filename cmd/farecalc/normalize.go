package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/luckytour/fare-quotation-service/internal/adapter/provider/glas"
	"github.com/luckytour/fare-quotation-service/internal/domain"
)

type normalizeOptions struct {
	detail      bool
	searchID    string
	quotationID string
	maxResults  int
	maxStops    int
	asJSON      bool
}

func normalizeCmd() *cobra.Command {
	opts := &normalizeOptions{}

	cmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Normalize a saved GDS search or detail response",
		Long: `Decode a GDS response saved as JSON and print the quotations the service
would build from it. Reads stdin when the file is "-".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			quotations, err := opts.normalize(raw)
			if err != nil {
				return err
			}

			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), quotations)
			}
			return printQuotations(cmd.OutOrStdout(), quotations)
		},
	}

	cmd.Flags().BoolVarP(&opts.detail, "detail", "d", false, "Input is a quotation detail response")
	cmd.Flags().StringVar(&opts.searchID, "search-id", "", "Search id used when the detail omits it")
	cmd.Flags().StringVar(&opts.quotationID, "quotation-id", "", "Quotation id used when the detail omits it")
	cmd.Flags().IntVarP(&opts.maxResults, "max-results", "n", glas.DefaultMaxResults, "Maximum non-error records kept (0 for all)")
	cmd.Flags().IntVar(&opts.maxStops, "max-stops", -1, "Drop quotations with more stops (-1 for no limit)")
	cmd.Flags().BoolVarP(&opts.asJSON, "json", "j", false, "Output as JSON")

	return cmd
}

func (o *normalizeOptions) normalize(raw []byte) ([]domain.Quotation, error) {
	if o.detail {
		var resp glas.DetailResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, fmt.Errorf("decoding detail response: %w", err)
		}
		q, err := glas.NormalizeDetail(&resp, domain.QuoteRef{SearchID: o.searchID, QuotationID: o.quotationID})
		if err != nil {
			return nil, err
		}
		return []domain.Quotation{q}, nil
	}

	var resp glas.SearchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	opts := glas.AssembleOptions{MaxResults: o.maxResults}
	if o.maxStops >= 0 {
		maxStops := o.maxStops
		opts.MaxStops = &maxStops
	}
	return glas.NormalizeSearch(&resp, opts).Quotations, nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return raw, nil
}

func printQuotations(out io.Writer, quotations []domain.Quotation) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCARRIER\tPRICE\tSTOPS\tDURATION\tCHECKED BAG")
	for _, q := range quotations {
		minutes := q.TotalDurationMinutes()
		fmt.Fprintf(w, "%s\t%s\t%s %s\t%d\t%dh %dm\t%s\n",
			q.ID, q.ValidatingCarrier, q.Currency, domain.FormatAmount(q.SellPriceAmount),
			q.StopCount, minutes/60, minutes%60, q.Baggage.CheckedBag.Label)
		for _, f := range q.PassengerFares {
			fmt.Fprintf(w, "\t\t%s\t\t\t\n", f.Label)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "%d quotation(s)\n", len(quotations))
	return err
}
