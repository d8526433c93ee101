package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/luckytour/fare-quotation-service/internal/domain"
)

type priceOptions struct {
	currency   string
	fareType   string
	commission float64
	lines      []string
	asJSON     bool
}

func priceCmd() *cobra.Command {
	opts := &priceOptions{}

	cmd := &cobra.Command{
		Use:   "price [net]",
		Short: "Compute the sell price of a net fare",
		Long: `Compute client sell prices with the agency markup and discount rules.

Either pass a single net amount:

  farecalc price 500 --fare-type PUB --commission 0

or one --line per passenger type, formatted TYPE:QTY:NET[:FARETYPE[:COMMISSION]]:

  farecalc price --line ADT:2:500 --line CHD:1:300:PNEG`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := opts.fareLines(args)
			if err != nil {
				return err
			}

			currency := strings.ToUpper(strings.TrimSpace(opts.currency))
			priced, err := domain.PriceFareLines(currency, lines)
			if err != nil {
				return err
			}

			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), priced)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tQTY\tNET\tFARE\tCOMMISSION\tSELL\tLABEL")
			for _, l := range priced {
				fmt.Fprintf(w, "%s\t%d\t%.2f\t%s\t%.2f\t%s\t%s\n",
					l.PassengerType, l.Quantity, l.Net.NetAmount, l.Net.FareType,
					l.Net.OverrideCommission, domain.FormatAmount(l.SellPrice.Amount), l.Label)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&opts.currency, "currency", "c", "USD", "Currency code for labels")
	cmd.Flags().StringVarP(&opts.fareType, "fare-type", "f", string(domain.FareTypePublished), "Fare type of a single net amount (PUB, PNEG)")
	cmd.Flags().Float64Var(&opts.commission, "commission", 0, "Over-commission of a single net amount")
	cmd.Flags().StringArrayVarP(&opts.lines, "line", "l", nil, "Passenger line TYPE:QTY:NET[:FARETYPE[:COMMISSION]] (repeatable)")
	cmd.Flags().BoolVarP(&opts.asJSON, "json", "j", false, "Output as JSON")

	return cmd
}

// fareLines builds the lines to price from either the positional net amount
// or the --line flags, never both.
func (o *priceOptions) fareLines(args []string) ([]domain.PassengerFare, error) {
	switch {
	case len(args) == 1 && len(o.lines) > 0:
		return nil, fmt.Errorf("pass either a net amount or --line, not both")
	case len(args) == 1:
		net, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid net amount %q", args[0])
		}
		return []domain.PassengerFare{{
			PassengerType: domain.PassengerAdult,
			Quantity:      1,
			Net: domain.NetFareInput{
				NetAmount:          net,
				FareType:           domain.ParseFareType(o.fareType),
				OverrideCommission: o.commission,
			},
		}}, nil
	case len(o.lines) > 0:
		lines := make([]domain.PassengerFare, 0, len(o.lines))
		for _, raw := range o.lines {
			l, err := parseLine(raw)
			if err != nil {
				return nil, err
			}
			lines = append(lines, l)
		}
		return lines, nil
	default:
		return nil, fmt.Errorf("a net amount or at least one --line is required")
	}
}

// parseLine reads TYPE:QTY:NET[:FARETYPE[:COMMISSION]].
func parseLine(raw string) (domain.PassengerFare, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) < 3 || len(parts) > 5 {
		return domain.PassengerFare{}, fmt.Errorf("invalid line %q: want TYPE:QTY:NET[:FARETYPE[:COMMISSION]]", raw)
	}

	qty, err := strconv.Atoi(parts[1])
	if err != nil {
		return domain.PassengerFare{}, fmt.Errorf("invalid quantity in line %q", raw)
	}
	net, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return domain.PassengerFare{}, fmt.Errorf("invalid net amount in line %q", raw)
	}

	line := domain.PassengerFare{
		PassengerType: domain.PassengerType(strings.ToUpper(parts[0])),
		Quantity:      qty,
		Net:           domain.NetFareInput{NetAmount: net, FareType: domain.FareTypePublished},
	}
	if len(parts) >= 4 {
		line.Net.FareType = domain.ParseFareType(parts[3])
	}
	if len(parts) == 5 {
		commission, err := strconv.ParseFloat(parts[4], 64)
		if err != nil {
			return domain.PassengerFare{}, fmt.Errorf("invalid commission in line %q", raw)
		}
		line.Net.OverrideCommission = commission
	}
	return line, nil
}
