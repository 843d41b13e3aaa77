package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/kbukum/paykit/validation"
)

func runRates(ctx context.Context, a *app, args []string) int {
	var (
		cf     clientFlags
		amount string
		asJSON bool
	)
	fs := a.newFlagSet("rates")
	fs.StringVar(&amount, "amount", "", "convert this amount of the base currency with the rate of CODE")
	fs.BoolVar(&asJSON, "json", false, "print JSON")
	cf.register(fs)
	if code := a.parse(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() > 1 {
		return a.usageError("rates takes at most one currency code")
	}
	code := fs.Arg(0)
	if code != "" && !validation.IsCurrencyCode(code) {
		return a.usageError("invalid currency code %q", code)
	}
	var value decimal.Decimal
	if amount != "" {
		if code == "" {
			return a.usageError("--amount needs a currency code")
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return a.usageError("invalid amount %q", amount)
		}
		value = d
	}

	s, err := a.open(ctx, &cf)
	if err != nil {
		return a.fail(err)
	}
	defer s.close(ctx)

	rates, err := s.client.GetRates(ctx)
	if err != nil {
		return a.fail(err)
	}

	if code == "" {
		if asJSON {
			return a.printJSON(rates.Rates())
		}
		tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CODE\tNAME\tRATE")
		for _, r := range rates.Rates() {
			fmt.Fprintf(tw, "%s\t%s\t%v\n", r.Code, r.Name, r.Value)
		}
		if err := tw.Flush(); err != nil {
			return a.fail(err)
		}
		return exitOK
	}

	if amount != "" {
		converted, err := rates.Convert(code, value)
		if err != nil {
			return a.fail(err)
		}
		fmt.Fprintln(a.stdout, converted.String())
		return exitOK
	}

	rate, err := rates.GetRate(code)
	if err != nil {
		return a.fail(err)
	}
	if asJSON {
		return a.printJSON(map[string]any{"code": code, "rate": rate})
	}
	fmt.Fprintln(a.stdout, rate)
	return exitOK
}
