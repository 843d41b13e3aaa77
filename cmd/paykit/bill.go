package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/kbukum/paykit/bitpay"
	"github.com/kbukum/paykit/validation"
)

func runBill(ctx context.Context, a *app, args []string) int {
	if len(args) == 0 {
		return a.usageError("bill needs a subcommand: create, get or deliver")
	}
	switch args[0] {
	case "create":
		return runBillCreate(ctx, a, args[1:])
	case "get":
		return runBillGet(ctx, a, args[1:])
	case "deliver":
		return runBillDeliver(ctx, a, args[1:])
	default:
		return a.usageError("unknown bill subcommand %q", args[0])
	}
}

func runBillCreate(ctx context.Context, a *app, args []string) int {
	var (
		cf    clientFlags
		bill  = bitpay.NewBill("", bitpay.USD, "", nil)
		items []string
	)
	fs := a.newFlagSet("bill create")
	fs.StringVar(&bill.Number, "number", "", "bill number")
	fs.StringVar(&bill.Currency, "currency", bitpay.USD, "currency of the items")
	fs.StringVar(&bill.Email, "email", "", "recipient email")
	fs.StringArrayVar(&items, "item", nil, `line item as "description:price:quantity", repeatable`)
	fs.StringVar(&bill.Name, "name", "", "recipient name")
	fs.StringVar(&bill.DueDate, "due-date", "", "due date, RFC 3339")
	fs.StringSliceVar(&bill.Cc, "cc", nil, "carbon copy email, repeatable")
	fs.BoolVar(&bill.PassProcessingFee, "pass-processing-fee", false, "charge the processing fee to the payer")
	cf.register(fs)
	if code := a.parse(fs, args); code >= 0 {
		return code
	}

	for _, raw := range items {
		item, err := parseItem(raw)
		if err != nil {
			return a.usageError("%v", err)
		}
		bill.Items = append(bill.Items, item)
	}
	if err := validation.Validate(bill); err != nil {
		return a.usageError("invalid bill: %v", err)
	}

	s, err := a.open(ctx, &cf)
	if err != nil {
		return a.fail(err)
	}
	defer s.close(ctx)

	created, err := s.client.CreateBill(ctx, bill)
	if err != nil {
		return a.fail(err)
	}
	return a.printJSON(created)
}

// parseItem reads "description:price:quantity". The description may itself
// contain colons; quantity defaults to 1 when omitted as "description:price".
func parseItem(raw string) (*bitpay.Item, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 {
		return nil, fmt.Errorf("item %q: want description:price[:quantity]", raw)
	}

	if n := len(parts); n >= 3 {
		price, perr := strconv.ParseFloat(parts[n-2], 64)
		quantity, qerr := strconv.Atoi(parts[n-1])
		if perr == nil && qerr == nil {
			return &bitpay.Item{
				Description: strings.Join(parts[:n-2], ":"),
				Price:       price,
				Quantity:    quantity,
			}, nil
		}
	}

	n := len(parts)
	price, err := strconv.ParseFloat(parts[n-1], 64)
	if err != nil {
		return nil, fmt.Errorf("item %q: bad price: %w", raw, err)
	}
	return &bitpay.Item{
		Description: strings.Join(parts[:n-1], ":"),
		Price:       price,
		Quantity:    1,
	}, nil
}

func runBillGet(ctx context.Context, a *app, args []string) int {
	var cf clientFlags
	fs := a.newFlagSet("bill get")
	cf.register(fs)
	if code := a.parse(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 1 {
		return a.usageError("bill get needs exactly one bill id")
	}

	s, err := a.open(ctx, &cf)
	if err != nil {
		return a.fail(err)
	}
	defer s.close(ctx)

	bill, err := s.client.GetBill(ctx, fs.Arg(0))
	if err != nil {
		return a.fail(err)
	}
	return a.printJSON(bill)
}

func runBillDeliver(ctx context.Context, a *app, args []string) int {
	var (
		cf        clientFlags
		billToken string
	)
	fs := a.newFlagSet("bill deliver")
	fs.StringVar(&billToken, "bill-token", "", "token returned when the bill was created")
	cf.register(fs)
	if code := a.parse(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 1 {
		return a.usageError("bill deliver needs exactly one bill id")
	}
	if err := validation.Required("bill-token", billToken); err != nil {
		return a.usageError("%v", err)
	}

	s, err := a.open(ctx, &cf)
	if err != nil {
		return a.fail(err)
	}
	defer s.close(ctx)

	result, err := s.client.DeliverBill(ctx, fs.Arg(0), billToken)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.stdout, result)
	return exitOK
}
