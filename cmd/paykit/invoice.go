package main

import (
	"context"

	"github.com/kbukum/paykit/bitpay"
	"github.com/kbukum/paykit/validation"
)

func runInvoice(ctx context.Context, a *app, args []string) int {
	if len(args) == 0 {
		return a.usageError("invoice needs a subcommand: create or get")
	}
	switch args[0] {
	case "create":
		return runInvoiceCreate(ctx, a, args[1:])
	case "get":
		return runInvoiceGet(ctx, a, args[1:])
	default:
		return a.usageError("unknown invoice subcommand %q", args[0])
	}
}

func runInvoiceCreate(ctx context.Context, a *app, args []string) int {
	var (
		cf    clientFlags
		inv   = bitpay.NewInvoice(0, bitpay.USD)
		buyer bitpay.Buyer
	)
	fs := a.newFlagSet("invoice create")
	fs.Float64Var(&inv.Price, "price", 0, "amount to charge")
	fs.StringVar(&inv.Currency, "currency", bitpay.USD, "currency of the price")
	fs.StringVar(&inv.OrderID, "order-id", "", "merchant order reference")
	fs.StringVar(&inv.ItemDesc, "item-desc", "", "description shown to the buyer")
	fs.StringVar(&inv.ItemCode, "item-code", "", "item code")
	fs.StringVar(&inv.PosData, "pos-data", "", "opaque data returned in notifications")
	fs.StringVar(&inv.NotificationURL, "notification-url", "", "URL notified on status changes")
	fs.StringVar(&inv.NotificationEmail, "notification-email", "", "merchant email notified on status changes")
	fs.StringVar(&inv.RedirectURL, "redirect-url", "", "URL the buyer returns to")
	fs.StringVar(&inv.TransactionSpeed, "transaction-speed", "", "high, medium or low")
	fs.BoolVar(&inv.FullNotifications, "full-notifications", false, "notify on every status change")
	fs.StringSliceVar(&inv.PaymentCurrencies, "payment-currency", nil, "accepted payment currency, repeatable")
	fs.StringVar(&buyer.Name, "buyer-name", "", "buyer name")
	fs.StringVar(&buyer.Email, "buyer-email", "", "buyer email")
	fs.BoolVar(&buyer.Notify, "buyer-notify", false, "email the buyer")
	cf.register(fs)
	if code := a.parse(fs, args); code >= 0 {
		return code
	}

	if buyer != (bitpay.Buyer{}) {
		inv.Buyer = &buyer
	}
	if err := validation.Validate(inv); err != nil {
		return a.usageError("invalid invoice: %v", err)
	}

	s, err := a.open(ctx, &cf)
	if err != nil {
		return a.fail(err)
	}
	defer s.close(ctx)

	created, err := s.client.CreateInvoice(ctx, inv)
	if err != nil {
		return a.fail(err)
	}
	return a.printJSON(created)
}

func runInvoiceGet(ctx context.Context, a *app, args []string) int {
	var cf clientFlags
	fs := a.newFlagSet("invoice get")
	cf.register(fs)
	if code := a.parse(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 1 {
		return a.usageError("invoice get needs exactly one invoice id")
	}

	s, err := a.open(ctx, &cf)
	if err != nil {
		return a.fail(err)
	}
	defer s.close(ctx)

	inv, err := s.client.GetInvoice(ctx, fs.Arg(0))
	if err != nil {
		return a.fail(err)
	}
	return a.printJSON(inv)
}
