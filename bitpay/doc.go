// Package bitpay is a light client for a BitPay-style payment API.
//
// A Client is built once from a config.Config and is safe for concurrent
// use. It creates and fetches invoices and bills, delivers bills by email
// and reads the exchange rate table:
//
//	cfg := config.Default()
//	cfg.Environment = config.EnvTest
//	cfg.Token = os.Getenv("PAYKIT_TOKEN")
//
//	client, err := bitpay.New(cfg)
//	if err != nil {
//	    return err
//	}
//	inv, err := client.CreateInvoice(ctx, bitpay.NewInvoice(30.0, bitpay.USD))
//
// Every failure is an *errors.AppError scoped to the class of the operation
// that produced it: CREATION_ERROR, QUERY_ERROR, DELIVERY_ERROR, or
// CONNECTION_ERROR from New. Nothing is retried.
package bitpay
