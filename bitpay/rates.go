package bitpay

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kbukum/paykit/errors"
)

// ErrRateNotFound is returned for a currency code missing from a rate table.
var ErrRateNotFound = stderrors.New("rate not found")

// Rate is the price of one unit of the reference currency in Code.
type Rate struct {
	Name  string  `json:"name" mapstructure:"name"`
	Code  string  `json:"code" mapstructure:"code"`
	Value float64 `json:"rate" mapstructure:"rate"`
}

// Rates is an exchange rate table. It is owned by the caller: Update
// replaces the whole table and must not run concurrently with reads.
type Rates struct {
	rates  []Rate
	client *Client
}

// NewRates returns a table of rates that is not bound to a client.
func NewRates(rates []Rate) *Rates {
	return &Rates{rates: append([]Rate(nil), rates...)}
}

// GetRates fetches the current rate table. Failures are QUERY_ERROR.
func (c *Client) GetRates(ctx context.Context) (*Rates, error) {
	rates, err := listRates(ctx, c, "GetRates", pathRates)
	if err != nil {
		return nil, err
	}
	return &Rates{rates: rates, client: c}, nil
}

// Rates returns a copy of the table in service order.
func (r *Rates) Rates() []Rate {
	return append([]Rate(nil), r.rates...)
}

// Len returns the number of rates in the table.
func (r *Rates) Len() int { return len(r.rates) }

// GetRate returns the rate for code. Lookup is exact and case-sensitive.
func (r *Rates) GetRate(code string) (float64, error) {
	for _, rate := range r.rates {
		if rate.Code == code {
			return rate.Value, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrRateNotFound, code)
}

// Convert prices amount of the reference currency in code.
func (r *Rates) Convert(code string, amount decimal.Decimal) (decimal.Decimal, error) {
	value, err := r.GetRate(code)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(decimal.NewFromFloat(value)), nil
}

// Update re-fetches the table through the client that produced it and
// replaces its contents. On failure the table is left as it was and the
// error is a QUERY_ERROR.
func (r *Rates) Update(ctx context.Context) error {
	if r.client == nil {
		return errors.Scope(errors.OpQuery,
			errors.New(errors.KindTransport, "rate table is not bound to a client").WithRetryable(false))
	}
	rates, err := listRates(ctx, r.client, "UpdateRates", pathRates)
	if err != nil {
		return err
	}
	r.rates = rates
	return nil
}
