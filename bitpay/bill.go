package bitpay

import (
	"context"

	"github.com/shopspring/decimal"
)

// Bill statuses reported by the service.
const (
	BillStatusDraft    = "draft"
	BillStatusSent     = "sent"
	BillStatusNew      = "new"
	BillStatusPaid     = "paid"
	BillStatusComplete = "complete"
)

// Bill is an itemized request for payment sent to an email address.
type Bill struct {
	Number   string  `json:"number,omitempty"`
	Currency string  `json:"currency" validate:"required,currency"`
	Email    string  `json:"email" validate:"required,email"`
	Items    []*Item `json:"items" validate:"required,min=1,dive,required"`

	Name              string   `json:"name,omitempty"`
	Address1          string   `json:"address1,omitempty"`
	Address2          string   `json:"address2,omitempty"`
	City              string   `json:"city,omitempty"`
	State             string   `json:"state,omitempty"`
	Zip               string   `json:"zip,omitempty"`
	Country           string   `json:"country,omitempty"`
	Cc                []string `json:"cc,omitempty" validate:"omitempty,dive,email"`
	Phone             string   `json:"phone,omitempty"`
	DueDate           string   `json:"dueDate,omitempty"`
	PassProcessingFee bool     `json:"passProcessingFee,omitempty"`

	Token string `json:"token,omitempty"`

	ID          string `json:"id,omitempty"`
	URL         string `json:"url,omitempty"`
	Status      string `json:"status,omitempty"`
	CreatedDate string `json:"createdDate,omitempty"`
	Merchant    string `json:"merchant,omitempty"`
}

// Item is one line of a bill.
type Item struct {
	ID          string  `json:"id,omitempty"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"gt=0"`
	Quantity    int     `json:"quantity" validate:"gt=0"`
}

// NewBill returns a bill numbered number, payable in currency by email.
func NewBill(number, currency, email string, items []*Item) *Bill {
	return &Bill{Number: number, Currency: currency, Email: email, Items: items}
}

// Amount is price times quantity, computed exactly.
func (i *Item) Amount() decimal.Decimal {
	return decimal.NewFromFloat(i.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Total sums the amounts of all items.
func (b *Bill) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.Items {
		if item != nil {
			total = total.Add(item.Amount())
		}
	}
	return total
}

// CreateBill sends bill with the session token, then merges the service's
// answer into bill and returns it. Failures are CREATION_ERROR.
func (c *Client) CreateBill(ctx context.Context, bill *Bill) (*Bill, error) {
	return create(ctx, c, "CreateBill", "Bill", pathBills, bill, func(b *Bill) {
		b.Token = c.token
	})
}

// GetBill fetches the bill with the given id. Failures are QUERY_ERROR.
func (c *Client) GetBill(ctx context.Context, id string) (*Bill, error) {
	return fetch[Bill](ctx, c, "GetBill", "Bill", pathBills, id, true)
}

// DeliverBill asks the service to email the bill. billToken is the token of
// the bill itself, as returned by CreateBill. The service's answer is
// returned as plain text, "Success" when the bill was sent. Failures are
// DELIVERY_ERROR.
func (c *Client) DeliverBill(ctx context.Context, billID, billToken string) (string, error) {
	return deliver(ctx, c, "DeliverBill", pathBills, billID, billToken)
}
