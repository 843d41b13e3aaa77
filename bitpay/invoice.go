package bitpay

import "context"

// Invoice statuses reported by the service.
const (
	InvoiceStatusNew       = "new"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusConfirmed = "confirmed"
	InvoiceStatusComplete  = "complete"
	InvoiceStatusExpired   = "expired"
	InvoiceStatusInvalid   = "invalid"
)

// Invoice is a payment request for a fixed price in one currency.
// Token and GUID are set by CreateInvoice; ID, URL, Status and the times are
// assigned by the service.
type Invoice struct {
	Price    float64 `json:"price" validate:"gt=0"`
	Currency string  `json:"currency" validate:"required,currency"`

	OrderID           string   `json:"orderId,omitempty"`
	ItemDesc          string   `json:"itemDesc,omitempty"`
	ItemCode          string   `json:"itemCode,omitempty"`
	PosData           string   `json:"posData,omitempty"`
	NotificationURL   string   `json:"notificationURL,omitempty" validate:"omitempty,url"`
	NotificationEmail string   `json:"notificationEmail,omitempty" validate:"omitempty,email"`
	RedirectURL       string   `json:"redirectURL,omitempty" validate:"omitempty,url"`
	TransactionSpeed  string   `json:"transactionSpeed,omitempty" validate:"omitempty,oneof=high medium low"`
	FullNotifications bool     `json:"fullNotifications,omitempty"`
	Physical          bool     `json:"physical,omitempty"`
	PaymentCurrencies []string `json:"paymentCurrencies,omitempty" validate:"omitempty,dive,currency"`
	Buyer             *Buyer   `json:"buyer,omitempty"`

	Token string `json:"token,omitempty"`
	GUID  string `json:"guid,omitempty"`

	ID              string `json:"id,omitempty"`
	URL             string `json:"url,omitempty"`
	Status          string `json:"status,omitempty"`
	ExceptionStatus any    `json:"exceptionStatus,omitempty"`
	InvoiceTime     int64  `json:"invoiceTime,omitempty"`
	ExpirationTime  int64  `json:"expirationTime,omitempty"`
	CurrentTime     int64  `json:"currentTime,omitempty"`
}

// Buyer identifies who pays an invoice.
type Buyer struct {
	Name       string `json:"name,omitempty"`
	Address1   string `json:"address1,omitempty"`
	Address2   string `json:"address2,omitempty"`
	Locality   string `json:"locality,omitempty"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      string `json:"phone,omitempty"`
	Notify     bool   `json:"notify,omitempty"`
}

// NewInvoice returns an invoice for price in currency.
func NewInvoice(price float64, currency string) *Invoice {
	return &Invoice{Price: price, Currency: currency}
}

// CreateInvoice sends inv with the session token and a fresh guid, then
// merges the service's answer into inv and returns it. Fields the service
// does not return are kept. Failures are CREATION_ERROR.
func (c *Client) CreateInvoice(ctx context.Context, inv *Invoice) (*Invoice, error) {
	return create(ctx, c, "CreateInvoice", "Invoice", pathInvoices, inv, func(i *Invoice) {
		i.Token = c.token
		i.GUID = c.guid()
	})
}

// GetInvoice fetches the invoice with the given id. Failures are QUERY_ERROR.
func (c *Client) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	return fetch[Invoice](ctx, c, "GetInvoice", "Invoice", pathInvoices, id, true)
}
