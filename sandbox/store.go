package sandbox

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/paykit/bitpay"
	"github.com/kbukum/paykit/observability"
)

// Store keeps invoices, bills and the rate table in memory. It is safe for
// concurrent use.
type Store struct {
	mu       sync.RWMutex
	invoices map[string]bitpay.Invoice
	bills    map[string]bitpay.Bill
	rates    []bitpay.Rate
}

// NewStore returns an empty store serving rates.
func NewStore(rates []bitpay.Rate) *Store {
	return &Store{
		invoices: make(map[string]bitpay.Invoice),
		bills:    make(map[string]bitpay.Bill),
		rates:    append([]bitpay.Rate(nil), rates...),
	}
}

// newID returns a 22 character identifier in the style of the service.
func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:22]
}

// PutInvoice stores inv and returns the stored copy.
func (s *Store) PutInvoice(inv bitpay.Invoice) bitpay.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices[inv.ID] = inv
	return inv
}

// Invoice returns the invoice with the given id.
func (s *Store) Invoice(id string) (bitpay.Invoice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.invoices[id]
	return inv, ok
}

// PutBill stores bill and returns the stored copy.
func (s *Store) PutBill(bill bitpay.Bill) bitpay.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bills[bill.ID] = bill
	return bill
}

// Bill returns the bill with the given id.
func (s *Store) Bill(id string) (bitpay.Bill, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bill, ok := s.bills[id]
	return bill, ok
}

// UpdateBill applies fn to the stored bill under the write lock.
func (s *Store) UpdateBill(id string, fn func(*bitpay.Bill) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bill, ok := s.bills[id]
	if !ok {
		return errNotFound
	}
	if err := fn(&bill); err != nil {
		return err
	}
	s.bills[id] = bill
	return nil
}

// Rates returns a copy of the rate table.
func (s *Store) Rates() []bitpay.Rate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]bitpay.Rate(nil), s.rates...)
}

// SetRates replaces the rate table.
func (s *Store) SetRates(rates []bitpay.Rate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates = append([]bitpay.Rate(nil), rates...)
}

// Counts returns the number of stored invoices and bills.
func (s *Store) Counts() (invoices, bills int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.invoices), len(s.bills)
}

// CheckHealth reports the store as up with its sizes.
func (s *Store) CheckHealth(context.Context) observability.Health {
	invoices, bills := s.Counts()
	return observability.Health{
		Name:   "store",
		Status: observability.HealthStatusUp,
		Details: map[string]string{
			"invoices": strconv.Itoa(invoices),
			"bills":    strconv.Itoa(bills),
			"rates":    strconv.Itoa(len(s.Rates())),
		},
	}
}
