// Package validation checks resource input before it reaches the payment
// service or the sandbox.
//
// Struct tag validation uses go-playground/validator with json field names
// and a "currency" tag for currency codes:
//
//	type Item struct {
//	    Price    float64 `json:"price" validate:"gt=0"`
//	    Currency string  `json:"currency" validate:"required,currency"`
//	}
//	err := validation.Validate(item)
//
// Programmatic validation collects errors:
//
//	v := validation.New()
//	v.Required("id", id).Currency("currency", code)
//	err := v.Err()
package validation
