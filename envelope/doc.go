// Package envelope decodes the JSON envelope the payment service wraps every
// response in, and merges returned payloads into client-held resources.
package envelope
