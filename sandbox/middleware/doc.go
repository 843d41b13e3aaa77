// Package middleware holds the net/http middleware of the sandbox server:
// request ids, panic recovery, request logging and body size limits.
package middleware
