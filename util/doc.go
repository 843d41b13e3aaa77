// Package util holds small parsing helpers shared by the client, the
// sandbox and the paykit command: human-readable byte sizes for body
// limits, and secret masking for logging merchant tokens.
package util
