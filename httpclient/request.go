package httpclient

import (
	"net/url"
	"strings"
)

// QueryParam is one query string pair. Requests keep parameters in a slice
// so they are encoded in the order given.
type QueryParam struct {
	Key   string
	Value string
}

// Request describes an outbound HTTP request.
type Request struct {
	// Method is GET or POST.
	Method string
	// Path is resolved against the adapter's BaseURL, e.g. "invoices/abc".
	Path string
	// Query parameters, encoded in order.
	Query []QueryParam
	// Body is sent verbatim. Only POST requests carry one.
	Body []byte
	// Headers are request-specific headers.
	Headers map[string]string
}

// EncodeQuery percent-encodes params as key=value pairs joined by '&',
// preserving their order.
func EncodeQuery(params []QueryParam) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// Response is the raw result of an exchange. The adapter never interprets
// StatusCode; the envelope in Body decides success or failure.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
