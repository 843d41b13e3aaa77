// Package httpclient is the transport of the payment client.
//
// An Adapter resolves request paths against a base URL, attaches the
// protocol headers (x-accept-version, x-bitpay-plugin-info and the API frame
// headers), sends the body verbatim and returns the raw status and body. It
// never interprets the status code: decoding the response envelope is left to
// the caller. Network and I/O failures come back as TRANSPORT_FAILURE errors.
//
//	a, err := httpclient.New(httpclient.Config{BaseURL: "https://test.bitpay.com/"})
//	resp, err := a.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "invoices/abc",
//	    Query:  []httpclient.QueryParam{{Key: "token", Value: token}},
//	})
package httpclient
