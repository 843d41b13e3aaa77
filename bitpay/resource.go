package bitpay

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/url"

	"github.com/kbukum/paykit/envelope"
	"github.com/kbukum/paykit/errors"
	"github.com/kbukum/paykit/httpclient"
)

// create prepares resource, posts it to path and merges the returned payload
// back into it. Fields the payload does not mention keep their value.
// Failures are CREATION_ERROR.
func create[T any](ctx context.Context, c *Client, op, kind, path string, resource *T, prepare func(*T)) (*T, error) {
	ctx, finish := c.begin(ctx, op, errors.OpCreation, path)

	prepare(resource)
	body, err := json.Marshal(resource)
	if err != nil {
		return nil, finish(errors.Serialization(kind, err))
	}

	payload, err := c.exchange(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
	if err != nil {
		return nil, finish(err)
	}

	if err := envelope.MergeInto(resource, payload); err != nil {
		return nil, finish(errors.Deserialization(kind, err))
	}
	return resource, finish(nil)
}

// fetch reads path/id into a fresh value. The session token is sent as the
// token query parameter when withToken is set. A null payload is a
// SERIALIZATION_FAILURE. Failures are QUERY_ERROR.
func fetch[T any](ctx context.Context, c *Client, op, kind, path, id string, withToken bool) (*T, error) {
	resourcePath := path + "/" + url.PathEscape(id)
	ctx, finish := c.begin(ctx, op, errors.OpQuery, resourcePath)

	req := httpclient.Request{Method: http.MethodGet, Path: resourcePath}
	if withToken {
		req.Query = c.tokenQuery()
	}
	payload, err := c.exchange(ctx, req)
	if err != nil {
		return nil, finish(err)
	}

	if bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		return nil, finish(errors.Deserialization(kind, errNullPayload))
	}
	var out T
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, finish(errors.Deserialization(kind, err))
	}
	return &out, finish(nil)
}

var errNullPayload = stderrors.New("payload is null")

type deliveryRequest struct {
	Token string `json:"token"`
}

// deliver posts a delivery request for path/id and returns the payload text
// without surrounding quotes. Failures are DELIVERY_ERROR.
func deliver(ctx context.Context, c *Client, op, path, id, deliveryToken string) (string, error) {
	resourcePath := path + "/" + url.PathEscape(id) + "/" + pathDeliveries
	ctx, finish := c.begin(ctx, op, errors.OpDelivery, resourcePath)

	body, err := json.Marshal(deliveryRequest{Token: deliveryToken})
	if err != nil {
		return "", finish(errors.Serialization("delivery", err))
	}

	payload, err := c.exchange(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   resourcePath,
		Body:   body,
	})
	if err != nil {
		return "", finish(err)
	}
	return envelope.Unquote(payload), finish(nil)
}

// listRates reads the rate list at path. Failures are QUERY_ERROR.
func listRates(ctx context.Context, c *Client, op, path string) ([]Rate, error) {
	ctx, finish := c.begin(ctx, op, errors.OpQuery, path)

	payload, err := c.exchange(ctx, httpclient.Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return nil, finish(err)
	}

	var rates []Rate
	if err := json.Unmarshal(payload, &rates); err != nil {
		return nil, finish(errors.Deserialization("Rates", err))
	}
	return rates, finish(nil)
}
