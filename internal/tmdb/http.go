package tmdb

import (
	"context"
	"net/http"

	"github.com/lepinkainen/reelmeta/internal/dates"
	"github.com/lepinkainen/reelmeta/internal/envelope"
	"github.com/lepinkainen/reelmeta/internal/request"
)

// get performs an authenticated GET against the API. Non-2xx responses come
// back as error envelopes; successful payloads are date-normalized.
func (c *Client) get(ctx context.Context, path string, query request.Query) envelope.Response[Payload] {
	q := request.Query{"api_key": c.apiKey}
	for k, v := range query {
		q[k] = v
	}

	resp := request.RequireSuccess(request.Do[Payload](ctx, c.executor, request.Request{
		Method:  http.MethodGet,
		Address: c.baseURL + path,
		Query:   q,
	}))
	if resp.HasError() {
		return resp
	}
	return envelope.Success(dates.NormalizeMap(resp.Data()), resp.Code())
}

// optString drops empty strings from a query.
func optString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// optInt drops non-positive numbers from a query.
func optInt(n int) any {
	if n <= 0 {
		return nil
	}
	return n
}

func optBool(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}
