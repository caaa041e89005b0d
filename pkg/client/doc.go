// Package client is a typed HTTP client for the relay backend's REST API.
//
// Each method maps one named operation onto exactly one HTTP request and
// decodes exactly one response. There is no retry, caching, or batching
// beyond the batch endpoints the backend exposes itself. Successful
// responses are unwrapped from the backend envelope; non-2xx responses are
// returned as *APIError carrying the server's message verbatim.
//
// # Usage
//
//	c := client.New("http://localhost:8080", client.WithToken(token))
//	page, err := c.ListGroups(ctx, types.GroupListParams{Page: 1, Size: 20})
//	if err != nil {
//	    var apiErr *client.APIError
//	    if errors.As(err, &apiErr) {
//	        fmt.Println(apiErr.StatusCode, apiErr.Message)
//	    }
//	}
//
// # Optional infrastructure
//
// WithMetrics, WithCircuitBreaker and WithRateLimit add request metrics,
// fail-fast behavior while the server is down, and client-side pacing. None
// of them alters a successful result.
package client
