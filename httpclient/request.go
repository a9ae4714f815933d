package httpclient

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Request describes a single HTTP request.
type Request struct {
	// Method is the HTTP method (GET, POST, ...).
	Method string

	// Path is the request path, joined to the client's BaseURL.
	Path string

	// Headers are request-specific headers. They override client
	// default headers on conflict.
	Headers map[string]string

	// Query holds URL query parameters.
	Query map[string]string

	// Body is the request body. Readers, byte slices, and strings are
	// sent as-is, *MultipartBody is encoded as multipart/form-data, and
	// any other value is marshaled as JSON.
	Body any

	// Auth overrides the client's default authentication for this
	// request only.
	Auth *AuthConfig
}

// Response holds an HTTP response with its body fully read.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError reports whether the status code indicates an error.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// DecodeJSON unmarshals the response body into v.
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("httpclient: decode response: %w", err)
	}
	return nil
}
