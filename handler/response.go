package handler

import (
	"encoding/json"
	"net/http"
)

// JSONResponse is the envelope of every JSON body.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures a JSON response.
type JSONOption func(*jsonResponse)

// WithJSONStatus sets the status code.
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

// WithJSONMeta sets the meta object.
func WithJSONMeta(meta map[string]any) JSONOption {
	return func(r *jsonResponse) { r.body.Meta = meta }
}

// JSON responds with data wrapped in the envelope, 200 by default.
func JSON(data any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: JSONResponse{Data: data}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError responds with a classified error.
func JSONError(err error, opts ...JSONOption) Response {
	info := Classify(err)
	r := &jsonResponse{status: info.Status, body: JSONResponse{Error: info.Detail()}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type htmlResponse struct {
	status int
	body   string
}

func (h htmlResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(h.status)
	_, err := w.Write([]byte(h.body))
	return err
}

// HTML responds with an HTML document, 200.
func HTML(body string) Response {
	return htmlResponse{status: http.StatusOK, body: body}
}

type noContent struct{}

func (noContent) Render(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// NoContent responds 204 with no body.
func NoContent() Response {
	return noContent{}
}

type failure struct{ err error }

func (f failure) Render(http.ResponseWriter, *http.Request) error { return f.err }

// Fail hands err to the error handler without writing anything itself.
func Fail(err error) Response {
	if err == nil {
		err = ErrInternalServerError
	}
	return failure{err: err}
}
