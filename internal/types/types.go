package types

import (
	"bytes"
	"time"
)

// KeyValue is an ordered key/value pair used for query params and headers
type KeyValue struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Request represents the request being composed in the editor
type Request struct {
	Method  Method     `json:"method" yaml:"method"`
	URL     string     `json:"url" yaml:"url"`
	Params  []KeyValue `json:"params,omitempty" yaml:"params,omitempty"`
	Headers []KeyValue `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body    Body       `json:"body" yaml:"body"`
}

// Clone returns a deep copy of the request.
// The dispatcher works on a clone so later edits never reach an in-flight call.
func (r Request) Clone() Request {
	out := r
	out.Params = cloneKeyValues(r.Params)
	out.Headers = cloneKeyValues(r.Headers)
	out.Body = r.Body.Clone()
	return out
}

// AddParam appends a query param to the request
func (r *Request) AddParam(key, value string) {
	r.Params = append(r.Params, KeyValue{Key: key, Value: value})
}

// RemoveLastParam drops the most recently added param, if any
func (r *Request) RemoveLastParam() bool {
	if len(r.Params) == 0 {
		return false
	}
	r.Params = r.Params[:len(r.Params)-1]
	return true
}

func cloneKeyValues(in []KeyValue) []KeyValue {
	if in == nil {
		return nil
	}
	out := make([]KeyValue, len(in))
	copy(out, in)
	return out
}

// Body is the request body, tagged by Kind.
// Only the field matching Kind is meaningful.
type Body struct {
	Kind BodyKind   `json:"kind" yaml:"kind"`
	Text string     `json:"text,omitempty" yaml:"text,omitempty"` // Text and JSON kinds
	Form []KeyValue `json:"form,omitempty" yaml:"form,omitempty"` // Form kind
	Raw  []byte     `json:"raw,omitempty" yaml:"raw,omitempty"`   // Raw kind
}

// NewBody returns an empty body of the given kind
func NewBody(kind BodyKind) Body {
	return Body{Kind: kind}
}

// Clone returns a deep copy of the body
func (b Body) Clone() Body {
	out := b
	out.Form = cloneKeyValues(b.Form)
	if b.Raw != nil {
		out.Raw = bytes.Clone(b.Raw)
	}
	return out
}

// HeaderValue holds a response header value: decoded text, or the raw bytes
// when the value is not valid text.
type HeaderValue struct {
	Text   string `json:"text,omitempty" yaml:"text,omitempty"`
	Bytes  []byte `json:"bytes,omitempty" yaml:"bytes,omitempty"`
	Binary bool   `json:"binary,omitempty" yaml:"binary,omitempty"`
}

// StringValue builds a textual header value
func StringValue(s string) HeaderValue {
	return HeaderValue{Text: s}
}

// BytesValue builds a binary header value
func BytesValue(b []byte) HeaderValue {
	return HeaderValue{Bytes: bytes.Clone(b), Binary: true}
}

// String returns the decoded value and whether the value was text
func (v HeaderValue) String() (string, bool) {
	if v.Binary {
		return "", false
	}
	return v.Text, true
}

// Header is a single response header in wire order
type Header struct {
	Name  string      `json:"name" yaml:"name"`
	Value HeaderValue `json:"value" yaml:"value"`
}

// Response is a completed HTTP response. It is never mutated after construction.
type Response struct {
	Status        int       `json:"status" yaml:"status"`
	ContentLength *int64    `json:"contentLength,omitempty" yaml:"contentLength,omitempty"`
	Start         time.Time `json:"start" yaml:"start"`
	End           time.Time `json:"end" yaml:"end"`
	Text          string    `json:"text" yaml:"text"`
	Headers       []Header  `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// Duration returns the time between start and end of the call
func (r *Response) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// ResponseError describes why a request could not be built or executed
type ResponseError struct {
	Message string `json:"message" yaml:"message"`
}

// NewResponseError wraps any error, keeping only its message
func NewResponseError(err error) ResponseError {
	return ResponseError{Message: err.Error()}
}

func (e ResponseError) Error() string {
	return e.Message
}

// Outcome is the result of a dispatched request: a response or an error.
// A nil *Outcome means no result yet.
type Outcome struct {
	Response *Response     `json:"response,omitempty" yaml:"response,omitempty"`
	Err      *ResponseError `json:"error,omitempty" yaml:"error,omitempty"`
}

// Succeeded builds a successful outcome
func Succeeded(resp *Response) *Outcome {
	return &Outcome{Response: resp}
}

// Failed builds a failed outcome
func Failed(err ResponseError) *Outcome {
	return &Outcome{Err: &err}
}

// IsError reports whether the outcome holds an error
func (o *Outcome) IsError() bool {
	return o != nil && o.Err != nil
}
