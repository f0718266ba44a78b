package types

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequestClone_Independent(t *testing.T) {
	req := Request{
		Method:  MethodPost,
		URL:     "https://example.net",
		Params:  []KeyValue{{Key: "a", Value: "1"}},
		Headers: []KeyValue{{Key: "Accept", Value: "*/*"}},
		Body:    Body{Kind: BodyRaw, Raw: []byte{1, 2, 3}},
	}

	clone := req.Clone()

	req.URL = "https://changed.example"
	req.Params[0].Value = "changed"
	req.AddParam("b", "2")
	req.Headers[0].Value = "text/plain"
	req.Body.Raw[0] = 9

	assert.Equal(t, "https://example.net", clone.URL)
	assert.Equal(t, []KeyValue{{Key: "a", Value: "1"}}, clone.Params)
	assert.Equal(t, "*/*", clone.Headers[0].Value)
	assert.Equal(t, []byte{1, 2, 3}, clone.Body.Raw)
}

func TestRequest_RemoveLastParam(t *testing.T) {
	req := Request{}
	assert.False(t, req.RemoveLastParam())

	req.AddParam("a", "1")
	req.AddParam("b", "2")
	assert.True(t, req.RemoveLastParam())
	assert.Equal(t, []KeyValue{{Key: "a", Value: "1"}}, req.Params)
}

func TestHeaderValue(t *testing.T) {
	s, ok := StringValue("text/html").String()
	assert.True(t, ok)
	assert.Equal(t, "text/html", s)

	raw := []byte{0xff, 0xfe}
	v := BytesValue(raw)
	raw[0] = 0
	_, ok = v.String()
	assert.False(t, ok)
	assert.Equal(t, []byte{0xff, 0xfe}, v.Bytes)
}

func TestResponse_Duration(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	resp := &Response{Start: start, End: start.Add(250 * time.Millisecond)}
	assert.Equal(t, 250*time.Millisecond, resp.Duration())
}

func TestNewResponseError_KeepsMessage(t *testing.T) {
	err := NewResponseError(errors.New("invalid URL"))
	assert.Equal(t, "invalid URL", err.Message)
	assert.Equal(t, "invalid URL", err.Error())
}

func TestOutcome_States(t *testing.T) {
	var none *Outcome
	assert.False(t, none.IsError())

	ok := Succeeded(&Response{Status: 200})
	assert.False(t, ok.IsError())
	assert.Equal(t, 200, ok.Response.Status)

	failed := Failed(ResponseError{Message: "boom"})
	assert.True(t, failed.IsError())
	assert.Nil(t, failed.Response)
	assert.Equal(t, "boom", failed.Err.Message)
}
