package types

import (
	"fmt"
	"strings"
)

// Method is an HTTP request method
type Method int

const (
	MethodGet Method = iota
	MethodPost
	MethodPut
	MethodPatch
	MethodDelete
	MethodHead
	MethodOptions
	MethodTrace
	MethodConnect
)

var methodNames = [...]string{
	MethodGet:     "GET",
	MethodPost:    "POST",
	MethodPut:     "PUT",
	MethodPatch:   "PATCH",
	MethodDelete:  "DELETE",
	MethodHead:    "HEAD",
	MethodOptions: "OPTIONS",
	MethodTrace:   "TRACE",
	MethodConnect: "CONNECT",
}

// Methods returns every method in selector order
func Methods() []Method {
	out := make([]Method, len(methodNames))
	for i := range methodNames {
		out[i] = Method(i)
	}
	return out
}

// Valid reports whether m is one of the nine known methods
func (m Method) Valid() bool {
	return m >= MethodGet && int(m) < len(methodNames)
}

func (m Method) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// Next returns the following method, wrapping around
func (m Method) Next() Method {
	return Method((int(m) + 1) % len(methodNames))
}

// Prev returns the previous method, wrapping around
func (m Method) Prev() Method {
	return Method((int(m) - 1 + len(methodNames)) % len(methodNames))
}

// ParseMethod parses a method name, case-insensitively
func ParseMethod(s string) (Method, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range methodNames {
		if name == upper {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("unknown HTTP method %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (m Method) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid method value %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// BodyKind tags the variant held by a Body
type BodyKind int

const (
	BodyNone BodyKind = iota
	BodyText
	BodyJSON
	BodyForm
	BodyRaw
)

var bodyKindNames = [...]string{
	BodyNone: "None",
	BodyText: "Text",
	BodyJSON: "JSON",
	BodyForm: "Form",
	BodyRaw:  "Raw",
}

// BodyKinds returns every body kind in display order
func BodyKinds() []BodyKind {
	out := make([]BodyKind, len(bodyKindNames))
	for i := range bodyKindNames {
		out[i] = BodyKind(i)
	}
	return out
}

func (k BodyKind) String() string {
	if k < BodyNone || int(k) >= len(bodyKindNames) {
		return fmt.Sprintf("BodyKind(%d)", int(k))
	}
	return bodyKindNames[k]
}

// ParseBodyKind parses a body kind name, case-insensitively
func ParseBodyKind(s string) (BodyKind, error) {
	for i, name := range bodyKindNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return BodyKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown body kind %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (k BodyKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *BodyKind) UnmarshalText(text []byte) error {
	parsed, err := ParseBodyKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
