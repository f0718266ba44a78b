/*
Package executor is the network call collaborator used by the dispatcher.

# Overview

A call happens in two steps:
  - Build: validate method and URL, prepare the request (synchronous, cheap)
  - Execute: perform the round trip and return status, headers and the unread body

RawResponse.Text reads and closes the body. Callers that do not need the body
must call Close.

# Methods

ToHTTPMethod and FromHTTPMethod map the nine types.Method values to the
net/http method names and back. The mapping is total; there is no default
method for unknown values.

# Headers

net/http stores headers in a map, so RawResponse.Headers are sorted by name
with one entry per value. Values containing anything other than visible ASCII
are kept as raw bytes.

# Example Usage

	client := NewClient(WithTimeout(10 * time.Second))

	call, err := client.Build(types.MethodGet, "https://api.example.com/users")
	if err != nil {
		return err
	}

	raw, err := call.Execute(ctx)
	if err != nil {
		return err
	}

	body, err := raw.Text()

# Thread Safety

A Client can be shared between goroutines. A Call is meant to be executed once.
*/
package executor
