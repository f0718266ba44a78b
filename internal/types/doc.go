/*
Package types defines the request/response model shared by the dispatcher,
the TUI and the CLI.

# Request Types

Request:
  - Method (one of the nine standard HTTP methods)
  - URL
  - Ordered params and headers (KeyValue)
  - Body, tagged by BodyKind (None, Text, JSON, Form, Raw)

Requests are edited only on the TUI goroutine. Anything handed to another
goroutine must be a Clone.

# Response Types

Response:
  - Status code and optional content length
  - Start/End timestamps (Duration)
  - Body text
  - Headers in wire order; values are text or raw bytes

ResponseError:
  - A single human-readable message

Outcome:
  - nil: no result yet
  - Response set: request succeeded
  - Err set: request failed

Responses and outcomes are immutable once built, so a pointer can be shared
between goroutines without copying.

# Serialization

Method and BodyKind implement encoding.TextMarshaler so sessions and request
files store them by name ("POST", "JSON") in both JSON and YAML.
*/
package types
