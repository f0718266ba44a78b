package tui

// UI Layout Constants

const (
	// Tab bar identities; their selection is persisted under these keys
	RequestTabsID  = "request.tabs"
	ResponseTabsID = "response.tabs"

	// Request pane names
	PaneParams        = "Params"
	PaneAuthorization = "Authorization"
	PaneHeaders       = "Headers"
	PaneBody          = "Body"

	// Response pane names
	PaneResponseBody    = "Body"
	PaneResponseHeaders = "Headers"

	// Viewport sizing
	MinimalBorderMargin  = 2  // m.width - 2 for the response viewport
	ResponseChromeLines  = 14 // top row, request tabs, status line, response tab bar and footer
	MinResponseHeight    = 3
	DefaultViewportWidth = 80

	// Footer messages longer than this are truncated
	MaxFooterMessage = 100

	// URL suggestions shown under the URL input
	MaxURLSuggestions = 3
)
