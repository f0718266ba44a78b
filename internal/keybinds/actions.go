package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal Context = "global" // Available everywhere
	ContextNormal Context = "normal" // Composer, no input focused
	ContextInput  Context = "input"  // A text input has focus
)

const (
	// Global actions
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)

	// Composer actions
	ActionQuit            Action = "quit"              // Save session and quit
	ActionSend            Action = "send"              // Dispatch the current request
	ActionEditURL         Action = "edit_url"          // Focus the URL input
	ActionMethodNext      Action = "method_next"       // Next method in the selector
	ActionMethodPrev      Action = "method_prev"       // Previous method in the selector
	ActionRequestTabNext  Action = "request_tab_next"  // Next request tab
	ActionRequestTabPrev  Action = "request_tab_prev"  // Previous request tab
	ActionResponseTabNext Action = "response_tab_next" // Next response tab
	ActionResponseTabPrev Action = "response_tab_prev" // Previous response tab
	ActionAddParam        Action = "add_param"         // Open the key=value param input
	ActionRemoveParam     Action = "remove_param"      // Remove the last param
	ActionBodyKindNext    Action = "body_kind_next"    // Select the next body kind
	ActionCopyBody        Action = "copy_body"         // Copy response body to clipboard
	ActionScrollUp        Action = "scroll_up"         // Scroll the response viewport up
	ActionScrollDown      Action = "scroll_down"       // Scroll the response viewport down
	ActionToggleHelp      Action = "toggle_help"       // Show or hide the key help

	// Text input actions
	ActionInputSubmit   Action = "input_submit"   // Accept the input
	ActionInputCancel   Action = "input_cancel"   // Discard the input
	ActionInputComplete Action = "input_complete" // Accept the first suggestion
)

// AllActions lists every action, in help order
func AllActions() []Action {
	return []Action{
		ActionQuitForce,
		ActionQuit,
		ActionSend,
		ActionEditURL,
		ActionMethodNext,
		ActionMethodPrev,
		ActionRequestTabNext,
		ActionRequestTabPrev,
		ActionResponseTabNext,
		ActionResponseTabPrev,
		ActionAddParam,
		ActionRemoveParam,
		ActionBodyKindNext,
		ActionCopyBody,
		ActionScrollUp,
		ActionScrollDown,
		ActionToggleHelp,
		ActionInputSubmit,
		ActionInputCancel,
		ActionInputComplete,
	}
}

// Known reports whether a is a defined action
func Known(a Action) bool {
	for _, known := range AllActions() {
		if known == a {
			return true
		}
	}
	return false
}
