/*
Package keybinds maps key strings, as reported by bubbletea's KeyMsg.String,
to composer actions.

Bindings live in contexts. A lookup checks the active context first and then
falls back to the global one, so ctrl+c quits from anywhere.

Defaults can be overridden per action in ~/.paceman/keybinds.json:

	{
	  "version": "1",
	  "normal": {
	    "send": "enter,ctrl+s",
	    "copy_body": "c"
	  }
	}

An overridden action loses its default keys in that context. Binding the same
key to two actions in one context is rejected when the file is loaded.
*/
package keybinds
