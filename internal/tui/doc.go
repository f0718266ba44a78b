/*
Package tui implements the interactive request composer.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - model.go: Model state, Update and the repaint notifier
  - keys.go: keybind routing to composer actions
  - render.go: the frame; request tabs, status line and response tabs

# Threading Model

The event loop owns the Model. A send hands a clone of the request to the
dispatcher, which runs the network call on its own goroutine, writes the
outcome into the shared dispatch.Slot and then calls the notifier. The
notifier posts a message to the program so the loop wakes up and renders.
View reads the slot once per frame and never blocks on the network.

A request that finishes after a newer one was sent can still replace what is
shown; the newer result overwrites it when it arrives.

# Persistence

The composed request is saved to the session file on quit. Tab selections
go through a tabs.Store, backed by sqlite when persist_tabs is enabled, and
are flushed on quit. With record_history every executed call is also
written to the history table by the dispatcher.
*/
package tui
