package keybinds

// NewDefaultRegistry returns the built-in keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)

	r.RegisterMultiple(ContextNormal, []string{"q", "esc"}, ActionQuit)
	r.RegisterMultiple(ContextNormal, []string{"enter", "s"}, ActionSend)
	r.RegisterMultiple(ContextNormal, []string{"e", "u"}, ActionEditURL)
	r.Register(ContextNormal, "m", ActionMethodNext)
	r.Register(ContextNormal, "M", ActionMethodPrev)
	r.Register(ContextNormal, "tab", ActionRequestTabNext)
	r.Register(ContextNormal, "shift+tab", ActionRequestTabPrev)
	r.Register(ContextNormal, "]", ActionResponseTabNext)
	r.Register(ContextNormal, "[", ActionResponseTabPrev)
	r.Register(ContextNormal, "p", ActionAddParam)
	r.Register(ContextNormal, "x", ActionRemoveParam)
	r.Register(ContextNormal, "b", ActionBodyKindNext)
	r.Register(ContextNormal, "y", ActionCopyBody)
	r.RegisterMultiple(ContextNormal, []string{"up", "k"}, ActionScrollUp)
	r.RegisterMultiple(ContextNormal, []string{"down", "j"}, ActionScrollDown)
	r.Register(ContextNormal, "?", ActionToggleHelp)

	r.Register(ContextInput, "enter", ActionInputSubmit)
	r.Register(ContextInput, "esc", ActionInputCancel)
	r.Register(ContextInput, "tab", ActionInputComplete)

	return r
}
