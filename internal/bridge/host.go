// Package bridge mirrors storefront state onto the chrome of the hosting
// messaging client: its back button and its main action button.
package bridge

import "sync"

// Button is a host-provided control.
type Button interface {
	Show()
	Hide()
	OnTap(func())
}

// MainButton is the host's primary action control.
type MainButton interface {
	Button
	SetText(text string)
}

// Host is the embedding client. Ready and Expand are called once at attach.
type Host interface {
	Ready()
	Expand()
	BackButton() Button
	MainButton() MainButton
}

// NopHost is used when the storefront runs outside a host client.
type NopHost struct{}

func (NopHost) Ready()                 {}
func (NopHost) Expand()                {}
func (NopHost) BackButton() Button     { return nopButton{} }
func (NopHost) MainButton() MainButton { return nopButton{} }

type nopButton struct{}

func (nopButton) Show()          {}
func (nopButton) Hide()          {}
func (nopButton) OnTap(func())   {}
func (nopButton) SetText(string) {}

// Chrome is a snapshot of what the host is showing.
type Chrome struct {
	Ready       bool   `json:"ready"`
	Expanded    bool   `json:"expanded"`
	BackVisible bool   `json:"backVisible"`
	MainVisible bool   `json:"mainVisible"`
	MainText    string `json:"mainText,omitempty"`
}

// StateHost records chrome state in memory. The HTTP transport uses it to
// report chrome to remote front ends and to forward their taps.
type StateHost struct {
	mu    sync.Mutex
	state Chrome
	back  *stateButton
	main  *stateButton
}

func NewStateHost() *StateHost {
	h := &StateHost{}
	h.back = &stateButton{host: h, visible: &h.state.BackVisible}
	h.main = &stateButton{host: h, visible: &h.state.MainVisible, text: &h.state.MainText}
	return h
}

func (h *StateHost) Ready() {
	h.mu.Lock()
	h.state.Ready = true
	h.mu.Unlock()
}

func (h *StateHost) Expand() {
	h.mu.Lock()
	h.state.Expanded = true
	h.mu.Unlock()
}

func (h *StateHost) BackButton() Button     { return h.back }
func (h *StateHost) MainButton() MainButton { return h.main }

// Chrome returns the current snapshot.
func (h *StateHost) Chrome() Chrome {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// TapBack invokes the back button handler. It returns false when the button
// is hidden or nothing is registered.
func (h *StateHost) TapBack() bool { return h.back.tap() }

// TapMain invokes the main button handler.
func (h *StateHost) TapMain() bool { return h.main.tap() }

type stateButton struct {
	host    *StateHost
	visible *bool
	text    *string
	handler func()
}

func (b *stateButton) Show() { b.setVisible(true) }
func (b *stateButton) Hide() { b.setVisible(false) }

func (b *stateButton) setVisible(v bool) {
	b.host.mu.Lock()
	*b.visible = v
	b.host.mu.Unlock()
}

func (b *stateButton) SetText(text string) {
	if b.text == nil {
		return
	}
	b.host.mu.Lock()
	*b.text = text
	b.host.mu.Unlock()
}

func (b *stateButton) OnTap(fn func()) {
	b.host.mu.Lock()
	b.handler = fn
	b.host.mu.Unlock()
}

// tap reports false for a hidden button, as a host never delivers those.
func (b *stateButton) tap() bool {
	b.host.mu.Lock()
	fn, visible := b.handler, *b.visible
	b.host.mu.Unlock()
	if fn == nil || !visible {
		return false
	}
	fn()
	return true
}
