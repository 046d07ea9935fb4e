package bridge

import (
	"jericho-storefront/internal/navigator"
)

const (
	AddToCartText = "Add to Cart"
	CheckoutText  = "Checkout"
)

// Controller is the storefront surface the adapter reads and drives.
type Controller interface {
	Current() navigator.View
	ProductAvailable(id int) bool
	CartEmpty() bool
	AddToCartAndReturn() error
	Checkout() error
	Back() error
}

// Adapter keeps host chrome in step with the storefront. Register it as a
// navigator observer and call Sync after cart changes.
type Adapter struct {
	host Host
	ctrl Controller
	back Button
	main MainButton

	tapErr error
}

// Attach readies the host, wires the tap handlers once and syncs the chrome.
func Attach(host Host, ctrl Controller) *Adapter {
	if host == nil {
		host = NopHost{}
	}
	a := &Adapter{
		host: host,
		ctrl: ctrl,
		back: host.BackButton(),
		main: host.MainButton(),
	}
	host.Ready()
	host.Expand()
	a.back.OnTap(a.onBack)
	a.main.OnTap(a.onMain)
	a.Sync()
	return a
}

// ViewChanged implements navigator.Observer.
func (a *Adapter) ViewChanged(_, _ navigator.View) {
	a.Sync()
}

// Sync shows or hides the buttons for the current view.
func (a *Adapter) Sync() {
	if a.ctrl.Current().Kind() == navigator.KindListing {
		a.back.Hide()
	} else {
		a.back.Show()
	}

	text, ok := a.mainAction()
	if !ok {
		a.main.Hide()
		return
	}
	a.main.SetText(text)
	a.main.Show()
}

func (a *Adapter) mainAction() (string, bool) {
	v := a.ctrl.Current()
	switch v.Kind() {
	case navigator.KindDetail:
		id, _ := navigator.FocusedProduct(v)
		if a.ctrl.ProductAvailable(id) {
			return AddToCartText, true
		}
	case navigator.KindCart:
		if !a.ctrl.CartEmpty() {
			return CheckoutText, true
		}
	}
	return "", false
}

// TapErr returns the error of the last tap handler and clears it. Host
// callbacks have no result, so callers that deliver taps read it afterwards.
func (a *Adapter) TapErr() error {
	err := a.tapErr
	a.tapErr = nil
	return err
}

func (a *Adapter) onBack() {
	a.tapErr = nil
	if a.ctrl.Current().Kind() == navigator.KindListing {
		return
	}
	a.tapErr = a.ctrl.Back()
}

func (a *Adapter) onMain() {
	a.tapErr = nil
	text, ok := a.mainAction()
	if !ok {
		return
	}
	switch text {
	case AddToCartText:
		a.tapErr = a.ctrl.AddToCartAndReturn()
	case CheckoutText:
		a.tapErr = a.ctrl.Checkout()
	}
	a.Sync()
}
