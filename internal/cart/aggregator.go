// Package cart aggregates the products a shopper picked into priced lines.
package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"jericho-storefront/internal/domain"
)

// ProductLookup resolves product ids against the catalog.
type ProductLookup interface {
	Product(id int) (*domain.Product, error)
}

// OrderSubmitter hands a finished order to whatever fulfils it.
type OrderSubmitter interface {
	Submit(ctx context.Context, order domain.Order) error
}

// Line is a resolved view of one cart line.
type Line struct {
	Index     int             `json:"index"`
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Image     string          `json:"image,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Stale     bool            `json:"stale"`
}

type line struct {
	productID int
	quantity  int
	name      string
}

// Aggregator keeps at most one line per product id. It is not safe for
// concurrent use; the owning session serializes access.
type Aggregator struct {
	lookup ProductLookup
	lines  []line

	now   func() time.Time
	newID func() string
}

func New(lookup ProductLookup) *Aggregator {
	return &Aggregator{
		lookup: lookup,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Add increments the line for p.ID or appends a new line with quantity 1.
// Callers check availability before adding.
func (a *Aggregator) Add(p domain.Product) {
	for i := range a.lines {
		if a.lines[i].productID == p.ID {
			a.lines[i].quantity++
			a.lines[i].name = p.Name
			return
		}
	}
	a.lines = append(a.lines, line{productID: p.ID, quantity: 1, name: p.Name})
}

// SetQuantity replaces the quantity of one line.
func (a *Aggregator) SetQuantity(index, quantity int) error {
	if index < 0 || index >= len(a.lines) {
		return domain.ErrIndexOutOfRange
	}
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}
	a.lines[index].quantity = quantity
	return nil
}

// Remove drops one line.
func (a *Aggregator) Remove(index int) error {
	if index < 0 || index >= len(a.lines) {
		return domain.ErrIndexOutOfRange
	}
	a.lines = append(a.lines[:index], a.lines[index+1:]...)
	return nil
}

// Lines resolves every line against the catalog. Lines whose product is gone
// are returned with Stale set and a zero subtotal.
func (a *Aggregator) Lines() []Line {
	out := make([]Line, 0, len(a.lines))
	for i, l := range a.lines {
		resolved := Line{
			Index:     i,
			ProductID: l.productID,
			Name:      l.name,
			Quantity:  l.quantity,
			UnitPrice: decimal.Zero,
			Subtotal:  decimal.Zero,
		}
		p, err := a.lookup.Product(l.productID)
		if err != nil {
			resolved.Stale = true
			out = append(out, resolved)
			continue
		}
		resolved.Name = p.Name
		resolved.Image = p.Image
		resolved.UnitPrice = p.Price
		resolved.Subtotal = p.Price.Mul(decimal.NewFromInt(int64(l.quantity)))
		out = append(out, resolved)
	}
	return out
}

// Total is the sum of current price times quantity over live lines, rounded
// to two places.
func (a *Aggregator) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range a.Lines() {
		total = total.Add(l.Subtotal)
	}
	return total.Round(2)
}

// HasStale reports whether any line points at a product missing from the catalog.
func (a *Aggregator) HasStale() bool {
	for _, l := range a.lines {
		if _, err := a.lookup.Product(l.productID); err != nil {
			return true
		}
	}
	return false
}

// Count is the total number of items across lines.
func (a *Aggregator) Count() int {
	n := 0
	for _, l := range a.lines {
		n += l.quantity
	}
	return n
}

// Len is the number of distinct lines.
func (a *Aggregator) Len() int {
	return len(a.lines)
}

func (a *Aggregator) IsEmpty() bool {
	return len(a.lines) == 0
}

func (a *Aggregator) Clear() {
	a.lines = nil
}

// Checkout submits the cart as an order and clears it on success. An empty
// cart is not an error and returns a nil order without calling the submitter.
// On any failure the cart is left untouched.
func (a *Aggregator) Checkout(ctx context.Context, submitter OrderSubmitter) (*domain.Order, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	if a.HasStale() {
		return nil, fmt.Errorf("checkout: %w", domain.ErrStaleReference)
	}

	lines := a.Lines()
	order := domain.Order{
		ID:       a.newID(),
		Lines:    make([]domain.OrderLine, 0, len(lines)),
		Total:    decimal.Zero,
		PlacedAt: a.now().UTC(),
	}
	for _, l := range lines {
		order.Lines = append(order.Lines, domain.OrderLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal,
		})
		order.Total = order.Total.Add(l.Subtotal)
	}
	order.Total = order.Total.Round(2)

	if err := submitter.Submit(ctx, order); err != nil {
		return nil, fmt.Errorf("submit order %s: %w", order.ID, err)
	}
	a.Clear()
	return &order, nil
}
