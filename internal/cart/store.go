package cart

import (
	"time"

	"naira-store/internal/domain"

	"github.com/google/uuid"
)

// Store holds the set of (product, quantity) pairs for one session. It is a
// plain in-memory container with no locking of its own; the owning session
// serializes access, the same way the original single UI thread did.
//
// Invariants after every mutation:
//   - at most one line per product id
//   - every line's quantity ≥ max(1, product minimum order quantity)
type Store struct {
	lines map[uuid.UUID]*domain.CartLine
	order []uuid.UUID
}

// NewStore creates an empty line-item store.
func NewStore() *Store {
	return &Store{
		lines: make(map[uuid.UUID]*domain.CartLine),
	}
}

// AddItem adds quantity of product to the cart. If a line for the product
// already exists its quantity is incremented; otherwise a new line is
// inserted with the quantity clamped up to the product's minimum order
// quantity. AddItem always succeeds locally.
func (s *Store) AddItem(product domain.Product, quantity int) domain.CartLine {
	if quantity < 1 {
		quantity = 1
	}

	if line, ok := s.lines[product.ID]; ok {
		line.Quantity += quantity
		if line.Quantity < line.Product.MinQuantity() {
			line.Quantity = line.Product.MinQuantity()
		}
		return *line
	}

	if quantity < product.MinQuantity() {
		quantity = product.MinQuantity()
	}

	line := &domain.CartLine{
		Product:  product,
		Quantity: quantity,
		AddedAt:  time.Now(),
	}
	s.lines[product.ID] = line
	s.order = append(s.order, product.ID)
	return *line
}

// RemoveItem deletes the line for productID if present; no-op otherwise.
func (s *Store) RemoveItem(productID uuid.UUID) {
	if _, ok := s.lines[productID]; !ok {
		return
	}
	delete(s.lines, productID)
	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// SetQuantity sets the quantity of an existing line, clamping values below 1
// or below the product's minimum order quantity. No-op when the line does
// not exist.
func (s *Store) SetQuantity(productID uuid.UUID, quantity int) {
	line, ok := s.lines[productID]
	if !ok {
		return
	}
	if min := line.Product.MinQuantity(); quantity < min {
		quantity = min
	}
	line.Quantity = quantity
}

// Clear empties all lines. Used after successful order placement.
func (s *Store) Clear() {
	s.lines = make(map[uuid.UUID]*domain.CartLine)
	s.order = nil
}

// TotalItems returns the sum of all line quantities. Derived, never stored.
func (s *Store) TotalItems() int {
	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// Len returns the number of distinct lines.
func (s *Store) Len() int {
	return len(s.lines)
}

// IsEmpty reports whether the cart has no lines.
func (s *Store) IsEmpty() bool {
	return len(s.lines) == 0
}

// Get returns a copy of the line for productID.
func (s *Store) Get(productID uuid.UUID) (domain.CartLine, bool) {
	line, ok := s.lines[productID]
	if !ok {
		return domain.CartLine{}, false
	}
	return *line, true
}

// Lines returns copies of all lines in insertion order.
func (s *Store) Lines() []domain.CartLine {
	out := make([]domain.CartLine, 0, len(s.order))
	for _, id := range s.order {
		if line, ok := s.lines[id]; ok {
			out = append(out, *line)
		}
	}
	return out
}

// Replace swaps the store's contents for the given lines, merging duplicate
// product ids and clamping quantities. Used when hydrating a persisted cart
// at sign-in.
func (s *Store) Replace(lines []domain.CartLine) {
	s.Clear()
	for _, line := range lines {
		s.AddItem(line.Product, line.Quantity)
	}
}
