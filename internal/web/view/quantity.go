package view

import (
	"strconv"
	"strings"

	"shoppy-store/internal/domain"
)

// QuantityInput models the free-text quantity field. Text is what the
// visitor typed; Committed is the last quantity the server confirmed.
type QuantityInput struct {
	Committed int
	Text      string
}

// NewQuantityInput creates an input showing the committed quantity
func NewQuantityInput(committed int) *QuantityInput {
	return &QuantityInput{Committed: committed, Text: strconv.Itoa(committed)}
}

// Blur settles the typed text. Unparsable text reverts the display to the
// committed quantity and asks for no update. Parsable text that differs from
// the committed quantity asks for an update clamped to [1, 99].
func (q *QuantityInput) Blur(text string) (quantity int, update bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		q.Text = strconv.Itoa(q.Committed)
		return q.Committed, false
	}
	if n == q.Committed {
		q.Text = strconv.Itoa(n)
		return n, false
	}

	clamped := domain.ClampQuantity(n)
	q.Text = strconv.Itoa(clamped)
	return clamped, true
}

// Step returns the committed quantity moved by delta, clamped
func (q *QuantityInput) Step(delta int) int {
	return domain.ClampQuantity(q.Committed + delta)
}

// ParseQuantity reads a submitted form quantity
func ParseQuantity(text string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, false
	}
	return domain.ClampQuantity(n), true
}
