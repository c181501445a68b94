package middleware

import (
	"net/http"
	"time"
)

const (
	// CartCookieName holds the id of the visitor's checkout
	CartCookieName = "checkout"
	cartCookieAge  = 30 * 24 * time.Hour
)

// SetCartCookie stores the cart id on the response
func SetCartCookie(w http.ResponseWriter, cartID string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CartCookieName,
		Value:    cartID,
		Path:     "/",
		MaxAge:   int(cartCookieAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// CartIDFromCookie returns the stored cart id or an empty string
func CartIDFromCookie(r *http.Request) string {
	c, err := r.Cookie(CartCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// CartCookieStore persists cart ids through the response cookie
type CartCookieStore struct {
	w      http.ResponseWriter
	secure bool
}

// NewCartCookieStore creates a new instance of CartCookieStore
func NewCartCookieStore(w http.ResponseWriter, secure bool) *CartCookieStore {
	return &CartCookieStore{w: w, secure: secure}
}

// SaveCartID writes the cart cookie
func (s *CartCookieStore) SaveCartID(cartID string) {
	SetCartCookie(s.w, cartID, s.secure)
}
