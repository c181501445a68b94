package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCartCookieRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	NewCartCookieStore(w, true).SaveCartID("gid://shopify/Checkout/42")

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != CartCookieName || !c.HttpOnly || !c.Secure || c.Path != "/" {
		t.Errorf("unexpected cookie attributes %+v", c)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(c)
	if got := CartIDFromCookie(req); got != "gid://shopify/Checkout/42" {
		t.Errorf("expected cart id from cookie, got %q", got)
	}
}

func TestCartIDFromCookie_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	if got := CartIDFromCookie(req); got != "" {
		t.Errorf("expected empty id, got %q", got)
	}
}
