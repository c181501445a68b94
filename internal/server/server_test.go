package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shoppy-store/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// fakeStorefront answers the shop and collections queries
func fakeStorefront(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query string `json:"query"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(req.Query, "collections("):
			w.Write([]byte(`{"data": {"collections": {"edges": [
				{"node": {"id": "c1", "handle": "homepage", "title": "Featured"}},
				{"node": {"id": "c2", "handle": "winter", "title": "Winter"}}
			]}}}`))
		case strings.Contains(req.Query, "shop {"):
			w.Write([]byte(`{"data": {"shop": {"id": "s1", "name": "Shoppy", "moneyFormat": "${{amount}}"}}}`))
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(storeURL string) *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Port: "0", Env: "test"},
		Shopify: config.ShopifyConfig{StoreDomain: storeURL, StorefrontToken: "token", APIVersion: "2023-01", Timeout: 5 * time.Second},
		Cache:   config.CacheConfig{TTL: time.Minute},
		RateLimit: config.RateLimitConfig{
			Requests: 2,
			Window:   time.Minute,
		},
	}
}

func TestServer_HealthAndShop(t *testing.T) {
	store := fakeStorefront(t)

	srv, err := NewServer(testConfig(store.URL), zap.NewNop(), nil, nil)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	defer srv.Close()

	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected health response %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/shop", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Shop        struct{ Name string }
		Collections []struct{ Handle string }
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Shop.Name != "Shoppy" || len(body.Collections) != 2 {
		t.Errorf("unexpected shop info %+v", body)
	}
}

func TestServer_RateLimitsAPIWithRedis(t *testing.T) {
	store := fakeStorefront(t)
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	defer mr.Close()
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	srv, err := NewServer(testConfig(store.URL), zap.NewNop(), nil, redisClient)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	defer srv.Close()

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/shop", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("expected two passes then 429, got %v", codes)
	}

	// shop info was cached after the first call
	if keys := mr.Keys(); len(keys) < 2 {
		t.Errorf("expected catalog cache and rate limit keys, got %v", keys)
	}

	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected health to bypass the API rate limit, got %d", w.Code)
	}
}
