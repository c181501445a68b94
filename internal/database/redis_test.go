package database

import (
	"context"
	"testing"

	"shoppy-store/internal/config"

	"github.com/alicebob/miniredis/v2"
)

func TestOpenRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	defer mr.Close()

	client, err := OpenRedis(context.Background(), config.RedisConfig{Host: mr.Host(), Port: mr.Port()})
	if err != nil {
		t.Fatalf("OpenRedis failed: %v", err)
	}
	client.Close()

	mr.Close()
	if _, err := OpenRedis(context.Background(), config.RedisConfig{Host: mr.Host(), Port: mr.Port()}); err == nil {
		t.Error("expected error when Redis is down")
	}
}
