package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func jsonCore(buf *bytes.Buffer) zapcore.Core {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}

	return zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(buf),
		zapcore.DebugLevel,
	)
}

// Relay failures are logged as structured entries carrying the cart id
func TestProperty_CartFailureLogsAreStructured(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("cart failure entries are JSON with cart id and error", prop.ForAll(
		func(cartID string, errorMsg string) bool {
			var buf bytes.Buffer
			logger := zap.New(jsonCore(&buf)).Named("shoppy")
			defer logger.Sync()

			logger.Error("Failed to update line item",
				zap.String("cart_id", cartID),
				zap.String("error", errorMsg),
			)

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				return false
			}

			return entry["level"] == "error" &&
				entry["logger"] == "shoppy" &&
				entry["cart_id"] == cartID &&
				entry["error"] == errorMsg
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestNew(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		logger, err := New(env)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", env, err)
		}
		if logger == nil {
			t.Fatalf("New(%q) returned nil logger", env)
		}
		logger.Sync()
	}
}

func TestNewWithDefaults(t *testing.T) {
	t.Setenv("SERVER_ENV", "")
	if NewWithDefaults() == nil {
		t.Fatal("expected a logger")
	}
}
