package tracing

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/MattGal/slngen/internal/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

// TestGenerateTraceID проверяет формат и уникальность trace ID.
func TestGenerateTraceID(t *testing.T) {
	hexPattern := regexp.MustCompile(`^[0-9a-f]{32}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateTraceID()
		assert.Regexp(t, hexPattern, id, "trace ID должен быть 32 hex символа")
		assert.False(t, seen[id], "trace ID должны быть уникальными")
		seen[id] = true
	}
}

// TestFallbackTraceID проверяет что fallback тоже даёт валидный формат.
func TestFallbackTraceID(t *testing.T) {
	hexPattern := regexp.MustCompile(`^[0-9a-f]{32}$`)

	a := fallbackTraceID()
	b := fallbackTraceID()
	assert.Regexp(t, hexPattern, a)
	assert.Regexp(t, hexPattern, b)
	assert.NotEqual(t, a, b, "счётчик гарантирует уникальность")
}

// TestWithTraceID_RoundTrip проверяет сохранение и извлечение trace ID из контекста.
func TestWithTraceID_RoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TraceIDFromContext(ctx), "пустой контекст — пустой trace ID")

	id := GenerateTraceID()
	ctx = WithTraceID(ctx, id)
	assert.Equal(t, id, TraceIDFromContext(ctx))

	// Перезапись
	other := GenerateTraceID()
	ctx = WithTraceID(ctx, other)
	assert.Equal(t, other, TraceIDFromContext(ctx))
}

// TestTraceIDFromContext_NilContext проверяет защиту от nil context.
func TestTraceIDFromContext_NilContext(t *testing.T) {
	//nolint:staticcheck // намеренно передаём nil для проверки защиты
	assert.Empty(t, TraceIDFromContext(nil))
}

// TestConfig_Validate проверяет правила валидации конфигурации трейсинга.
func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Enabled:      true,
		Endpoint:     "http://jaeger:4318",
		ServiceName:  "slngen",
		Timeout:      5 * time.Second,
		SamplingRate: 1.0,
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:    "выключенный трейсинг валиден без полей",
			mutate:  func(c *Config) { *c = Config{Enabled: false} },
			wantErr: nil,
		},
		{
			name:    "валидная конфигурация",
			mutate:  func(_ *Config) {},
			wantErr: nil,
		},
		{
			name:    "пустой endpoint",
			mutate:  func(c *Config) { c.Endpoint = "" },
			wantErr: ErrTracingEndpointRequired,
		},
		{
			name:    "endpoint без host",
			mutate:  func(c *Config) { c.Endpoint = "not-a-url" },
			wantErr: ErrTracingEndpointInvalidFormat,
		},
		{
			name:    "пустой service name",
			mutate:  func(c *Config) { c.ServiceName = "" },
			wantErr: ErrTracingServiceNameRequired,
		},
		{
			name:    "нулевой timeout",
			mutate:  func(c *Config) { c.Timeout = 0 },
			wantErr: ErrTracingTimeoutInvalid,
		},
		{
			name:    "sampling rate больше 1",
			mutate:  func(c *Config) { c.SamplingRate = 1.5 },
			wantErr: ErrTracingSamplingRateInvalid,
		},
		{
			name:    "отрицательный sampling rate",
			mutate:  func(c *Config) { c.SamplingRate = -0.1 },
			wantErr: ErrTracingSamplingRateInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

// TestNewTracerProvider_Disabled проверяет nop provider при выключенном трейсинге.
func TestNewTracerProvider_Disabled(t *testing.T) {
	shutdown, err := NewTracerProvider(Config{Enabled: false}, logging.NewNopLogger())
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

// TestNewTracerProvider_InvalidConfig проверяет что невалидная конфигурация отклоняется.
func TestNewTracerProvider_InvalidConfig(t *testing.T) {
	_, err := NewTracerProvider(Config{Enabled: true}, logging.NewNopLogger())
	assert.ErrorIs(t, err, ErrTracingEndpointRequired)
}

// TestContextWithOTelTraceID проверяет связывание internal trace ID с OTel span context.
func TestContextWithOTelTraceID(t *testing.T) {
	id := GenerateTraceID()
	ctx := ContextWithOTelTraceID(context.Background(), id)

	sc := trace.SpanContextFromContext(ctx)
	assert.True(t, sc.IsValid())
	assert.True(t, sc.IsRemote())
	assert.Equal(t, id, sc.TraceID().String())
	assert.True(t, sc.IsSampled())
}

// TestContextWithOTelTraceID_Invalid проверяет что невалидный ID не меняет контекст.
func TestContextWithOTelTraceID_Invalid(t *testing.T) {
	ctx := context.Background()
	got := ContextWithOTelTraceID(ctx, "not-hex")
	sc := trace.SpanContextFromContext(got)
	assert.False(t, sc.IsValid())
}

// TestDefaultConfig проверяет дефолты.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "slngen", cfg.ServiceName)
	assert.False(t, cfg.Insecure)
	assert.Equal(t, 1.0, cfg.SamplingRate)
	assert.NoError(t, cfg.Validate())
}
