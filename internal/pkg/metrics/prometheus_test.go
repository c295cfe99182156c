package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MattGal/slngen/internal/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPrometheusCollector_RecordCommand проверяет запись метрик команды.
func TestPrometheusCollector_RecordCommand(t *testing.T) {
	config := Config{
		Enabled:        true,
		PushgatewayURL: "http://localhost:9091",
		JobName:        "test-job",
		Timeout:        10 * time.Second,
	}

	logger := logging.NewNopLogger()
	collector, err := NewPrometheusCollector(config, logger)
	require.NoError(t, err)

	collector.RecordCommandStart("flags-apply", "ci-fast")
	collector.RecordCommandEnd("flags-apply", "ci-fast", 150*time.Millisecond, true)

	registry := collector.GetRegistry()
	families, err := registry.Gather()
	require.NoError(t, err)

	found := make(map[string]bool)
	for _, m := range families {
		found[m.GetName()] = true
	}

	assert.True(t, found["slngen_command_duration_seconds"], "должен быть histogram duration")
	assert.True(t, found["slngen_command_success_total"], "должен быть counter success")
}

// TestPrometheusCollector_RecordFlagMutation проверяет счётчик мутаций флагов.
func TestPrometheusCollector_RecordFlagMutation(t *testing.T) {
	config := Config{
		Enabled:        true,
		PushgatewayURL: "http://localhost:9091",
		JobName:        "test-job",
		Timeout:        10 * time.Second,
	}

	collector, err := NewPrometheusCollector(config, logging.NewNopLogger())
	require.NoError(t, err)

	collector.RecordFlagMutation("MSBUILDCACHEFILEENUMERATIONS", true)
	collector.RecordFlagMutation("MSBUILDCACHEFILEENUMERATIONS", false)

	families, err := collector.GetRegistry().Gather()
	require.NoError(t, err)

	var foundMutations bool
	for _, m := range families {
		if m.GetName() == "slngen_flag_mutations_total" {
			foundMutations = true
			assert.Len(t, m.GetMetric(), 2, "две серии: enabled=true и enabled=false")
		}
	}
	assert.True(t, foundMutations)
}

// TestPrometheusCollector_Push проверяет отправку метрик в Pushgateway.
func TestPrometheusCollector_Push(t *testing.T) {
	var receivedMethod string
	var receivedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedMethod = r.Method
		receivedPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	config := Config{
		Enabled:        true,
		PushgatewayURL: server.URL,
		JobName:        "slngen-test",
		Timeout:        5 * time.Second,
		InstanceLabel:  "test-instance",
	}

	collector, err := NewPrometheusCollector(config, logging.NewNopLogger())
	require.NoError(t, err)

	collector.RecordCommandEnd("flags-clear", "", time.Second, true)

	require.NoError(t, collector.Push(context.Background()))
	assert.Equal(t, http.MethodPut, receivedMethod)
	assert.Contains(t, receivedPath, "slngen-test")
}

// TestPrometheusCollector_Push_ServerError проверяет что ошибка Pushgateway
// не пропагирует — метрики не должны ронять команду.
func TestPrometheusCollector_Push_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	config := Config{
		Enabled:        true,
		PushgatewayURL: server.URL,
		JobName:        "slngen-test",
		Timeout:        5 * time.Second,
	}

	collector, err := NewPrometheusCollector(config, logging.NewNopLogger())
	require.NoError(t, err)

	assert.NoError(t, collector.Push(context.Background()), "ошибка push логируется, не возвращается")
}

// TestSanitizeLabel проверяет защиту от cardinality explosion и битого формата.
func TestSanitizeLabel(t *testing.T) {
	assert.Equal(t, "flags-apply", sanitizeLabel("flags-apply"))
	assert.Equal(t, "a_b", sanitizeLabel("a\nb"))

	long := strings.Repeat("x", 300)
	assert.Len(t, sanitizeLabel(long), maxLabelLength)
}

// TestConfig_Validate проверяет правила валидации конфигурации.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "выключенные метрики валидны без остальных полей",
			config:  Config{Enabled: false},
			wantErr: nil,
		},
		{
			name:    "нет URL",
			config:  Config{Enabled: true, JobName: "j", Timeout: time.Second},
			wantErr: ErrPushgatewayURLRequired,
		},
		{
			name:    "невалидный URL",
			config:  Config{Enabled: true, PushgatewayURL: "::bad::", JobName: "j", Timeout: time.Second},
			wantErr: ErrPushgatewayURLInvalid,
		},
		{
			name:    "нет job name",
			config:  Config{Enabled: true, PushgatewayURL: "http://pg:9091", Timeout: time.Second},
			wantErr: ErrJobNameRequired,
		},
		{
			name:    "нулевой timeout",
			config:  Config{Enabled: true, PushgatewayURL: "http://pg:9091", JobName: "j"},
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "валидная конфигурация",
			config:  Config{Enabled: true, PushgatewayURL: "http://pg:9091", JobName: "j", Timeout: time.Second},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

// TestNewCollector_Factory проверяет выбор реализации фабрикой.
func TestNewCollector_Factory(t *testing.T) {
	disabled, err := NewCollector(Config{Enabled: false}, logging.NewNopLogger())
	require.NoError(t, err)
	assert.IsType(t, &NopCollector{}, disabled)

	enabled, err := NewCollector(Config{
		Enabled:        true,
		PushgatewayURL: "http://pg:9091",
		JobName:        "slngen",
		Timeout:        time.Second,
	}, logging.NewNopLogger())
	require.NoError(t, err)
	assert.IsType(t, &PrometheusCollector{}, enabled)

	_, err = NewCollector(Config{Enabled: true}, logging.NewNopLogger())
	assert.Error(t, err, "включённые метрики без URL — ошибка конфигурации")
}

// TestNopCollector проверяет что no-op реализация безопасна.
func TestNopCollector(t *testing.T) {
	c := NewNopCollector()
	c.RecordCommandStart("x", "")
	c.RecordCommandEnd("x", "", time.Second, false)
	c.RecordFlagMutation("MSBUILD_EXE_PATH", true)
	assert.NoError(t, c.Push(context.Background()))
}
