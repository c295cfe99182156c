package config

import (
	"time"

	"github.com/MattGal/slngen/internal/constants"
	"github.com/MattGal/slngen/internal/pkg/tracing"
)

// TracingConfig содержит настройки OpenTelemetry трейсинга.
type TracingConfig struct {
	// Enabled включает отправку трейсов в OTLP бэкенд.
	Enabled bool `yaml:"enabled" env:"SLNGEN_TRACING_ENABLED" env-default:"false"`

	// Endpoint — URL OTLP HTTP endpoint (например, http://jaeger:4318).
	Endpoint string `yaml:"endpoint" env:"SLNGEN_TRACING_ENDPOINT"`

	// ServiceName — имя сервиса для resource attributes.
	ServiceName string `yaml:"serviceName" env:"SLNGEN_TRACING_SERVICE_NAME" env-default:"slngen"`

	// Environment — окружение (production, staging, development).
	Environment string `yaml:"environment" env:"SLNGEN_TRACING_ENVIRONMENT" env-default:"production"`

	// Insecure — использовать HTTP вместо HTTPS для OTLP endpoint.
	Insecure bool `yaml:"insecure" env:"SLNGEN_TRACING_INSECURE" env-default:"false"`

	// Timeout — таймаут для экспорта трейсов.
	Timeout time.Duration `yaml:"timeout" env:"SLNGEN_TRACING_TIMEOUT" env-default:"5s"`

	// SamplingRate — доля сэмплируемых трейсов (0.0 — ни один, 1.0 — все).
	SamplingRate float64 `yaml:"samplingRate" env:"SLNGEN_TRACING_SAMPLING_RATE" env-default:"1.0"`
}

// getDefaultTracingConfig возвращает конфигурацию трейсинга по умолчанию (отключён).
func getDefaultTracingConfig() TracingConfig {
	return TracingConfig{
		Enabled:      false,
		ServiceName:  constants.AppName,
		Environment:  "production",
		Insecure:     false,
		Timeout:      5 * time.Second,
		SamplingRate: 1.0,
	}
}

// validateTracingConfig проверяет корректность конфигурации трейсинга при загрузке.
func validateTracingConfig(tc *TracingConfig) error {
	converted := tc.ToTracing(constants.Version)
	return converted.Validate()
}

// ToTracing конвертирует в tracing.Config для инициализации TracerProvider.
func (tc *TracingConfig) ToTracing(version string) tracing.Config {
	return tracing.Config{
		Enabled:      tc.Enabled,
		Endpoint:     tc.Endpoint,
		ServiceName:  tc.ServiceName,
		Version:      version,
		Environment:  tc.Environment,
		Insecure:     tc.Insecure,
		Timeout:      tc.Timeout,
		SamplingRate: tc.SamplingRate,
	}
}
