package config

import (
	"time"

	"github.com/MattGal/slngen/internal/constants"
	"github.com/MattGal/slngen/internal/pkg/metrics"
)

// MetricsConfig содержит настройки отправки Prometheus метрик в Pushgateway.
type MetricsConfig struct {
	// Enabled включает сбор и отправку метрик.
	Enabled bool `yaml:"enabled" env:"SLNGEN_METRICS_ENABLED" env-default:"false"`

	// PushgatewayURL — URL Prometheus Pushgateway (например, http://pushgateway:9091).
	PushgatewayURL string `yaml:"pushgatewayUrl" env:"SLNGEN_METRICS_PUSHGATEWAY_URL"`

	// JobName — имя job для группировки метрик.
	JobName string `yaml:"jobName" env:"SLNGEN_METRICS_JOB_NAME" env-default:"slngen"`

	// Timeout — таймаут HTTP запросов к Pushgateway.
	Timeout time.Duration `yaml:"timeout" env:"SLNGEN_METRICS_TIMEOUT" env-default:"10s"`

	// InstanceLabel — переопределение instance label (по умолчанию hostname).
	InstanceLabel string `yaml:"instanceLabel" env:"SLNGEN_METRICS_INSTANCE"`
}

// getDefaultMetricsConfig возвращает конфигурацию метрик по умолчанию (отключены).
func getDefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled: false,
		JobName: constants.AppName,
		Timeout: 10 * time.Second,
	}
}

// validateMetricsConfig проверяет корректность конфигурации метрик при загрузке.
func validateMetricsConfig(mc *MetricsConfig) error {
	converted := mc.ToMetrics()
	return converted.Validate()
}

// ToMetrics конвертирует в metrics.Config для фабрики коллектора.
func (mc *MetricsConfig) ToMetrics() metrics.Config {
	return metrics.Config{
		Enabled:        mc.Enabled,
		PushgatewayURL: mc.PushgatewayURL,
		JobName:        mc.JobName,
		Timeout:        mc.Timeout,
		InstanceLabel:  mc.InstanceLabel,
	}
}
