package metrics

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/MattGal/slngen/internal/pkg/logging"
	"github.com/MattGal/slngen/internal/pkg/urlutil"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// PrometheusCollector реализует Collector с Prometheus метриками.
// Отправляет метрики в Pushgateway при вызове Push().
type PrometheusCollector struct {
	config   Config
	logger   logging.Logger
	registry *prometheus.Registry

	// Метрики
	commandDuration *prometheus.HistogramVec
	commandSuccess  *prometheus.CounterVec
	commandError    *prometheus.CounterVec
	flagMutations   *prometheus.CounterVec

	// Instance label (hostname)
	instance string
}

// NewPrometheusCollector создаёт PrometheusCollector с указанной конфигурацией.
// Регистрирует метрики:
//   - slngen_command_duration_seconds (histogram)
//   - slngen_command_success_total (counter)
//   - slngen_command_error_total (counter)
//   - slngen_flag_mutations_total (counter)
func NewPrometheusCollector(config Config, logger logging.Logger) (*PrometheusCollector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	instance := config.InstanceLabel
	if instance == "" {
		hostname, err := os.Hostname()
		if err != nil {
			logger.Warn("не удалось получить hostname для metrics instance label, используется 'unknown'",
				"error", err.Error())
			hostname = "unknown"
		}
		instance = hostname
	}

	registry := prometheus.NewRegistry()

	// Histogram для duration (в секундах).
	// Buckets покрывают диапазон от мгновенных команд до медленного Pushgateway
	commandDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "slngen",
			Name:      "command_duration_seconds",
			Help:      "Duration of command execution in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"command", "profile", "status"},
	)

	// Counter для успешных команд.
	// Примечание: success/error counters дублируют histogram counts
	// (duration_seconds_count с label status), но оставлены для удобства —
	// простые PromQL запросы без агрегации по histogram.
	commandSuccess := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "slngen",
			Name:      "command_success_total",
			Help:      "Total number of successful command executions",
		},
		[]string{"command", "profile"},
	)

	// Counter для ошибок
	commandError := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "slngen",
			Name:      "command_error_total",
			Help:      "Total number of failed command executions",
		},
		[]string{"command", "profile"},
	)

	// Counter мутаций флагов MSBuild
	flagMutations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "slngen",
			Name:      "flag_mutations_total",
			Help:      "Total number of MSBuild feature flag mutations",
		},
		[]string{"flag", "enabled"},
	)

	// Регистрируем все метрики атомарно.
	// Используем Register вместо MustRegister для избежания panic.
	collectors := []prometheus.Collector{commandDuration, commandSuccess, commandError, flagMutations}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("ошибка регистрации метрики: %w", err)
		}
	}

	return &PrometheusCollector{
		config:          config,
		logger:          logger,
		registry:        registry,
		commandDuration: commandDuration,
		commandSuccess:  commandSuccess,
		commandError:    commandError,
		flagMutations:   flagMutations,
		instance:        instance,
	}, nil
}

// GetRegistry возвращает registry для тестов.
func (c *PrometheusCollector) GetRegistry() *prometheus.Registry {
	return c.registry
}

// RecordCommandStart записывает начало выполнения команды.
// Для CLI не требуется отслеживать "in-flight" — записываем только при завершении.
func (c *PrometheusCollector) RecordCommandStart(command, profile string) {
	c.logger.Debug("metrics: command started",
		"command", command,
		"profile", profile,
	)
}

// maxLabelLength — максимальная длина значения label для защиты от cardinality explosion.
const maxLabelLength = 128

// sanitizeLabel обрезает значение label до допустимой длины и удаляет
// контрольные символы (\n, \r, \0), которые могут нарушить Prometheus text format.
// Обрезка выполняется по рунам (не по байтам) для корректной работы с UTF-8.
func sanitizeLabel(value string) string {
	clean := strings.Map(func(r rune) rune {
		if r < 0x20 { // контрольные символы: \n, \r, \t, \0 и др.
			return '_'
		}
		return r
	}, value)

	runes := []rune(clean)
	if len(runes) > maxLabelLength {
		return string(runes[:maxLabelLength])
	}
	return clean
}

// RecordCommandEnd записывает завершение команды.
// Обновляет histogram duration и counter success/error.
func (c *PrometheusCollector) RecordCommandEnd(command, profile string, duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}

	command = sanitizeLabel(command)
	profile = sanitizeLabel(profile)

	c.commandDuration.WithLabelValues(command, profile, status).Observe(duration.Seconds())

	if success {
		c.commandSuccess.WithLabelValues(command, profile).Inc()
	} else {
		c.commandError.WithLabelValues(command, profile).Inc()
	}

	c.logger.Debug("metrics: command ended",
		"command", command,
		"profile", profile,
		"duration_ms", duration.Milliseconds(),
		"success", success,
	)
}

// RecordFlagMutation записывает мутацию флага MSBuild.
// Имена флагов — фиксированный набор из пяти переменных, cardinality ограничена.
func (c *PrometheusCollector) RecordFlagMutation(flag string, enabled bool) {
	c.flagMutations.WithLabelValues(sanitizeLabel(flag), fmt.Sprintf("%t", enabled)).Inc()
}

// Push отправляет метрики в Pushgateway.
// Возвращает nil даже при ошибке — ошибки логируются; недоступность
// Pushgateway не должна ронять команду.
func (c *PrometheusCollector) Push(ctx context.Context) error {
	if c.config.PushgatewayURL == "" {
		c.logger.Debug("metrics: pushgateway URL not configured, skipping push")
		return nil
	}

	select {
	case <-ctx.Done():
		c.logger.Debug("metrics push отменён")
		return nil
	default:
	}

	pusher := push.New(c.config.PushgatewayURL, c.config.JobName).
		Gatherer(c.registry).
		Grouping("instance", c.instance)

	pushCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	if err := pusher.PushContext(pushCtx); err != nil {
		c.logger.Error("ошибка отправки метрик в Pushgateway",
			"url", urlutil.MaskURL(c.config.PushgatewayURL),
			"error", err.Error(),
		)
		return nil
	}

	c.logger.Debug("metrics: отправлены в Pushgateway",
		"url", urlutil.MaskURL(c.config.PushgatewayURL),
	)
	return nil
}
