package di

import (
	"context"

	"github.com/MattGal/slngen/internal/config"
	"github.com/MattGal/slngen/internal/constants"
	"github.com/MattGal/slngen/internal/msbuild/featureflags"
	"github.com/MattGal/slngen/internal/pkg/env"
	"github.com/MattGal/slngen/internal/pkg/logging"
	"github.com/MattGal/slngen/internal/pkg/metrics"
	"github.com/MattGal/slngen/internal/pkg/output"
	"github.com/MattGal/slngen/internal/pkg/tracing"
)

// ProvideLogger возвращает Logger приложения.
// Загрузчик конфигурации уже строит логгер из секции logging —
// переиспользуем его; при программной сборке Config без логгера
// создаём новый из той же секции.
func ProvideLogger(cfg *config.Config) logging.Logger {
	if cfg != nil && cfg.Logger != nil {
		return cfg.Logger
	}
	if cfg != nil {
		return logging.NewLogger(cfg.Logging.ToLogging())
	}
	return logging.NewLogger(logging.DefaultConfig())
}

// ProvideOutputWriter создаёт Writer на основе OutputFormat из Config:
// "json" — JSONWriter, "text" или пустая строка — TextWriter.
func ProvideOutputWriter(cfg *config.Config) output.Writer {
	format := output.FormatText
	if cfg != nil && cfg.OutputFormat != "" {
		format = cfg.OutputFormat
	}
	return output.NewWriter(format)
}

// ProvideTraceID генерирует уникальный trace_id для корреляции логов.
// Формат: 32-символьный hex string (16 байт).
// Генерируется один раз при инициализации App и используется
// для всех логов в рамках одного запуска команды.
func ProvideTraceID() string {
	return tracing.GenerateTraceID()
}

// ProvideEnvProvider возвращает провайдер реального окружения процесса.
func ProvideEnvProvider() env.Provider {
	return env.NewOSProvider()
}

// ProvideController создаёт контроллер флагов MSBuild поверх
// провайдера окружения. Конструктор не трогает окружение.
func ProvideController(provider env.Provider, logger logging.Logger) *featureflags.Controller {
	return featureflags.New(provider, logger)
}

// ProvideMetricsCollector создаёт Collector на основе секции metrics.
// Если метрики отключены — NopCollector.
// При ошибке создания возвращает NopCollector и логирует ошибку:
// недоступность метрик не должна блокировать команды.
func ProvideMetricsCollector(cfg *config.Config, logger logging.Logger) metrics.Collector {
	if cfg == nil {
		return metrics.NewNopCollector()
	}

	collector, err := metrics.NewCollector(cfg.Metrics.ToMetrics(), logger)
	if err != nil {
		logger.Error("ошибка создания MetricsCollector, используется NopCollector",
			"error", err.Error(),
		)
		return metrics.NewNopCollector()
	}
	return collector
}

// ProvideTracerProvider создаёт и инициализирует OTel TracerProvider.
// Возвращает shutdown function для graceful завершения.
// Если трейсинг отключён — nop shutdown.
// При ошибке инициализации возвращает nop shutdown и логирует ошибку.
func ProvideTracerProvider(cfg *config.Config, logger logging.Logger) func(context.Context) error {
	if cfg == nil {
		return tracing.NewNopTracerProvider()
	}

	shutdown, err := tracing.NewTracerProvider(cfg.Tracing.ToTracing(constants.Version), logger)
	if err != nil {
		logger.Error("ошибка инициализации tracing, используется nop provider",
			"error", err.Error(),
		)
		return tracing.NewNopTracerProvider()
	}
	return shutdown
}
