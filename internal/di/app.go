package di

import (
	"context"

	"github.com/MattGal/slngen/internal/config"
	"github.com/MattGal/slngen/internal/msbuild/featureflags"
	"github.com/MattGal/slngen/internal/pkg/env"
	"github.com/MattGal/slngen/internal/pkg/logging"
	"github.com/MattGal/slngen/internal/pkg/metrics"
	"github.com/MattGal/slngen/internal/pkg/output"
)

// App содержит инициализированные зависимости приложения.
// Создаётся через Wire DI в InitializeApp().
//
// При добавлении новых зависимостей:
//  1. Добавить поле в App struct
//  2. Создать провайдер в providers.go
//  3. Добавить провайдер в ProviderSet в wire.go
//  4. Перегенерировать wire_gen.go: go generate ./internal/di/...
type App struct {
	// Config содержит конфигурацию приложения.
	// Передаётся извне через InitializeApp().
	Config *config.Config

	// Logger предоставляет структурированное логирование.
	Logger logging.Logger

	// OutputWriter форматирует результаты команд
	// на основе SLNGEN_OUTPUT_FORMAT.
	OutputWriter output.Writer

	// TraceID содержит уникальный идентификатор для корреляции логов
	// в рамках одного запуска команды.
	TraceID string

	// EnvProvider — доступ к переменным окружения процесса.
	// Диспетчер прокидывает его в Config перед выполнением команды.
	EnvProvider env.Provider

	// Controller управляет флагами MSBuild поверх EnvProvider.
	// Диспетчер прокидывает его в Config перед выполнением команды.
	Controller *featureflags.Controller

	// MetricsCollector собирает и отправляет метрики в Prometheus Pushgateway.
	// Если метрики отключены — NopCollector.
	MetricsCollector metrics.Collector

	// TracerShutdown завершает OTel TracerProvider и отправляет
	// буферизированные span-ы. Если трейсинг отключён — nop function.
	TracerShutdown func(context.Context) error
}
