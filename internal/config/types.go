// Package config загружает конфигурацию приложения из переменных окружения
// и опционального YAML-файла (путь в SLNGEN_CONFIG).
//
// Приоритет источников (от низшего к высшему):
//  1. Значения по умолчанию
//  2. YAML-файл конфигурации
//  3. Переменные окружения SLNGEN_*
package config

import (
	"github.com/MattGal/slngen/internal/msbuild/featureflags"
	"github.com/MattGal/slngen/internal/pkg/env"
	"github.com/MattGal/slngen/internal/pkg/logging"
	"github.com/MattGal/slngen/internal/pkg/metrics"
)

// Config — корневая конфигурация приложения.
type Config struct {
	// Command — имя выполняемой команды (version, help, flags-status,
	// flags-apply, flags-clear).
	Command string `yaml:"command" env:"SLNGEN_COMMAND"`

	// ProfilePath — путь к JSON-профилю флагов для flags-apply.
	ProfilePath string `yaml:"profilePath" env:"SLNGEN_PROFILE"`

	// OutputFormat — формат вывода результатов (text/json).
	OutputFormat string `yaml:"outputFormat" env:"SLNGEN_OUTPUT_FORMAT" env-default:"text"`

	// Logging — настройки логирования.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics — настройки Prometheus метрик.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing — настройки OpenTelemetry трейсинга.
	Tracing TracingConfig `yaml:"tracing"`

	// Flags — декларативные значения флагов MSBuild из конфигурации.
	// Используются командой flags-apply когда профиль не задан.
	Flags FlagsConfig `yaml:"flags"`

	// Logger — инициализированный логгер приложения.
	// Заполняется после загрузки, не сериализуется.
	Logger logging.Logger `yaml:"-" env:"-"`

	// Collector — коллектор метрик приложения.
	// Заполняется DI-контейнером, не сериализуется.
	Collector metrics.Collector `yaml:"-" env:"-"`

	// Env — провайдер окружения процесса.
	// Заполняется DI-контейнером, не сериализуется.
	Env env.Provider `yaml:"-" env:"-"`

	// Controller — контроллер флагов MSBuild поверх Env.
	// Заполняется DI-контейнером, не сериализуется.
	Controller *featureflags.Controller `yaml:"-" env:"-"`
}

// EnvProvider возвращает провайдер окружения из DI-контейнера.
// Если провайдер не прокинут — реальное окружение процесса.
func (c *Config) EnvProvider() env.Provider {
	if c.Env != nil {
		return c.Env
	}
	return env.NewOSProvider()
}

// FlagsController возвращает контроллер флагов из DI-контейнера.
// Если контроллер не прокинут — строит новый поверх переданного провайдера.
func (c *Config) FlagsController(provider env.Provider) *featureflags.Controller {
	if c.Controller != nil {
		return c.Controller
	}
	return featureflags.New(provider, c.Logger)
}
