package config

import (
	"fmt"
	"io"
	"os"

	"github.com/MattGal/slngen/internal/constants"
	"github.com/MattGal/slngen/internal/pkg/apperrors"
	"github.com/MattGal/slngen/internal/pkg/logging"

	"github.com/ilyakaznacheev/cleanenv"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"
)

// MustLoad загружает конфигурацию приложения.
//
// Порядок:
//  1. Значения по умолчанию
//  2. YAML-файл конфигурации (если задан SLNGEN_CONFIG)
//  3. Переменные окружения SLNGEN_* (переопределяют файл)
//
// Невалидные секции metrics/tracing отключаются с предупреждением —
// проблемы observability не должны блокировать работу с флагами.
// Невалидная секция flags и отсутствующая команда — жёсткие ошибки.
func MustLoad() (*Config, error) {
	cfg := &Config{
		Logging: getDefaultLoggingConfig(),
		Metrics: getDefaultMetricsConfig(),
		Tracing: getDefaultTracingConfig(),
	}

	// YAML-файл конфигурации (опционально)
	if path := os.Getenv(constants.EnvConfigPath); path != "" {
		if err := loadConfigFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// Переменные окружения переопределяют файл
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
			"не удалось прочитать переменные окружения", err)
	}

	// Логгер создаётся из секции logging; при невалидной секции —
	// дефолтный stderr-логгер, чтобы предупреждение не потерялось.
	var l logging.Logger
	if err := validateLoggingConfig(&cfg.Logging); err != nil {
		cfg.Logging = getDefaultLoggingConfig()
		l = logging.NewLogger(cfg.Logging.ToLogging())
		l.Warn("невалидная конфигурация логирования, используются значения по умолчанию",
			"error", err.Error())
	} else {
		l = logging.NewLogger(cfg.Logging.ToLogging())
	}
	cfg.Logger = l

	// Fail-soft валидация observability секций: обнаруживаем невалидную
	// конфигурацию при загрузке, а не при первом использовании в runtime.
	if cfg.Metrics.Enabled {
		if err := validateMetricsConfig(&cfg.Metrics); err != nil {
			l.Warn("невалидная конфигурация метрик, метрики отключены",
				"error", err.Error(),
				"reason", "validation_failed",
			)
			cfg.Metrics = getDefaultMetricsConfig()
		}
	}
	if cfg.Tracing.Enabled {
		if err := validateTracingConfig(&cfg.Tracing); err != nil {
			l.Warn("невалидная конфигурация трейсинга, трейсинг отключён",
				"error", err.Error(),
				"reason", "validation_failed",
			)
			cfg.Tracing = getDefaultTracingConfig()
		}
	}

	// Флаги влияют на семантику flags-apply — невалидные значения это hard error.
	if err := validateFlagsConfig(&cfg.Flags); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigValidate,
			"невалидная конфигурация флагов", err)
	}

	if cfg.Command == "" {
		return nil, apperrors.NewAppError(apperrors.ErrConfigValidate,
			fmt.Sprintf("не задана команда: установите переменную окружения %s", constants.EnvCommand), nil)
	}

	l.Debug("конфигурация загружена",
		"command", cfg.Command,
		"profile_path", cfg.ProfilePath,
		"output_format", cfg.OutputFormat,
		"metrics_enabled", cfg.Metrics.Enabled,
		"tracing_enabled", cfg.Tracing.Enabled,
	)

	return cfg, nil
}

// loadConfigFile читает и парсит YAML-файл конфигурации.
// Файлы, созданные на Windows, могут содержать BOM — нормализуем в UTF-8.
func loadConfigFile(path string, cfg *Config) error {
	f, err := os.Open(path) // #nosec G304 -- путь задаётся оператором через SLNGEN_CONFIG
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrConfigLoad,
			fmt.Sprintf("не удалось открыть файл конфигурации %s", path), err)
	}
	defer func() { _ = f.Close() }()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(f, decoder))
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrConfigLoad,
			fmt.Sprintf("не удалось прочитать файл конфигурации %s", path), err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return apperrors.NewAppError(apperrors.ErrConfigParse,
			fmt.Sprintf("не удалось разобрать файл конфигурации %s", path), err)
	}
	return nil
}
