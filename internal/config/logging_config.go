package config

import (
	"fmt"

	"github.com/MattGal/slngen/internal/pkg/logging"
)

// LoggingConfig содержит настройки логирования.
type LoggingConfig struct {
	// Level — минимальный уровень логов (debug/info/warn/error).
	Level string `yaml:"level" env:"SLNGEN_LOG_LEVEL" env-default:"info"`

	// Format — формат записей (json/text).
	Format string `yaml:"format" env:"SLNGEN_LOG_FORMAT" env-default:"text"`

	// Output — куда писать логи (stderr/file).
	Output string `yaml:"output" env:"SLNGEN_LOG_OUTPUT" env-default:"stderr"`

	// FilePath — путь к файлу логов при output=file.
	FilePath string `yaml:"filePath" env:"SLNGEN_LOG_FILE"`

	// MaxSize — максимальный размер файла логов в MB до ротации.
	MaxSize int `yaml:"maxSize" env:"SLNGEN_LOG_MAX_SIZE" env-default:"100"`

	// MaxBackups — количество хранимых backup-файлов.
	MaxBackups int `yaml:"maxBackups" env:"SLNGEN_LOG_MAX_BACKUPS" env-default:"3"`

	// MaxAge — максимальный возраст backup-файлов в днях.
	MaxAge int `yaml:"maxAge" env:"SLNGEN_LOG_MAX_AGE" env-default:"7"`

	// Compress — сжимать ли backup-файлы в gzip.
	Compress bool `yaml:"compress" env:"SLNGEN_LOG_COMPRESS" env-default:"true"`
}

// getDefaultLoggingConfig возвращает конфигурацию логирования по умолчанию.
func getDefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:      logging.DefaultLevel,
		Format:     logging.DefaultFormat,
		Output:     logging.DefaultOutput,
		FilePath:   logging.DefaultFilePath,
		MaxSize:    logging.DefaultMaxSize,
		MaxBackups: logging.DefaultMaxBackups,
		MaxAge:     logging.DefaultMaxAge,
		Compress:   logging.DefaultCompress,
	}
}

// validateLoggingConfig проверяет корректность конфигурации логирования.
func validateLoggingConfig(lc *LoggingConfig) error {
	switch lc.Level {
	case logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError:
	default:
		return fmt.Errorf("logging: неизвестный level %q", lc.Level)
	}
	switch lc.Format {
	case logging.FormatJSON, logging.FormatText:
	default:
		return fmt.Errorf("logging: неизвестный format %q", lc.Format)
	}
	switch lc.Output {
	case logging.OutputStderr, logging.OutputFile:
	default:
		return fmt.Errorf("logging: неизвестный output %q", lc.Output)
	}
	if lc.Output == logging.OutputFile && lc.FilePath == "" {
		return fmt.Errorf("logging: filePath обязателен при output=file")
	}
	return nil
}

// ToLogging конвертирует в logging.Config для фабрики логгера.
func (lc *LoggingConfig) ToLogging() logging.Config {
	return logging.Config{
		Level:      lc.Level,
		Format:     lc.Format,
		Output:     lc.Output,
		FilePath:   lc.FilePath,
		MaxSize:    lc.MaxSize,
		MaxBackups: lc.MaxBackups,
		MaxAge:     lc.MaxAge,
		Compress:   lc.Compress,
	}
}
