// Package logging предоставляет интерфейс и реализации для структурированного логирования.
package logging

// Logger определяет интерфейс для структурированного логирования.
// Реализации: SlogAdapter (использует slog из stdlib), NopLogger (тесты).
//
// Все методы принимают сообщение и опциональные key-value пары:
//
//	logger.Info("Флаг применён", "flag", name, "enabled", true)
//
// ВАЖНО: Logger пишет ТОЛЬКО в stderr или файл, никогда в stdout.
// stdout зарезервирован за OutputWriter для машиночитаемого вывода.
type Logger interface {
	// Debug записывает сообщение уровня DEBUG.
	// Используется для детальной диагностики (значения переменных окружения).
	Debug(msg string, args ...any)

	// Info записывает сообщение уровня INFO.
	// Используется для значимых событий (применение профиля, очистка флагов).
	Info(msg string, args ...any)

	// Warn записывает сообщение уровня WARN.
	// Используется для recoverable issues.
	Warn(msg string, args ...any)

	// Error записывает сообщение уровня ERROR.
	// Используется для ошибок требующих внимания.
	Error(msg string, args ...any)

	// With возвращает новый Logger с добавленными атрибутами.
	// Атрибуты будут включены во все последующие записи.
	//
	//	logger.With("trace_id", traceID).Info("Команда началась")
	With(args ...any) Logger
}
