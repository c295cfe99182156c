// Package output предоставляет структуры и интерфейсы для форматирования
// результатов команд в JSON и текстовом формате.
package output

// StatusSuccess и StatusError — возможные значения поля Status в Result.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIVersion — текущая версия формата вывода для backward compatibility.
const APIVersion = "v1"

// Result представляет структурированный результат выполнения команды.
// Используется для сериализации в JSON (SLNGEN_OUTPUT_FORMAT=json)
// или для формирования человекочитаемого вывода (SLNGEN_OUTPUT_FORMAT=text).
type Result struct {
	// Status содержит статус выполнения: "success" или "error".
	Status string `json:"status"`

	// Command содержит имя выполненной команды.
	Command string `json:"command"`

	// Data содержит command-specific payload.
	// Для каждой команды определяется свой типизированный struct.
	Data any `json:"data,omitempty"`

	// Error содержит информацию об ошибке (только при status="error").
	Error *ErrorInfo `json:"error,omitempty"`

	// Metadata содержит метаданные выполнения.
	Metadata *Metadata `json:"metadata,omitempty"`

	// DryRun указывает что результат — это dry-run план, а не реальное выполнение.
	DryRun bool `json:"dry_run,omitempty"`

	// Plan содержит план записей переменных окружения для dry-run режима.
	Plan *Plan `json:"plan,omitempty"`
}

// ErrorInfo содержит информацию об ошибке в структурированном виде.
// Code — машиночитаемый код ошибки (например, "PROFILE.LOAD_FAILED").
// Message — человекочитаемое описание ошибки.
// ВАЖНО: Message НЕ ДОЛЖЕН содержать секреты!
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Metadata содержит метаданные выполнения команды.
type Metadata struct {
	// DurationMs — время выполнения команды в миллисекундах.
	DurationMs int64 `json:"duration_ms"`

	// TraceID — идентификатор трассировки для корреляции логов.
	TraceID string `json:"trace_id,omitempty"`

	// APIVersion — версия формата вывода.
	APIVersion string `json:"api_version"`
}

// Plan описывает изменения переменных окружения, которые были бы выполнены
// вне dry-run режима.
type Plan struct {
	// Steps — шаги плана в порядке выполнения.
	Steps []PlanStep `json:"steps"`
}

// PlanStep — одно изменение одной переменной окружения.
type PlanStep struct {
	// Action — "set" или "clear".
	Action string `json:"action"`

	// Variable — имя переменной окружения.
	Variable string `json:"variable"`

	// Value — записываемое значение (только для action="set").
	Value string `json:"value,omitempty"`
}

// Действия шагов плана.
const (
	PlanActionSet   = "set"
	PlanActionClear = "clear"
)
