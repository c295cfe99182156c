// Package metrics предоставляет интерфейсы и реализации для сбора и отправки метрик
// в Prometheus Pushgateway.
//
// Паттерны пакета:
//   - Interface Segregation: Collector interface для абстракции
//   - Factory pattern: NewCollector выбирает реализацию на основе конфигурации
//   - Graceful degradation: NopCollector при отключённых метриках
package metrics

import (
	"context"
	"time"
)

// Collector определяет интерфейс для сбора метрик.
// Реализации: PrometheusCollector (активный) и NopCollector (no-op).
type Collector interface {
	// RecordCommandStart записывает начало выполнения команды.
	// Для CLI не требуется отслеживать "in-flight" — метод может быть no-op.
	RecordCommandStart(command, profile string)

	// RecordCommandEnd записывает завершение команды с результатом.
	// duration — время выполнения команды.
	// success — успешно ли завершилась команда.
	RecordCommandEnd(command, profile string, duration time.Duration, success bool)

	// RecordFlagMutation записывает одну мутацию флага MSBuild.
	// flag — имя привязанной переменной окружения, enabled — записанное состояние.
	RecordFlagMutation(flag string, enabled bool)

	// Push отправляет метрики в Pushgateway.
	// Возвращает nil даже при ошибке — ошибки логируются внутри реализации;
	// недоступность Pushgateway не должна ронять команду.
	Push(ctx context.Context) error
}
