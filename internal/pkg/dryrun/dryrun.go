// Package dryrun предоставляет функции для работы с dry-run режимом.
// В dry-run режиме команды возвращают план действий без реального выполнения.
package dryrun

import (
	"os"
	"strings"

	"github.com/MattGal/slngen/internal/constants"
)

// IsDryRun проверяет включён ли dry-run режим.
// Возвращает true если переменная окружения SLNGEN_DRY_RUN равна "true" или "1".
// Проверка значения "true" — case-insensitive.
func IsDryRun() bool {
	val := os.Getenv(constants.EnvDryRun)
	return strings.EqualFold(val, "true") || val == "1"
}

// IsVerbose проверяет включён ли verbose режим.
// Возвращает true если переменная окружения SLNGEN_VERBOSE равна "true" или "1".
func IsVerbose() bool {
	val := os.Getenv(constants.EnvVerbose)
	return strings.EqualFold(val, "true") || val == "1"
}

// EffectiveMode возвращает текущий приоритетный режим выполнения.
// Приоритет: "dry-run" > "verbose" > "normal".
func EffectiveMode() string {
	if IsDryRun() {
		return "dry-run"
	}
	if IsVerbose() {
		return "verbose"
	}
	return "normal"
}
