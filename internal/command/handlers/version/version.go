// Package version реализует команду version для вывода информации
// о версии приложения.
package version

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/MattGal/slngen/internal/command"
	"github.com/MattGal/slngen/internal/config"
	"github.com/MattGal/slngen/internal/constants"
	"github.com/MattGal/slngen/internal/pkg/apperrors"
	"github.com/MattGal/slngen/internal/pkg/output"
	"github.com/MattGal/slngen/internal/pkg/tracing"
)

// RegisterCmd регистрирует обработчик в реестре команд.
func RegisterCmd() error {
	return command.Register(&Handler{})
}

// Data содержит информацию о версии приложения.
type Data struct {
	// Version — полная версия приложения.
	Version string `json:"version"`

	// GoVersion — версия Go, использованная при сборке.
	GoVersion string `json:"go_version"`

	// Commit — хеш коммита на момент сборки.
	Commit string `json:"commit"`
}

// buildData создаёт Data с fallback значениями.
// Если version пустой — используется "dev", если commit пустой — "unknown".
func buildData(version, commit string) *Data {
	if version == "" {
		version = "dev"
	}
	if commit == "" {
		commit = "unknown"
	}
	return &Data{
		Version:   version,
		GoVersion: runtime.Version(),
		Commit:    commit,
	}
}

// writeText выводит информацию о версии в компактном человекочитаемом формате.
func (d *Data) writeText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s version %s\n  Go:     %s\n  Commit: %s\n",
		constants.AppName, d.Version, d.GoVersion, d.Commit)
	return err
}

// Handler обрабатывает команду version.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActVersion
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Вывод информации о версии приложения"
}

// Execute выполняет команду version.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	return h.execute(ctx, cfg, os.Stdout)
}

// execute — тестируемая реализация с инъекцией writer.
func (h *Handler) execute(ctx context.Context, cfg *config.Config, w io.Writer) error {
	start := time.Now()

	data := buildData(constants.Version, constants.CommitHash)

	// Текстовый формат — специализированный компактный вывод без
	// metadata/trace_id, не через стандартный Result.
	if cfg.OutputFormat != output.FormatJSON {
		return data.writeText(w)
	}

	traceID := tracing.TraceIDFromContext(ctx)
	if traceID == "" {
		traceID = tracing.GenerateTraceID()
	}

	result := &output.Result{
		Status:  output.StatusSuccess,
		Command: constants.ActVersion,
		Data:    data,
		Metadata: &output.Metadata{
			DurationMs: time.Since(start).Milliseconds(),
			TraceID:    traceID,
			APIVersion: output.APIVersion,
		},
	}

	if err := output.NewWriter(cfg.OutputFormat).Write(w, result); err != nil {
		return apperrors.NewAppError(apperrors.ErrOutputFormat,
			"не удалось записать результат команды", err)
	}
	return nil
}
