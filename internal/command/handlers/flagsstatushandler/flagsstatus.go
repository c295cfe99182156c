// Package flagsstatushandler реализует команду flags-status для чтения
// текущего логического состояния флагов MSBuild без их изменения.
package flagsstatushandler

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/MattGal/slngen/internal/command"
	"github.com/MattGal/slngen/internal/config"
	"github.com/MattGal/slngen/internal/constants"
	"github.com/MattGal/slngen/internal/msbuild/featureflags"
	"github.com/MattGal/slngen/internal/pkg/apperrors"
	"github.com/MattGal/slngen/internal/pkg/env"
	"github.com/MattGal/slngen/internal/pkg/output"
	"github.com/MattGal/slngen/internal/pkg/tracing"
)

// RegisterCmd регистрирует обработчик в реестре команд.
func RegisterCmd() error {
	return command.Register(&Handler{})
}

// Data — payload команды flags-status.
type Data struct {
	// Flags — логические значения всех пяти флагов.
	Flags featureflags.State `json:"flags"`

	// Variables — сырые значения привязанных переменных окружения.
	// Содержит только реально установленные переменные.
	Variables map[string]string `json:"variables,omitempty"`
}

// Handler обрабатывает команду flags-status.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActFlagsStatus
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Чтение текущего состояния флагов MSBuild"
}

// Execute выполняет команду flags-status.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	return h.execute(ctx, cfg, os.Stdout, cfg.EnvProvider())
}

// execute — тестируемая реализация с инъекцией writer и провайдера окружения.
func (h *Handler) execute(ctx context.Context, cfg *config.Config, w io.Writer, provider env.Provider) error {
	start := time.Now()

	controller := cfg.FlagsController(provider)
	data := &Data{
		Flags:     controller.Snapshot(),
		Variables: rawVariables(provider),
	}

	traceID := tracing.TraceIDFromContext(ctx)
	if traceID == "" {
		traceID = tracing.GenerateTraceID()
	}

	result := &output.Result{
		Status:  output.StatusSuccess,
		Command: constants.ActFlagsStatus,
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

// rawVariables собирает реально установленные переменные из пяти привязанных.
func rawVariables(provider env.Provider) map[string]string {
	vars := make(map[string]string)
	for _, key := range featureflags.Keys() {
		if val, ok := provider.Lookup(key); ok {
			vars[key] = val
		}
	}
	if len(vars) == 0 {
		return nil
	}
	return vars
}
