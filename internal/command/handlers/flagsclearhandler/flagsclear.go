// Package flagsclearhandler реализует команду flags-clear: безусловную
// очистку всех пяти привязанных переменных MSBuild.
//
// Очистка не зависит от того, кто и как установил переменные —
// посторонние значения удаляются так же, как записанные приложением.
package flagsclearhandler

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
	"github.com/MattGal/slngen/internal/pkg/dryrun"
	"github.com/MattGal/slngen/internal/pkg/env"
	"github.com/MattGal/slngen/internal/pkg/output"
	"github.com/MattGal/slngen/internal/pkg/tracing"
)

// RegisterCmd регистрирует обработчик в реестре команд.
func RegisterCmd() error {
	return command.Register(&Handler{})
}

// Data — payload команды flags-clear.
type Data struct {
	// Cleared — имена переменных, которые были установлены до очистки.
	Cleared []string `json:"cleared"`

	// Flags — логическое состояние флагов после очистки.
	Flags featureflags.State `json:"flags"`
}

// Handler обрабатывает команду flags-clear.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActFlagsClear
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Безусловная очистка всех флагов MSBuild"
}

// Execute выполняет команду flags-clear.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	return h.execute(ctx, cfg, os.Stdout, cfg.EnvProvider(), dryrun.IsDryRun())
}

// execute — тестируемая реализация с инъекцией writer, провайдера и режима.
func (h *Handler) execute(ctx context.Context, cfg *config.Config, w io.Writer, provider env.Provider, dry bool) error {
	start := time.Now()

	// Переменные, установленные на момент запуска: они и попадут
	// в план (dry-run) или в список очищенных. Снимок не атомарен
	// с очисткой — список корректен при single-writer дисциплине
	// на эти пять ключей.
	present := make([]string, 0, len(featureflags.Keys()))
	for _, key := range featureflags.Keys() {
		if _, ok := provider.Lookup(key); ok {
			present = append(present, key)
		}
	}

	result := &output.Result{
		Status:  output.StatusSuccess,
		Command: constants.ActFlagsClear,
	}

	if dry {
		plan := &output.Plan{Steps: []output.PlanStep{}}
		for _, key := range present {
			plan.Steps = append(plan.Steps, output.PlanStep{
				Action:   output.PlanActionClear,
				Variable: key,
			})
		}
		result.DryRun = true
		result.Plan = plan
	} else {
		controller := cfg.FlagsController(provider)
		if err := controller.Reset(); err != nil {
			return apperrors.NewAppError(apperrors.ErrFlagsReset,
				"не удалось очистить флаги MSBuild", err)
		}
		cfg.Logger.Info("Флаги MSBuild очищены", "cleared", len(present))
		result.Data = &Data{
			Cleared: present,
			Flags:   controller.Snapshot(),
		}
	}

	traceID := tracing.TraceIDFromContext(ctx)
	if traceID == "" {
		traceID = tracing.GenerateTraceID()
	}
	result.Metadata = &output.Metadata{
		DurationMs: time.Since(start).Milliseconds(),
		TraceID:    traceID,
		APIVersion: output.APIVersion,
	}

	if err := output.NewWriter(cfg.OutputFormat).Write(w, result); err != nil {
		return apperrors.NewAppError(apperrors.ErrOutputFormat,
			"не удалось записать результат команды", err)
	}
	return nil
}
