// Package flagsapplyhandler реализует команду flags-apply: применение
// набора значений флагов MSBuild из JSON-профиля или секции flags
// конфигурации к окружению процесса.
//
// В dry-run режиме применение выполняется в изолированной in-memory копии
// пяти привязанных переменных, а результат — план записей, без мутации
// реального окружения.
package flagsapplyhandler

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MattGal/slngen/internal/command"
	"github.com/MattGal/slngen/internal/config"
	"github.com/MattGal/slngen/internal/constants"
	"github.com/MattGal/slngen/internal/msbuild/featureflags"
	"github.com/MattGal/slngen/internal/msbuild/profile"
	"github.com/MattGal/slngen/internal/pkg/apperrors"
	"github.com/MattGal/slngen/internal/pkg/dryrun"
	"github.com/MattGal/slngen/internal/pkg/env"
	"github.com/MattGal/slngen/internal/pkg/metrics"
	"github.com/MattGal/slngen/internal/pkg/output"
	"github.com/MattGal/slngen/internal/pkg/tracing"
)

// RegisterCmd регистрирует обработчик в реестре команд.
func RegisterCmd() error {
	return command.Register(&Handler{})
}

// Data — payload команды flags-apply.
type Data struct {
	// Profile — имя применённого профиля.
	Profile string `json:"profile"`

	// Flags — логическое состояние флагов после применения.
	Flags featureflags.State `json:"flags"`
}

// Handler обрабатывает команду flags-apply.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActFlagsApply
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Применение профиля флагов MSBuild к окружению"
}

// Execute выполняет команду flags-apply.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	return h.execute(ctx, cfg, os.Stdout, cfg.EnvProvider(), dryrun.IsDryRun())
}

// execute — тестируемая реализация с инъекцией writer, провайдера и режима.
func (h *Handler) execute(ctx context.Context, cfg *config.Config, w io.Writer, provider env.Provider, dry bool) error {
	start := time.Now()

	prof, err := resolveProfile(cfg)
	if err != nil {
		return err
	}

	result := &output.Result{
		Status:  output.StatusSuccess,
		Command: constants.ActFlagsApply,
	}

	if dry {
		data, plan, dryErr := applyDry(cfg, provider, prof)
		if dryErr != nil {
			return dryErr
		}
		result.DryRun = true
		result.Plan = plan
		result.Data = data
	} else {
		data, applyErr := apply(cfg, provider, prof)
		if applyErr != nil {
			return applyErr
		}
		result.Data = data
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

// resolveProfile определяет источник значений флагов: JSON-профиль
// (SLNGEN_PROFILE) имеет приоритет над секцией flags конфигурации.
func resolveProfile(cfg *config.Config) (*profile.Profile, error) {
	if cfg.ProfilePath != "" {
		return profile.Load(cfg.ProfilePath)
	}
	if !cfg.Flags.IsEmpty() {
		return profileFromConfig(&cfg.Flags)
	}
	return nil, apperrors.NewAppError(apperrors.ErrConfigValidate,
		fmt.Sprintf("нечего применять: задайте %s или секцию flags конфигурации", constants.EnvProfilePath), nil)
}

// profileFromConfig строит профиль из tri-state секции flags.
// Значения уже проверены при загрузке конфигурации, но ошибки разбора
// всё равно пропагируются — на случай программной сборки Config.
func profileFromConfig(fc *config.FlagsConfig) (*profile.Profile, error) {
	p := &profile.Profile{Name: "config"}

	var err error
	if p.Flags.CacheFileEnumerations, err = config.ParseTriState(fc.CacheFileEnumerations); err != nil {
		return nil, configFlagError(err)
	}
	if p.Flags.LoadAllFilesAsReadOnly, err = config.ParseTriState(fc.LoadAllFilesAsReadOnly); err != nil {
		return nil, configFlagError(err)
	}
	if p.Flags.SkipEagerWildcardEvaluation, err = config.ParseTriState(fc.SkipEagerWildcardEvaluations); err != nil {
		return nil, configFlagError(err)
	}
	if p.Flags.UseSimpleProjectRootElementCacheConcurrency, err = config.ParseTriState(fc.UseSimpleProjectRootElementCacheConcurrency); err != nil {
		return nil, configFlagError(err)
	}
	if fc.MSBuildExePath != "" {
		path := fc.MSBuildExePath
		p.Flags.MSBuildExePath = &path
	}
	return p, nil
}

func configFlagError(cause error) error {
	return apperrors.NewAppError(apperrors.ErrConfigValidate,
		"невалидное значение флага в конфигурации", cause)
}

// apply применяет профиль к реальному окружению и записывает метрики мутаций.
func apply(cfg *config.Config, provider env.Provider, prof *profile.Profile) (*Data, error) {
	controller := cfg.FlagsController(provider)
	if err := prof.Apply(controller); err != nil {
		return nil, err
	}

	recordMutations(collector(cfg), prof)

	cfg.Logger.Info("Профиль флагов MSBuild применён",
		"profile", prof.Name,
	)

	return &Data{
		Profile: prof.Name,
		Flags:   controller.Snapshot(),
	}, nil
}

// applyDry применяет профиль к in-memory копии пяти привязанных переменных
// и строит план записей. Реальное окружение не мутируется.
func applyDry(cfg *config.Config, provider env.Provider, prof *profile.Profile) (*Data, *output.Plan, error) {
	seed := make(map[string]string)
	for _, key := range featureflags.Keys() {
		if val, ok := provider.Lookup(key); ok {
			seed[key] = val
		}
	}

	sandbox := env.NewMapProviderFrom(seed)
	controller := featureflags.New(sandbox, cfg.Logger)
	if err := prof.Apply(controller); err != nil {
		return nil, nil, err
	}

	data := &Data{
		Profile: prof.Name,
		Flags:   controller.Snapshot(),
	}
	return data, buildPlan(seed, sandbox.Snapshot()), nil
}

// buildPlan строит план записей как диф двух состояний пяти переменных.
// Порядок шагов следует порядку таблицы флагов.
func buildPlan(before, after map[string]string) *output.Plan {
	plan := &output.Plan{Steps: []output.PlanStep{}}
	for _, key := range featureflags.Keys() {
		beforeVal, wasSet := before[key]
		afterVal, isSet := after[key]
		switch {
		case isSet && (!wasSet || beforeVal != afterVal):
			plan.Steps = append(plan.Steps, output.PlanStep{
				Action:   output.PlanActionSet,
				Variable: key,
				Value:    afterVal,
			})
		case wasSet && !isSet:
			plan.Steps = append(plan.Steps, output.PlanStep{
				Action:   output.PlanActionClear,
				Variable: key,
			})
		}
	}
	return plan
}

// recordMutations записывает метрики по каждому заданному полю профиля.
func recordMutations(c metrics.Collector, prof *profile.Profile) {
	if v := prof.Flags.CacheFileEnumerations; v != nil {
		c.RecordFlagMutation(featureflags.EnvCacheFileEnumerations, *v)
	}
	if v := prof.Flags.LoadAllFilesAsReadOnly; v != nil {
		c.RecordFlagMutation(featureflags.EnvLoadAllFilesAsReadOnly, *v)
	}
	if v := prof.Flags.MSBuildExePath; v != nil {
		c.RecordFlagMutation(featureflags.EnvMSBuildExePath, *v != "")
	}
	if v := prof.Flags.SkipEagerWildcardEvaluation; v != nil {
		c.RecordFlagMutation(featureflags.EnvSkipEagerWildcardEvaluation, *v)
	}
	if v := prof.Flags.UseSimpleProjectRootElementCacheConcurrency; v != nil {
		c.RecordFlagMutation(featureflags.EnvUseSimpleProjectRootElementCacheConcurrency, *v)
	}
}

// collector возвращает коллектор метрик из конфигурации или Nop.
func collector(cfg *config.Config) metrics.Collector {
	if cfg.Collector != nil {
		return cfg.Collector
	}
	return metrics.NewNopCollector()
}
