// Package app связывает загруженную конфигурацию, реестр команд
// и observability: разрешает команду, выполняет её внутри OTel span,
// записывает метрики и транслирует ошибки в exit code процесса.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/MattGal/slngen/internal/command"
	"github.com/MattGal/slngen/internal/constants"
	"github.com/MattGal/slngen/internal/di"
	"github.com/MattGal/slngen/internal/pkg/apperrors"
	"github.com/MattGal/slngen/internal/pkg/dryrun"
	"github.com/MattGal/slngen/internal/pkg/output"
	"github.com/MattGal/slngen/internal/pkg/tracing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// shutdownTimeout — время на отправку буферизированных span-ов при завершении.
const shutdownTimeout = 5 * time.Second

// Run выполняет команду из конфигурации приложения и возвращает exit code.
// Ошибки выполнения выводятся как структурированный Result в stderr.
func Run(ctx context.Context, application *di.App) int {
	return run(ctx, application, os.Stderr)
}

// run — тестируемая реализация с инъекцией writer для ошибок.
func run(ctx context.Context, application *di.App, errW io.Writer) int {
	cfg := application.Config
	l := application.Logger.With(
		"trace_id", application.TraceID,
		"command", cfg.Command,
	)

	// Связываем internal trace_id с контекстом и OTel span context.
	ctx = tracing.WithTraceID(ctx, application.TraceID)
	ctx = tracing.ContextWithOTelTraceID(ctx, application.TraceID)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := application.TracerShutdown(shutdownCtx); err != nil {
			l.Warn("ошибка завершения tracer provider", "error", err.Error())
		}
	}()

	handler, ok := command.Get(cfg.Command)
	if !ok {
		err := apperrors.NewAppError(apperrors.ErrCommandNotFound,
			"неизвестная команда: "+cfg.Command, nil)
		l.Error("Команда не зарегистрирована",
			"available", command.Names(),
		)
		writeError(errW, application, err)
		return constants.ExitUnknownCommand
	}

	// Обработчики читают коллектор, провайдер окружения и контроллер
	// флагов из конфигурации.
	cfg.Collector = application.MetricsCollector
	cfg.Env = application.EnvProvider
	cfg.Controller = application.Controller

	tracer := otel.Tracer(constants.AppName)
	ctx, span := tracer.Start(ctx, "command."+cfg.Command)
	span.SetAttributes(
		attribute.String("command", cfg.Command),
		attribute.String("mode", dryrun.EffectiveMode()),
	)
	defer span.End()

	l.Info("Выполнение команды начато", "mode", dryrun.EffectiveMode())

	application.MetricsCollector.RecordCommandStart(cfg.Command, cfg.ProfilePath)
	start := time.Now()

	err := handler.Execute(ctx, cfg)
	duration := time.Since(start)

	application.MetricsCollector.RecordCommandEnd(cfg.Command, cfg.ProfilePath, duration, err == nil)
	if pushErr := application.MetricsCollector.Push(ctx); pushErr != nil {
		l.Warn("ошибка отправки метрик", "error", pushErr.Error())
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		l.Error("Выполнение команды завершилось ошибкой",
			"error", err.Error(),
			"duration_ms", duration.Milliseconds(),
		)
		writeError(errW, application, err)
		return exitCode(err)
	}

	span.SetStatus(codes.Ok, "")
	l.Info("Выполнение команды завершено",
		"duration_ms", duration.Milliseconds(),
	)
	return constants.ExitSuccess
}

// writeError выводит ошибку как структурированный Result.
// Формат совпадает с форматом успешного вывода команды, чтобы
// вызывающие pipeline-ы могли разбирать оба случая одинаково.
func writeError(w io.Writer, application *di.App, err error) {
	info := &output.ErrorInfo{
		Code:    apperrors.ErrCommandExec,
		Message: err.Error(),
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		info.Code = appErr.Code
		info.Message = appErr.Message
	}

	result := &output.Result{
		Status:  output.StatusError,
		Command: application.Config.Command,
		Error:   info,
		Metadata: &output.Metadata{
			TraceID:    application.TraceID,
			APIVersion: output.APIVersion,
		},
	}
	if writeErr := application.OutputWriter.Write(w, result); writeErr != nil {
		application.Logger.Error("ошибка вывода результата", "error", writeErr.Error())
	}
}

// exitCode маппит ошибку выполнения на exit code процесса.
func exitCode(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case apperrors.ErrCommandNotFound:
			return constants.ExitUnknownCommand
		case apperrors.ErrConfigLoad, apperrors.ErrConfigParse, apperrors.ErrConfigValidate:
			return constants.ExitConfigError
		}
	}
	return constants.ExitError
}
