// Package help реализует команду help для вывода списка доступных команд.
package help

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
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

// CommandInfo описывает одну команду в выводе help.
type CommandInfo struct {
	// Name — имя команды.
	Name string `json:"name"`

	// Description — описание команды.
	Description string `json:"description"`
}

// Data — payload команды help.
type Data struct {
	// Commands — список доступных команд, отсортирован по имени.
	Commands []CommandInfo `json:"commands"`
}

// Handler обрабатывает команду help.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActHelp
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Вывод списка доступных команд"
}

// Execute выполняет команду help.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	return h.execute(ctx, cfg, os.Stdout)
}

func (h *Handler) execute(ctx context.Context, cfg *config.Config, w io.Writer) error {
	start := time.Now()
	data := buildData()

	if cfg.OutputFormat != output.FormatJSON {
		return data.writeText(w)
	}

	traceID := tracing.TraceIDFromContext(ctx)
	if traceID == "" {
		traceID = tracing.GenerateTraceID()
	}

	result := &output.Result{
		Status:  output.StatusSuccess,
		Command: constants.ActHelp,
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

// buildData собирает список команд из реестра.
func buildData() *Data {
	all := command.All()
	commands := make([]CommandInfo, 0, len(all))
	for name, handler := range all {
		commands = append(commands, CommandInfo{
			Name:        name,
			Description: handler.Description(),
		})
	}
	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Name < commands[j].Name
	})
	return &Data{Commands: commands}
}

// writeText выводит список команд в человекочитаемом формате.
func (d *Data) writeText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Доступные команды (%s):\n", constants.EnvCommand); err != nil {
		return err
	}
	for _, cmd := range d.Commands {
		if _, err := fmt.Fprintf(w, "  %-14s %s\n", cmd.Name, cmd.Description); err != nil {
			return err
		}
	}
	return nil
}
