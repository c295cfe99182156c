package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// TextWriter форматирует Result в человекочитаемый текст.
type TextWriter struct{}

// NewTextWriter создаёт новый TextWriter.
func NewTextWriter() *TextWriter {
	return &TextWriter{}
}

// Write форматирует result в текст и записывает в w.
func (t *TextWriter) Write(w io.Writer, result *Result) error {
	if result == nil {
		return nil
	}

	// Базовый формат: Command: status
	if _, err := fmt.Fprintf(w, "%s: %s\n", result.Command, result.Status); err != nil {
		return err
	}

	if result.DryRun {
		if _, err := fmt.Fprintln(w, "(dry-run: окружение не изменялось)"); err != nil {
			return err
		}
	}

	if result.Error != nil {
		if _, err := fmt.Fprintf(w, "Error [%s]: %s\n", result.Error.Code, result.Error.Message); err != nil {
			return err
		}
	}

	// Data — выводим как JSON если не пустое
	if result.Data != nil {
		dataJSON, err := json.MarshalIndent(result.Data, "", "  ")
		if err != nil {
			return fmt.Errorf("не удалось сериализовать Data: %w", err)
		}
		if _, err := fmt.Fprintf(w, "Data: %s\n", dataJSON); err != nil {
			return err
		}
	}

	if result.Plan != nil {
		if _, err := fmt.Fprintln(w, "Plan:"); err != nil {
			return err
		}
		for _, step := range result.Plan.Steps {
			var err error
			if step.Action == PlanActionSet {
				_, err = fmt.Fprintf(w, "  set   %s=%s\n", step.Variable, step.Value)
			} else {
				_, err = fmt.Fprintf(w, "  clear %s\n", step.Variable)
			}
			if err != nil {
				return err
			}
		}
	}

	if result.Metadata != nil {
		if _, err := fmt.Fprintf(w, "Duration: %dms\n", result.Metadata.DurationMs); err != nil {
			return err
		}
	}

	return nil
}
