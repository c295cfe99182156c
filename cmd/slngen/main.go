// Package main содержит точку входа приложения slngen.
// Приложение управляет поведенческими флагами MSBuild через переменные
// окружения процесса; команда и параметры задаются переменными SLNGEN_*.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MattGal/slngen/internal/app"
	"github.com/MattGal/slngen/internal/command/handlers"
	"github.com/MattGal/slngen/internal/config"
	"github.com/MattGal/slngen/internal/constants"
	"github.com/MattGal/slngen/internal/di"
)

func main() {
	if err := handlers.RegisterAll(); err != nil {
		fmt.Fprintf(os.Stderr, "Не удалось зарегистрировать команды: %v\n", err)
		os.Exit(constants.ExitError)
	}

	cfg, err := config.MustLoad()
	if err != nil || cfg == nil {
		fmt.Fprintf(os.Stderr, "Не удалось загрузить конфигурацию приложения: %v\n", err)
		os.Exit(constants.ExitConfigError)
	}

	application, err := di.InitializeApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Не удалось инициализировать приложение: %v\n", err)
		os.Exit(constants.ExitError)
	}

	application.Logger.Debug("Информация о сборке",
		"version", constants.Version,
		"commit_hash", constants.CommitHash,
	)

	os.Exit(app.Run(context.Background(), application))
}
