// Package handlers предоставляет явную регистрацию всех обработчиков команд.
// Явная регистрация вместо init()-паттерна: граф зависимостей видимый,
// тестируемый и без side effects от импортов.
package handlers

import (
	"github.com/MattGal/slngen/internal/command/handlers/flagsapplyhandler"
	"github.com/MattGal/slngen/internal/command/handlers/flagsclearhandler"
	"github.com/MattGal/slngen/internal/command/handlers/flagsstatushandler"
	"github.com/MattGal/slngen/internal/command/handlers/help"
	"github.com/MattGal/slngen/internal/command/handlers/version"
)

// RegisterAll явно регистрирует все обработчики команд в глобальном реестре.
// Вызывается один раз из main() до обработки команд.
func RegisterAll() error {
	if err := flagsapplyhandler.RegisterCmd(); err != nil {
		return err
	}
	if err := flagsclearhandler.RegisterCmd(); err != nil {
		return err
	}
	if err := flagsstatushandler.RegisterCmd(); err != nil {
		return err
	}
	if err := help.RegisterCmd(); err != nil {
		return err
	}
	if err := version.RegisterCmd(); err != nil {
		return err
	}
	return nil
}
