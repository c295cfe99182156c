//go:build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/MattGal/slngen/internal/config"
)

//go:generate wire

// ProviderSet объединяет все провайдеры приложения.
// Используется в InitializeApp для построения графа зависимостей.
//
// При добавлении новых провайдеров:
//  1. Создать функцию провайдера в providers.go
//  2. Добавить её в ProviderSet
//  3. Перегенерировать: go generate ./internal/di/...
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideOutputWriter,
	ProvideTraceID,
	ProvideEnvProvider,
	ProvideController,
	ProvideMetricsCollector,
	ProvideTracerProvider,
	wire.Struct(new(App), "*"),
)

// InitializeApp создаёт и инициализирует App через Wire DI.
// Принимает внешний Config (загруженный через config.MustLoad()).
//
// Wire генерирует реализацию этой функции в wire_gen.go;
// функция здесь — заглушка с wire.Build() вызовом.
// Циклические зависимости между провайдерами обнаруживаются
// на этапе генерации wire_gen.go.
func InitializeApp(cfg *config.Config) (*App, error) {
	wire.Build(ProviderSet)
	return nil, nil // Wire заменит это на реальную реализацию
}
