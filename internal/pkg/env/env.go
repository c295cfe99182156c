// Package env предоставляет абстракцию доступа к переменным окружения процесса.
// Прямая связь с os.Setenv/os.LookupEnv вынесена за интерфейс Provider,
// что позволяет инъектировать in-memory реализацию в тестах и в dry-run режиме.
package env

import "os"

// Provider определяет интерфейс доступа к переменным окружения.
// Реализации: OSProvider (реальное окружение процесса) и MapProvider (in-memory).
type Provider interface {
	// Lookup возвращает текущее значение переменной name и признак её наличия.
	// Не имеет побочных эффектов.
	Lookup(name string) (string, bool)

	// Set привязывает name к value. Идемпотентен: повторная установка
	// того же значения не имеет дополнительного эффекта.
	Set(name, value string) error

	// Unset полностью удаляет привязку name. Идемпотентен:
	// удаление отсутствующей переменной — не ошибка.
	Unset(name string) error
}

// OSProvider реализует Provider поверх реального окружения процесса.
// Валидация имён не выполняется — некорректные имена передаются
// в os.Setenv/os.Unsetenv как есть, их ошибки пропагируют вызывающему
// без повторов и трансляции.
type OSProvider struct{}

// NewOSProvider создаёт OSProvider.
func NewOSProvider() *OSProvider {
	return &OSProvider{}
}

// Lookup возвращает значение переменной окружения процесса.
func (*OSProvider) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// Set устанавливает переменную окружения процесса.
func (*OSProvider) Set(name, value string) error {
	return os.Setenv(name, value)
}

// Unset удаляет переменную окружения процесса.
func (*OSProvider) Unset(name string) error {
	return os.Unsetenv(name)
}
