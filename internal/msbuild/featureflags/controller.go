package featureflags

import (
	"context"
	"errors"

	"github.com/MattGal/slngen/internal/pkg/env"
	"github.com/MattGal/slngen/internal/pkg/logging"
)

// Controller владеет пятью флагами MSBuild и транслирует их логические
// значения в привязанные переменные окружения согласно политике кодирования.
//
// Controller не хранит состояния кроме ссылок на Provider и Logger:
// единственный носитель значений — само окружение. Предполагается
// single-writer дисциплина: один активный Controller на процесс
// для данных пяти ключей, без блокировок между конкурентными
// контроллерами или посторонним кодом.
type Controller struct {
	env    env.Provider
	logger logging.Logger
}

// New создаёт Controller поверх переданного Provider.
// Конструктор не трогает окружение.
//
// При nil provider используется реальное окружение процесса,
// при nil logger — NopLogger.
func New(provider env.Provider, logger logging.Logger) *Controller {
	if provider == nil {
		provider = env.NewOSProvider()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Controller{env: provider, logger: logger}
}

// readBool декодирует текущее значение bool-флага по его политике.
func (c *Controller) readBool(def flagDef) bool {
	val, ok := c.env.Lookup(def.key)
	switch def.enc {
	case plainBoolean:
		return ok && val == enabledValue
	case invertedBoolean:
		// Отсутствие читается как true: при незаданной переменной
		// MSBuild ведёт себя так, будто флаг включён.
		return !ok || val != enabledValue
	case presenceBoolean:
		// Важно только присутствие; содержимое значения не сравнивается.
		return ok
	default:
		return false
	}
}

// writeBool записывает значение bool-флага по его политике.
// Выключенное состояние plain- и presence-флагов — всегда отсутствие
// переменной, никогда не sentinel-значение "off".
func (c *Controller) writeBool(def flagDef, enabled bool) error {
	var err error
	switch def.enc {
	case invertedBoolean:
		if enabled {
			err = c.env.Unset(def.key)
		} else {
			err = c.env.Set(def.key, def.enabled)
		}
	default:
		if enabled {
			err = c.env.Set(def.key, def.enabled)
		} else {
			err = c.env.Unset(def.key)
		}
	}
	if err != nil {
		return err
	}
	c.logger.Debug("Флаг MSBuild записан", "key", def.key, "enabled", enabled)
	return nil
}

// CacheFileEnumerations сообщает включено ли кэширование перечислений файлов.
func (c *Controller) CacheFileEnumerations() bool {
	return c.readBool(defCacheFileEnumerations)
}

// SetCacheFileEnumerations включает или выключает кэширование перечислений файлов.
func (c *Controller) SetCacheFileEnumerations(enabled bool) error {
	return c.writeBool(defCacheFileEnumerations, enabled)
}

// LoadAllFilesAsReadOnly сообщает включена ли read-only загрузка файлов.
func (c *Controller) LoadAllFilesAsReadOnly() bool {
	return c.readBool(defLoadAllFilesAsReadOnly)
}

// SetLoadAllFilesAsReadOnly включает или выключает read-only загрузку файлов.
func (c *Controller) SetLoadAllFilesAsReadOnly(enabled bool) error {
	return c.writeBool(defLoadAllFilesAsReadOnly, enabled)
}

// MSBuildExePath возвращает явный путь к MSBuild.exe.
// Отсутствие переменной маппится на пустую строку.
func (c *Controller) MSBuildExePath() string {
	val, _ := c.env.Lookup(defMSBuildExePath.key)
	return val
}

// LookupMSBuildExePath возвращает путь к MSBuild.exe и признак того,
// что переменная задана. Позволяет отличить пустое значение от отсутствия.
func (c *Controller) LookupMSBuildExePath() (string, bool) {
	return c.env.Lookup(defMSBuildExePath.key)
}

// SetMSBuildExePath записывает путь к MSBuild.exe verbatim.
// Пустая строка очищает переменную.
func (c *Controller) SetMSBuildExePath(path string) error {
	if path == "" {
		return c.env.Unset(defMSBuildExePath.key)
	}
	if err := c.env.Set(defMSBuildExePath.key, path); err != nil {
		return err
	}
	c.logger.Debug("Флаг MSBuild записан", "key", defMSBuildExePath.key, "value", path)
	return nil
}

// SkipEagerWildcardEvaluation сообщает пропускается ли eager-разворачивание wildcard.
// Читается только присутствие переменной; её содержимое игнорируется.
func (c *Controller) SkipEagerWildcardEvaluation() bool {
	return c.readBool(defSkipEagerWildcardEvaluation)
}

// SetSkipEagerWildcardEvaluation включает или выключает пропуск
// eager-разворачивания wildcard. При включении записывается
// фиксированный литерал WildcardSkipValue.
func (c *Controller) SetSkipEagerWildcardEvaluation(enabled bool) error {
	return c.writeBool(defSkipEagerWildcardEvaluation, enabled)
}

// UseSimpleProjectRootElementCacheConcurrency сообщает используется ли
// упрощённая стратегия конкурентности кэша ProjectRootElement.
// Отсутствие переменной читается как true — это поведение самого MSBuild
// при незаданной переменной.
func (c *Controller) UseSimpleProjectRootElementCacheConcurrency() bool {
	return c.readBool(defUseSimpleProjectRootElementCacheConcurrency)
}

// SetUseSimpleProjectRootElementCacheConcurrency включает или выключает
// упрощённую стратегию конкурентности. Включение очищает переменную,
// выключение записывает "1" — кодировка инвертирована.
func (c *Controller) SetUseSimpleProjectRootElementCacheConcurrency(enabled bool) error {
	return c.writeBool(defUseSimpleProjectRootElementCacheConcurrency, enabled)
}

// Reset безусловно очищает все пять привязанных переменных.
//
// Это не save/restore: значения, существовавшие до создания Controller,
// не восстанавливаются — известное ограничение для кода, разделяющего
// окружение процесса с посторонними читателями этих переменных.
// Идемпотентна; ошибки очистки отдельных переменных не прерывают
// очистку остальных и объединяются в одну ошибку.
func (c *Controller) Reset() error {
	var errs []error
	for _, def := range allFlags {
		if err := c.env.Unset(def.key); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	c.logger.Debug("Все флаги MSBuild очищены")
	return nil
}

// Scoped выполняет fn и гарантированно очищает все флаги на любом пути
// выхода, включая ошибку fn. Ошибка fn и ошибка очистки объединяются.
//
// Это единственный контракт, связанный с конкурентностью: очистка
// выполняется ровно один раз на время жизни scope, чтобы изменённое
// окружение не утекло в последующие операции процесса.
func (c *Controller) Scoped(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if resetErr := c.Reset(); resetErr != nil {
			err = errors.Join(err, resetErr)
		}
	}()
	return fn(ctx)
}

// State — снимок логических значений всех пяти флагов.
// Используется командой flags-status и для сериализации в JSON-вывод.
type State struct {
	// CacheFileEnumerations — состояние кэширования перечислений файлов.
	CacheFileEnumerations bool `json:"cache_file_enumerations"`

	// LoadAllFilesAsReadOnly — состояние read-only загрузки.
	LoadAllFilesAsReadOnly bool `json:"load_all_files_as_read_only"`

	// MSBuildExePath — путь к MSBuild.exe; пустая строка при отсутствии.
	MSBuildExePath string `json:"msbuild_exe_path,omitempty"`

	// SkipEagerWildcardEvaluation — состояние пропуска eager wildcard.
	SkipEagerWildcardEvaluation bool `json:"skip_eager_wildcard_evaluation"`

	// UseSimpleProjectRootElementCacheConcurrency — состояние упрощённой
	// стратегии конкурентности кэша.
	UseSimpleProjectRootElementCacheConcurrency bool `json:"use_simple_project_root_element_cache_concurrency"`
}

// Snapshot читает все пять флагов и возвращает их логические значения.
// Не мутирует окружение.
func (c *Controller) Snapshot() State {
	return State{
		CacheFileEnumerations:       c.CacheFileEnumerations(),
		LoadAllFilesAsReadOnly:      c.LoadAllFilesAsReadOnly(),
		MSBuildExePath:              c.MSBuildExePath(),
		SkipEagerWildcardEvaluation: c.SkipEagerWildcardEvaluation(),
		UseSimpleProjectRootElementCacheConcurrency: c.UseSimpleProjectRootElementCacheConcurrency(),
	}
}
