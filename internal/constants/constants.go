// Package constants содержит все константы, используемые в проекте slngen.
// Константы сгруппированы по их функциональному назначению.
package constants

// AppName — имя приложения, используется в логах, метриках и трейсинге.
const AppName = "slngen"

// Константы действий (команд)
const (
	// ActVersion - действие вывода версии приложения
	ActVersion = "version"
	// ActHelp - действие вывода списка команд
	ActHelp = "help"
	// ActFlagsStatus - действие чтения текущего состояния флагов MSBuild
	ActFlagsStatus = "flags-status"
	// ActFlagsApply - действие применения профиля флагов MSBuild
	ActFlagsApply = "flags-apply"
	// ActFlagsClear - действие безусловной очистки всех флагов MSBuild
	ActFlagsClear = "flags-clear"
)

// Переменные окружения, управляющие самим приложением.
// Не путать с переменными MSBUILD* — те принадлежат контроллеру флагов
// и перечислены в internal/msbuild/featureflags.
const (
	// EnvCommand - имя выполняемой команды
	EnvCommand = "SLNGEN_COMMAND"
	// EnvConfigPath - путь к yaml-файлу конфигурации
	EnvConfigPath = "SLNGEN_CONFIG"
	// EnvProfilePath - путь к JSON-профилю флагов
	EnvProfilePath = "SLNGEN_PROFILE"
	// EnvOutputFormat - формат вывода результатов (text/json)
	EnvOutputFormat = "SLNGEN_OUTPUT_FORMAT"
	// EnvDryRun - dry-run режим: план действий без выполнения
	EnvDryRun = "SLNGEN_DRY_RUN"
	// EnvVerbose - verbose режим
	EnvVerbose = "SLNGEN_VERBOSE"
)

// Коды завершения процесса.
const (
	// ExitSuccess - успешное выполнение
	ExitSuccess = 0
	// ExitError - ошибка выполнения команды
	ExitError = 1
	// ExitConfigError - ошибка загрузки конфигурации
	ExitConfigError = 2
	// ExitUnknownCommand - неизвестная команда
	ExitUnknownCommand = 3
)
