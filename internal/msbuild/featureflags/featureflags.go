// Package featureflags управляет недокументированными поведенческими флагами
// MSBuild через переменные окружения процесса.
//
// Каждый флаг привязан ровно к одной переменной MSBUILD* и одной из четырёх
// политик кодирования. Политики не взаимозаменяемы: у inverted- и
// presence-флагов чтение намеренно небиективно и повторяет правила
// интерпретации самого MSBuild, а не round-trip кодировку.
//
// Жизненный цикл: New() не трогает окружение; getters/setters работают
// в любом порядке и количестве; Reset() безусловно очищает все пять
// переменных. Повторное использование после Reset() допустимо —
// guard-состояния нет.
package featureflags

// Имена переменных окружения MSBuild, образующие wire-контракт
// с движком сборки. Точные, case-sensitive.
const (
	// EnvCacheFileEnumerations - кэширование перечислений файлов при разворачивании wildcard
	EnvCacheFileEnumerations = "MSBUILDCACHEFILEENUMERATIONS"
	// EnvLoadAllFilesAsReadOnly - загрузка всех файлов проектов в read-only режиме
	EnvLoadAllFilesAsReadOnly = "MSBUILDLOADALLFILESASREADONLY"
	// EnvMSBuildExePath - явный путь к MSBuild.exe для резолва toolset
	EnvMSBuildExePath = "MSBUILD_EXE_PATH"
	// EnvSkipEagerWildcardEvaluation - регэкспы item-include, для которых пропускается eager-разворачивание wildcard
	EnvSkipEagerWildcardEvaluation = "MSBUILDSKIPEAGERWILDCARDEVALUATIONREGEXES"
	// EnvUseSimpleProjectRootElementCacheConcurrency - упрощённая стратегия конкурентности кэша ProjectRootElement
	EnvUseSimpleProjectRootElementCacheConcurrency = "MSBUILDUSESIMPLEPROJECTROOTELEMENTCACHECONCURRENCY"
)

// WildcardSkipValue — значение, записываемое при включении
// SkipEagerWildcardEvaluation: текст .NET-регэкспа, под который MSBuild
// матчит item-include. Негативный lookbehind (?<!proj) не поддерживается
// пакетом regexp из Go — значение записывается verbatim и в Go никогда
// не компилируется.
const WildcardSkipValue = `[*?]+.*(?<!proj)$`

// enabledValue — каноническое "1", которым MSBuild кодирует включённые флаги.
const enabledValue = "1"

// encoding — политика кодирования логического значения флага
// в строку-или-отсутствие. Закрытое перечисление: применение
// правила чтения одной политики к флагу другой невозможно,
// т.к. выбор правила идёт по полю определения флага.
type encoding int

const (
	// plainBoolean: true ⇔ "1", false ⇔ отсутствие. Биективна.
	plainBoolean encoding = iota
	// invertedBoolean: true ⇔ отсутствие, false ⇔ "1".
	// Чтение: любое значение кроме "1" (включая отсутствие) — true.
	invertedBoolean
	// presenceBoolean: true ⇔ записан фиксированный литерал,
	// false ⇔ отсутствие. Чтение: присутствие с ЛЮБЫМ значением — true.
	presenceBoolean
	// rawString: строка хранится verbatim, пустая строка ⇔ отсутствие.
	rawString
)

// flagDef — статическое определение флага: переменная, политика
// и литерал, записываемый при включении (для presence-флагов).
type flagDef struct {
	key     string
	enc     encoding
	enabled string
}

// Определения пяти флагов. Ключи попарно различны — это инвариант,
// на который опирается безусловная очистка в Reset().
var (
	defCacheFileEnumerations = flagDef{
		key:     EnvCacheFileEnumerations,
		enc:     plainBoolean,
		enabled: enabledValue,
	}
	defLoadAllFilesAsReadOnly = flagDef{
		key:     EnvLoadAllFilesAsReadOnly,
		enc:     plainBoolean,
		enabled: enabledValue,
	}
	defMSBuildExePath = flagDef{
		key: EnvMSBuildExePath,
		enc: rawString,
	}
	defSkipEagerWildcardEvaluation = flagDef{
		key:     EnvSkipEagerWildcardEvaluation,
		enc:     presenceBoolean,
		enabled: WildcardSkipValue,
	}
	defUseSimpleProjectRootElementCacheConcurrency = flagDef{
		key:     EnvUseSimpleProjectRootElementCacheConcurrency,
		enc:     invertedBoolean,
		enabled: enabledValue,
	}

	// allFlags перечисляет определения в порядке таблицы спецификации.
	// Порядок значим только для стабильности Snapshot/логов —
	// очистка от порядка не зависит.
	allFlags = []flagDef{
		defCacheFileEnumerations,
		defLoadAllFilesAsReadOnly,
		defMSBuildExePath,
		defSkipEagerWildcardEvaluation,
		defUseSimpleProjectRootElementCacheConcurrency,
	}
)

// Keys возвращает имена всех пяти привязанных переменных окружения
// в порядке их определения.
func Keys() []string {
	keys := make([]string, len(allFlags))
	for i, def := range allFlags {
		keys[i] = def.key
	}
	return keys
}
