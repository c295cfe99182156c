package config

import (
	"fmt"
	"strings"
)

// FlagsConfig — декларативные значения флагов MSBuild.
// Каждое булево поле — tri-state строка: пустая строка означает
// "не трогать", "true"/"1" — включить, "false"/"0" — выключить.
// Команда flags-apply использует эти значения когда профиль не задан.
type FlagsConfig struct {
	// CacheFileEnumerations — кэширование результатов перечисления файлов.
	CacheFileEnumerations string `yaml:"cacheFileEnumerations" env:"SLNGEN_FLAG_CACHE_FILE_ENUMERATIONS"`

	// LoadAllFilesAsReadOnly — загрузка всех файлов проекта в режиме read-only.
	LoadAllFilesAsReadOnly string `yaml:"loadAllFilesAsReadOnly" env:"SLNGEN_FLAG_LOAD_ALL_FILES_AS_READONLY"`

	// MSBuildExePath — путь к исполняемому файлу MSBuild.
	// Пустая строка означает "не задан".
	MSBuildExePath string `yaml:"msbuildExePath" env:"SLNGEN_FLAG_MSBUILD_EXE_PATH"`

	// SkipEagerWildcardEvaluations — пропуск eager-вычисления wildcard-ов.
	SkipEagerWildcardEvaluations string `yaml:"skipEagerWildcardEvaluations" env:"SLNGEN_FLAG_SKIP_EAGER_WILDCARD_EVALUATIONS"`

	// UseSimpleProjectRootElementCacheConcurrency — упрощённая модель
	// конкурентности кэша корневых элементов проектов.
	UseSimpleProjectRootElementCacheConcurrency string `yaml:"useSimpleProjectRootElementCacheConcurrency" env:"SLNGEN_FLAG_SIMPLE_CACHE_CONCURRENCY"`
}

// ParseTriState разбирает tri-state строку конфигурации.
// Возвращает nil для пустой строки ("не трогать"),
// указатель на true/false для распознанных значений,
// ошибку для всего остального.
func ParseTriState(value string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return nil, nil
	case "true", "1":
		v := true
		return &v, nil
	case "false", "0":
		v := false
		return &v, nil
	default:
		return nil, fmt.Errorf("недопустимое tri-state значение %q (ожидается true/false/1/0 или пустая строка)", value)
	}
}

// validateFlagsConfig проверяет что все tri-state поля разбираются.
func validateFlagsConfig(fc *FlagsConfig) error {
	fields := map[string]string{
		"cacheFileEnumerations":        fc.CacheFileEnumerations,
		"loadAllFilesAsReadOnly":       fc.LoadAllFilesAsReadOnly,
		"skipEagerWildcardEvaluations": fc.SkipEagerWildcardEvaluations,
		"useSimpleProjectRootElementCacheConcurrency": fc.UseSimpleProjectRootElementCacheConcurrency,
	}
	for name, value := range fields {
		if _, err := ParseTriState(value); err != nil {
			return fmt.Errorf("flags.%s: %w", name, err)
		}
	}
	return nil
}

// IsEmpty возвращает true если ни одно поле не задано.
func (fc *FlagsConfig) IsEmpty() bool {
	return fc.CacheFileEnumerations == "" &&
		fc.LoadAllFilesAsReadOnly == "" &&
		fc.MSBuildExePath == "" &&
		fc.SkipEagerWildcardEvaluations == "" &&
		fc.UseSimpleProjectRootElementCacheConcurrency == ""
}
