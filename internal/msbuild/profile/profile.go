// Package profile загружает именованные наборы значений флагов MSBuild
// из JSON-файлов и применяет их к контроллеру.
//
// Профили создаются в том числе Windows-инструментами, которые пишут JSON
// с UTF-8 BOM или в UTF-16 — перед разбором содержимое нормализуется
// в чистый UTF-8. Каждый профиль валидируется встроенной JSON-схемой:
// неизвестные ключи флагов — ошибка, а не тихое игнорирование.
package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/MattGal/slngen/internal/msbuild/featureflags"
	"github.com/MattGal/slngen/internal/pkg/apperrors"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Profile — именованный набор значений флагов MSBuild.
type Profile struct {
	// Name — имя профиля для логов и вывода.
	Name string `json:"name"`

	// Description — необязательное описание назначения профиля.
	Description string `json:"description,omitempty"`

	// Flags — значения флагов. Незаданные поля (nil) не применяются.
	Flags Flags `json:"flags"`
}

// Flags — tri-state значения пяти флагов: nil означает «не трогать»,
// остальные значения применяются через соответствующий setter.
type Flags struct {
	CacheFileEnumerations                       *bool   `json:"cacheFileEnumerations,omitempty"`
	LoadAllFilesAsReadOnly                      *bool   `json:"loadAllFilesAsReadOnly,omitempty"`
	MSBuildExePath                              *string `json:"msbuildExePath,omitempty"`
	SkipEagerWildcardEvaluation                 *bool   `json:"skipEagerWildcardEvaluation,omitempty"`
	UseSimpleProjectRootElementCacheConcurrency *bool   `json:"useSimpleProjectRootElementCacheConcurrency,omitempty"`
}

// Load читает профиль из файла path: нормализует кодировку,
// валидирует схемой и десериализует.
func Load(path string) (*Profile, error) {
	f, err := os.Open(path) //nolint:gosec // путь задаётся оператором через SLNGEN_PROFILE
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrProfileLoad,
			"не удалось открыть файл профиля флагов", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f)
}

// Read читает профиль из r. Вынесено отдельно от Load для тестов
// и чтения из нефайловых источников.
func Read(r io.Reader) (*Profile, error) {
	data, err := normalize(r)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrProfileLoad,
			"не удалось прочитать содержимое профиля", err)
	}

	if err := validate(data); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrProfileValidate,
			"профиль не соответствует схеме", err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrProfileLoad,
			"не удалось разобрать JSON профиля", err)
	}
	return &p, nil
}

// normalize приводит содержимое к чистому UTF-8:
// убирает UTF-8 BOM и перекодирует UTF-16 (LE/BE с BOM).
func normalize(r io.Reader) ([]byte, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(r, decoder))
	if err != nil {
		return nil, fmt.Errorf("нормализация кодировки: %w", err)
	}
	return bytes.TrimSpace(data), nil
}

// Apply применяет заданные (не-nil) значения профиля к контроллеру.
// Порядок применения фиксирован (порядок таблицы флагов); первая ошибка
// setter'а прерывает применение и пропагирует вызывающему.
func (p *Profile) Apply(c *featureflags.Controller) error {
	if v := p.Flags.CacheFileEnumerations; v != nil {
		if err := c.SetCacheFileEnumerations(*v); err != nil {
			return applyError(featureflags.EnvCacheFileEnumerations, err)
		}
	}
	if v := p.Flags.LoadAllFilesAsReadOnly; v != nil {
		if err := c.SetLoadAllFilesAsReadOnly(*v); err != nil {
			return applyError(featureflags.EnvLoadAllFilesAsReadOnly, err)
		}
	}
	if v := p.Flags.MSBuildExePath; v != nil {
		if err := c.SetMSBuildExePath(*v); err != nil {
			return applyError(featureflags.EnvMSBuildExePath, err)
		}
	}
	if v := p.Flags.SkipEagerWildcardEvaluation; v != nil {
		if err := c.SetSkipEagerWildcardEvaluation(*v); err != nil {
			return applyError(featureflags.EnvSkipEagerWildcardEvaluation, err)
		}
	}
	if v := p.Flags.UseSimpleProjectRootElementCacheConcurrency; v != nil {
		if err := c.SetUseSimpleProjectRootElementCacheConcurrency(*v); err != nil {
			return applyError(featureflags.EnvUseSimpleProjectRootElementCacheConcurrency, err)
		}
	}
	return nil
}

func applyError(key string, cause error) error {
	return apperrors.NewAppError(apperrors.ErrFlagsApply,
		fmt.Sprintf("не удалось применить флаг %s", key), cause)
}
