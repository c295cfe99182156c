package profile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MattGal/slngen/internal/msbuild/featureflags"
	"github.com/MattGal/slngen/internal/pkg/apperrors"
	"github.com/MattGal/slngen/internal/pkg/env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validProfile = `{
  "name": "ci-fast",
  "description": "Ускорение evaluation в CI",
  "flags": {
    "cacheFileEnumerations": true,
    "loadAllFilesAsReadOnly": true,
    "msbuildExePath": "C:\\Program Files\\MSBuild\\MSBuild.exe",
    "skipEagerWildcardEvaluation": true,
    "useSimpleProjectRootElementCacheConcurrency": false
  }
}`

// TestRead_ValidProfile проверяет разбор валидного профиля.
func TestRead_ValidProfile(t *testing.T) {
	p, err := Read(strings.NewReader(validProfile))
	require.NoError(t, err)

	assert.Equal(t, "ci-fast", p.Name)
	require.NotNil(t, p.Flags.CacheFileEnumerations)
	assert.True(t, *p.Flags.CacheFileEnumerations)
	require.NotNil(t, p.Flags.MSBuildExePath)
	assert.Equal(t, `C:\Program Files\MSBuild\MSBuild.exe`, *p.Flags.MSBuildExePath)
	require.NotNil(t, p.Flags.UseSimpleProjectRootElementCacheConcurrency)
	assert.False(t, *p.Flags.UseSimpleProjectRootElementCacheConcurrency)
}

// TestRead_PartialProfile проверяет что незаданные флаги остаются nil.
func TestRead_PartialProfile(t *testing.T) {
	p, err := Read(strings.NewReader(`{"name": "minimal", "flags": {"cacheFileEnumerations": true}}`))
	require.NoError(t, err)

	assert.NotNil(t, p.Flags.CacheFileEnumerations)
	assert.Nil(t, p.Flags.LoadAllFilesAsReadOnly)
	assert.Nil(t, p.Flags.MSBuildExePath)
	assert.Nil(t, p.Flags.SkipEagerWildcardEvaluation)
	assert.Nil(t, p.Flags.UseSimpleProjectRootElementCacheConcurrency)
}

// TestRead_UTF8BOM проверяет что UTF-8 BOM от Windows-инструментов не ломает разбор.
func TestRead_UTF8BOM(t *testing.T) {
	withBOM := "\xef\xbb\xbf" + `{"name": "bom", "flags": {}}`
	p, err := Read(strings.NewReader(withBOM))
	require.NoError(t, err)
	assert.Equal(t, "bom", p.Name)
}

// TestRead_UTF16LE проверяет перекодировку UTF-16 LE с BOM.
func TestRead_UTF16LE(t *testing.T) {
	src := `{"name": "utf16", "flags": {}}`
	buf := []byte{0xff, 0xfe} // BOM UTF-16 LE
	for _, r := range src {
		buf = append(buf, byte(r), 0)
	}

	p, err := Read(strings.NewReader(string(buf)))
	require.NoError(t, err)
	assert.Equal(t, "utf16", p.Name)
}

// TestRead_UnknownFlagRejected проверяет что опечатка в имени флага —
// ошибка валидации, а не тихо проигнорированный ключ.
func TestRead_UnknownFlagRejected(t *testing.T) {
	_, err := Read(strings.NewReader(`{"name": "typo", "flags": {"cacheFileEnumeration": true}}`))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrProfileValidate, appErr.Code)
}

// TestRead_MissingName проверяет что профиль без имени отклоняется схемой.
func TestRead_MissingName(t *testing.T) {
	_, err := Read(strings.NewReader(`{"flags": {}}`))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrProfileValidate, appErr.Code)
}

// TestRead_WrongValueType проверяет что строка вместо boolean отклоняется.
func TestRead_WrongValueType(t *testing.T) {
	_, err := Read(strings.NewReader(`{"name": "bad", "flags": {"cacheFileEnumerations": "true"}}`))
	require.Error(t, err)
}

// TestRead_InvalidJSON проверяет код ошибки при синтаксически битом JSON.
func TestRead_InvalidJSON(t *testing.T) {
	_, err := Read(strings.NewReader(`{not json`))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrProfileValidate, appErr.Code)
}

// TestLoad_FromFile проверяет загрузку профиля с диска.
func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(validProfile), 0600))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ci-fast", p.Name)
}

// TestLoad_MissingFile проверяет код ошибки при отсутствующем файле.
func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrProfileLoad, appErr.Code)
}

// TestApply проверяет применение профиля к контроллеру поверх in-memory окружения.
func TestApply(t *testing.T) {
	p, err := Read(strings.NewReader(validProfile))
	require.NoError(t, err)

	provider := env.NewMapProvider()
	c := featureflags.New(provider, nil)
	require.NoError(t, p.Apply(c))

	state := c.Snapshot()
	assert.True(t, state.CacheFileEnumerations)
	assert.True(t, state.LoadAllFilesAsReadOnly)
	assert.Equal(t, `C:\Program Files\MSBuild\MSBuild.exe`, state.MSBuildExePath)
	assert.True(t, state.SkipEagerWildcardEvaluation)
	assert.False(t, state.UseSimpleProjectRootElementCacheConcurrency)
}

// TestApply_PartialDoesNotTouchOthers проверяет что nil-поля профиля
// не трогают привязанные переменные остальных флагов.
func TestApply_PartialDoesNotTouchOthers(t *testing.T) {
	p, err := Read(strings.NewReader(`{"name": "partial", "flags": {"loadAllFilesAsReadOnly": true}}`))
	require.NoError(t, err)

	provider := env.NewMapProvider()
	c := featureflags.New(provider, nil)
	require.NoError(t, p.Apply(c))

	snap := provider.Snapshot()
	assert.Len(t, snap, 1)
	assert.Contains(t, snap, featureflags.EnvLoadAllFilesAsReadOnly)
}

// applyFailProvider отказывает в записи одного ключа.
type applyFailProvider struct {
	*env.MapProvider
	failKey string
}

func (p *applyFailProvider) Set(name, value string) error {
	if name == p.failKey {
		return errors.New("set rejected")
	}
	return p.MapProvider.Set(name, value)
}

// TestApply_PropagatesSetterError проверяет что ошибка setter'а прерывает
// применение и несёт код FLAGS.APPLY_FAILED.
func TestApply_PropagatesSetterError(t *testing.T) {
	p, err := Read(strings.NewReader(validProfile))
	require.NoError(t, err)

	provider := &applyFailProvider{
		MapProvider: env.NewMapProvider(),
		failKey:     featureflags.EnvLoadAllFilesAsReadOnly,
	}
	c := featureflags.New(provider, nil)

	applyErr := p.Apply(c)
	require.Error(t, applyErr)

	var appErr *apperrors.AppError
	require.ErrorAs(t, applyErr, &appErr)
	assert.Equal(t, apperrors.ErrFlagsApply, appErr.Code)
}
