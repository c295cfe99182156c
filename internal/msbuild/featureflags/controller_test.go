package featureflags

import (
	"context"
	"errors"
	"testing"

	"github.com/MattGal/slngen/internal/pkg/env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestController создаёт Controller поверх пустого in-memory окружения.
func newTestController() (*Controller, *env.MapProvider) {
	provider := env.NewMapProvider()
	return New(provider, nil), provider
}

// TestNew_DoesNotTouchEnvironment проверяет что конструктор не мутирует окружение.
func TestNew_DoesNotTouchEnvironment(t *testing.T) {
	provider := env.NewMapProviderFrom(map[string]string{
		EnvCacheFileEnumerations: "1",
		EnvMSBuildExePath:        `C:\tools\MSBuild.exe`,
	})

	New(provider, nil)

	snap := provider.Snapshot()
	assert.Equal(t, "1", snap[EnvCacheFileEnumerations])
	assert.Equal(t, `C:\tools\MSBuild.exe`, snap[EnvMSBuildExePath])
}

// TestKeys проверяет что пять ключей уникальны и соответствуют wire-контракту.
func TestKeys(t *testing.T) {
	keys := Keys()
	require.Len(t, keys, 5)

	expected := []string{
		"MSBUILDCACHEFILEENUMERATIONS",
		"MSBUILDLOADALLFILESASREADONLY",
		"MSBUILD_EXE_PATH",
		"MSBUILDSKIPEAGERWILDCARDEVALUATIONREGEXES",
		"MSBUILDUSESIMPLEPROJECTROOTELEMENTCACHECONCURRENCY",
	}
	assert.Equal(t, expected, keys)

	seen := make(map[string]bool)
	for _, k := range keys {
		assert.False(t, seen[k], "ключи флагов должны быть попарно различны")
		seen[k] = true
	}
}

// TestPlainBoolean_RoundTrip проверяет что plain-флаги точно round-trip'ятся:
// write(v); read() == v для обоих значений v.
func TestPlainBoolean_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		setter func(*Controller, bool) error
		getter func(*Controller) bool
	}{
		{
			name:   "CacheFileEnumerations",
			key:    EnvCacheFileEnumerations,
			setter: (*Controller).SetCacheFileEnumerations,
			getter: (*Controller).CacheFileEnumerations,
		},
		{
			name:   "LoadAllFilesAsReadOnly",
			key:    EnvLoadAllFilesAsReadOnly,
			setter: (*Controller).SetLoadAllFilesAsReadOnly,
			getter: (*Controller).LoadAllFilesAsReadOnly,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, provider := newTestController()

			// Свежесозданный флаг выключен
			assert.False(t, tt.getter(c))

			require.NoError(t, tt.setter(c, true))
			assert.True(t, tt.getter(c))
			val, ok := provider.Lookup(tt.key)
			assert.True(t, ok)
			assert.Equal(t, "1", val, "включённый plain-флаг кодируется ровно как \"1\"")

			require.NoError(t, tt.setter(c, false))
			assert.False(t, tt.getter(c))
			_, ok = provider.Lookup(tt.key)
			assert.False(t, ok, "выключение оставляет переменную отсутствующей, а не записывает sentinel")
		})
	}
}

// TestPlainBoolean_ForeignValueReadsFalse проверяет что постороннее значение
// (не "1") декодируется как false без ошибки.
func TestPlainBoolean_ForeignValueReadsFalse(t *testing.T) {
	provider := env.NewMapProviderFrom(map[string]string{
		EnvCacheFileEnumerations: "true",
	})
	c := New(provider, nil)

	assert.False(t, c.CacheFileEnumerations(), `true iff значение == "1"`)
}

// TestInvertedBoolean проверяет инвертированную кодировку:
// setter(true) очищает переменную, setter(false) записывает "1",
// отсутствие читается как true.
func TestInvertedBoolean(t *testing.T) {
	c, provider := newTestController()

	// Свежая (никогда не тронутая) переменная читается как true
	assert.True(t, c.UseSimpleProjectRootElementCacheConcurrency())

	require.NoError(t, c.SetUseSimpleProjectRootElementCacheConcurrency(false))
	val, ok := provider.Lookup(EnvUseSimpleProjectRootElementCacheConcurrency)
	assert.True(t, ok)
	assert.Equal(t, "1", val)
	assert.False(t, c.UseSimpleProjectRootElementCacheConcurrency())

	require.NoError(t, c.SetUseSimpleProjectRootElementCacheConcurrency(true))
	_, ok = provider.Lookup(EnvUseSimpleProjectRootElementCacheConcurrency)
	assert.False(t, ok, "включение инвертированного флага очищает переменную")
	assert.True(t, c.UseSimpleProjectRootElementCacheConcurrency())

	// Любое значение кроме "1" тоже читается как true
	require.NoError(t, provider.Set(EnvUseSimpleProjectRootElementCacheConcurrency, "0"))
	assert.True(t, c.UseSimpleProjectRootElementCacheConcurrency())
}

// TestPresenceBoolean проверяет presence-кодировку: при включении записывается
// фиксированный литерал, при чтении важно только присутствие.
func TestPresenceBoolean(t *testing.T) {
	c, provider := newTestController()

	assert.False(t, c.SkipEagerWildcardEvaluation())

	require.NoError(t, c.SetSkipEagerWildcardEvaluation(true))
	val, ok := provider.Lookup(EnvSkipEagerWildcardEvaluation)
	require.True(t, ok)
	assert.Equal(t, `[*?]+.*(?<!proj)$`, val, "записывается точный текст регэкспа")
	assert.True(t, c.SkipEagerWildcardEvaluation())

	// Внешняя мутация значения не влияет на чтение — важно только присутствие
	require.NoError(t, provider.Set(EnvSkipEagerWildcardEvaluation, "совсем другое"))
	assert.True(t, c.SkipEagerWildcardEvaluation())

	// Присутствие с пустым значением — тоже true
	require.NoError(t, provider.Set(EnvSkipEagerWildcardEvaluation, ""))
	assert.True(t, c.SkipEagerWildcardEvaluation())

	require.NoError(t, c.SetSkipEagerWildcardEvaluation(false))
	_, ok = provider.Lookup(EnvSkipEagerWildcardEvaluation)
	assert.False(t, ok, "выключение оставляет переменную отсутствующей")
	assert.False(t, c.SkipEagerWildcardEvaluation())
}

// TestRawString проверяет verbatim-хранение пути к MSBuild.exe.
func TestRawString(t *testing.T) {
	c, provider := newTestController()

	assert.Empty(t, c.MSBuildExePath())
	_, ok := c.LookupMSBuildExePath()
	assert.False(t, ok)

	const path = `C:\tools\MSBuild.exe`
	require.NoError(t, c.SetMSBuildExePath(path))
	assert.Equal(t, path, c.MSBuildExePath())

	val, ok := provider.Lookup(EnvMSBuildExePath)
	assert.True(t, ok)
	assert.Equal(t, path, val, "значение хранится verbatim, без нормализации")

	// Пустая строка очищает переменную
	require.NoError(t, c.SetMSBuildExePath(""))
	_, ok = provider.Lookup(EnvMSBuildExePath)
	assert.False(t, ok)
	assert.Empty(t, c.MSBuildExePath())
}

// TestFlagIsolation проверяет что установка одного флага не меняет
// ни привязанную переменную, ни читаемое значение остальных.
func TestFlagIsolation(t *testing.T) {
	c, provider := newTestController()

	require.NoError(t, c.SetCacheFileEnumerations(true))

	snap := provider.Snapshot()
	assert.Len(t, snap, 1, "затронута должна быть ровно одна переменная")
	assert.Contains(t, snap, EnvCacheFileEnumerations)

	assert.False(t, c.LoadAllFilesAsReadOnly())
	assert.Empty(t, c.MSBuildExePath())
	assert.False(t, c.SkipEagerWildcardEvaluation())
	assert.True(t, c.UseSimpleProjectRootElementCacheConcurrency())
}

// TestReset_ClearsEverything проверяет безусловную очистку, включая значения,
// установленные в обход контроллера до его создания.
func TestReset_ClearsEverything(t *testing.T) {
	provider := env.NewMapProviderFrom(map[string]string{
		EnvCacheFileEnumerations: "внешнее значение",
		EnvMSBuildExePath:        "/opt/msbuild",
		EnvUseSimpleProjectRootElementCacheConcurrency: "1",
	})
	c := New(provider, nil)

	require.NoError(t, c.SetLoadAllFilesAsReadOnly(true))
	require.NoError(t, c.SetSkipEagerWildcardEvaluation(true))

	require.NoError(t, c.Reset())
	assert.Empty(t, provider.Snapshot(), "все пять переменных должны отсутствовать")
}

// TestReset_Idempotent проверяет что повторный Reset не ошибается
// и оставляет переменные отсутствующими.
func TestReset_Idempotent(t *testing.T) {
	c, provider := newTestController()

	require.NoError(t, c.SetCacheFileEnumerations(true))
	require.NoError(t, c.Reset())
	require.NoError(t, c.Reset())
	assert.Empty(t, provider.Snapshot())
}

// TestReset_ControllerUsableAfter проверяет что после очистки операции
// работают так же, как до неё — guard-состояния нет.
func TestReset_ControllerUsableAfter(t *testing.T) {
	c, _ := newTestController()

	require.NoError(t, c.Reset())
	require.NoError(t, c.SetCacheFileEnumerations(true))
	assert.True(t, c.CacheFileEnumerations())
}

// failingProvider возвращает ошибку на Unset указанного ключа.
type failingProvider struct {
	*env.MapProvider
	failKey string
}

func (p *failingProvider) Unset(name string) error {
	if name == p.failKey {
		return errors.New("substrate rejected unset of " + name)
	}
	return p.MapProvider.Unset(name)
}

// TestReset_PropagatesSubstrateErrors проверяет что ошибка substrate
// пропагирует, но очистка остальных переменных продолжается.
func TestReset_PropagatesSubstrateErrors(t *testing.T) {
	inner := env.NewMapProvider()
	provider := &failingProvider{MapProvider: inner, failKey: EnvLoadAllFilesAsReadOnly}
	c := New(provider, nil)

	require.NoError(t, inner.Set(EnvCacheFileEnumerations, "1"))
	require.NoError(t, inner.Set(EnvMSBuildExePath, "/usr/bin/msbuild"))

	err := c.Reset()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvLoadAllFilesAsReadOnly)

	// Остальные переменные очищены несмотря на ошибку
	_, ok := inner.Lookup(EnvCacheFileEnumerations)
	assert.False(t, ok)
	_, ok = inner.Lookup(EnvMSBuildExePath)
	assert.False(t, ok)
}

// TestScoped_CleansUpOnSuccess проверяет scoped release на нормальном пути.
func TestScoped_CleansUpOnSuccess(t *testing.T) {
	c, provider := newTestController()

	err := c.Scoped(context.Background(), func(context.Context) error {
		if err := c.SetCacheFileEnumerations(true); err != nil {
			return err
		}
		return c.SetMSBuildExePath("/usr/bin/msbuild")
	})
	require.NoError(t, err)
	assert.Empty(t, provider.Snapshot(), "после выхода из scope все переменные очищены")
}

// TestScoped_CleansUpOnError проверяет что очистка выполняется и при ошибке fn,
// а сама ошибка fn не теряется.
func TestScoped_CleansUpOnError(t *testing.T) {
	c, provider := newTestController()
	boom := errors.New("evaluation failed")

	err := c.Scoped(context.Background(), func(context.Context) error {
		if setErr := c.SetLoadAllFilesAsReadOnly(true); setErr != nil {
			return setErr
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, provider.Snapshot(), "очистка обязана выполниться и на ошибочном пути")
}

// TestEndToEnd воспроизводит сквозной сценарий спецификации поведения:
// пустое окружение → установка двух флагов → чтение → очистка → чтение.
func TestEndToEnd(t *testing.T) {
	c, provider := newTestController()

	require.NoError(t, c.SetCacheFileEnumerations(true))
	require.NoError(t, c.SetMSBuildExePath("/usr/bin/msbuild"))

	assert.True(t, c.CacheFileEnumerations())
	assert.Equal(t, "/usr/bin/msbuild", c.MSBuildExePath())

	// Остальные три переменные не затронуты
	for _, key := range []string{
		EnvLoadAllFilesAsReadOnly,
		EnvSkipEagerWildcardEvaluation,
		EnvUseSimpleProjectRootElementCacheConcurrency,
	} {
		_, ok := provider.Lookup(key)
		assert.False(t, ok, "переменная %s не должна быть затронута", key)
	}

	require.NoError(t, c.Reset())

	assert.False(t, c.CacheFileEnumerations())
	assert.Empty(t, c.MSBuildExePath())
	assert.Empty(t, provider.Snapshot())
}

// TestSnapshot проверяет что снимок отражает текущее состояние всех флагов.
func TestSnapshot(t *testing.T) {
	c, _ := newTestController()

	require.NoError(t, c.SetCacheFileEnumerations(true))
	require.NoError(t, c.SetMSBuildExePath("/opt/msbuild/MSBuild.exe"))
	require.NoError(t, c.SetUseSimpleProjectRootElementCacheConcurrency(false))

	state := c.Snapshot()
	assert.Equal(t, State{
		CacheFileEnumerations:       true,
		LoadAllFilesAsReadOnly:      false,
		MSBuildExePath:              "/opt/msbuild/MSBuild.exe",
		SkipEagerWildcardEvaluation: false,
		UseSimpleProjectRootElementCacheConcurrency: false,
	}, state)
}

// TestNew_DefaultProvider проверяет что nil provider заменяется реальным окружением.
func TestNew_DefaultProvider(t *testing.T) {
	t.Setenv(EnvCacheFileEnumerations, "1")

	c := New(nil, nil)
	assert.True(t, c.CacheFileEnumerations())
}
