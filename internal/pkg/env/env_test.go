package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOSProvider_ImplementsProvider проверяет соответствие интерфейсу.
func TestOSProvider_ImplementsProvider(_ *testing.T) {
	var _ Provider = (*OSProvider)(nil)
	var _ Provider = (*MapProvider)(nil)
}

// TestOSProvider_SetLookupUnset проверяет полный цикл set → lookup → unset
// на реальном окружении процесса.
func TestOSProvider_SetLookupUnset(t *testing.T) {
	const name = "SLNGEN_TEST_OS_PROVIDER"
	p := NewOSProvider()

	// Изолируем тест от внешнего окружения
	t.Setenv(name, "seed")
	require.NoError(t, p.Unset(name))

	_, ok := p.Lookup(name)
	assert.False(t, ok, "после Unset переменная должна отсутствовать")

	require.NoError(t, p.Set(name, "value1"))
	v, ok := p.Lookup(name)
	assert.True(t, ok)
	assert.Equal(t, "value1", v)

	// Идемпотентность Set
	require.NoError(t, p.Set(name, "value1"))
	v, _ = p.Lookup(name)
	assert.Equal(t, "value1", v)

	// Идемпотентность Unset
	require.NoError(t, p.Unset(name))
	require.NoError(t, p.Unset(name))
	_, ok = p.Lookup(name)
	assert.False(t, ok)
}

// TestMapProvider_LookupAbsent проверяет что пустой provider ничего не содержит.
func TestMapProvider_LookupAbsent(t *testing.T) {
	p := NewMapProvider()
	v, ok := p.Lookup("ANYTHING")
	assert.False(t, ok)
	assert.Empty(t, v)
}

// TestMapProvider_SetUnset проверяет запись и удаление значений.
func TestMapProvider_SetUnset(t *testing.T) {
	p := NewMapProvider()

	require.NoError(t, p.Set("A", "1"))
	require.NoError(t, p.Set("B", ""))

	v, ok := p.Lookup("A")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	// Пустая строка — это присутствующее значение, не отсутствие
	v, ok = p.Lookup("B")
	assert.True(t, ok)
	assert.Empty(t, v)

	require.NoError(t, p.Unset("A"))
	_, ok = p.Lookup("A")
	assert.False(t, ok)

	// Удаление отсутствующего — не ошибка
	require.NoError(t, p.Unset("A"))
}

// TestMapProvider_From проверяет что seed копируется, а не разделяется.
func TestMapProvider_From(t *testing.T) {
	seed := map[string]string{"X": "1"}
	p := NewMapProviderFrom(seed)

	require.NoError(t, p.Set("Y", "2"))
	assert.NotContains(t, seed, "Y", "изменения provider не должны влиять на seed")

	snap := p.Snapshot()
	assert.Equal(t, map[string]string{"X": "1", "Y": "2"}, snap)

	// Snapshot — копия
	snap["Z"] = "3"
	_, ok := p.Lookup("Z")
	assert.False(t, ok)
}
