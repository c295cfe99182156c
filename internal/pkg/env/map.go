package env

import "sync"

// MapProvider реализует Provider поверх in-memory map.
// Используется в тестах вместо реального окружения и в dry-run режиме
// для построения плана записей без мутации процесса.
//
// Потокобезопасен, хотя контроллер флагов рассчитан на single-writer
// дисциплину — защита нужна только от параллельных тестов.
type MapProvider struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMapProvider создаёт пустой MapProvider.
func NewMapProvider() *MapProvider {
	return &MapProvider{vars: make(map[string]string)}
}

// NewMapProviderFrom создаёт MapProvider с начальными значениями из seed.
// seed копируется — изменения MapProvider не влияют на исходную map.
func NewMapProviderFrom(seed map[string]string) *MapProvider {
	vars := make(map[string]string, len(seed))
	for k, v := range seed {
		vars[k] = v
	}
	return &MapProvider{vars: vars}
}

// Lookup возвращает значение из map и признак его наличия.
func (p *MapProvider) Lookup(name string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.vars[name]
	return v, ok
}

// Set записывает значение в map. Всегда возвращает nil.
func (p *MapProvider) Set(name, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vars[name] = value
	return nil
}

// Unset удаляет значение из map. Всегда возвращает nil.
func (p *MapProvider) Unset(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.vars, name)
	return nil
}

// Snapshot возвращает копию текущего содержимого map.
// Используется для сравнения состояний в тестах и dry-run планах.
func (p *MapProvider) Snapshot() map[string]string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]string, len(p.vars))
	for k, v := range p.vars {
		out[k] = v
	}
	return out
}
