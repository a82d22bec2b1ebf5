package repository

import (
	"sort"
	"sync"
)

// table 是进程内的实体表，读写都复制一份，调用方拿不到内部引用
type table[T any] struct {
	mu       sync.RWMutex
	rows     map[string]T
	clone    func(T) T
	notFound error
}

func newTable[T any](clone func(T) T, notFound error) *table[T] {
	return &table[T]{
		rows:     make(map[string]T),
		clone:    clone,
		notFound: notFound,
	}
}

func (t *table[T]) insert(id string, v T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; ok {
		return false
	}
	t.rows[id] = t.clone(v)
	return true
}

func (t *table[T]) get(id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, t.notFound
	}
	return t.clone(v), nil
}

// mutate 在写锁内修改一行，fn 返回错误时不落盘
func (t *table[T]) mutate(id string, fn func(*T) error) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, t.notFound
	}
	working := t.clone(v)
	if err := fn(&working); err != nil {
		var zero T
		return zero, err
	}
	t.rows[id] = t.clone(working)
	return t.clone(working), nil
}

func (t *table[T]) remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// list 返回满足 keep 的行，按 less 排序
func (t *table[T]) list(keep func(T) bool, less func(a, b T) bool) []T {
	t.mu.RLock()
	out := make([]T, 0, len(t.rows))
	for _, v := range t.rows {
		if keep == nil || keep(v) {
			out = append(out, t.clone(v))
		}
	}
	t.mu.RUnlock()
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}
