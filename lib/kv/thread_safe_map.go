package kv

import (
	"io"
	"log/slog"
	"reflect"
	"sync"
)

type threadSafeMap[K comparable, V any] struct {
	lock           sync.RWMutex
	items          map[K]V
	initCap        uint32
	isClosableItem bool
}

func (t *threadSafeMap[K, V]) AddOrUpdate(key K, obj V) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.items == nil {
		return ErrMapPurged
	}
	t.items[key] = obj
	return nil
}

func (t *threadSafeMap[K, V]) Replace(items map[K]V) error {
	if items == nil {
		return ErrNilItemsMap
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	t.items = items
	return nil
}

func (t *threadSafeMap[K, V]) Delete(key K) (V, error) {
	t.lock.Lock()
	defer t.lock.Unlock()
	item, exists := t.items[key]
	if !exists {
		var zero V
		return zero, ErrKeyNotFound
	}
	delete(t.items, key)
	return item, nil
}

func (t *threadSafeMap[K, V]) Get(key K) (item V, exists bool) {
	t.lock.RLock()
	defer t.lock.RUnlock()
	item, exists = t.items[key]
	return
}

func (t *threadSafeMap[K, V]) ListKeys(filters ...SafeStoreKeyFilterFunc[K]) []K {
	realFilters := make([]SafeStoreKeyFilterFunc[K], 0, len(filters))
	for _, filter := range filters {
		if filter != nil {
			realFilters = append(realFilters, filter)
		}
	}
	if len(realFilters) == 0 {
		realFilters = append(realFilters, defaultAllKeysFilter[K])
	}

	t.lock.RLock()
	defer t.lock.RUnlock()

	keys := make([]K, 0, len(t.items))
	for key := range t.items {
		for _, filter := range realFilters {
			if filter(key) {
				keys = append(keys, key)
				break
			}
		}
	}
	return keys
}

func (t *threadSafeMap[K, V]) ListValues(keys ...K) (items []V) {
	realKeys := make([]K, 0, len(keys))
	realKeys = append(realKeys, keys...)

	contains := func(keys []K, key K) bool {
		for _, k := range keys {
			if k == key {
				return true
			}
		}
		return false
	}

	t.lock.RLock()
	defer t.lock.RUnlock()
	values := make([]V, 0, len(t.items))
	for key, item := range t.items {
		i := item
		if len(realKeys) > 0 && contains(realKeys, key) {
			values = append(values, i)
		} else if len(realKeys) == 0 {
			values = append(values, i)
		}
	}
	return values
}

func (t *threadSafeMap[K, V]) Purge() error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.isClosableItem {
		for _, item := range t.items {
			closer, ok := any(item).(io.Closer)
			if !ok || closer == nil {
				continue
			}
			if v := reflect.ValueOf(closer); v.Kind() == reflect.Pointer && v.IsNil() {
				continue
			}
			if err := closer.Close(); err != nil {
				slog.Error("Purge info", "error", err)
			}
		}
	}

	t.items = nil
	return nil
}

type ThreadSafeMapOpt[K comparable, V any] func(*threadSafeMap[K, V])

func WithThreadSafeMapInitCap[K comparable, V any](capacity uint32) ThreadSafeMapOpt[K, V] {
	return func(t *threadSafeMap[K, V]) {
		t.initCap = capacity
	}
}

// WithThreadSafeMapCloseableItemCheck probes whether V implements
// io.Closer once at construction; Purge then closes every stored item.
func WithThreadSafeMapCloseableItemCheck[K comparable, V any]() ThreadSafeMapOpt[K, V] {
	return func(t *threadSafeMap[K, V]) {
		closerTyp := reflect.TypeOf((*io.Closer)(nil)).Elem()
		typ := reflect.TypeOf((*V)(nil)).Elem()
		switch typ.Kind() {
		// Only nil-able kinds; Purge must never call Close through a
		// value copy of a struct item.
		case reflect.Pointer, reflect.Interface:
			t.isClosableItem = typ.Implements(closerTyp)
		}
	}
}

func NewThreadSafeMap[K comparable, V any](opts ...ThreadSafeMapOpt[K, V]) ThreadSafeStorer[K, V] {
	t := &threadSafeMap[K, V]{initCap: 32}
	for _, o := range opts {
		if o != nil {
			o(t)
		}
	}
	t.items = make(map[K]V, t.initCap)
	return t
}
