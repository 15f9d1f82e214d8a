package storage

import (
	"reflect"

	json "github.com/goccy/go-json"

	"fontpair/internal/providers"
)

// Accessor is the JSON view over a KeyValueStore. Storage failures never
// reach callers: missing or malformed values read as empty and failed writes
// are logged and dropped.
type Accessor struct {
	store  KeyValueStore
	logger providers.Logger
}

func NewAccessor(store KeyValueStore, logger providers.Logger) *Accessor {
	return &Accessor{store: store, logger: logger}
}

// ReadJSON decodes the value at key into v and reports whether it did. On a
// decode error v is reset to its zero value so a partial decode never leaks.
func (a *Accessor) ReadJSON(key string, v any) bool {
	raw, ok := a.store.Get(key)
	if !ok || len(raw) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		a.logger.Errorf(providers.TypeApp, "Malformed value under %s, treating as empty: %s", key, err)
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && !rv.IsNil() {
			rv.Elem().SetZero()
		}
		return false
	}
	return true
}

func (a *Accessor) WriteJSON(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		a.logger.Errorf(providers.TypeApp, "Unable to encode value for %s: %s", key, err)
		return
	}
	if err := a.store.Set(key, raw); err != nil {
		a.logger.Errorf(providers.TypeApp, "Unable to write %s: %s", key, err)
	}
}

func (a *Accessor) ReadString(key string) (string, bool) {
	raw, ok := a.store.Get(key)
	if !ok {
		return "", false
	}
	return string(raw), true
}

func (a *Accessor) WriteString(key, value string) {
	if err := a.store.Set(key, []byte(value)); err != nil {
		a.logger.Errorf(providers.TypeApp, "Unable to write %s: %s", key, err)
	}
}

func (a *Accessor) Delete(key string) {
	if err := a.store.Remove(key); err != nil {
		a.logger.Errorf(providers.TypeApp, "Unable to remove %s: %s", key, err)
	}
}

func (a *Accessor) Store() KeyValueStore {
	return a.store
}
