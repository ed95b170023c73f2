// Package storage provides the synchronous key-value store the rest of
// the application persists through. Values are opaque strings; the two
// keys in use are "todos" (the serialized task snapshot) and "theme"
// (the active theme name).
package storage

// KV is a synchronous string-keyed store. Get returns the empty string
// with a nil error when the key has never been set.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Close() error
}

// Keys used by the application.
const (
	KeyTodos = "todos"
	KeyTheme = "theme"
)
