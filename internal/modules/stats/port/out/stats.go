package out

import "context"

// KeyValueStore is the durable string store the stats snapshot lives in.
// Get reports ok=false when the key has never been written.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// NoteWriter persists a rendered markdown note, replacing a managed block
// in place when the note already exists.
type NoteWriter interface {
	WriteManagedBlock(ctx context.Context, path, startMarker, endMarker, block string) (string, error)
}
