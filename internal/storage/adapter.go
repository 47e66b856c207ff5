package storage

import (
	"encoding/json"
	"log/slog"

	"github.com/mmwale/expense-tracker/internal"
)

// Adapter encodes collections as JSON and writes them through a Backend.
// It never returns storage failures to callers: writes that fail are logged
// and leave the stored value as it was, reads that fail yield the caller's
// default.
type Adapter struct {
	backend Backend
	logger  *slog.Logger
}

func NewAdapter(backend Backend, logger *slog.Logger) *Adapter {
	return &Adapter{
		backend: backend,
		logger:  logger,
	}
}

// Save serializes value and stores it under key.
func (a *Adapter) Save(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		a.report(internal.NewStorageError("failed to encode collection", internal.ErrCodeStorageEncode, err), key)
		return
	}
	if err := a.backend.Set(key, data); err != nil {
		a.report(internal.NewStorageError("failed to write collection", internal.ErrCodeStorageWrite, err), key)
		return
	}
	a.logger.Debug("collection saved", "key", key, "bytes", len(data))
}

// load decodes the value under key into dst and reports whether it did.
func (a *Adapter) load(key string, dst any) bool {
	data, ok, err := a.backend.Get(key)
	if err != nil {
		a.report(internal.NewStorageError("failed to read collection", internal.ErrCodeStorageRead, err), key)
		return false
	}
	if !ok || len(data) == 0 {
		a.logger.Debug("collection not found, using default", "key", key)
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		a.report(internal.NewStorageError("failed to decode collection", internal.ErrCodeStorageDecode, err), key)
		return false
	}
	return true
}

func (a *Adapter) Close() error {
	return a.backend.Close()
}

func (a *Adapter) report(err *internal.AppError, key string) {
	a.logger.Error("storage failure",
		"key", key,
		"code", err.Code,
		"error", err)
}

// Load returns the value stored under key, or def when the key is absent or
// the stored text cannot be read or decoded.
func Load[T any](a *Adapter, key string, def T) T {
	var v T
	if !a.load(key, &v) {
		return def
	}
	return v
}
