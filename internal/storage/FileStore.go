package storage

import (
	"os"
	"sort"
	"sync"

	json "github.com/goccy/go-json"

	"fontpair/internal/providers"
	"fontpair/internal/storage/interfaces"
)

// FileStore keeps every key in memory and snapshots the whole map to a single
// zstd-compressed file. An empty path keeps the store in memory only.
type FileStore struct {
	mu         sync.RWMutex
	data       map[string]string
	size       int
	quota      int
	path       string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileStore(path string, quotaBytes int, compressor interfaces.CompressorInterface, logger providers.Logger) *FileStore {
	return &FileStore{
		data:       make(map[string]string),
		quota:      quotaBytes,
		path:       path,
		compressor: compressor,
		logger:     logger,
	}
}

func (f *FileStore) Get(key string) ([]byte, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	val, ok := f.data[key]
	if !ok {
		return nil, false
	}
	return []byte(val), true
}

// Set rejects writes that would take the store over its quota and leaves the
// previous value in place.
func (f *FileStore) Set(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	newSize := f.size + len(key) + len(value)
	if old, ok := f.data[key]; ok {
		newSize -= len(key) + len(old)
	}
	if f.quota > 0 && newSize > f.quota {
		return ErrQuotaExceeded
	}

	f.data[key] = string(value)
	f.size = newSize
	return nil
}

func (f *FileStore) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if old, ok := f.data[key]; ok {
		f.size -= len(key) + len(old)
		delete(f.data, key)
	}
	return nil
}

func (f *FileStore) Keys() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	keys := make([]string, 0, len(f.data))
	for k := range f.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (f *FileStore) Persist() error {
	if f.path == "" {
		return nil
	}

	f.mu.RLock()
	jsonData, err := json.Marshal(f.data)
	f.mu.RUnlock()
	if err != nil {
		return err
	}

	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, f.path)
}

// Restore replaces the in-memory map with the snapshot on disk. A missing
// file is an empty store.
func (f *FileStore) Restore() error {
	if f.path == "" {
		return nil
	}

	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressed, err := f.compressor.Decompress(raw)
	if err != nil {
		return err
	}

	var snapshot map[string]string
	if err := json.Unmarshal(decompressed, &snapshot); err != nil {
		f.logger.Warnf(providers.TypeApp, "Local store snapshot %s is malformed, starting empty", f.path)
		return err
	}

	size := 0
	for k, v := range snapshot {
		size += len(k) + len(v)
	}

	f.mu.Lock()
	f.data = snapshot
	if f.data == nil {
		f.data = make(map[string]string)
	}
	f.size = size
	f.mu.Unlock()
	return nil
}

func (f *FileStore) Close() error {
	if f.compressor != nil {
		f.compressor.Close()
	}
	return nil
}
