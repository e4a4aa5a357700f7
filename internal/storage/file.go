package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yourname/savecircle/internal"
)

const fileFormatVersion = 1

// fileEnvelope is the on-disk layout of a FileStorage.
type fileEnvelope struct {
	Version int                        `json:"version"`
	Entries map[string]json.RawMessage `json:"entries"`
}

type FileStorage struct {
	entries      map[string][]byte
	mu           sync.RWMutex
	path         string
	dirty        bool
	saveChan     chan struct{}
	shutdownChan chan struct{}
	doneChan     chan struct{}
	closeOnce    sync.Once
	saveDelay    time.Duration
	logger       internal.Logger
}

func NewFileStorage(path string, saveDelay time.Duration, logger internal.Logger) (*FileStorage, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("storage: create data dir: %w", err)
		}
	}
	s := &FileStorage{
		entries:      make(map[string][]byte),
		path:         path,
		saveChan:     make(chan struct{}, 1),
		shutdownChan: make(chan struct{}),
		doneChan:     make(chan struct{}),
		saveDelay:    saveDelay,
		logger:       logger,
	}

	if err := s.load(); err != nil {
		logger.Errorf("storage: failed to load %s: %v", path, err)
		return nil, err
	}

	go s.saveWorker()

	return s, nil
}

func (s *FileStorage) load() error {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var env fileEnvelope
	if err := json.NewDecoder(file).Decode(&env); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if env.Version > fileFormatVersion {
		return fmt.Errorf("storage: unsupported file version %d", env.Version)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range env.Entries {
		s.entries[k] = []byte(v)
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

// Flush writes pending changes to disk immediately.
func (s *FileStorage) Flush() error {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	env := fileEnvelope{
		Version: fileFormatVersion,
		Entries: make(map[string]json.RawMessage, len(s.entries)),
	}
	for k, v := range s.entries {
		env.Entries[k] = json.RawMessage(v)
	}
	s.dirty = false
	s.mu.Unlock()

	if err := atomicWriteFileJSON(s.path, env); err != nil {
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()
		return err
	}
	return nil
}

// saveWorker coalesces writes that land within saveDelay of each other.
func (s *FileStorage) saveWorker() {
	defer close(s.doneChan)
	timer := time.NewTimer(s.saveDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-s.saveChan:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.Flush(); err != nil {
				s.logger.Errorf("storage: error saving %s, retrying: %v", s.path, err)
				timer.Reset(s.saveDelay)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *FileStorage) markDirty() {
	s.dirty = true
	select {
	case s.saveChan <- struct{}{}:
	default:
	}
}

func (s *FileStorage) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.shutdownChan)
		<-s.doneChan
		// Save pending data synchronously on shutdown
		err = s.Flush()
	})
	return err
}

// --- KV ---
func (s *FileStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *FileStorage) Set(ctx context.Context, key string, value []byte) error {
	return s.Batch(ctx, []Op{Put(key, value)})
}

func (s *FileStorage) Delete(ctx context.Context, key string) error {
	return s.Batch(ctx, []Op{Del(key)})
}

func (s *FileStorage) Keys(ctx context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *FileStorage) Batch(ctx context.Context, ops []Op) error {
	for _, op := range ops {
		if op.Value != nil && !json.Valid(op.Value) {
			return fmt.Errorf("storage: value for %q is not valid JSON", op.Key)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, op := range ops {
		if op.Value == nil {
			delete(s.entries, op.Key)
			continue
		}
		v := make([]byte, len(op.Value))
		copy(v, op.Value)
		s.entries[op.Key] = v
	}
	s.markDirty()
	return nil
}

// --- Compile-time assertions ---
var _ KV = (*FileStorage)(nil)
