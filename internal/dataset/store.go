package dataset

import (
	"context"
	"fmt"
	"sync"

	"supplyhealth-service/internal/engine"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Store holds the current default dataset snapshot. Readers always see a
// complete snapshot; a failed reload leaves the previous one in place.
type Store struct {
	provider Provider
	log      *zap.Logger
	onReload func(error)

	mu      sync.RWMutex
	current *Dataset
}

// NewStore creates a store serving Empty() until the first successful reload.
// onReload, if set, is called after every reload attempt.
func NewStore(provider Provider, log *zap.Logger, onReload func(error)) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		provider: provider,
		log:      log,
		onReload: onReload,
		current:  Empty(),
	}
}

// Current returns the latest snapshot
func (s *Store) Current() *Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Reload loads a fresh snapshot from the provider. A snapshot missing any
// required column counts as a failed reload.
func (s *Store) Reload(ctx context.Context) error {
	ds, err := s.load(ctx)
	if s.onReload != nil {
		s.onReload(err)
	}
	if err != nil {
		s.log.Warn("Default dataset reload failed, keeping previous data", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.current = ds
	s.mu.Unlock()

	s.log.Info("Default dataset loaded",
		zap.String("source", ds.Source),
		zap.Int("suppliers", ds.Suppliers.Len()),
		zap.Int("inventory", ds.Inventory.Len()),
	)
	return nil
}

func (s *Store) load(ctx context.Context) (*Dataset, error) {
	ds, err := s.provider.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := engine.CheckSchema(ds.Suppliers, ds.Inventory); err != nil {
		return nil, fmt.Errorf("default dataset rejected: %w", err)
	}
	return ds, nil
}

// Watch reloads the store whenever a table file in dir is written or
// created. It runs until ctx is cancelled.
func (s *Store) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	s.log.Info("Watching default dataset for changes", zap.String("dir", dir))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Atomic saves arrive as create, plain saves as write
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !IsTableFile(event.Name) {
				continue
			}
			s.log.Debug("Default dataset file changed", zap.String("file", event.Name))
			_ = s.Reload(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Error("Dataset watcher error", zap.Error(err))
		}
	}
}
