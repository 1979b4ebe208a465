// Package tablesettings caches per-entity table view settings in memory and
// persists them to a key-value store through a debounced writer.
package tablesettings

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	settingsstore "venueadmin/internal/adapters/storage/tablesettings"
	domain "venueadmin/internal/domain/tablesettings"
)

// DefaultDebounce is the write delay used when Options.Debounce is zero.
const DefaultDebounce = 500 * time.Millisecond

// writeTimeout bounds a debounced write, which runs without a caller context.
const writeTimeout = 5 * time.Second

// Options configures a Cache.
type Options struct {
	Debounce time.Duration // zero means DefaultDebounce; negative writes every save immediately
	Version  int           // zero means domain.DefaultVersion
}

type entry struct {
	settings domain.TableSettings
	loaded   bool
	timer    *time.Timer
	gen      uint64
}

// Cache is a read-through cache of TableSettings keyed by entity name. It is
// the only writer for its keys and is safe for concurrent use.
// INVARIANT: each entity has at most one pending timer
type Cache struct {
	store    settingsstore.Store
	debounce time.Duration
	version  int

	mu      sync.Mutex
	entries map[string]*entry
	closed  bool
	pending sync.WaitGroup

	writeMu sync.Mutex
}

// New creates a Cache backed by store.
func New(store settingsstore.Store, opts Options) *Cache {
	if opts.Debounce == 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Version <= 0 {
		opts.Version = domain.DefaultVersion
	}
	return &Cache{
		store:    store,
		debounce: opts.Debounce,
		version:  opts.Version,
		entries:  make(map[string]*entry),
	}
}

// Key returns the storage key for entity.
func (c *Cache) Key(entity string) string {
	return domain.StorageKey(entity, c.version)
}

// Load returns the settings for entity. The store is read once per entity;
// later calls are served from memory. Read failures yield empty settings.
// PRE: none
// POST: Never blocks on a write; the result is a copy owned by the caller
func (c *Cache) Load(ctx context.Context, entity string) domain.TableSettings {
	if err := domain.ValidateEntity(entity); err != nil {
		slog.Warn("table_settings_invalid_entity", "entity", entity, "error", err)
		return domain.TableSettings{}
	}
	e := c.ensureLoaded(ctx, entity)

	c.mu.Lock()
	defer c.mu.Unlock()
	return e.settings.Clone()
}

func (c *Cache) ensureLoaded(ctx context.Context, entity string) *entry {
	c.mu.Lock()
	e, ok := c.entries[entity]
	if !ok {
		e = &entry{}
		c.entries[entity] = e
	}
	loaded := e.loaded
	c.mu.Unlock()
	if loaded {
		return e
	}

	settings := c.read(ctx, entity)

	c.mu.Lock()
	if !e.loaded {
		e.settings = settings
		e.loaded = true
	}
	c.mu.Unlock()
	return e
}

func (c *Cache) read(ctx context.Context, entity string) domain.TableSettings {
	key := c.Key(entity)
	data, err := c.store.Get(ctx, key)
	if errors.Is(err, settingsstore.ErrNotFound) {
		return domain.TableSettings{}
	}
	if err != nil {
		loadFailuresTotal.WithLabelValues("store").Inc()
		slog.Warn("table_settings_load_failed", "key", key, "error", err)
		return domain.TableSettings{}
	}

	var settings domain.TableSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		loadFailuresTotal.WithLabelValues("decode").Inc()
		slog.Warn("table_settings_corrupt", "key", key, "error", err)
		return domain.TableSettings{}
	}
	if err := settings.Validate(); err != nil {
		loadFailuresTotal.WithLabelValues("invalid").Inc()
		slog.Warn("table_settings_invalid", "key", key, "error", err)
		return domain.TableSettings{}
	}
	return settings
}

// Save shallow-merges patch over the current settings and schedules a write.
// Each non-immediate save restarts the entity's debounce timer, so a burst of
// saves produces a single write of the final state. With immediate set, any
// pending timer is cancelled and the write happens before Save returns.
// Write failures are logged and counted, never returned.
// PRE: patch has been validated by the caller
// POST: Load(entity) reflects the merged state
func (c *Cache) Save(ctx context.Context, entity string, patch domain.TableSettings, immediate bool) {
	if err := domain.ValidateEntity(entity); err != nil {
		slog.Warn("table_settings_invalid_entity", "entity", entity, "error", err)
		return
	}
	e := c.ensureLoaded(ctx, entity)

	c.mu.Lock()
	e.settings = e.settings.Merge(patch)
	e.gen++
	c.stopTimer(e, true)
	if immediate || c.closed || c.debounce < 0 {
		c.mu.Unlock()
		c.write(ctx, entity)
		return
	}
	gen := e.gen
	c.pending.Add(1)
	e.timer = time.AfterFunc(c.debounce, func() {
		defer c.pending.Done()
		c.fire(entity, gen)
	})
	c.mu.Unlock()
}

// stopTimer cancels a pending write. Caller holds c.mu.
func (c *Cache) stopTimer(e *entry, coalesced bool) bool {
	if e.timer == nil {
		return false
	}
	if e.timer.Stop() {
		c.pending.Done()
		if coalesced {
			coalescedTotal.Inc()
		}
	}
	e.timer = nil
	return true
}

func (c *Cache) fire(entity string, gen uint64) {
	c.mu.Lock()
	e := c.entries[entity]
	if e == nil || e.gen != gen {
		c.mu.Unlock()
		return
	}
	e.timer = nil
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	c.write(ctx, entity)
}

// write persists the latest state of entity. Writes are serialised and the
// snapshot is taken after acquiring writeMu, so a slow earlier write can
// never overwrite a newer one.
func (c *Cache) write(ctx context.Context, entity string) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	e := c.entries[entity]
	if e == nil {
		c.mu.Unlock()
		return
	}
	snapshot := e.settings.Clone()
	c.mu.Unlock()

	key := c.Key(entity)
	data, err := json.Marshal(snapshot)
	if err == nil {
		err = c.store.Set(ctx, key, data)
	}
	if err != nil {
		writesTotal.WithLabelValues("error").Inc()
		slog.Warn("table_settings_write_failed", "key", key, "error", err)
		return
	}
	writesTotal.WithLabelValues("ok").Inc()
	slog.Debug("table_settings_written", "key", key, "bytes", len(data))
}

// Flush writes every entity that has a pending debounced write.
// POST: No timers are pending when Flush returns
func (c *Cache) Flush(ctx context.Context) {
	c.mu.Lock()
	var due []string
	for entity, e := range c.entries {
		if c.stopTimer(e, false) {
			e.gen++
			due = append(due, entity)
		}
	}
	c.mu.Unlock()

	for _, entity := range due {
		c.write(ctx, entity)
	}
}

// Reset forgets the settings for entity and deletes the persisted key.
func (c *Cache) Reset(ctx context.Context, entity string) error {
	if err := domain.ValidateEntity(entity); err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	e, ok := c.entries[entity]
	if !ok {
		e = &entry{}
		c.entries[entity] = e
	}
	c.stopTimer(e, false)
	e.gen++
	e.settings = domain.TableSettings{}
	e.loaded = true
	c.mu.Unlock()

	return c.store.Delete(ctx, c.Key(entity))
}

// Close flushes pending writes and switches the cache to synchronous writes.
// It waits for in-flight timer callbacks until ctx is done.
func (c *Cache) Close(ctx context.Context) error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.Flush(ctx)

	done := make(chan struct{})
	go func() {
		c.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
