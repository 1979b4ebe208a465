package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"venueadmin/internal/adapters/email"
	"venueadmin/internal/adapters/http/perf"
	"venueadmin/internal/adapters/storage"
	bookingStore "venueadmin/internal/adapters/storage/booking"
	clientStore "venueadmin/internal/adapters/storage/client"
	groupStore "venueadmin/internal/adapters/storage/group"
	receivableStore "venueadmin/internal/adapters/storage/receivable"
	settingsStore "venueadmin/internal/adapters/storage/tablesettings"
	userStore "venueadmin/internal/adapters/storage/user"
	venueStore "venueadmin/internal/adapters/storage/venue"
	"venueadmin/internal/application/money"
	"venueadmin/internal/application/orchestrators"
	"venueadmin/internal/application/pages"
	"venueadmin/internal/application/tablesettings"
	"venueadmin/internal/config"
)

// redisKeyPrefix namespaces settings keys in a shared Redis.
const redisKeyPrefix = "venueadmin:"

// runtime is the wired application shared by serve and the terminal commands.
type runtime struct {
	cfg       config.Config
	db        *sql.DB
	collector *perf.Collector
	deps      pages.Deps
	settings  *tablesettings.Cache
	defaults  config.TableDefaults
	redis     *redis.Client
}

// openRuntime opens the database, builds every store and the settings cache.
// PRE: cfg has been validated
// POST: The caller must Close the runtime
func openRuntime(ctx context.Context, cfg config.Config) (*runtime, error) {
	// InitDB switches to WAL; the DSN adds busy timeout and foreign keys per connection
	dsn := cfg.DBPath + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	if err := storage.InitDB(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init database: %w", err)
	}

	defaults, err := config.LoadTableDefaults(cfg.TableDefaultsPath)
	if err != nil {
		db.Close()
		return nil, err
	}

	// Performance instrumentation: every store goes through the timed DB
	collector := perf.NewCollector(perf.DefaultRingSize)
	timed := storage.NewTimedDB(db, collector, cfg.SlowQuery)

	rt := &runtime{cfg: cfg, db: db, collector: collector, defaults: defaults}
	kv, err := rt.settingsStore(ctx, timed)
	if err != nil {
		db.Close()
		return nil, err
	}
	rt.settings = tablesettings.New(kv, tablesettings.Options{
		Debounce: cfg.Settings.Debounce,
		Version:  cfg.Settings.Version,
	})

	var sender email.Sender = email.NewNoopSender()
	if cfg.Email.ResendKey != "" {
		sender = email.NewResendSender(cfg.Email.ResendKey, cfg.Email.From, cfg.Email.ReplyTo)
		slog.Info("email_sender_configured", "provider", "resend")
	} else if cfg.IsProduction() {
		slog.Warn("email_disabled", "hint", "set VENUEADMIN_RESEND_KEY for reminder delivery")
	}

	rt.deps = pages.Deps{
		Venues:      venueStore.NewSQLiteStore(timed),
		Clients:     clientStore.NewSQLiteStore(timed),
		Bookings:    bookingStore.NewSQLiteStore(timed),
		Receivables: receivableStore.NewSQLiteStore(timed),
		Users:       userStore.NewSQLiteStore(timed),
		Groups:      groupStore.NewSQLiteStore(timed),
		Sender:      sender,
		EmailFrom:   cfg.Email.From,
		Money:       money.NewFormatter(cfg.CurrencyLocale, cfg.CurrencySymbol),
		Location:    cfg.TimeLocation(),
	}
	return rt, nil
}

// settingsStore picks the KV backend for table settings.
func (rt *runtime) settingsStore(ctx context.Context, db storage.SQLDB) (settingsStore.Store, error) {
	switch rt.cfg.Settings.Backend {
	case config.BackendFile:
		return settingsStore.NewFileStore(rt.cfg.Settings.Dir)
	case config.BackendRedis:
		rt.redis = redis.NewClient(&redis.Options{Addr: rt.cfg.Settings.RedisAddr, DB: rt.cfg.Settings.RedisDB})
		if err := rt.redis.Ping(ctx).Err(); err != nil {
			rt.redis.Close()
			return nil, fmt.Errorf("redis %s: %w", rt.cfg.Settings.RedisAddr, err)
		}
		return settingsStore.NewRedisStore(rt.redis, redisKeyPrefix), nil
	case config.BackendMemory:
		return settingsStore.NewMemoryStore(), nil
	default:
		return settingsStore.NewSQLiteStore(db), nil
	}
}

func (rt *runtime) seedDeps() orchestrators.SeedDeps {
	return orchestrators.SeedDeps{
		VenueStore:      rt.deps.Venues,
		ClientStore:     rt.deps.Clients,
		BookingStore:    rt.deps.Bookings,
		ReceivableStore: rt.deps.Receivables,
		UserStore:       rt.deps.Users,
		GroupStore:      rt.deps.Groups,
	}
}

// Close flushes pending settings writes, then releases the connections.
func (rt *runtime) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	errs := []error{rt.settings.Close(ctx)}
	if rt.redis != nil {
		errs = append(errs, rt.redis.Close())
	}
	errs = append(errs, rt.db.Close())
	return errors.Join(errs...)
}
