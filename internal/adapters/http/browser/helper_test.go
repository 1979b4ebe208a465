package browser_test

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	"venueadmin/internal/adapters/email"
	web "venueadmin/internal/adapters/http"
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

// testApp holds the running test server and Playwright handles.
type testApp struct {
	BaseURL string
	Browser playwright.Browser
	KV      *settingsStore.MemoryStore
}

// newTestApp seeds a temp SQLite DB, serves the full middleware chain on a
// free port and launches headless Chromium.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	db.SetMaxOpenConns(1)
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init test DB: %v", err)
	}

	deps := pages.Deps{
		Venues:      venueStore.NewSQLiteStore(db),
		Clients:     clientStore.NewSQLiteStore(db),
		Bookings:    bookingStore.NewSQLiteStore(db),
		Receivables: receivableStore.NewSQLiteStore(db),
		Users:       userStore.NewSQLiteStore(db),
		Groups:      groupStore.NewSQLiteStore(db),
		Sender:      email.NewNoopSender(),
		EmailFrom:   "billing@example.com",
		Money:       money.NewFormatter("pt-BR", "R$"),
	}
	ctx := context.Background()
	if _, err := orchestrators.ExecuteSeedDemoData(ctx, orchestrators.SeedDeps{
		VenueStore:      deps.Venues,
		ClientStore:     deps.Clients,
		BookingStore:    deps.Bookings,
		ReceivableStore: deps.Receivables,
		UserStore:       deps.Users,
		GroupStore:      deps.Groups,
	}); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
	registry, err := pages.New(deps)
	if err != nil {
		t.Fatalf("failed to register pages: %v", err)
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port

	cfg, err := config.LoadFrom(map[string]string{
		"VENUEADMIN_TRUSTED_ORIGINS": fmt.Sprintf("127.0.0.1:%d", port),
		"VENUEADMIN_RATE_LIMIT":      "1000",
	})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	defaults, err := config.LoadTableDefaults("")
	if err != nil {
		t.Fatalf("failed to load table defaults: %v", err)
	}

	kv := settingsStore.NewMemoryStore()
	cache := tablesettings.New(kv, tablesettings.Options{Debounce: time.Hour})

	srv := &http.Server{Handler: web.NewMux(&web.App{
		Config: cfg,
		Stores: web.Stores{
			Venues:      deps.Venues,
			Clients:     deps.Clients,
			Bookings:    deps.Bookings,
			Receivables: deps.Receivables,
		},
		Pages:    registry,
		Settings: cache,
		Defaults: defaults,
		Money:    deps.Money,
	})}
	go func() {
		if err := srv.Serve(listener); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		cache.Close(context.Background())
		db.Close()
	})

	return &testApp{
		BaseURL: fmt.Sprintf("http://127.0.0.1:%d", port),
		Browser: browser,
		KV:      kv,
	}
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

func (a *testApp) goTo(t *testing.T, page playwright.Page, path string) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + path); err != nil {
		t.Fatalf("failed to navigate to %s: %v", path, err)
	}
}

func textOf(t *testing.T, page playwright.Page, selector string) string {
	t.Helper()
	text, err := page.Locator(selector).First().TextContent()
	if err != nil {
		t.Fatalf("failed to read %s: %v", selector, err)
	}
	return strings.TrimSpace(text)
}
