package browser_test

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
)

// TestListView_BookmarkedSearch opens a list with the query already in the URL.
func TestListView_BookmarkedSearch(t *testing.T) {
	app := newTestApp(t)
	page := app.newPage(t)

	app.goTo(t, page, "/clients?q=souza")
	if text := textOf(t, page, "#results-summary"); !strings.HasSuffix(text, "of 1") {
		t.Errorf("q=souza: expected 1 result, got %q", text)
	}
	if v, _ := page.Locator("#search-input").InputValue(); v != "souza" {
		t.Errorf("expected search input to show 'souza', got %q", v)
	}

	app.goTo(t, page, "/clients?q=nobody")
	if text := textOf(t, page, ".empty-state h3"); text != "No results found" {
		t.Errorf("expected no-results state, got %q", text)
	}
}

// TestListView_Pagination walks pages and changes the page size.
func TestListView_Pagination(t *testing.T) {
	app := newTestApp(t)
	page := app.newPage(t)

	app.goTo(t, page, "/bookings")
	if text := textOf(t, page, "#results-summary"); text != "1–20 of 60" {
		t.Fatalf("first page summary: got %q", text)
	}

	if err := page.Locator("a[rel=next]").Click(); err != nil {
		t.Fatalf("failed to click next: %v", err)
	}
	if err := page.WaitForURL(regexp.MustCompile(`page=2`)); err != nil {
		t.Fatalf("next did not navigate: %v", err)
	}
	if text := textOf(t, page, "#results-summary"); text != "21–40 of 60" {
		t.Errorf("second page summary: got %q", text)
	}

	if _, err := page.Locator("select[name=per_page]").SelectOption(playwright.SelectOptionValues{
		Values: playwright.StringSlice("50"),
	}); err != nil {
		t.Fatalf("failed to select page size: %v", err)
	}
	if err := page.WaitForURL(regexp.MustCompile(`per_page=50`)); err != nil {
		t.Fatalf("page size did not submit: %v", err)
	}
	if text := textOf(t, page, "#results-summary"); text != "1–50 of 60" {
		t.Errorf("changing page size should return to page 1, got %q", text)
	}
}

// TestListView_SortIsRemembered clicks a header twice, then reloads the list
// without parameters. The flush on page hide writes the sort through.
func TestListView_SortIsRemembered(t *testing.T) {
	app := newTestApp(t)
	page := app.newPage(t)

	app.goTo(t, page, "/clients")
	header := page.Locator("th[data-key=email] a")
	if err := header.Click(); err != nil {
		t.Fatalf("failed to sort: %v", err)
	}
	if err := page.WaitForURL(regexp.MustCompile(`dir=asc`)); err != nil {
		t.Fatalf("sort asc did not navigate: %v", err)
	}
	if err := header.Click(); err != nil {
		t.Fatalf("failed to sort: %v", err)
	}
	if err := page.WaitForURL(regexp.MustCompile(`dir=desc`)); err != nil {
		t.Fatalf("sort desc did not navigate: %v", err)
	}

	app.goTo(t, page, "/clients")
	if first := textOf(t, page, "table tbody tr:first-child td:first-child"); first != "Tuesday Futsal Team" {
		t.Errorf("expected the remembered email desc sort, first row is %q", first)
	}

	deadline := time.Now().Add(5 * time.Second)
	for app.KV.Writes() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	if app.KV.Writes() == 0 {
		t.Error("expected navigation to flush the pending settings write")
	}
}

// TestListView_GridToggle switches to cards and back.
func TestListView_GridToggle(t *testing.T) {
	app := newTestApp(t)
	page := app.newPage(t)

	app.goTo(t, page, "/venues")
	if err := page.Locator("text=Cards").Click(); err != nil {
		t.Fatalf("failed to switch to cards: %v", err)
	}
	if err := page.WaitForURL(regexp.MustCompile(`view=grid`)); err != nil {
		t.Fatalf("grid toggle did not navigate: %v", err)
	}
	if n, _ := page.Locator("article.card").Count(); n != 4 {
		t.Errorf("expected 4 venue cards, got %d", n)
	}
	if n, _ := page.Locator("article.card").First().Locator("dt").Count(); n != 3 {
		t.Errorf("expected 3 fields per card, got %d", n)
	}
}

// TestListView_CreateAndDelete submits the create form through the CSRF
// middleware, then deletes the row, dismissing the confirm prompt once.
func TestListView_CreateAndDelete(t *testing.T) {
	app := newTestApp(t)
	page := app.newPage(t)

	app.goTo(t, page, "/clients/new")
	if err := page.Locator("#f-name").Fill("Helena Costa"); err != nil {
		t.Fatalf("failed to fill name: %v", err)
	}
	if err := page.Locator("#f-email").Fill("helena@example.com"); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to submit: %v", err)
	}
	if err := page.WaitForURL(app.BaseURL + "/clients"); err != nil {
		t.Fatalf("create did not redirect to the list: %v", err)
	}

	app.goTo(t, page, "/clients?q=helena")
	deleteButton := page.Locator("button[title=Delete]")

	accept := false
	page.OnDialog(func(d playwright.Dialog) {
		if accept {
			d.Accept()
		} else {
			d.Dismiss()
		}
	})
	if err := deleteButton.Click(); err != nil {
		t.Fatalf("failed to click delete: %v", err)
	}
	if n, _ := page.Locator("table tbody tr").Count(); n != 1 {
		t.Fatalf("dismissing the prompt should keep the row, found %d rows", n)
	}

	accept = true
	if err := deleteButton.Click(); err != nil {
		t.Fatalf("failed to click delete: %v", err)
	}
	if err := page.Locator(".empty-state").WaitFor(); err != nil {
		t.Fatalf("expected the empty state after deleting: %v", err)
	}
}
