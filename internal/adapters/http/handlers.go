package web

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"

	"venueadmin/internal/application/listview"
	"venueadmin/internal/application/orchestrators"
	"venueadmin/internal/application/pages"
	"venueadmin/internal/application/projections"
	"venueadmin/internal/domain/booking"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// perfWindow is the default look-back of /admin/perf.
const perfWindow = time.Hour

type handlers struct {
	app *App
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

func isJSONBody(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("json_encode_failed", "error", err)
	}
}

// statusFor maps application errors onto HTTP statuses. Zero means the
// error is unexpected and must not reach the client.
func statusFor(err error) int {
	var invalid *orchestrators.ValidationError
	switch {
	case errors.Is(err, sql.ErrNoRows), errors.Is(err, listview.ErrUnknownAction), errors.Is(err, pages.ErrCreateUnsupported):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrSlotUnavailable), errors.Is(err, listview.ErrActionHidden):
		return http.StatusConflict
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	default:
		return 0
	}
}

// writeError reports err as JSON or plain text depending on the request.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == 0 {
		internalError(w, err)
		return
	}
	if isHTMLRequest(r) {
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

type navItem struct {
	Href   string
	Title  string
	Active bool
}

type layoutData struct {
	Title   string
	Nav     []navItem
	Content any
}

// withParam returns "?query" with key set to value, dropping key when value
// is empty. Changing anything but the page resets to the first page.
func withParam(q url.Values, key, value string) template.URL {
	out := url.Values{}
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	if key != "page" {
		out.Del("page")
	}
	if value == "" {
		out.Del(key)
	} else {
		out.Set(key, value)
	}
	return template.URL("?" + out.Encode()) // #nosec G203 -- url.Values.Encode escapes
}

func (h *handlers) renderTemplate(w http.ResponseWriter, r *http.Request, templateName, title string, data any) {
	nav := []navItem{{Href: "/", Title: "Dashboard", Active: r.URL.Path == "/"}}
	for _, p := range h.app.Pages.Pages() {
		meta := p.Meta()
		href := "/" + meta.Entity
		nav = append(nav, navItem{Href: href, Title: meta.Title, Active: strings.HasPrefix(r.URL.Path, href)})
	}

	funcMap := template.FuncMap{
		"csrfField": func() template.HTML { return csrf.TemplateField(r) },
		"money":     h.app.Money.Format,
		"withParam": withParam,
		"itoa":      strconv.Itoa,
		"add":       func(a, b int) int { return a + b },
		"sub":       func(a, b int) int { return a - b },
		"hours":     func(d time.Duration) string { return strconv.FormatFloat(d.Hours(), 'f', 1, 64) },
	}

	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, layoutData{Title: title, Nav: nav, Content: data}); err != nil {
		slog.Error("template_render_failed", "template", templateName, "error", err)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleStatic(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, staticFS, "static/"+path.Base(r.URL.Path))
}

// handleAdminPerf reports the perf ring buffer. ?window=15m narrows the
// look-back, ?top=N limits the slowest lists.
func (h *handlers) handleAdminPerf(w http.ResponseWriter, r *http.Request) {
	if h.app.Collector == nil {
		http.Error(w, "performance collection is disabled", http.StatusNotFound)
		return
	}
	window := perfWindow
	if raw := r.URL.Query().Get("window"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			http.Error(w, "window must be a positive duration", http.StatusBadRequest)
			return
		}
		window = d
	}
	top := 10
	if n, err := strconv.Atoi(r.URL.Query().Get("top")); err == nil && n > 0 {
		top = n
	}
	writeJSON(w, http.StatusOK, h.app.Collector.Snapshot(h.app.now().Add(-window), top))
}

// handleReport renders the dashboard summary.
func (h *handlers) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := projections.QueryGetReport(r.Context(), projections.GetReportQuery{Now: h.app.now()}, projections.GetReportDeps{
		VenueStore:      h.app.Stores.Venues,
		ClientStore:     h.app.Stores.Clients,
		BookingStore:    h.app.Stores.Bookings,
		ReceivableStore: h.app.Stores.Receivables,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, report)
		return
	}
	h.renderTemplate(w, r, "report.html", "Dashboard", report)
}
