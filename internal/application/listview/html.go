package listview

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"
)

//go:embed templates/list.html
var templateFS embed.FS

var listTemplate = template.Must(template.New("list.html").Funcs(template.FuncMap{
	"cell":       cellHTML,
	"sortURL":    sortURL,
	"actionArgs": actionArgs,
}).ParseFS(templateFS, "templates/list.html"))

// HTMLOptions carries the request-specific bits the list markup links to.
type HTMLOptions struct {
	// BasePath is the list URL, e.g. "/bookings". Action forms post to
	// BasePath/{id}/actions/{name}.
	BasePath string
	// Query is the current list query; sort links keep its other params.
	Query url.Values
	// CSRFField is the hidden input emitted into every action form.
	CSRFField template.HTML
}

type listData struct {
	View    View
	Options HTMLOptions
}

type actionData struct {
	URL       string
	Button    ActionButton
	CSRFField template.HTML
}

// RenderHTML writes the view as an HTML fragment (the "list" template).
func RenderHTML(w io.Writer, view View, opts HTMLOptions) error {
	if err := listTemplate.ExecuteTemplate(w, "list", listData{View: view, Options: opts}); err != nil {
		return fmt.Errorf("render list: %w", err)
	}
	return nil
}

// ListHTML renders the view into a string for embedding in a page template.
func ListHTML(view View, opts HTMLOptions) (template.HTML, error) {
	var b strings.Builder
	if err := RenderHTML(&b, view, opts); err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil // #nosec G203 -- produced by html/template
}

func cellHTML(c Cell) template.HTML {
	if c.HTML != "" {
		return c.HTML
	}
	return template.HTML(template.HTMLEscapeString(c.Text)) // #nosec G203 -- escaped
}

// sortURL links a header to the opposite of its current direction, going
// back to the first page.
func sortURL(opts HTMLOptions, h HeaderCell) string {
	q := url.Values{}
	for k, v := range opts.Query {
		q[k] = append([]string(nil), v...)
	}
	dir := "asc"
	if h.Sort == "asc" {
		dir = "desc"
	}
	q.Set("sort", h.Key)
	q.Set("dir", dir)
	q.Del("page")
	return opts.BasePath + "?" + q.Encode()
}

func actionArgs(opts HTMLOptions, id string, b ActionButton) actionData {
	return actionData{
		URL:       opts.BasePath + "/" + url.PathEscape(id) + "/actions/" + url.PathEscape(b.Name),
		Button:    b,
		CSRFField: opts.CSRFField,
	}
}
