package web

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"slices"

	"github.com/gorilla/csrf"

	"venueadmin/internal/application/listutil"
	"venueadmin/internal/application/listview"
	"venueadmin/internal/application/pages"
	settingsDomain "venueadmin/internal/domain/tablesettings"
)

// listPageData feeds list.html.
type listPageData struct {
	Meta           pages.Meta
	Result         pages.Result
	List           template.HTML
	Query          url.Values
	PerPageOptions []int
	FilterValues   map[string]string
}

// formPageData feeds form.html.
type formPageData struct {
	Meta   pages.Meta
	Fields []pages.FormField
	Values url.Values
	Error  string
}

// page resolves {entity} or writes a 404.
func (h *handlers) page(w http.ResponseWriter, r *http.Request) (pages.Page, bool) {
	p, ok := h.app.Pages.Get(r.PathValue("entity"))
	if !ok {
		http.NotFound(w, r)
		return nil, false
	}
	return p, true
}

func (h *handlers) listParams(r *http.Request, meta pages.Meta) listutil.ListParams {
	return listutil.ParseListParams(r.URL.Query(), listutil.ParseOptions{
		DefaultPerPage: h.app.Config.DefaultPageSize,
		PerPageOptions: h.app.Config.PageSizeOptions,
		SortColumns:    meta.SortColumns,
		FilterKeys:     meta.FilterKeys,
	})
}

// effectiveSettings layers the user's saved settings over the entity defaults.
func (h *handlers) effectiveSettings(r *http.Request, entity string) settingsDomain.TableSettings {
	return h.app.Defaults.For(entity).Merge(h.app.Settings.Load(r.Context(), entity))
}

// handleList serves GET /{entity}: the HTML list page, or the page items and
// pagination state as JSON.
func (h *handlers) handleList(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}
	meta := p.Meta()
	params := h.listParams(r, meta)

	// A header click carries sort/dir; remember it as the entity's sort.
	// Pagination links repeat the sort, so only a change is saved.
	settings := h.effectiveSettings(r, meta.Entity)
	if params.Sort != "" {
		sorting := []settingsDomain.SortRule{{ID: params.Sort, Desc: params.Desc()}}
		if !slices.Equal(sorting, settings.SortingState) {
			h.app.Settings.Save(r.Context(), meta.Entity, settingsDomain.TableSettings{SortingState: sorting}, false)
			settings.SortingState = sorting
		}
	}

	res, err := p.List(r.Context(), pages.Request{Params: params, Settings: settings})
	if err != nil {
		writeError(w, r, err)
		return
	}

	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, map[string]any{
			"entity": meta.Entity,
			"items":  res.Items,
			"state":  res.State,
			"empty":  res.View.Empty,
		})
		return
	}

	query := res.Params.Query()
	list, err := listview.ListHTML(res.View, listview.HTMLOptions{
		BasePath:  "/" + meta.Entity,
		Query:     query,
		CSRFField: csrf.TemplateField(r),
	})
	if err != nil {
		internalError(w, err)
		return
	}
	perPage := h.app.Config.PageSizeOptions
	if len(perPage) == 0 {
		perPage = listutil.PerPageOptions
	}
	h.renderTemplate(w, r, "list.html", meta.Title, listPageData{
		Meta:           meta,
		Result:         res,
		List:           list,
		Query:          query,
		PerPageOptions: perPage,
		FilterValues:   params.Filters,
	})
}

// handleExportCSV streams every row matching the current search, filters and
// sort, ignoring pagination.
func (h *handlers) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}
	meta := p.Meta()
	req := pages.Request{Params: h.listParams(r, meta), Settings: h.effectiveSettings(r, meta.Entity)}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", meta.Entity+".csv"))
	if err := p.ExportCSV(r.Context(), w, req); err != nil {
		// Headers may already be out; the log is all that is left.
		slog.Error("csv_export_failed", "entity", meta.Entity, "error", err)
	}
}

func (h *handlers) handleNewForm(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}
	fields, err := p.Form(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	meta := p.Meta()
	h.renderTemplate(w, r, "form.html", "New "+meta.Singular, formPageData{Meta: meta, Fields: fields, Values: url.Values{}})
}

// formValues reads a create submission from a form post or a JSON object of
// strings and string arrays.
func formValues(r *http.Request) (url.Values, error) {
	if !isJSONBody(r) {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		return r.PostForm, nil
	}
	var body map[string]any
	if err := strictDecode(r, &body); err != nil {
		return nil, err
	}
	values := url.Values{}
	for k, v := range body {
		switch v := v.(type) {
		case []any:
			for _, item := range v {
				values.Add(k, fmt.Sprint(item))
			}
		case nil:
		default:
			values.Set(k, fmt.Sprint(v))
		}
	}
	return values, nil
}

// handleCreate serves POST /{entity}.
func (h *handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}
	meta := p.Meta()
	values, err := formValues(r)
	if err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	id, err := p.Create(r.Context(), values)
	if err != nil {
		if isHTMLRequest(r) && statusFor(err) == http.StatusBadRequest {
			fields, ferr := p.Form(r.Context())
			if ferr != nil {
				internalError(w, ferr)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusBadRequest)
			h.renderTemplate(w, r, "form.html", "New "+meta.Singular, formPageData{
				Meta: meta, Fields: fields, Values: values, Error: err.Error(),
			})
			return
		}
		writeError(w, r, err)
		return
	}

	slog.Info("entity_created", "entity", meta.Entity, "id", id)
	if isHTMLRequest(r) {
		http.Redirect(w, r, "/"+meta.Entity, http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// handleAction serves POST /{entity}/{id}/actions/{action}.
func (h *handlers) handleAction(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}
	entity, id, action := r.PathValue("entity"), r.PathValue("id"), r.PathValue("action")
	if err := p.Dispatch(r.Context(), id, action); err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("row_action", "entity", entity, "id", id, "action", action)
	if isHTMLRequest(r) {
		back := "/" + entity
		if ref, err := url.Parse(r.Referer()); err == nil && ref.Path == back && ref.RawQuery != "" {
			back += "?" + ref.RawQuery
		}
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "action": action})
}
