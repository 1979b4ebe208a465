package web

import (
	"net/http"
	"strconv"

	settingsDomain "venueadmin/internal/domain/tablesettings"
)

type settingsResponse struct {
	Entity    string                       `json:"entity"`
	Key       string                       `json:"key"`
	Settings  settingsDomain.TableSettings `json:"settings"`  // what the user changed
	Effective settingsDomain.TableSettings `json:"effective"` // defaults with the user's changes applied
}

// settingsEntity resolves {entity}; only registered pages have settings.
func (h *handlers) settingsEntity(w http.ResponseWriter, r *http.Request) (string, bool) {
	entity := r.PathValue("entity")
	if err := settingsDomain.ValidateEntity(entity); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return "", false
	}
	if _, ok := h.app.Pages.Get(entity); !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown entity"})
		return "", false
	}
	return entity, true
}

func (h *handlers) settingsResponse(r *http.Request, entity string) settingsResponse {
	user := h.app.Settings.Load(r.Context(), entity)
	return settingsResponse{
		Entity:    entity,
		Key:       h.app.Settings.Key(entity),
		Settings:  user,
		Effective: h.app.Defaults.For(entity).Merge(user),
	}
}

func (h *handlers) handleGetTableSettings(w http.ResponseWriter, r *http.Request) {
	entity, ok := h.settingsEntity(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.settingsResponse(r, entity))
}

// handlePutTableSettings merges a partial TableSettings into the cached
// value. The write is debounced unless ?immediate=true.
func (h *handlers) handlePutTableSettings(w http.ResponseWriter, r *http.Request) {
	entity, ok := h.settingsEntity(w, r)
	if !ok {
		return
	}
	var patch settingsDomain.TableSettings
	if err := strictDecode(r, &patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid settings: " + err.Error()})
		return
	}
	if err := patch.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	immediate, _ := strconv.ParseBool(r.URL.Query().Get("immediate"))
	h.app.Settings.Save(r.Context(), entity, patch, immediate)

	status := http.StatusAccepted
	if immediate {
		status = http.StatusOK
	}
	writeJSON(w, status, h.settingsResponse(r, entity))
}

func (h *handlers) handleDeleteTableSettings(w http.ResponseWriter, r *http.Request) {
	entity, ok := h.settingsEntity(w, r)
	if !ok {
		return
	}
	if err := h.app.Settings.Reset(r.Context(), entity); err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleFlushTableSettings writes every pending save now. The browser calls
// it before navigating away.
func (h *handlers) handleFlushTableSettings(w http.ResponseWriter, r *http.Request) {
	h.app.Settings.Flush(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
