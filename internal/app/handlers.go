package app

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/lmalottucsd/bikewatching/internal/data"
	"github.com/lmalottucsd/bikewatching/internal/view"
)

// HealthStatus is the JSON response of /v1/healthcheck. Ready means both
// required datasets are loaded and the initial draw has happened.
type HealthStatus struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
	Stations    int    `json:"stations"`
	Trips       int    `json:"trips"`
	Ready       bool   `json:"ready"`
}

func (app *Application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	stations, _ := app.DataService.Stations.Get()
	trips, _ := app.DataService.Trips.Get()

	ready := len(stations) > 0 && len(trips) > 0 && app.Controller != nil

	status := HealthStatus{
		Status:      "available",
		Environment: app.Config.Env,
		Version:     app.Version,
		Stations:    len(stations),
		Trips:       len(trips),
		Ready:       ready,
	}

	w.Header().Set("Content-Type", "application/json")
	if !ready {
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(status)
}

func (app *Application) sceneHandler(w http.ResponseWriter, r *http.Request) {
	if app.Controller == nil {
		app.errorResponse(w, http.StatusServiceUnavailable, "scene not ready")
		return
	}
	app.writeJSON(w, http.StatusOK, app.Controller.Snapshot())
}

// filterHandler applies a slider change. The value comes either from the
// "minutes" query parameter or a JSON body {"minutes": N}; -1 is the
// "any time" sentinel.
func (app *Application) filterHandler(w http.ResponseWriter, r *http.Request) {
	if app.Controller == nil {
		app.errorResponse(w, http.StatusServiceUnavailable, "scene not ready")
		return
	}

	minutes, err := readMinutes(r)
	if err != nil {
		app.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := app.Controller.SetFilter(minutes); err != nil {
		app.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	app.writeJSON(w, http.StatusOK, app.Controller.Snapshot())
}

// viewportHandler applies a map pan/zoom/resize and returns the
// repositioned scene.
func (app *Application) viewportHandler(w http.ResponseWriter, r *http.Request) {
	if app.Controller == nil {
		app.errorResponse(w, http.StatusServiceUnavailable, "scene not ready")
		return
	}

	var vp view.Viewport
	if err := json.NewDecoder(r.Body).Decode(&vp); err != nil {
		app.errorResponse(w, http.StatusBadRequest, "invalid viewport body: "+err.Error())
		return
	}

	app.Controller.Move(vp)
	app.writeJSON(w, http.StatusOK, app.Controller.Snapshot())
}

// lanesResponse pairs the raw lane network with its line-layer style.
type lanesResponse struct {
	Network json.RawMessage `json:"network"`
	Style   data.LaneStyle  `json:"style"`
}

func (app *Application) lanesHandler(w http.ResponseWriter, r *http.Request) {
	lanes := app.DataService.Lanes.Get()
	if lanes == nil {
		app.errorResponse(w, http.StatusNotFound, "no bike lane network loaded")
		return
	}
	app.writeJSON(w, http.StatusOK, lanesResponse{Network: lanes.GeoJSON, Style: lanes.Style})
}

func readMinutes(r *http.Request) (int, error) {
	if raw := r.URL.Query().Get("minutes"); raw != "" {
		return strconv.Atoi(raw)
	}

	var body struct {
		Minutes *int `json:"minutes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return 0, err
	}
	if body.Minutes == nil {
		return 0, errMissingMinutes
	}
	return *body.Minutes, nil
}

var errMissingMinutes = &missingFieldError{field: "minutes"}

type missingFieldError struct {
	field string
}

func (e *missingFieldError) Error() string {
	return "missing required field: " + e.field
}

func (app *Application) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.Logger.Error("failed to encode response", "error", err)
	}
}

func (app *Application) errorResponse(w http.ResponseWriter, status int, message string) {
	app.writeJSON(w, status, map[string]string{"error": message})
}
