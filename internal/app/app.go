package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/lmalottucsd/bikewatching/internal/config"
	"github.com/lmalottucsd/bikewatching/internal/data"
	"github.com/lmalottucsd/bikewatching/internal/geo"
	"github.com/lmalottucsd/bikewatching/internal/view"
)

// Default canvas handed to the initial viewport fit; the client reports
// its real size through PUT /v1/viewport as soon as it loads.
const (
	defaultCanvasWidth  = 1024.0
	defaultCanvasHeight = 768.0
)

// Application wires the service dependencies together: configuration, the
// dataset service, and the scene controller created once the datasets are
// loaded.
type Application struct {
	Config      *config.Config
	DataService *data.Service
	Controller  *view.Controller
	Logger      *slog.Logger
	Version     string
}

// New creates and wires all dependencies for the Application.
func New(cfg *config.Config, logger *slog.Logger, client *http.Client, version string) *Application {
	stationStore := data.NewStationStore()
	tripStore := data.NewTripStore()
	laneStore := data.NewLaneStore()

	dataService := data.NewService(stationStore, tripStore, laneStore, logger, client)

	return &Application{
		Config:      cfg,
		DataService: dataService,
		Logger:      logger,
		Version:     version,
	}
}

// Bootstrap loads the remote datasets and performs the initial draw. It
// is the service's "map load" gate: nothing is served until the two
// required datasets are in memory and every station has a circle.
func (app *Application) Bootstrap(ctx context.Context) error {
	if err := app.DataService.LoadAll(ctx, app.Config.GetSources()); err != nil {
		return err
	}

	stations, ok := app.DataService.Stations.Get()
	if !ok {
		return fmt.Errorf("station store empty after load")
	}
	trips, ok := app.DataService.Trips.Get()
	if !ok {
		return fmt.Errorf("trip store empty after load")
	}

	vp := view.NewViewport(view.DefaultCenterLon, view.DefaultCenterLat, view.DefaultZoom, defaultCanvasWidth, defaultCanvasHeight)
	if bbox, err := geo.ComputeBoundingBox(stations); err == nil {
		vp = view.FitViewport(bbox, defaultCanvasWidth, defaultCanvasHeight)
	} else {
		app.Logger.Warn("could not fit viewport to stations, using default camera", "error", err)
	}

	app.Controller = view.NewController(stations, trips, vp, app.Logger)
	return nil
}
