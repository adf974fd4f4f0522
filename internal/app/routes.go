package app

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lmalottucsd/bikewatching/internal/middleware"
)

// Routes registers the HTTP surface and returns the final handler.
//
// The slider and map-camera events of the original UI arrive here as PUT
// requests; the scene endpoint is what the thin map client polls after
// each event to get the circles it should draw.
//
//   - GET  /v1/healthcheck  — readiness and dataset counts
//   - GET  /v1/scene        — current circle set and slider readout
//   - PUT  /v1/filter       — slider change (minutes or the -1 sentinel)
//   - PUT  /v1/viewport     — map pan/zoom/resize
//   - GET  /v1/lanes        — bike-lane GeoJSON plus line-layer style
//   - GET  /metrics         — cached Prometheus exposition
func (app *Application) Routes(ctx context.Context) http.Handler {
	router := httprouter.New()

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/v1/scene", app.sceneHandler)
	router.HandlerFunc(http.MethodPut, "/v1/filter", app.filterHandler)
	router.HandlerFunc(http.MethodPut, "/v1/viewport", app.viewportHandler)
	router.HandlerFunc(http.MethodGet, "/v1/lanes", app.lanesHandler)
	router.Handler(http.MethodGet, "/metrics", middleware.NewCachedPromHandler(ctx, prometheus.DefaultGatherer, 10*time.Second))

	handler := middleware.SentryMiddleware(router)
	return middleware.SecurityHeaders(handler)
}
