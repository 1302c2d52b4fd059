// Package httpapi serves a roadnet.Session over JSON/HTTP with echo.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/katalvlaran/roadnet"
	"github.com/katalvlaran/roadnet/autoconnect"
	"github.com/katalvlaran/roadnet/bfs"
	"github.com/katalvlaran/roadnet/dijkstra"
	"github.com/katalvlaran/roadnet/history"
	"github.com/katalvlaran/roadnet/network"
	"github.com/katalvlaran/roadnet/prim_kruskal"
	"github.com/katalvlaran/roadnet/store"
)

// ErrNoStore is returned by /load and /save when the server has no gateway.
var ErrNoStore = errors.New("httpapi: no store configured")

// Server exposes one Session. The Session serialises requests itself.
type Server struct {
	session *roadnet.Session
	gw      store.Gateway
	log     *slog.Logger
	echo    *echo.Echo
}

// New builds the router. gw may be nil, which disables /load and /save.
func New(session *roadnet.Session, gw store.Gateway, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{session: session, gw: gw, log: logger, echo: echo.New()}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.HTTPErrorHandler = s.handleError
	s.echo.Use(middleware.Recover())
	s.routes()

	return s
}

func (s *Server) routes() {
	api := s.echo.Group("/api/v1")

	api.GET("/network", s.getNetwork)
	api.GET("/stats", s.getStats)
	api.GET("/route", s.getRoute)
	api.GET("/history", s.getHistory)

	api.POST("/nodes", s.addNode)
	api.GET("/nodes/:id/neighbors", s.getNeighbors)
	api.GET("/nodes/:id/within", s.getWithin)
	api.GET("/nodes/:id/nearest", s.getNearest)
	api.PUT("/nodes/:id/position", s.moveNode)
	api.DELETE("/nodes/:id/edges", s.clearConnections)
	api.POST("/waypoints", s.addWaypoint)
	api.DELETE("/waypoints/:id", s.deleteWaypoint)

	api.POST("/edges", s.createEdge)
	api.DELETE("/edges/:a/:b", s.deleteEdge)
	api.POST("/roads", s.drawRoad)

	api.POST("/autoconnect/cities", s.connectCities)
	api.POST("/autoconnect/knn", s.connectKNearest)
	api.POST("/autoconnect/spanning-tree", s.spanningTree)
	api.POST("/autoconnect/smart", s.smartGenerate)

	api.POST("/undo", s.undo)
	api.POST("/redo", s.redo)
	api.DELETE("/history", s.clearHistory)

	api.POST("/load", s.load)
	api.POST("/save", s.save)
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on addr until Shutdown.
func (s *Server) Start(addr string) error {
	s.log.Info("http server listening", slog.String("addr", addr))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

type errorResponse struct {
	Error string `json:"error"`
}

// statusOf maps domain errors to HTTP status codes.
func statusOf(err error) int {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code
	case errors.Is(err, network.ErrNodeNotFound),
		errors.Is(err, network.ErrUnknownNode),
		errors.Is(err, network.ErrEdgeNotFound):
		return http.StatusNotFound
	case errors.Is(err, network.ErrDuplicateNode),
		errors.Is(err, network.ErrDuplicateEdge),
		errors.Is(err, history.ErrNothingToUndo),
		errors.Is(err, history.ErrNothingToRedo):
		return http.StatusConflict
	case errors.Is(err, dijkstra.ErrNoPath),
		errors.Is(err, bfs.ErrNotReached),
		errors.Is(err, store.ErrInvalidDocument):
		return http.StatusUnprocessableEntity
	case errors.Is(err, network.ErrSelfLoop),
		errors.Is(err, network.ErrEmptyNodeID),
		errors.Is(err, network.ErrInvalidKind),
		errors.Is(err, network.ErrInvalidPosition),
		errors.Is(err, bfs.ErrBadHops),
		errors.Is(err, roadnet.ErrNotWaypoint),
		errors.Is(err, roadnet.ErrEmptyRoad),
		errors.Is(err, autoconnect.ErrInvalidParam),
		errors.Is(err, autoconnect.ErrInvalidFilter),
		errors.Is(err, prim_kruskal.ErrUnknownMethod),
		errors.Is(err, dijkstra.ErrBadMaxDistance):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoStore):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := statusOf(err)
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}
	if code >= http.StatusInternalServerError {
		s.log.Error("request failed",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()))
	}
	if werr := c.JSON(code, errorResponse{Error: msg}); werr != nil {
		s.log.Warn("failed to write error response", slog.String("error", werr.Error()))
	}
}
