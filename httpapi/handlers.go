package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/katalvlaran/roadnet"
	"github.com/katalvlaran/roadnet/autoconnect"
	"github.com/katalvlaran/roadnet/dijkstra"
	"github.com/katalvlaran/roadnet/geom"
	"github.com/katalvlaran/roadnet/history"
	"github.com/katalvlaran/roadnet/network"
)

type nodeDTO struct {
	ID   string  `json:"id"`
	Kind string  `json:"kind"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type networkDTO struct {
	Nodes []nodeDTO   `json:"nodes"`
	Edges [][2]string `json:"edges"`
}

type commandDTO struct {
	ID          string       `json:"id"`
	Kind        history.Kind `json:"kind"`
	Description string       `json:"description"`
	Count       int          `json:"count"`
	CreatedAt   string       `json:"created_at"`
}

type pointRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type addNodeRequest struct {
	ID   string  `json:"id"`
	Kind string  `json:"kind"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type moveRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	// Final closes the move gesture after this step.
	Final bool `json:"final"`
}

type edgeRequest struct {
	A string `json:"a"`
	B string `json:"b"`
}

type roadRequest struct {
	From   string         `json:"from"`
	Points []pointRequest `json:"points"`
	To     string         `json:"to"`
}

type distanceRequest struct {
	MaxDistance float64 `json:"max_distance"`
}

type knnRequest struct {
	Filter      string  `json:"filter"`
	K           int     `json:"k"`
	MaxDistance float64 `json:"max_distance"`
}

type treeRequest struct {
	Candidates []string `json:"candidates"`
	Cutoff     float64  `json:"cutoff"`
}

type waypointResponse struct {
	ID     string         `json:"id"`
	Result roadnet.Result `json:"result"`
}

type roadResponse struct {
	Waypoints []string       `json:"waypoints"`
	Result    roadnet.Result `json:"result"`
}

type hopsResponse struct {
	Path  []string `json:"path"`
	Roads int      `json:"roads"`
}

type smartResponse struct {
	Report autoconnect.Report `json:"report"`
	Result roadnet.Result     `json:"result"`
}

func toNetworkDTO(snap network.Snapshot) networkDTO {
	out := networkDTO{Nodes: make([]nodeDTO, len(snap.Nodes)), Edges: make([][2]string, len(snap.Edges))}
	for i, n := range snap.Nodes {
		out.Nodes[i] = nodeDTO{ID: n.ID, Kind: n.Kind.String(), X: n.Pos.X, Y: n.Pos.Y}
	}
	for i, e := range snap.Edges {
		out.Edges[i] = [2]string{e.A, e.B}
	}
	return out
}

func (s *Server) getNetwork(c echo.Context) error {
	return c.JSON(http.StatusOK, toNetworkDTO(s.session.Snapshot()))
}

func (s *Server) getStats(c echo.Context) error {
	st, err := s.session.Stats()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}

// getRoute answers GET /api/v1/route?from=A&to=B.
//
// Optional parameters:
//
//	max_distance  do not travel farther than this many map units
//	by=roads      fewest roads instead of shortest length
//	avoid=X,Y     with by=roads, never pass through X or Y
func (s *Server) getRoute(c echo.Context) error {
	from, to := c.QueryParam("from"), c.QueryParam("to")
	if from == "" || to == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "from and to are required")
	}

	switch c.QueryParam("by") {
	case "", "length":
	case "roads":
		var avoid []string
		if raw := c.QueryParam("avoid"); raw != "" {
			avoid = strings.Split(raw, ",")
		}
		path, err := s.session.FewestRoads(from, to, avoid...)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, hopsResponse{Path: path, Roads: len(path) - 1})
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "by must be length or roads")
	}

	var opts []dijkstra.Option
	if raw := c.QueryParam("max_distance"); raw != "" {
		d, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "max_distance must be a number")
		}
		opts = append(opts, dijkstra.WithMaxDistance(d))
	}
	r, err := s.session.Route(from, to, opts...)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// getWithin answers GET /api/v1/nodes/:id/within?hops=N.
func (s *Server) getWithin(c echo.Context) error {
	hops, err := intParam(c, "hops", 1)
	if err != nil {
		return err
	}
	out, err := s.session.Within(c.Param("id"), hops)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// getNearest answers GET /api/v1/nodes/:id/nearest?k=3&max_distance=150&filter=waypoint.
func (s *Server) getNearest(c echo.Context) error {
	f, err := autoconnect.ParseFilter(c.QueryParam("filter"))
	if err != nil {
		return err
	}
	p := autoconnect.DefaultParams()
	k, err := intParam(c, "k", p.K)
	if err != nil {
		return err
	}
	d := p.KNNRadius
	if raw := c.QueryParam("max_distance"); raw != "" {
		if d, err = strconv.ParseFloat(raw, 64); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "max_distance must be a number")
		}
	}
	ids, err := s.session.Nearest(c.Param("id"), f, k, d)
	if err != nil {
		return err
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(http.StatusOK, ids)
}

func intParam(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return v, nil
}

func (s *Server) getHistory(c echo.Context) error {
	entries := s.session.HistoryEntries()
	out := make([]commandDTO, len(entries))
	for i, cmd := range entries {
		out[i] = commandDTO{
			ID:          cmd.ID.String(),
			Kind:        cmd.Kind,
			Description: cmd.Description,
			Count:       cmd.Count,
			CreatedAt:   cmd.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getNeighbors(c echo.Context) error {
	nb, err := s.session.Neighbors(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nb)
}

func (s *Server) addNode(c echo.Context) error {
	var req addNodeRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	kind, err := network.ParseKind(req.Kind)
	if err != nil {
		return err
	}
	res, err := s.session.AddNode(req.ID, kind, geom.Pt(req.X, req.Y))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

func (s *Server) addWaypoint(c echo.Context) error {
	var req pointRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	id, res, err := s.session.AddWaypoint(geom.Pt(req.X, req.Y))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, waypointResponse{ID: id, Result: res})
}

func (s *Server) moveNode(c echo.Context) error {
	var req moveRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	res, err := s.session.MoveNode(c.Param("id"), geom.Pt(req.X, req.Y))
	if err != nil {
		return err
	}
	if req.Final {
		s.session.EndMove()
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) deleteWaypoint(c echo.Context) error {
	res, err := s.session.DeleteWaypoint(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) clearConnections(c echo.Context) error {
	res, err := s.session.ClearConnections(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) createEdge(c echo.Context) error {
	var req edgeRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	res, err := s.session.CreateEdge(req.A, req.B)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

func (s *Server) deleteEdge(c echo.Context) error {
	res, err := s.session.DeleteEdge(c.Param("a"), c.Param("b"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) drawRoad(c echo.Context) error {
	var req roadRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	pts := make([]geom.Point, len(req.Points))
	for i, p := range req.Points {
		pts[i] = geom.Pt(p.X, p.Y)
	}
	created, res, err := s.session.DrawRoad(req.From, pts, req.To)
	if err != nil {
		return err
	}
	if created == nil {
		created = []string{}
	}
	return c.JSON(http.StatusCreated, roadResponse{Waypoints: created, Result: res})
}

func (s *Server) connectCities(c echo.Context) error {
	var req distanceRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	res, err := s.session.ConnectCitiesToNearestWaypoint(req.MaxDistance)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) connectKNearest(c echo.Context) error {
	var req knnRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	f, err := autoconnect.ParseFilter(req.Filter)
	if err != nil {
		return err
	}
	res, err := s.session.ConnectKNearest(f, req.K, req.MaxDistance)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) spanningTree(c echo.Context) error {
	var req treeRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	res, err := s.session.BuildSpanningTree(req.Candidates, req.Cutoff)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// smartGenerate reports partial progress with the error when a step fails.
func (s *Server) smartGenerate(c echo.Context) error {
	report, res, err := s.session.SmartGenerate()
	if err != nil && res.Count == 0 {
		return err
	}
	if err != nil {
		s.log.Warn("smart generation partially failed", slog.String("error", err.Error()))
		return c.JSON(http.StatusMultiStatus, struct {
			smartResponse
			Error string `json:"error"`
		}{smartResponse{Report: report, Result: res}, err.Error()})
	}
	return c.JSON(http.StatusOK, smartResponse{Report: report, Result: res})
}

func (s *Server) undo(c echo.Context) error {
	res, err := s.session.Undo()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) redo(c echo.Context) error {
	res, err := s.session.Redo()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) clearHistory(c echo.Context) error {
	s.session.ClearHistory()
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) load(c echo.Context) error {
	if s.gw == nil {
		return ErrNoStore
	}
	res, err := s.session.Load(c.Request().Context(), s.gw)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) save(c echo.Context) error {
	if s.gw == nil {
		return ErrNoStore
	}
	if err := s.session.Save(c.Request().Context(), s.gw); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
