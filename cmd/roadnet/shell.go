package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/roadnet"
	"github.com/katalvlaran/roadnet/autoconnect"
	"github.com/katalvlaran/roadnet/dijkstra"
	"github.com/katalvlaran/roadnet/geom"
	"github.com/katalvlaran/roadnet/network"
	"github.com/katalvlaran/roadnet/store"
)

const shellHelp = `commands:
  add X Y                  add a waypoint
  city ID X Y              add a city
  connect A B              create a road
  disconnect A B           delete a road
  move ID X Y              move a node
  delete ID                delete a waypoint and its roads
  clear ID                 remove every road of a node
  draw FROM X1 Y1 ... [TO] draw a road through points
  nearest [DIST]           connect cities to their nearest waypoint
  knn FILTER K DIST        connect k nearest neighbours
  tree [CUTOFF]            spanning tree over waypoints
  smart                    smart generation
  route A B [MAXDIST]      shortest route with per-road distances
  hops A B [AVOID...]      route using the fewest roads
  within ID [HOPS]         nodes at most HOPS roads away
  closest ID [K] [DIST]    nearest nodes, linked or not
  reach ID                 every node connected to ID
  neighbors ID             list neighbours
  stats                    network summary
  history                  list undoable commands
  undo | redo
  save | load
  quit`

// runShell reads one command per line from in until EOF or quit.
func runShell(ctx context.Context, s *roadnet.Session, gw store.Gateway, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) > 0 {
			if fields[0] == "quit" || fields[0] == "exit" {
				return nil
			}
			if err := execLine(ctx, s, gw, fields, out); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		}
		fmt.Fprint(out, "> ")
	}
	return sc.Err()
}

func execLine(ctx context.Context, s *roadnet.Session, gw store.Gateway, f []string, out io.Writer) error {
	printResult := func(r roadnet.Result, err error) error {
		if err != nil {
			return err
		}
		fmt.Fprintln(out, r.Message)
		return nil
	}
	args := f[1:]

	switch f[0] {
	case "help":
		fmt.Fprintln(out, shellHelp)
		return nil
	case "add":
		p, err := point(args, 0)
		if err != nil {
			return err
		}
		_, r, err := s.AddWaypoint(p)
		return printResult(r, err)
	case "city":
		if len(args) != 3 {
			return errUsage("city ID X Y")
		}
		p, err := point(args, 1)
		if err != nil {
			return err
		}
		return printResult(s.AddNode(args[0], network.City, p))
	case "connect":
		if len(args) != 2 {
			return errUsage("connect A B")
		}
		return printResult(s.CreateEdge(args[0], args[1]))
	case "disconnect":
		if len(args) != 2 {
			return errUsage("disconnect A B")
		}
		return printResult(s.DeleteEdge(args[0], args[1]))
	case "move":
		if len(args) != 3 {
			return errUsage("move ID X Y")
		}
		p, err := point(args, 1)
		if err != nil {
			return err
		}
		r, err := s.MoveNode(args[0], p)
		s.EndMove()
		return printResult(r, err)
	case "delete":
		if len(args) != 1 {
			return errUsage("delete ID")
		}
		return printResult(s.DeleteWaypoint(args[0]))
	case "clear":
		if len(args) != 1 {
			return errUsage("clear ID")
		}
		return printResult(s.ClearConnections(args[0]))
	case "draw":
		return draw(s, args, out)
	case "nearest":
		d, err := floatArg(args, 0, 100)
		if err != nil {
			return err
		}
		return printResult(s.ConnectCitiesToNearestWaypoint(d))
	case "knn":
		if len(args) != 3 {
			return errUsage("knn FILTER K DIST")
		}
		flt, err := autoconnect.ParseFilter(args[0])
		if err != nil {
			return err
		}
		k, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		d, err := floatArg(args, 2, 0)
		if err != nil {
			return err
		}
		return printResult(s.ConnectKNearest(flt, k, d))
	case "tree":
		c, err := floatArg(args, 0, 200)
		if err != nil {
			return err
		}
		return printResult(s.BuildSpanningTree(nil, c))
	case "smart":
		rep, r, err := s.SmartGenerate()
		fmt.Fprintf(out, "%+v\n", rep)
		return printResult(r, err)
	case "route":
		if len(args) < 2 || len(args) > 3 {
			return errUsage("route A B [MAXDIST]")
		}
		var opts []dijkstra.Option
		if len(args) == 3 {
			d, err := floatArg(args, 2, 0)
			if err != nil {
				return err
			}
			opts = append(opts, dijkstra.WithMaxDistance(d))
		}
		r, err := s.Route(args[0], args[1], opts...)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s (%.1f km)\n", strings.Join(r.Path, " → "), r.Scaled)
		printSegments(out, r.Segments)
		fmt.Fprintf(out, "waypoints: %d, cities: %d\n", r.Waypoints, len(r.Cities))
		return nil
	case "hops":
		if len(args) < 2 {
			return errUsage("hops A B [AVOID...]")
		}
		path, err := s.FewestRoads(args[0], args[1], args[2:]...)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s (%d roads)\n", strings.Join(path, " → "), len(path)-1)
		return nil
	case "within":
		if len(args) < 1 {
			return errUsage("within ID [HOPS]")
		}
		hops := 1
		if len(args) > 1 {
			var err error
			if hops, err = strconv.Atoi(args[1]); err != nil {
				return err
			}
		}
		near, err := s.Within(args[0], hops)
		if err != nil {
			return err
		}
		for _, h := range near {
			fmt.Fprintf(out, "%d %s\n", h.Hops, h.ID)
		}
		return nil
	case "closest":
		if len(args) < 1 {
			return errUsage("closest ID [K] [DIST]")
		}
		p := autoconnect.DefaultParams()
		k := p.K
		if len(args) > 1 {
			var err error
			if k, err = strconv.Atoi(args[1]); err != nil {
				return err
			}
		}
		d, err := floatArg(args, 2, p.KNNRadius)
		if err != nil {
			return err
		}
		ids, err := s.Nearest(args[0], autoconnect.Any, k, d)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, strings.Join(ids, " "))
		return nil
	case "reach":
		if len(args) != 1 {
			return errUsage("reach ID")
		}
		ids, err := s.Reachable(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d nodes: %s\n", len(ids), strings.Join(ids, " "))
		return nil
	case "neighbors":
		if len(args) != 1 {
			return errUsage("neighbors ID")
		}
		nb, err := s.Neighbors(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, strings.Join(nb, " "))
		return nil
	case "stats":
		st, err := s.Stats()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "cities=%d waypoints=%d roads=%d components=%d history=%d/%d\n",
			st.Cities, st.Waypoints, st.Edges, st.Components, st.UndoDepth, st.HistoryLimit)
		return nil
	case "history":
		for _, cmd := range s.HistoryEntries() {
			fmt.Fprintln(out, cmd)
		}
		return nil
	case "undo":
		return printResult(s.Undo())
	case "redo":
		return printResult(s.Redo())
	case "save":
		if err := s.Save(ctx, gw); err != nil {
			return err
		}
		fmt.Fprintln(out, "saved")
		return nil
	case "load":
		return printResult(s.Load(ctx, gw))
	default:
		return fmt.Errorf("unknown command %q (try help)", f[0])
	}
}

// draw handles "draw FROM X1 Y1 ... [TO]".
func draw(s *roadnet.Session, args []string, out io.Writer) error {
	if len(args) < 1 {
		return errUsage("draw FROM X1 Y1 ... [TO]")
	}
	from, rest, to := args[0], args[1:], ""
	if len(rest)%2 == 1 {
		to, rest = rest[len(rest)-1], rest[:len(rest)-1]
	}
	pts := make([]geom.Point, 0, len(rest)/2)
	for i := 0; i < len(rest); i += 2 {
		p, err := point(rest, i)
		if err != nil {
			return err
		}
		pts = append(pts, p)
	}
	created, r, err := s.DrawRoad(from, pts, to)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %s\n", r.Message, strings.Join(created, " "))
	return nil
}

func point(args []string, i int) (geom.Point, error) {
	if len(args) < i+2 {
		return geom.Point{}, errUsage("X Y")
	}
	x, err := strconv.ParseFloat(args[i], 64)
	if err != nil {
		return geom.Point{}, err
	}
	y, err := strconv.ParseFloat(args[i+1], 64)
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Pt(x, y), nil
}

func floatArg(args []string, i int, def float64) (float64, error) {
	if len(args) <= i {
		return def, nil
	}
	return strconv.ParseFloat(args[i], 64)
}

func errUsage(u string) error { return fmt.Errorf("usage: %s", u) }
