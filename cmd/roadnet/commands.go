package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/roadnet/dijkstra"
	"github.com/katalvlaran/roadnet/httpapi"
	"github.com/katalvlaran/roadnet/store"
)

func newGenerateCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run smart road generation on the stored network and save it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, gw, closeFn, err := a.session(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			report, res, genErr := s.SmartGenerate()
			fmt.Fprintf(cmd.OutOrStdout(),
				"nearest waypoint: %d\nk-nearest: %d\nspanning tree: %d\ncity links: %d\ntotal: %d\n",
				report.NearestWaypoint, report.KNearest, report.SpanningTree, report.CityLinks, res.Count)
			if res.Count > 0 && !dryRun {
				if err := s.Save(ctx, gw); err != nil {
					return err
				}
			}
			return genErr
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print what would be added without saving")

	return cmd
}

func newRouteCmd(a *app) *cobra.Command {
	var maxDistance float64
	cmd := &cobra.Command{
		Use:   "route FROM TO",
		Short: "Print the shortest road route between two nodes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, closeFn, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			var opts []dijkstra.Option
			if cmd.Flags().Changed("max-distance") {
				opts = append(opts, dijkstra.WithMaxDistance(maxDistance))
			}
			r, err := s.Route(args[0], args[1], opts...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "route: %s\n", strings.Join(r.Cities, " → "))
			fmt.Fprintf(out, "hops: %d\n", len(r.Path)-1)
			fmt.Fprintf(out, "waypoints: %d\n", r.Waypoints)
			fmt.Fprintf(out, "distance: %.1f km\n", r.Scaled)
			printSegments(out, r.Segments)
			return nil
		},
	}
	cmd.Flags().Float64Var(&maxDistance, "max-distance", 0, "give up beyond this many map units")
	return cmd
}

func printSegments(out io.Writer, segs []dijkstra.Segment) {
	for _, seg := range segs {
		fmt.Fprintf(out, "  %s → %s: %.1f km\n", seg.From, seg.To, seg.Scaled)
	}
}

func newStatsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarise the stored network",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, _, closeFn, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			st, err := s.Stats()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(st)
			}
			fmt.Fprintf(out, "cities: %d\nwaypoints: %d\nroads: %d\ncomponents: %d\nlength: %.1f\n",
				st.Cities, st.Waypoints, st.Edges, st.Components, st.TotalLength)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Edit the network interactively (type help)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, gw, closeFn, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			return runShell(cmd.Context(), s, gw, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the network over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, gw, closeFn, err := a.session(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			if addr == "" {
				addr = a.cfg.HTTP.Addr
			}
			srv := httpapi.New(s, gw, a.log)
			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start(addr) }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			a.log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config http.addr)")

	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var driver, path string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy the stored network into another store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			src, closeSrc, err := openGateway(a.cfg.Store.Driver, a.cfg.Store.Path)
			if err != nil {
				return err
			}
			defer closeSrc()
			doc, err := src.Load(ctx)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("nothing saved in %s", a.cfg.Store.Path)
			}
			if err != nil {
				return err
			}

			dst, closeDst, err := openGateway(driver, path)
			if err != nil {
				return err
			}
			defer closeDst()
			if err := dst.Save(ctx, doc); err != nil {
				return err
			}
			a.log.Info("exported",
				slog.String("driver", driver),
				slog.String("path", path),
				slog.Int("nodes", len(doc.Nodes)),
				slog.Int("roads", len(doc.Edges)))
			return nil
		},
	}
	cmd.Flags().StringVar(&driver, "to", "yaml", "target driver: json, yaml or sqlite")
	cmd.Flags().StringVar(&path, "out", "", "target path")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
