package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/roadnet"
	"github.com/katalvlaran/roadnet/config"
	"github.com/katalvlaran/roadnet/store"
	"github.com/katalvlaran/roadnet/store/jsonfile"
	"github.com/katalvlaran/roadnet/store/sqlite"
	"github.com/katalvlaran/roadnet/store/yamlfile"
)

// app is the state shared by every subcommand once the root has run.
type app struct {
	v   *viper.Viper
	cfg config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	var cfgFile string

	root := &cobra.Command{
		Use:           "roadnet",
		Short:         "Build and query road networks between cities",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.v, cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = newLogger(cmd.ErrOrStderr(), cfg.Log)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (YAML)")
	pf.String("store", config.DriverJSON, "storage driver: json, yaml or sqlite")
	pf.String("data", "data", "storage path (directory for json, file for yaml and sqlite)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	for key, flag := range map[string]string{
		"store.driver": "store",
		"store.path":   "data",
		"log.level":    "log-level",
	} {
		// the flags above exist, binding cannot fail
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		newGenerateCmd(a),
		newRouteCmd(a),
		newStatsCmd(a),
		newShellCmd(a),
		newServeCmd(a),
		newExportCmd(a),
	)

	return root
}

func newLogger(w io.Writer, c config.Log) *slog.Logger {
	lvl, err := c.SlogLevel()
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// openGateway returns the gateway for driver and path, plus a close func.
func openGateway(driver, path string) (store.Gateway, func() error, error) {
	nop := func() error { return nil }
	switch driver {
	case config.DriverJSON:
		return jsonfile.New(path), nop, nil
	case config.DriverYAML:
		return yamlfile.New(path), nop, nil
	case config.DriverSQLite:
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, err
			}
		}
		gw, err := sqlite.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return gw, gw.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: store driver %q", config.ErrInvalidConfig, driver)
	}
}

// session builds a Session and loads the configured store into it.
func (a *app) session(ctx context.Context, opts ...roadnet.Option) (*roadnet.Session, store.Gateway, func() error, error) {
	gw, closeFn, err := openGateway(a.cfg.Store.Driver, a.cfg.Store.Path)
	if err != nil {
		return nil, nil, nil, err
	}
	base := []roadnet.Option{roadnet.WithConfig(a.cfg), roadnet.WithLogger(a.log)}
	s, err := roadnet.New(append(base, opts...)...)
	if err != nil {
		closeFn()
		return nil, nil, nil, err
	}
	if _, err := s.Load(ctx, gw); err != nil {
		closeFn()
		return nil, nil, nil, err
	}
	// a freshly loaded network starts with a clean history
	s.ClearHistory()

	return s, gw, closeFn, nil
}
