// SPDX-License-Identifier: MIT

package roadnet

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/katalvlaran/roadnet/autoconnect"
	"github.com/katalvlaran/roadnet/config"
	"github.com/katalvlaran/roadnet/dataset"
	"github.com/katalvlaran/roadnet/history"
	"github.com/katalvlaran/roadnet/network"
)

var (
	// ErrNotWaypoint is returned when a waypoint-only operation targets a city.
	ErrNotWaypoint = errors.New("roadnet: node is not a waypoint")

	// ErrEmptyRoad is returned by DrawRoad when the stroke yields no segment.
	ErrEmptyRoad = errors.New("roadnet: road has no points")

	// ErrInvalidOption is returned by New for out-of-range options.
	ErrInvalidOption = errors.New("roadnet: invalid option")
)

// Result describes one completed operation. It is returned to the caller
// and published to the Notifier.
type Result struct {
	Kind    history.Kind `json:"kind"`
	Count   int          `json:"count"`
	Message string       `json:"message"`
}

// Notifier receives a Result for every successful mutation, undo and redo.
// It is called with the Session lock held and must not call back into it.
type Notifier interface {
	Notify(Result)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Result)

// Notify calls f(r).
func (f NotifierFunc) Notify(r Result) { f(r) }

// Options configures a Session.
type Options struct {
	// Cities is the fixed city set the network starts with.
	Cities []network.Node
	// HistorySize bounds the undo stack.
	HistorySize int
	// Params are the smart generation thresholds.
	Params autoconnect.Params
	// Spacing is the distance between waypoints created by DrawRoad.
	Spacing float64
	// Scale converts map units to kilometres in Route.
	Scale float64

	Logger   *slog.Logger
	Notifier Notifier
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the embedded city set and the default thresholds.
func DefaultOptions() Options {
	return Options{
		Cities:      dataset.Cities(),
		HistorySize: history.DefaultMaxSize,
		Params:      autoconnect.DefaultParams(),
		Spacing:     15,
		Scale:       7,
		Logger:      slog.Default(),
	}
}

// WithCities replaces the starting city set.
func WithCities(cities []network.Node) Option {
	return func(o *Options) { o.Cities = cities }
}

// WithHistorySize sets the undo depth.
func WithHistorySize(n int) Option {
	return func(o *Options) { o.HistorySize = n }
}

// WithParams sets the smart generation thresholds.
func WithParams(p autoconnect.Params) Option {
	return func(o *Options) { o.Params = p }
}

// WithSpacing sets the DrawRoad waypoint spacing.
func WithSpacing(d float64) Option {
	return func(o *Options) { o.Spacing = d }
}

// WithScale sets the route length scale factor.
func WithScale(f float64) Option {
	return func(o *Options) { o.Scale = f }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithNotifier sets the status notifier.
func WithNotifier(n Notifier) Option {
	return func(o *Options) { o.Notifier = n }
}

// WithConfig copies history depth, thresholds, spacing and scale from cfg.
func WithConfig(cfg config.Config) Option {
	return func(o *Options) {
		o.HistorySize = cfg.History.MaxSize
		o.Params = cfg.Autoconnect.Params()
		o.Spacing = cfg.Draw.Spacing
		o.Scale = cfg.Route.Scale
	}
}

// Session is the single owner of a road network and its history.
// All methods are safe for concurrent use.
type Session struct {
	mu   sync.Mutex
	net  *network.Network
	hist *history.Manager
	opts Options
	log  *slog.Logger

	// moving is the node of the open move gesture, "" when none.
	moving string
	// nextWaypoint and nextDrawn are the next candidate suffixes for
	// wp_<n> and drawn_wp_<n>.
	nextWaypoint int
	nextDrawn    int
}

// New builds a Session holding only the configured cities.
//
// Errors: ErrInvalidOption, or a network error for a malformed city set.
func New(opts ...Option) (*Session, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.HistorySize < 1 {
		return nil, fmt.Errorf("%w: history size %d", ErrInvalidOption, o.HistorySize)
	}
	if !(o.Spacing > 0) {
		return nil, fmt.Errorf("%w: spacing %g", ErrInvalidOption, o.Spacing)
	}
	if !(o.Scale > 0) {
		return nil, fmt.Errorf("%w: scale %g", ErrInvalidOption, o.Scale)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	net := network.New()
	for _, c := range o.Cities {
		if c.Kind != network.City {
			return nil, fmt.Errorf("%w: %q is a %s", ErrInvalidOption, c.ID, c.Kind)
		}
		if err := net.AddNode(c.ID, network.City, c.Pos); err != nil {
			return nil, err
		}
	}

	return &Session{
		net:          net,
		hist:         history.NewManager(o.HistorySize),
		opts:         o,
		log:          o.Logger,
		nextWaypoint: 1,
		nextDrawn:    1,
	}, nil
}

// record pushes cmd, logs it and publishes its Result. Callers hold mu.
func (s *Session) record(cmd history.Command, message string) Result {
	s.hist.Record(cmd)
	s.log.Debug("recorded command",
		slog.String("kind", string(cmd.Kind)),
		slog.String("id", cmd.ID.String()),
		slog.Int("count", cmd.Count))
	return s.publish(Result{Kind: cmd.Kind, Count: cmd.Count, Message: message})
}

func (s *Session) publish(r Result) Result {
	if s.opts.Notifier != nil {
		s.opts.Notifier.Notify(r)
	}
	return r
}

func (s *Session) fail(op string, err error) error {
	s.log.Warn("operation failed", slog.String("op", op), slog.String("error", err.Error()))
	return err
}

// endGesture closes an open move gesture. Every mutation except MoveNode
// calls it first.
func (s *Session) endGesture() { s.moving = "" }
