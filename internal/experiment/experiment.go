package experiment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/qwave/internal/config"
	"github.com/san-kum/qwave/internal/metrics"
	"github.com/san-kum/qwave/internal/quantum"
	"github.com/san-kum/qwave/internal/sim"
)

// Frame is reported after every block of steps_per_frame steps.
type Frame struct {
	Index  int
	Steps  int
	Energy float64
	Norm   float64
}

type Result struct {
	Frames   []Frame
	Metrics  map[string]float64
	Energies []float64
}

// Experiment builds an engine from a settings file and drives it frame
// by frame.
type Experiment struct {
	cfg      *config.Config
	registry *Registry
	logger   *zap.Logger
	engine   *sim.Engine
	metrics  []metrics.Metric
	onFrame  func(Frame, *sim.Engine)
}

// New validates cfg and builds the engine. A nil logger discards output.
func New(cfg *config.Config, registry *Registry, logger *zap.Logger) (*Experiment, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if registry == nil {
		registry = NewRegistry()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	engine, err := Build(cfg, registry)
	if err != nil {
		return nil, err
	}

	logger.Debug("engine ready",
		zap.Int("N", cfg.N),
		zap.Float64("L", cfg.L),
		zap.Float64("dt", cfg.Dt),
		zap.Float64("m", cfg.Mass),
		zap.String("method", engine.Method().String()),
		zap.String("potential", cfg.Potential.Kind),
		zap.String("wavefunction", cfg.Wavefunction.Kind),
	)

	return &Experiment{
		cfg:      cfg,
		registry: registry,
		logger:   logger,
		engine:   engine,
	}, nil
}

// Build samples the configured generators on the grid and returns a new
// engine. The initial wavefunction is normalized by the engine.
func Build(cfg *config.Config, registry *Registry) (*sim.Engine, error) {
	method, err := registry.GetMethod(cfg.Method)
	if err != nil {
		return nil, err
	}
	engine, err := sim.New(sim.Config{
		N:      cfg.N,
		L:      cfg.L,
		Hbar:   cfg.Hbar,
		Mass:   cfg.Mass,
		Dt:     cfg.Dt,
		InfAt:  cfg.InfAt,
		Method: method.String(),
	})
	if err != nil {
		return nil, err
	}
	if err := Apply(engine, cfg, registry); err != nil {
		return nil, err
	}
	return engine, nil
}

// Apply resamples the configured potential and wavefunction onto an
// existing engine. The live view uses it for reset. Both arrays are sampled
// and checked before either is committed, so a failure leaves the engine
// as it was.
func Apply(engine *sim.Engine, cfg *config.Config, registry *Registry) error {
	x := engine.Positions()

	pot, err := registry.GetPotential(cfg.Potential.Kind, cfg.Potential.Params)
	if err != nil {
		return err
	}
	wf, err := registry.GetWavefunction(cfg.Wavefunction.Kind, cfg.Wavefunction.Params)
	if err != nil {
		return err
	}

	v := pot(x)
	if err := quantum.CheckLength("potential", len(v), len(x)); err != nil {
		return err
	}
	psi := quantum.Wavefunction(wf(x))
	if err := quantum.CheckLength("wavefunction", len(psi), len(x)); err != nil {
		return err
	}
	if !psi.IsValid() {
		return fmt.Errorf("initial wavefunction %s: %w", cfg.Wavefunction.Kind, quantum.ErrDegenerateState)
	}
	if err := quantum.Normalize(psi, engine.Grid().Dx()); err != nil {
		return fmt.Errorf("initial wavefunction %s: %w", cfg.Wavefunction.Kind, err)
	}

	if err := engine.SetPotential(v); err != nil {
		return err
	}
	return engine.SetWavefunction(psi, false)
}

func (e *Experiment) Engine() *sim.Engine { return e.engine }

// Setup attaches metrics (nil means metrics.Defaults) and an optional
// per-frame callback.
func (e *Experiment) Setup(ms []metrics.Metric, onFrame func(Frame, *sim.Engine)) {
	if ms == nil {
		ms = metrics.Defaults()
	}
	e.metrics = ms
	for _, m := range ms {
		e.engine.AddObserver(m)
	}
	e.onFrame = onFrame
}

// Run advances cfg.Frames frames of cfg.StepsPerFrame steps each. It stops
// early when ctx is done or a step fails; the result covers the frames
// completed so far.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	res := &Result{Metrics: make(map[string]float64)}
	defer func() {
		for _, m := range e.metrics {
			res.Metrics[m.Name()] = m.Value()
		}
	}()

	for i := 0; i < e.cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		if err := e.engine.Advance(e.cfg.StepsPerFrame); err != nil {
			e.logger.Warn("step failed", zap.Int("frame", i), zap.Error(err))
			return res, err
		}

		frame := Frame{
			Index:  i,
			Steps:  e.engine.Steps(),
			Energy: e.engine.Energy(),
			Norm:   e.engine.Norm(),
		}
		res.Frames = append(res.Frames, frame)
		res.Energies = append(res.Energies, frame.Energy)

		e.logger.Debug("frame",
			zap.Int("frame", frame.Index),
			zap.Int("steps", frame.Steps),
			zap.Float64("energy", frame.Energy),
			zap.Float64("norm", frame.Norm),
		)
		if e.onFrame != nil {
			e.onFrame(frame, e.engine)
		}
	}

	return res, nil
}
