package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"airdispatch/internal/applog"
)

// Processor drains published events off the simulation's hot path and logs
// them. It is the one off-thread component the core talks to.
type Processor struct {
	Logger *slog.Logger
	// TraceFlight, when non-zero, raises per-flight log lines for that
	// flight id to Debug regardless of Logger's configured level, the
	// --trace-flight generalization of the teacher's -trace_bus_id flag.
	TraceFlight uint64
}

// loggerFor returns a logger whose level is forced open for flight when it
// matches TraceFlight, else p.Logger unchanged.
func (p *Processor) loggerFor(flight uint64) *slog.Logger {
	return applog.ForFlight(p.Logger, flight, p.TraceFlight)
}

// Run drains events until the channel closes or ctx is cancelled.
func (p *Processor) Run(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case e, ok := <-events:
			if !ok {
				return nil
			}
			p.log(e)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (p *Processor) log(e Event) {
	switch ev := e.(type) {
	case SimulationStarted:
		p.Logger.Info("simulation started", slog.Time("t", ev.Time), slog.String("run_id", ev.RunID.String()))
	case SimulationComplete:
		p.Logger.Info("simulation complete", slog.Time("t", ev.Time), slog.String("run_id", ev.RunID.String()))
	case FlightDeparted:
		p.loggerFor(uint64(ev.Flight)).Info("flight departed", slog.Time("t", ev.Time), slog.Uint64("flight", uint64(ev.Flight)))
	case FlightArrived:
		p.loggerFor(uint64(ev.Flight)).Info("flight arrived", slog.Time("t", ev.Time), slog.Uint64("flight", uint64(ev.Flight)))
	case FlightDepartureDelayed:
		p.loggerFor(uint64(ev.Flight)).Info("flight departure delayed",
			slog.Time("t", ev.Time), slog.Uint64("flight", uint64(ev.Flight)),
			slog.Duration("duration", ev.Duration), slog.String("reason", ev.Reason.Describe()))
	case FlightArrivalDelayed:
		p.loggerFor(uint64(ev.Flight)).Info("flight arrival delayed",
			slog.Time("t", ev.Time), slog.Uint64("flight", uint64(ev.Flight)),
			slog.Duration("duration", ev.Duration), slog.String("reason", ev.Reason.Describe()))
	case FlightCancelled:
		p.loggerFor(uint64(ev.Flight)).Warn("flight cancelled",
			slog.Time("t", ev.Time), slog.Uint64("flight", uint64(ev.Flight)), slog.String("reason", ev.Reason.Describe()))
	case AircraftTurnedAround:
		p.Logger.Debug("aircraft turned around",
			slog.Time("t", ev.Time), slog.String("tail", string(ev.Tail)), slog.Duration("dwell", ev.Dwell))
	case CrewAssignmentChanged:
		p.loggerFor(uint64(ev.Flight)).Debug("crew assignment changed", slog.Time("t", ev.Time), slog.Uint64("flight", uint64(ev.Flight)))
	case AircraftAssignmentChanged:
		p.loggerFor(uint64(ev.Flight)).Debug("aircraft assignment changed",
			slog.Time("t", ev.Time), slog.Uint64("flight", uint64(ev.Flight)), slog.String("tail", string(ev.NewTail)))
	case CrewSelection:
		p.loggerFor(uint64(ev.Flight)).Debug("crew selection", slog.Time("t", ev.Time), slog.Uint64("flight", uint64(ev.Flight)))
	case AircraftSelection:
		p.loggerFor(uint64(ev.Flight)).Debug("aircraft selection", slog.Time("t", ev.Time), slog.Uint64("flight", uint64(ev.Flight)))
	default:
		p.Logger.Warn("unhandled telemetry event", slog.String("type", fmt.Sprintf("%T", e)))
	}
}

// Supervise starts a Processor draining events under an errgroup, so that an
// unexpected processor failure surfaces through the returned wait function
// instead of being silently dropped. Cancel ctx (or Close the publisher) to
// stop the processor.
func Supervise(ctx context.Context, logger *slog.Logger, events <-chan Event) (wait func() error) {
	return SuperviseTraced(ctx, logger, 0, events)
}

// SuperviseTraced is Supervise with a --trace-flight flight id: telemetry for
// that flight logs at Debug regardless of logger's configured level.
func SuperviseTraced(ctx context.Context, logger *slog.Logger, traceFlight uint64, events <-chan Event) (wait func() error) {
	g, gctx := errgroup.WithContext(ctx)
	p := &Processor{Logger: logger, TraceFlight: traceFlight}
	g.Go(func() error { return p.Run(gctx, events) })
	return g.Wait
}
