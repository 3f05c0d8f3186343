package calculator

import (
	"context"
	"log/slog"
	"sync"

	"github.com/zephyrtronium/calculator/arith"
)

// History receives the results of successful calculations made by a Manager.
type History interface {
	Record(ctx context.Context, r *Result) error
}

// Outcome is the result of a calculation submitted to a Manager.
type Outcome struct {
	Result *Result
	Err    error
}

// Manager runs calculations one at a time on a dedicated goroutine and keeps
// the parameters for the next calculation, binding Ans to each answer. The
// methods of a Manager are safe to call concurrently.
type Manager struct {
	log  *slog.Logger
	hist History

	mu     sync.Mutex
	params *Params
	busy   bool
	closed bool

	jobs chan job
	done chan struct{}
	once sync.Once
}

type job struct {
	ctx    context.Context
	e      Expression
	params *Params
	out    chan<- Outcome
}

// NewManager creates a Manager and starts its worker. p is the initial
// parameters and may be nil. If log is nil, nothing is logged. If h is
// non-nil, every successful result is recorded to it.
func NewManager(p *Params, log *slog.Logger, h History) *Manager {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if p == nil {
		p, _ = NewParams()
	}
	m := &Manager{
		log:    log,
		hist:   h,
		params: p,
		jobs:   make(chan job, 1),
		done:   make(chan struct{}),
	}
	go m.work()
	return m
}

// Submit starts calculating e with the current parameters. The outcome is
// delivered on the returned channel, which is closed afterward. If a
// calculation is already in progress or m is closed, Submit returns false and
// does nothing.
func (m *Manager) Submit(ctx context.Context, e Expression) (<-chan Outcome, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.busy {
		return nil, false
	}
	m.busy = true
	out := make(chan Outcome, 1)
	m.jobs <- job{ctx: ctx, e: e, params: m.params, out: out}
	return out, true
}

// Calculate submits e and waits for its outcome. If a calculation is already
// in progress, it returns false.
func (m *Manager) Calculate(ctx context.Context, e Expression) (Outcome, bool) {
	out, ok := m.Submit(ctx, e)
	if !ok {
		return Outcome{}, false
	}
	return <-out, true
}

// Busy returns whether a calculation is in progress.
func (m *Manager) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

func (m *Manager) work() {
	defer close(m.done)
	for j := range m.jobs {
		r, err := CalculateContext(j.ctx, j.e, j.params)
		if err != nil {
			m.log.InfoContext(j.ctx, "calculation failed",
				slog.String("input", j.e.String()),
				slog.String("kind", KindOf(err).String()),
				slog.Any("err", err),
			)
		} else {
			m.mu.Lock()
			// Answers are always in range, so binding cannot fail.
			if p, err := m.params.WithAnswer(r.Answer); err == nil {
				m.params = p
			}
			m.mu.Unlock()
			m.log.DebugContext(j.ctx, "calculated",
				slog.String("input", j.e.String()),
				slog.String("answer", r.Answer.String()),
				slog.String("angle", r.Params.AngleUnit().String()),
			)
			if m.hist != nil {
				if err := m.hist.Record(j.ctx, r); err != nil {
					m.log.WarnContext(j.ctx, "recording history", slog.Any("err", err))
				}
			}
		}
		m.mu.Lock()
		m.busy = false
		m.mu.Unlock()
		j.out <- Outcome{Result: r, Err: err}
		close(j.out)
	}
}

// Params returns the parameters for the next calculation.
func (m *Manager) Params() *Params {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.params
}

// SetParams replaces the parameters for subsequent calculations.
func (m *Manager) SetParams(p *Params) {
	if p == nil {
		p, _ = NewParams()
	}
	m.mu.Lock()
	m.params = p
	m.mu.Unlock()
}

// SetAngleUnit changes the angle unit for subsequent calculations.
func (m *Manager) SetAngleUnit(u arith.AngleUnit) {
	m.update(Angle(u))
}

// SetAnswer binds Ans for subsequent calculations.
func (m *Manager) SetAnswer(v arith.Complex) error {
	return m.update(SetVar(Ans, v))
}

// SetVariables binds variables for subsequent calculations. If any binding
// is invalid, none are applied.
func (m *Manager) SetVariables(vars map[Unit]arith.Complex) error {
	return m.update(SetVars(vars))
}

func (m *Manager) update(opts ...ParamsOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.params.With(opts...)
	if err != nil {
		return err
	}
	m.params = p
	return nil
}

// Close stops the worker after any calculation in progress finishes.
func (m *Manager) Close() {
	m.once.Do(func() {
		m.mu.Lock()
		m.closed = true
		close(m.jobs)
		m.mu.Unlock()
		<-m.done
	})
}
