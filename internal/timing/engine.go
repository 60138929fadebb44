// Package timing provides the analysis engine bound into the shell session
// and the domain-command registrar the shell invokes during bootstrap.
//
// The shell core never depends on this package; it sees the engine only
// through the shell.Engine interface and the registrar callable.
package timing

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Clock is a defined clock domain.
type Clock struct {
	Name   string
	Period float64 // ns
}

// Port is a top-level design port.
type Port struct {
	Name string
	Dir  string // "in" or "out"
}

// Path is one timing path from a startpoint to a register or output
// endpoint.
type Path struct {
	Startpoint string
	Endpoint   string
	Clock      string
	Delay      float64 // ns, data arrival relative to clock edge
}

// Check is the result of evaluating one path against its clock period.
type Check struct {
	Path     Path
	Required float64
	Arrival  float64
	Slack    float64
}

// Violated reports whether the path misses its required time.
func (c Check) Violated() bool { return c.Slack < 0 }

// Design is the in-memory design model the engine analyzes.
type Design struct {
	Name      string
	Clocks    []Clock
	Ports     []Port
	Nets      []string
	Pins      []string
	Registers []string
	Paths     []Path
	Fanin     map[string][]string
	Fanout    map[string][]string
}

// Config configures a new engine.
type Config struct {
	Design *Design // nil selects the built-in demo design
}

// Engine is the analysis-engine singleton. The shell binds exactly one per
// process and forwards the -threads value once, before the interactive
// session exists.
type Engine struct {
	design      *Design
	threadCount int
	inputDelays map[string]float64
	closed      bool
}

// New creates an engine over the given design.
func New(cfg Config) *Engine {
	design := cfg.Design
	if design == nil {
		design = demoDesign()
	}
	return &Engine{
		design:      design,
		threadCount: 1,
		inputDelays: make(map[string]float64),
	}
}

// SetThreadCount sets the engine's internal parallelism. Values below 1
// clamp to 1.
func (e *Engine) SetThreadCount(n int) {
	if n < 1 {
		n = 1
	}
	e.threadCount = n
}

// ThreadCount returns the configured parallelism.
func (e *Engine) ThreadCount() int { return e.threadCount }

// Close releases the engine. The session calls it once at teardown.
func (e *Engine) Close() error {
	e.closed = true
	return nil
}

// CurrentDesign returns the name of the loaded design.
func (e *Engine) CurrentDesign() string { return e.design.Name }

// Clocks returns the defined clocks.
func (e *Engine) Clocks() []Clock { return e.design.Clocks }

// CreateClock defines a clock domain. Redefining an existing clock updates
// its period.
func (e *Engine) CreateClock(name string, period float64) error {
	if name == "" {
		return fmt.Errorf("clock name must not be empty")
	}
	if period <= 0 {
		return fmt.Errorf("clock %q: period must be positive, got %v", name, period)
	}
	for i, c := range e.design.Clocks {
		if c.Name == name {
			e.design.Clocks[i].Period = period
			return nil
		}
	}
	e.design.Clocks = append(e.design.Clocks, Clock{Name: name, Period: period})
	return nil
}

// Ports returns port names filtered by direction; an empty direction
// returns all ports.
func (e *Engine) Ports(dir string) []string {
	var names []string
	for _, p := range e.design.Ports {
		if dir == "" || p.Dir == dir {
			names = append(names, p.Name)
		}
	}
	return names
}

// Nets returns the design's net names.
func (e *Engine) Nets() []string { return e.design.Nets }

// Pins returns the design's pin names.
func (e *Engine) Pins() []string { return e.design.Pins }

// Registers returns the design's register names.
func (e *Engine) Registers() []string { return e.design.Registers }

// Fanin returns the pins driving the given pin.
func (e *Engine) Fanin(pin string) []string { return e.design.Fanin[pin] }

// Fanout returns the pins driven by the given pin.
func (e *Engine) Fanout(pin string) []string { return e.design.Fanout[pin] }

// SetInputDelay constrains an input port's external arrival time.
func (e *Engine) SetInputDelay(port string, delay float64) error {
	for _, p := range e.design.Ports {
		if p.Name == port {
			if p.Dir != "in" {
				return fmt.Errorf("port %q is not an input", port)
			}
			e.inputDelays[port] = delay
			return nil
		}
	}
	return fmt.Errorf("unknown port %q", port)
}

// CheckEndpoints evaluates every path against its clock, spreading the work
// across the configured thread count. The slice is returned sorted by
// ascending slack.
func (e *Engine) CheckEndpoints() []Check {
	periods := make(map[string]float64, len(e.design.Clocks))
	for _, c := range e.design.Clocks {
		periods[c.Name] = c.Period
	}

	checks := make([]Check, len(e.design.Paths))
	var g errgroup.Group
	g.SetLimit(e.threadCount)
	for i, p := range e.design.Paths {
		i, p := i, p
		g.Go(func() error {
			checks[i] = e.checkPath(p, periods[p.Clock])
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(checks, func(i, j int) bool { return checks[i].Slack < checks[j].Slack })
	return checks
}

// CheckPath evaluates the worst path ending at the given endpoint.
func (e *Engine) CheckPath(endpoint string) (Check, bool) {
	periods := make(map[string]float64, len(e.design.Clocks))
	for _, c := range e.design.Clocks {
		periods[c.Name] = c.Period
	}

	var worst Check
	found := false
	for _, p := range e.design.Paths {
		if p.Endpoint != endpoint {
			continue
		}
		c := e.checkPath(p, periods[p.Clock])
		if !found || c.Slack < worst.Slack {
			worst = c
			found = true
		}
	}
	return worst, found
}

func (e *Engine) checkPath(p Path, period float64) Check {
	arrival := p.Delay + e.inputDelays[p.Startpoint]
	return Check{
		Path:     p,
		Required: period,
		Arrival:  arrival,
		Slack:    period - arrival,
	}
}

// demoDesign is the built-in example design, a three-stage pipeline behind
// a small input cone.
func demoDesign() *Design {
	return &Design{
		Name: "pipeline3",
		Clocks: []Clock{
			{Name: "clk", Period: 10.0},
		},
		Ports: []Port{
			{Name: "din", Dir: "in"},
			{Name: "rst_n", Dir: "in"},
			{Name: "dout", Dir: "out"},
		},
		Nets:      []string{"din_n", "s1_n", "s2_n", "dout_n"},
		Pins:      []string{"u1/A", "u1/Y", "r1/D", "r1/Q", "r2/D", "r2/Q", "r3/D", "r3/Q"},
		Registers: []string{"r1", "r2", "r3"},
		Paths: []Path{
			{Startpoint: "din", Endpoint: "r1", Clock: "clk", Delay: 3.2},
			{Startpoint: "r1", Endpoint: "r2", Clock: "clk", Delay: 7.9},
			{Startpoint: "r2", Endpoint: "r3", Clock: "clk", Delay: 11.4},
			{Startpoint: "r3", Endpoint: "dout", Clock: "clk", Delay: 4.1},
		},
		Fanin: map[string][]string{
			"r1/D": {"u1/Y"},
			"u1/A": {"din"},
			"r2/D": {"r1/Q"},
			"r3/D": {"r2/Q"},
		},
		Fanout: map[string][]string{
			"din":  {"u1/A"},
			"u1/Y": {"r1/D"},
			"r1/Q": {"r2/D"},
			"r2/Q": {"r3/D"},
			"r3/Q": {"dout"},
		},
	}
}
