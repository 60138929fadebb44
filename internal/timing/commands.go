package timing

import (
	"io"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/veridian-eda/tash/internal/shell"
)

// Registrar returns the domain-command registrar handed to the shell at
// process start. The shell invokes it exactly once, during bootstrap,
// before the embedded bundle runs.
func Registrar(eng *Engine) shell.Registrar {
	return func(s *shell.Session) error {
		return s.Register("sta", Module(eng, s.Out()))
	}
}

// Module builds the sta namespace module. The bundle's export step later
// publishes its members into the global namespace.
func Module(eng *Engine, out io.Writer) *starlarkstruct.Module {
	return &starlarkstruct.Module{
		Name: "sta",
		Members: starlark.StringDict{
			"current_design": noArg("current_design", func() (starlark.Value, error) {
				return starlark.String(eng.CurrentDesign()), nil
			}),
			"get_clocks": noArg("get_clocks", func() (starlark.Value, error) {
				names := make([]string, 0, len(eng.Clocks()))
				for _, c := range eng.Clocks() {
					names = append(names, c.Name)
				}
				return stringList(names), nil
			}),
			"all_clocks": noArg("all_clocks", func() (starlark.Value, error) {
				names := make([]string, 0, len(eng.Clocks()))
				for _, c := range eng.Clocks() {
					names = append(names, c.Name)
				}
				return stringList(names), nil
			}),
			"get_ports": starlark.NewBuiltin("get_ports", func(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var dir string
				if err := starlark.UnpackArgs("get_ports", args, kwargs, "direction?", &dir); err != nil {
					return nil, err
				}
				return stringList(eng.Ports(dir)), nil
			}),
			"all_inputs": noArg("all_inputs", func() (starlark.Value, error) {
				return stringList(eng.Ports("in")), nil
			}),
			"all_outputs": noArg("all_outputs", func() (starlark.Value, error) {
				return stringList(eng.Ports("out")), nil
			}),
			"all_registers": noArg("all_registers", func() (starlark.Value, error) {
				return stringList(eng.Registers()), nil
			}),
			"get_nets": noArg("get_nets", func() (starlark.Value, error) {
				return stringList(eng.Nets()), nil
			}),
			"get_pins": noArg("get_pins", func() (starlark.Value, error) {
				return stringList(eng.Pins()), nil
			}),
			"get_fanin": pinArg("get_fanin", func(pin string) (starlark.Value, error) {
				return stringList(eng.Fanin(pin)), nil
			}),
			"get_fanout": pinArg("get_fanout", func(pin string) (starlark.Value, error) {
				return stringList(eng.Fanout(pin)), nil
			}),
			"create_clock": starlark.NewBuiltin("create_clock", func(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var name string
				var period float64
				if err := starlark.UnpackArgs("create_clock", args, kwargs, "name", &name, "period", &period); err != nil {
					return nil, err
				}
				if err := eng.CreateClock(name, period); err != nil {
					return nil, err
				}
				return starlark.None, nil
			}),
			"set_input_delay": starlark.NewBuiltin("set_input_delay", func(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var port string
				var delay float64
				if err := starlark.UnpackArgs("set_input_delay", args, kwargs, "port", &port, "delay", &delay); err != nil {
					return nil, err
				}
				if err := eng.SetInputDelay(port, delay); err != nil {
					return nil, err
				}
				return starlark.None, nil
			}),
			"report_checks": noArg("report_checks", func() (starlark.Value, error) {
				eng.ReportChecks(out)
				return starlark.None, nil
			}),
			"report_slack": noArg("report_slack", func() (starlark.Value, error) {
				eng.ReportSlack(out)
				return starlark.None, nil
			}),
			"report_path": starlark.NewBuiltin("report_path", func(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var endpoint string
				if err := starlark.UnpackArgs("report_path", args, kwargs, "endpoint", &endpoint); err != nil {
					return nil, err
				}
				if err := eng.ReportPath(out, endpoint); err != nil {
					return nil, err
				}
				return starlark.None, nil
			}),
		},
	}
}

// noArg wraps a zero-argument command.
func noArg(name string, fn func() (starlark.Value, error)) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackArgs(name, args, kwargs); err != nil {
			return nil, err
		}
		return fn()
	})
}

// pinArg wraps a command taking a single pin name.
func pinArg(name string, fn func(pin string) (starlark.Value, error)) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var pin string
		if err := starlark.UnpackArgs(name, args, kwargs, "pin", &pin); err != nil {
			return nil, err
		}
		return fn(pin)
	})
}

func stringList(names []string) *starlark.List {
	elems := make([]starlark.Value, len(names))
	for i, n := range names {
		elems[i] = starlark.String(n)
	}
	return starlark.NewList(elems)
}
