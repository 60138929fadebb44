package shell

import "strings"

// Commands is the fixed, sorted, compiled-in list of domain command names
// offered for completion, supplementary to whatever the interpreter's own
// command table provides.
var Commands = []string{
	"all_clocks",
	"all_inputs",
	"all_outputs",
	"all_registers",
	"check_setup",
	"create_clock",
	"create_generated_clock",
	"create_voltage_area",
	"current_design",
	"current_instance",
	"define_corners",
	"get_clocks",
	"get_fanin",
	"get_fanout",
	"get_nets",
	"get_pins",
	"get_ports",
	"read_liberty",
	"read_parasitics",
	"read_sdc",
	"read_sdf",
	"read_spef",
	"read_verilog",
	"report_annotated_delay",
	"report_cell",
	"report_checks",
	"report_path",
	"report_slack",
	"set_input_delay",
	"write_sdc",
	"write_sdf",
}

// Cursor is the per-prefix scan state over the command list. The caller
// holds it across calls; there is no hidden per-process state.
type Cursor struct {
	pos       int
	prefixLen int
}

// NextCommand advances the cursor and returns the next command whose leading
// bytes exactly equal prefix. When first is set, the cursor resets to the
// list start and records the prefix's length. The second return is false
// once the list is exhausted. Matching is a literal byte-prefix comparison.
func NextCommand(cur *Cursor, prefix string, first bool) (string, bool) {
	if first {
		cur.pos = 0
		cur.prefixLen = len(prefix)
	}
	for cur.pos < len(Commands) {
		name := Commands[cur.pos]
		cur.pos++
		if len(name) >= cur.prefixLen && name[:cur.prefixLen] == prefix {
			return name, true
		}
	}
	return "", false
}

// commandCompleter adapts the cursor contract to readline's AutoComplete
// interface.
type commandCompleter struct{}

func newCompleter() commandCompleter { return commandCompleter{} }

// Do completes the word under the cursor against the command list. It
// returns the candidate suffixes and the matched prefix length, per the
// readline contract.
func (commandCompleter) Do(line []rune, pos int) ([][]rune, int) {
	prefix := string(line[:pos])
	if i := strings.LastIndexAny(prefix, " \t(,"); i >= 0 {
		prefix = prefix[i+1:]
	}

	var out [][]rune
	var cur Cursor
	first := true
	for {
		name, ok := NextCommand(&cur, prefix, first)
		first = false
		if !ok {
			break
		}
		out = append(out, []rune(name[len(prefix):]))
	}
	return out, len(prefix)
}
