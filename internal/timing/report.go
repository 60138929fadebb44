package timing

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
)

var (
	metStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	violatedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// statusText renders MET/VIOLATED, colored when writing to a terminal.
func statusText(w io.Writer, c Check) string {
	status := "MET"
	style := metStyle
	if c.Violated() {
		status = "VIOLATED"
		style = violatedStyle
	}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return style.Render(status)
	}
	return status
}

// ReportChecks writes a table of every path check, worst slack first.
func (e *Engine) ReportChecks(w io.Writer) {
	checks := e.CheckEndpoints()
	if len(checks) == 0 {
		_, _ = fmt.Fprintln(w, "(no paths)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Startpoint", "Endpoint", "Clock", "Required", "Arrival", "Slack", "Status"})
	for _, c := range checks {
		t.AppendRow(table.Row{
			c.Path.Startpoint,
			c.Path.Endpoint,
			c.Path.Clock,
			fmt.Sprintf("%.2f", c.Required),
			fmt.Sprintf("%.2f", c.Arrival),
			fmt.Sprintf("%.2f", c.Slack),
			statusText(w, c),
		})
	}
	t.Render()
}

// ReportSlack writes one line per endpoint with its worst slack.
func (e *Engine) ReportSlack(w io.Writer) {
	for _, c := range e.CheckEndpoints() {
		_, _ = fmt.Fprintf(w, "%-12s slack %7.2f  (%s)\n", c.Path.Endpoint, c.Slack, statusText(w, c))
	}
}

// ReportPath writes the detail of the worst path ending at endpoint.
func (e *Engine) ReportPath(w io.Writer, endpoint string) error {
	c, ok := e.CheckPath(endpoint)
	if !ok {
		return fmt.Errorf("no path ends at %q", endpoint)
	}
	_, _ = fmt.Fprintf(w, "Startpoint: %s\n", c.Path.Startpoint)
	_, _ = fmt.Fprintf(w, "Endpoint:   %s\n", c.Path.Endpoint)
	_, _ = fmt.Fprintf(w, "Clock:      %s (period %.2f)\n", c.Path.Clock, c.Required)
	_, _ = fmt.Fprintf(w, "Arrival:    %.2f\n", c.Arrival)
	_, _ = fmt.Fprintf(w, "Slack:      %.2f (%s)\n", c.Slack, statusText(w, c))
	return nil
}
