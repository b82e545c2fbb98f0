package poller

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/npratt/clawdash/internal/render"
)

// Printer writes a Board as plain, optionally coloured, text.
type Printer struct {
	out     io.Writer
	heading *color.Color
	label   *color.Color
	muted   *color.Color
}

// NewPrinter creates a Printer. Colour is disabled when noColor is set.
func NewPrinter(out io.Writer, noColor bool) *Printer {
	p := &Printer{
		out:     out,
		heading: color.New(color.FgMagenta, color.Bold),
		label:   color.New(color.FgCyan),
		muted:   color.New(color.FgHiBlack),
	}
	if noColor {
		p.heading.DisableColor()
		p.label.DisableColor()
		p.muted.DisableColor()
	}
	return p
}

// Print writes every section of the board. category names the files list
// currently shown.
func (p *Printer) Print(b *render.Board, category string) error {
	var sb strings.Builder

	p.section(&sb, "Status")
	p.field(&sb, "Thought", b.Text(render.CurrentThought))
	p.field(&sb, "Last action", b.Text(render.LastAction))
	p.field(&sb, "Updated", b.Text(render.LastUpdated))

	p.section(&sb, "Stats")
	p.field(&sb, "Tasks completed", b.Text(render.TasksCompleted))
	p.field(&sb, "Queue size", b.Text(render.QueueSize))
	p.field(&sb, "Research files", b.Text(render.ResearchFiles))
	p.field(&sb, "Tools built", b.Text(render.ToolsBuilt))

	p.section(&sb, "Recent activity")
	p.list(&sb, b.List(render.RecentActivity))

	p.section(&sb, fmt.Sprintf("Files [%s]", category))
	p.list(&sb, b.List(render.FilesList))

	p.section(&sb, "Briefing")
	briefing := b.Text(render.BriefingContent)
	if briefing != "" {
		sb.WriteString(briefing)
		sb.WriteString("\n")
	}

	_, err := io.WriteString(p.out, sb.String())
	return err
}

func (p *Printer) section(sb *strings.Builder, title string) {
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(p.heading.Sprint(title))
	sb.WriteString("\n")
}

func (p *Printer) field(sb *strings.Builder, name, value string) {
	if value == "" {
		value = p.muted.Sprint("-")
	}
	fmt.Fprintf(sb, "  %s %s\n", p.label.Sprint(name+":"), value)
}

func (p *Printer) list(sb *strings.Builder, items []string) {
	if len(items) == 0 {
		fmt.Fprintf(sb, "  %s\n", p.muted.Sprint("-"))
		return
	}
	for _, item := range items {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
}
