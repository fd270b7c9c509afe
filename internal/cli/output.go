package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/roeyazroel/linear-board/internal/issues"
)

// UI writes colored command output.
type UI struct {
	Out    io.Writer
	ErrOut io.Writer
}

// NewUI returns a UI on stdout and stderr.
func NewUI() *UI {
	return &UI{Out: os.Stdout, ErrOut: os.Stderr}
}

var (
	infoPrefix    = color.New(color.FgHiBlue).Sprint("i")
	successPrefix = color.New(color.FgHiGreen).Sprint("✓")
	warningPrefix = color.New(color.FgHiYellow).Sprint("⚠")
	errorPrefix   = color.New(color.FgHiRed).Sprint("✗")
	cyan          = color.New(color.FgHiCyan).SprintFunc()
	faint         = color.New(color.Faint).SprintFunc()
)

func (u *UI) Info(format string, a ...any) {
	fmt.Fprintf(u.Out, "%s %s\n", infoPrefix, fmt.Sprintf(format, a...))
}

func (u *UI) Success(format string, a ...any) {
	fmt.Fprintf(u.Out, "%s %s\n", successPrefix, fmt.Sprintf(format, a...))
}

func (u *UI) Warning(format string, a ...any) {
	fmt.Fprintf(u.ErrOut, "%s %s\n", warningPrefix, fmt.Sprintf(format, a...))
}

func (u *UI) Error(format string, a ...any) {
	fmt.Fprintf(u.ErrOut, "%s %s\n", errorPrefix, fmt.Sprintf(format, a...))
}

// Table creates a borderless left-aligned table writing to Out.
func (u *UI) Table(headers []string) *tablewriter.Table {
	table := tablewriter.NewTable(u.Out,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header(headers)
	return table
}

// PriorityColor colors a priority's display name.
func PriorityColor(p issues.Priority) string {
	var c *color.Color
	switch p {
	case issues.Urgent:
		c = color.New(color.FgHiRed, color.Bold)
	case issues.High:
		c = color.New(color.FgHiYellow)
	case issues.Medium:
		c = color.New(color.FgHiBlue)
	case issues.Low:
		c = color.New(color.FgHiGreen)
	default:
		return faint(p.String())
	}
	return c.Sprint(p.String())
}

// StateColor colors a workflow state name by its usual meaning.
func StateColor(name string) string {
	switch issues.StatusColor(name) {
	case issues.StatusColor("done"):
		return color.HiGreenString(name)
	case issues.StatusColor("in progress"):
		return color.HiMagentaString(name)
	case issues.StatusColor("todo"):
		return color.HiBlueString(name)
	case issues.StatusColor("canceled"):
		return color.HiRedString(name)
	case issues.StatusColor("duplicate"):
		return color.HiYellowString(name)
	}
	return name
}
