package printers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/reflectly/pkg/entry"
	"tableflip.dev/reflectly/pkg/mood"
	"tableflip.dev/reflectly/pkg/motivation"
)

// DefaultWidth is the wrap width for entry content.
const DefaultWidth = 80

type PrettyPrint struct {
	Out     io.Writer
	ShowID  bool
	Width   int
	NoColor bool
}

var (
	spacing = strings.Repeat(" ", len("1700000000000  "))
)

// New returns a printer for w. Color is turned off unless w is a terminal.
func New(w io.Writer) *PrettyPrint {
	if w == nil {
		w = color.Output
	}
	return &PrettyPrint{
		Out:     w,
		Width:   DefaultWidth,
		NoColor: !IsTerminal(w),
	}
}

// IsTerminal reports whether w writes to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (pp *PrettyPrint) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if pp.NoColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return DefaultWidth
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.Out, "")
}

func (pp *PrettyPrint) Title(title string) {
	t := pp.style(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.Out, spacing)
	}
	_, _ = t.Fprintln(pp.Out, title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := pp.style(color.Bold, color.Underline)
	c := pp.style(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.Out, spacing)
	}
	_, _ = t.Fprint(pp.Out, title)
	_, _ = c.Fprintf(pp.Out, " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.Out, " entry")
	default:
		_, _ = c.Fprintln(pp.Out, " entries")
	}
}

// Entries prints one line per entry: date, mood and the first line of the
// content.
func (pp *PrettyPrint) Entries(entries ...entry.Entry) {
	if len(entries) == 0 {
		f := pp.style(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(pp.Out, spacing)
		}
		_, _ = f.Fprint(pp.Out, " none\n\n")
		return
	}

	y := pp.style(color.FgHiYellow, color.Italic, color.Faint)
	d := pp.style(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range entries {
		row := []interface{}{}
		if pp.ShowID {
			row = append(row, y.Sprint(e.ID.String()))
		}
		row = append(row,
			d.Sprint(e.Date.Local().Format("Jan 2 2006 15:04")),
			moodSymbol(e.Mood),
			e.Title(pp.width()-40),
		)
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.Out, tbl)
	pp.NewLine()
}

// Entry prints a single entry in full with its content wrapped.
func (pp *PrettyPrint) Entry(e entry.Entry) {
	b := pp.style(color.Bold)
	f := pp.style(color.Faint)

	if pp.ShowID {
		_, _ = pp.style(color.FgHiYellow, color.Italic, color.Faint).Fprintf(pp.Out, "%s  ", e.ID)
	}
	_, _ = b.Fprint(pp.Out, e.Date.Local().Format("Monday, January 2 2006"))
	_, _ = f.Fprintf(pp.Out, "  %s\n", e.Date.Local().Format("15:04"))
	_, _ = fmt.Fprintf(pp.Out, "%s %s\n\n", moodSymbol(e.Mood), moodName(e.Mood))

	body := wordwrap.String(e.Content, pp.width()-2)
	_, _ = fmt.Fprintln(pp.Out, indent.String(body, 2))
	pp.NewLine()
}

// Moods prints the mood table with scores.
func (pp *PrettyPrint) Moods(moods []mood.Mood) {
	bold := pp.style(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Mood"), bold.Sprint("Key"), bold.Sprint("Label"), bold.Sprint("Score"), bold.Sprint("Aliases"))
	for _, m := range moods {
		tbl.AddRow(m.Emoji, m.Key, m.Label, pp.swatch(m.Score, fmt.Sprintf("%d", m.Score)), strings.Join(m.Aliases, ", "))
	}
	tbl.RightAlign(3)
	_, _ = fmt.Fprintln(pp.Out, tbl)
}

// Quote prints the motivational quote and image link.
func (pp *PrettyPrint) Quote(c motivation.Content) {
	i := pp.style(color.Italic)
	f := pp.style(color.Faint)

	text := wordwrap.String("“"+c.Quote.Text+"”", pp.width()-2)
	_, _ = i.Fprintln(pp.Out, indent.String(text, 2))
	if c.Quote.Author != "" {
		_, _ = f.Fprintf(pp.Out, "    - %s\n", c.Quote.Author)
	}
	if c.ImageURL != "" {
		_, _ = f.Fprintf(pp.Out, "\n  %s\n", c.ImageURL)
	}
	pp.NewLine()
}

func moodSymbol(label string) string {
	if m, ok := mood.Lookup(label); ok {
		return m.Emoji
	}
	return "·"
}

func moodName(label string) string {
	if m, ok := mood.Lookup(label); ok {
		return m.Label
	}
	return label
}
