package diagfmt

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"

	"cminus/internal/diag"
	"cminus/internal/source"
)

type palette struct {
	err, warn, info, code, note, path *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow, color.Bold),
		info: color.New(color.FgCyan, color.Bold),
		code: color.New(color.Faint),
		note: color.New(color.FgBlue),
		path: color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.note, p.path} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>: <SEV> <CODE>: <Message>
// затем, если включено, заметки в том же формате с отступом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	bw := bufio.NewWriter(w)
	for _, d := range bag.Items() {
		fmt.Fprintf(bw, "%s: %s %s: %s\n",
			p.path.Sprint(location(fs, d.Primary, opts.PathMode)),
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message,
		)
		if !opts.ShowNotes {
			continue
		}
		for _, note := range d.Notes {
			fmt.Fprintf(bw, "  %s %s: %s\n",
				p.note.Sprint("note:"),
				location(fs, note.Pos, opts.PathMode),
				note.Msg,
			)
		}
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(bw, "... %d more diagnostic(s) not shown\n", dropped)
	}
	return bw.Flush()
}

func location(fs *source.FileSet, pos source.Pos, mode PathMode) string {
	path := displayPath(fs, pos.File, mode)
	if path == "" {
		path = "<input>"
	}
	return fmt.Sprintf("%s:%d", path, pos.Line)
}
