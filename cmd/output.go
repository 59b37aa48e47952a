package cmd

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/ncruces/go-strftime"
	"golang.org/x/term"

	"github.com/chris/mapdate/internal/timeaxis"
)

// isTerminal returns true if the writer is a terminal
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// newOutput colours only real terminals; pipes and test buffers get plain text
func newOutput(w io.Writer) *termenv.Output {
	profile := termenv.Ascii
	if isTerminal(w) {
		profile = termenv.EnvColorProfile()
	}
	return termenv.NewOutput(w, termenv.WithProfile(profile))
}

// formatDate renders d with a strftime layout, or as YYYY-MM-DD when layout is empty
func formatDate(d timeaxis.Date, layout string) string {
	if layout == "" {
		return d.String()
	}
	return strftime.Format(layout, d.Time())
}

func dateStyle(o *termenv.Output, s string) string {
	return o.String(s).Foreground(o.Color("10")).Bold().String()
}

func dimStyle(o *termenv.Output, s string) string {
	return o.String(s).Foreground(o.Color("8")).String()
}

func warnStyle(o *termenv.Output, s string) string {
	return o.String(s).Foreground(o.Color("9")).String()
}
