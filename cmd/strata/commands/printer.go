package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/strata/internal/ui/output"
	"go.trai.ch/strata/internal/ui/style"
)

const labelWidth = 10

// printer writes command results as a title line followed by indented
// key/value rows.
type printer struct {
	w     io.Writer
	out   *termenv.Output
	label lipgloss.Style
	dim   lipgloss.Style
	// base is the directory layer identifiers are shown relative to.
	base string
}

func newPrinter(w io.Writer, stagePath string) *printer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(output.ColorProfile())

	base := ""
	if abs, err := filepath.Abs(stagePath); err == nil {
		base = filepath.Dir(abs)
	}
	return &printer{
		w:     w,
		out:   output.New(w),
		label: style.Label(r).Width(labelWidth),
		dim:   style.Dim(r),
		base:  base,
	}
}

func (p *printer) title(s string) {
	_, _ = fmt.Fprintln(p.w, s)
}

func (p *printer) row(key, value string) {
	_, _ = fmt.Fprintf(p.w, "  %s%s\n", p.label.Render(key), value)
}

func (p *printer) item(s string) {
	_, _ = fmt.Fprintf(p.w, "  %s %s\n", style.Bullet, s)
}

func (p *printer) ok(s string) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", output.Paint(p.out, style.Check, string(style.Ok)), s)
}

func (p *printer) fail(s string) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", output.Paint(p.out, style.Cross, string(style.Fail)), s)
}

func (p *printer) muted(s string) string {
	return p.dim.Render(s)
}

// layer shortens a layer identifier to a path relative to the stage file
// when it lives below it.
func (p *printer) layer(id string) string {
	if p.base == "" {
		return id
	}
	rel, err := filepath.Rel(p.base, id)
	if err != nil || strings.HasPrefix(rel, "..") {
		return id
	}
	return filepath.ToSlash(rel)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatTimes(ts []float64) string {
	if len(ts) == 0 {
		return "none"
	}
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = formatFloat(t)
	}
	return strings.Join(parts, ", ")
}
