package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/Sonukumar0009/Farmart/internal/archive"
	"github.com/Sonukumar0009/Farmart/internal/model"
)

// Renderer reports the outcome of an extraction run.
type Renderer interface {
	Success(rep model.Report) error
	Failure(err error) error
}

// FailureMessage returns the one-line, user-facing description of err.
func FailureMessage(err error) string {
	switch {
	case errors.Is(err, archive.ErrNotFound):
		return "Error: ZIP file not found."
	case errors.Is(err, archive.ErrInvalidFormat):
		return "Error: The specified file is not a valid ZIP archive."
	default:
		return fmt.Sprintf("An error occurred: %v", err)
	}
}

// New returns the renderer for the given format ("text" or "json").
func New(format string, w io.Writer) (Renderer, error) {
	switch format {
	case "", "text":
		return NewTextRenderer(w), nil
	case "json":
		return NewJSONRenderer(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text or json)", format)
	}
}

// ---------------------------------------------------------------------------
// Text Renderer
// ---------------------------------------------------------------------------

var (
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true) // green
	styleFail    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	stylePath    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))             // cyan
	styleSummary = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true) // gray
)

// TextRenderer prints human-readable status lines.
type TextRenderer struct {
	w     io.Writer
	color bool
}

// NewTextRenderer returns a TextRenderer writing to w. Colors are used only
// when w is a terminal.
func NewTextRenderer(w io.Writer) *TextRenderer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &TextRenderer{w: w, color: color}
}

func (r *TextRenderer) Success(rep model.Report) error {
	line := fmt.Sprintf("%s %s",
		r.style(styleOK, "Filtered log entries saved to"),
		r.style(stylePath, rep.OutputPath))
	if _, err := fmt.Fprintln(r.w, line); err != nil {
		return err
	}

	summary := fmt.Sprintf("scanned %d member(s), skipped %d, matched %d of %d line(s) in %s",
		rep.MembersScanned, rep.MembersSkipped, rep.LinesMatched, rep.LinesRead,
		rep.Duration().Round(time.Millisecond))
	_, err := fmt.Fprintln(r.w, r.style(styleSummary, summary))
	return err
}

func (r *TextRenderer) Failure(err error) error {
	_, werr := fmt.Fprintln(r.w, r.style(styleFail, FailureMessage(err)))
	return werr
}

func (r *TextRenderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// ---------------------------------------------------------------------------
// JSON Renderer
// ---------------------------------------------------------------------------

// Result is the JSON document written for each run.
type Result struct {
	Status string        `json:"status"`
	Report *model.Report `json:"report,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// JSONRenderer prints one JSON object per run, for piping into other tools.
type JSONRenderer struct {
	enc *json.Encoder
}

// NewJSONRenderer returns a Renderer that writes JSON lines to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{enc: json.NewEncoder(w)}
}

func (r *JSONRenderer) Success(rep model.Report) error {
	return r.enc.Encode(Result{Status: "ok", Report: &rep})
}

func (r *JSONRenderer) Failure(err error) error {
	return r.enc.Encode(Result{Status: "error", Error: FailureMessage(err)})
}
