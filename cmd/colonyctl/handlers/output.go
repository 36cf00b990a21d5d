package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// isTerminal reports whether w is an interactive terminal.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printer writes command results as styled text, JSON or YAML.
type printer struct {
	w      io.Writer
	format string
	styled bool
}

func newPrinter(w io.Writer, format string) (*printer, error) {
	if w == nil {
		w = os.Stdout
	}
	switch format {
	case "", OutputText:
		format = OutputText
	case OutputJSON, OutputYAML:
	default:
		return nil, fmt.Errorf("unsupported output format %q (valid: %s, %s, %s)", format, OutputText, OutputJSON, OutputYAML)
	}
	return &printer{
		w:      w,
		format: format,
		styled: format == OutputText && isTerminal(w),
	}, nil
}

// structured encodes v when a machine-readable format was requested and
// reports whether it did.
func (p *printer) structured(v any) (bool, error) {
	switch p.format {
	case OutputJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return true, nil
	case OutputYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return true, enc.Close()
	}
	return false, nil
}

// emit writes v in the requested structured format, or text otherwise.
func (p *printer) emit(v any, text func() string) error {
	if ok, err := p.structured(v); ok {
		return err
	}
	_, err := io.WriteString(p.w, text())
	return err
}
