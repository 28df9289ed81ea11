package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	ColorCyan     = lipgloss.Color("#00FFFF")
	ColorGreen    = lipgloss.Color("#00FF00")
	ColorYellow   = lipgloss.Color("#FFFF00")
	ColorMagenta  = lipgloss.Color("#FF00FF")
	ColorWhite    = lipgloss.Color("#FFFFFF")
	ColorDarkGray = lipgloss.Color("8") // ANSI 8
)

// Styles is the set of report styles bound to one output renderer
type Styles struct {
	Rule   lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Index  lipgloss.Style
	Date   lipgloss.Style
	Hash   lipgloss.Style
	Path   lipgloss.Style
	Notice lipgloss.Style
}

// NewRenderer binds a lipgloss renderer to w. Color is dropped when
// NO_COLOR is set; non-terminal writers get no color from detection.
func NewRenderer(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// PlainRenderer returns a renderer that never emits escape codes
func PlainRenderer(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.Ascii)
	return r
}

func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Rule:   r.NewStyle().Foreground(ColorCyan),
		Label:  r.NewStyle().Foreground(ColorCyan).Bold(true),
		Value:  r.NewStyle().Foreground(ColorWhite),
		Index:  r.NewStyle().Foreground(ColorMagenta).Bold(true),
		Date:   r.NewStyle().Foreground(ColorYellow),
		Hash:   r.NewStyle().Foreground(ColorGreen),
		Path:   r.NewStyle().Foreground(ColorDarkGray),
		Notice: r.NewStyle().Foreground(ColorYellow).Italic(true),
	}
}
