package theme

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors for one mode.
type Palette struct {
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Border    lipgloss.Color
	HeaderBg  lipgloss.Color
	Accent    lipgloss.Color
	Selection lipgloss.Color
	Danger    lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
}

// Palettes mirror the component library's light and dark-mode colors.
//
//nolint:gochecknoglobals // Read-only color tables.
var (
	lightPalette = Palette{
		Text:      lipgloss.Color("#111827"),
		Muted:     lipgloss.Color("#6b7280"),
		Border:    lipgloss.Color("#e5e7eb"),
		HeaderBg:  lipgloss.Color("#f9fafb"),
		Accent:    lipgloss.Color("#3b82f6"),
		Selection: lipgloss.Color("#f3f4f6"),
		Danger:    lipgloss.Color("#dc2626"),
		Success:   lipgloss.Color("#16a34a"),
		Warning:   lipgloss.Color("#d97706"),
	}
	darkPalette = Palette{
		Text:      lipgloss.Color("#f9fafb"),
		Muted:     lipgloss.Color("#d1d5db"),
		Border:    lipgloss.Color("#374151"),
		HeaderBg:  lipgloss.Color("#1f2937"),
		Accent:    lipgloss.Color("#60a5fa"),
		Selection: lipgloss.Color("#374151"),
		Danger:    lipgloss.Color("#f87171"),
		Success:   lipgloss.Color("#4ade80"),
		Warning:   lipgloss.Color("#fbbf24"),
	}
)

// Styles are the lipgloss styles used by the interactive table.
type Styles struct {
	Palette Palette

	Title         lipgloss.Style
	Header        lipgloss.Style
	Selected      lipgloss.Style
	Cell          lipgloss.Style
	SortIndicator lipgloss.Style
	Pager         lipgloss.Style
	Empty         lipgloss.Style
	Help          lipgloss.Style
	FilterPrompt  lipgloss.Style

	Modal        lipgloss.Style
	ModalTitle   lipgloss.Style
	ModalDefault lipgloss.Style
	ModalDanger  lipgloss.Style
	ModalSuccess lipgloss.Style
	ModalWarning lipgloss.Style
}

// PaletteFor returns the colors for a mode.
func PaletteFor(mode Mode) Palette {
	if mode == Dark {
		return darkPalette
	}
	return lightPalette
}

// StylesFor builds the style set for a mode.
func StylesFor(mode Mode) Styles {
	p := PaletteFor(mode)

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		Foreground(p.Text)

	return Styles{
		Palette: p,

		Title: lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			Background(p.HeaderBg).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(p.Border),
		Selected:      lipgloss.NewStyle().Foreground(p.Text).Background(p.Selection).Bold(true),
		Cell:          lipgloss.NewStyle().Foreground(p.Text),
		SortIndicator: lipgloss.NewStyle().Foreground(p.Accent),
		Pager:         lipgloss.NewStyle().Foreground(p.Muted),
		Empty:         lipgloss.NewStyle().Foreground(p.Muted).Italic(true).Padding(1, 0),
		Help:          lipgloss.NewStyle().Foreground(p.Muted),
		FilterPrompt:  lipgloss.NewStyle().Foreground(p.Accent),

		Modal:        modal.BorderForeground(p.Border),
		ModalTitle:   lipgloss.NewStyle().Bold(true),
		ModalDefault: modal.BorderForeground(p.Accent),
		ModalDanger:  modal.BorderForeground(p.Danger),
		ModalSuccess: modal.BorderForeground(p.Success),
		ModalWarning: modal.BorderForeground(p.Warning),
	}
}
