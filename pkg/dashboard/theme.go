package dashboard

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/regdash/pkg/registry"
)

// DashboardTheme holds all visual styling for the dashboard TUI.
type DashboardTheme struct {
	// Colors
	Colors DashboardColors `yaml:"colors"`

	// Icons for status indicators
	Icons DashboardIcons `yaml:"icons"`

	// Title bar
	Title DashboardTitleStyle `yaml:"title"`

	// Monochrome drops every color (NO_COLOR, --no-color).
	Monochrome bool `yaml:"monochrome"`
}

// DashboardColors defines the color palette for the dashboard.
type DashboardColors struct {
	Primary   string `yaml:"primary"`   // Main accent (title, active filter, borders)
	Pass      string `yaml:"pass"`      // Pass state
	Fail      string `yaml:"fail"`      // Fail state
	Pending   string `yaml:"pending"`   // Pending state
	Muted     string `yaml:"muted"`     // Secondary text, timestamps
	Text      string `yaml:"text"`      // Normal text
	Border    string `yaml:"border"`    // Border color
	Highlight string `yaml:"highlight"` // Selected item background
}

// DashboardIcons defines the icons used in the dashboard.
type DashboardIcons struct {
	Pending string `yaml:"pending"`
	Pass    string `yaml:"pass"`
	Fail    string `yaml:"fail"`
	Select  string `yaml:"select"` // Selected item marker
}

// DashboardTitleStyle defines the title bar appearance.
type DashboardTitleStyle struct {
	Text string `yaml:"text"`
	Icon string `yaml:"icon"`
}

// CompiledTheme holds pre-built lipgloss styles from a DashboardTheme.
type CompiledTheme struct {
	TitleStyle        lipgloss.Style
	StatsStyle        lipgloss.Style
	FilterStyle       lipgloss.Style
	ActiveFilterStyle lipgloss.Style
	ListStyle         lipgloss.Style
	SelectedStyle     lipgloss.Style
	UnselectedStyle   lipgloss.Style
	DetailBoxStyle    lipgloss.Style
	DetailHeaderStyle lipgloss.Style
	LabelStyle        lipgloss.Style
	MutedStyle        lipgloss.Style
	FormBoxStyle      lipgloss.Style
	FocusedLabelStyle lipgloss.Style
	StatusBarStyle    lipgloss.Style
	PassIconStyle     lipgloss.Style
	FailIconStyle     lipgloss.Style
	PendingIconStyle  lipgloss.Style

	Icons     DashboardIcons
	TitleText string
	TitleIcon string
}

// DefaultDashboardTheme returns the default dashboard theme configuration.
func DefaultDashboardTheme() *DashboardTheme {
	return &DashboardTheme{
		Colors: DashboardColors{
			Primary:   "#7D56F4", // Purple
			Pass:      "#04B575", // Green
			Fail:      "#FF5F56", // Red
			Pending:   "#FFBD2E", // Yellow/Orange
			Muted:     "#626262", // Gray
			Text:      "#CCCCCC", // Light gray
			Border:    "#444444", // Dark gray
			Highlight: "#7D56F4", // Purple (same as primary)
		},
		Icons: DashboardIcons{
			Pending: "\u25cb", // ○
			Pass:    "\u2713", // ✓
			Fail:    "\u2717", // ✗
			Select:  "\u25b6", // ▶
		},
		Title: DashboardTitleStyle{
			Text: "Regression Dashboard",
			Icon: "\u26a1", // ⚡
		},
	}
}

// Compile builds lipgloss styles from the theme configuration.
func (t *DashboardTheme) Compile() *CompiledTheme {
	color := func(hex string) lipgloss.TerminalColor {
		if t.Monochrome || hex == "" {
			return lipgloss.NoColor{}
		}
		return lipgloss.Color(hex)
	}
	primary := color(t.Colors.Primary)
	border := color(t.Colors.Border)
	muted := color(t.Colors.Muted)
	highlight := color(t.Colors.Highlight)
	bright := color("#FAFAFA")

	ct := &CompiledTheme{
		Icons:     t.Icons,
		TitleText: t.Title.Text,
		TitleIcon: t.Title.Icon,
	}

	ct.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(bright).
		Background(primary).
		Padding(0, 1)

	ct.StatsStyle = lipgloss.NewStyle().
		Foreground(color(t.Colors.Text)).
		Padding(0, 1)

	ct.FilterStyle = lipgloss.NewStyle().
		Foreground(muted).
		Padding(0, 1)

	ct.ActiveFilterStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(bright).
		Background(highlight).
		Padding(0, 1)

	ct.ListStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	ct.SelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(bright).
		Background(highlight)

	ct.UnselectedStyle = lipgloss.NewStyle().
		Foreground(color(t.Colors.Text))

	ct.DetailBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primary).
		Padding(0, 1)

	ct.DetailHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(bright).
		Background(highlight).
		Padding(0, 1)

	ct.LabelStyle = lipgloss.NewStyle().Bold(true).Foreground(primary)
	ct.MutedStyle = lipgloss.NewStyle().Foreground(muted).Italic(true)

	ct.FormBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primary).
		Padding(1, 2)

	ct.FocusedLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(highlight)

	ct.StatusBarStyle = lipgloss.NewStyle().
		Foreground(muted).
		MarginTop(1)

	ct.PassIconStyle = lipgloss.NewStyle().Foreground(color(t.Colors.Pass)).Bold(true)
	ct.FailIconStyle = lipgloss.NewStyle().Foreground(color(t.Colors.Fail)).Bold(true)
	ct.PendingIconStyle = lipgloss.NewStyle().Foreground(color(t.Colors.Pending))

	return ct
}

// StatusIcon returns the styled icon for s.
func (ct *CompiledTheme) StatusIcon(s registry.Status) string {
	switch s {
	case registry.StatusPass:
		return ct.PassIconStyle.Render(ct.Icons.Pass)
	case registry.StatusFail:
		return ct.FailIconStyle.Render(ct.Icons.Fail)
	default:
		return ct.PendingIconStyle.Render(ct.Icons.Pending)
	}
}

// RawStatusIcon returns the icon without styling (for use in selected rows).
func (ct *CompiledTheme) RawStatusIcon(s registry.Status) string {
	switch s {
	case registry.StatusPass:
		return ct.Icons.Pass
	case registry.StatusFail:
		return ct.Icons.Fail
	default:
		return ct.Icons.Pending
	}
}
