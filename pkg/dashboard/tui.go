package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/regdash/internal/logging"
	"github.com/dkoosis/regdash/pkg/registry"
)

// Options configures a dashboard or console session.
type Options struct {
	Theme  *DashboardTheme
	Filter registry.Filter
	Logger *slog.Logger

	// Input and Output default to the process's stdin and stdout.
	Input  io.Reader
	Output io.Writer

	// AltScreen runs the TUI in the terminal's alternate screen buffer.
	AltScreen bool
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logging.Discard()
}

// RunDashboard launches the interactive dashboard over reg and blocks until
// the user quits or ctx is cancelled. All registry mutations happen on the
// bubbletea event loop.
func RunDashboard(ctx context.Context, reg *registry.Registry, opts Options) error {
	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	program := tea.NewProgram(newModel(reg, opts), progOpts...)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

type viewMode int

const (
	modeList viewMode = iota
	modeForm
)

type model struct {
	reg      *registry.Registry
	theme    *CompiledTheme
	log      *slog.Logger
	keys     keyMap
	help     help.Model
	form     form
	viewport viewport.Model
	mode     viewMode
	filter   registry.Filter
	selected int
	notice   string
	ready    bool

	width       int // terminal width
	height      int // terminal height
	listWidth   int // width allocated to record list
	detailWidth int // width allocated to detail pane
}

func newModel(reg *registry.Registry, opts Options) model {
	theme := opts.Theme
	if theme == nil {
		theme = DefaultDashboardTheme()
	}
	m := model{
		reg:      reg,
		theme:    theme.Compile(),
		log:      opts.logger(),
		keys:     defaultKeyMap(),
		help:     help.New(),
		form:     newForm(),
		viewport: viewport.New(0, 0),
		filter:   opts.Filter,
	}
	m.refreshViewport()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.mode == modeForm {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}
	if m.mode == modeForm {
		_, cmd := m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		m.selected++
	case key.Matches(msg, m.keys.NextFilter):
		m.setFilter(m.filter.Next())
	case key.Matches(msg, m.keys.FilterAll):
		m.setFilter(registry.FilterAll)
	case key.Matches(msg, m.keys.FilterPend):
		m.setFilter(registry.FilterPending)
	case key.Matches(msg, m.keys.FilterPass):
		m.setFilter(registry.FilterPass)
	case key.Matches(msg, m.keys.FilterFail):
		m.setFilter(registry.FilterFail)
	case key.Matches(msg, m.keys.New):
		m.mode = modeForm
		return m, m.form.open()
	case key.Matches(msg, m.keys.Pass):
		m.setStatus(registry.StatusPass)
	case key.Matches(msg, m.keys.Fail):
		m.setStatus(registry.StatusFail)
	case key.Matches(msg, m.keys.Reset):
		m.setStatus(registry.StatusPending)
	case key.Matches(msg, m.keys.Remove):
		if rec, ok := m.current(); ok {
			m.reg.Remove(rec.ID)
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	m.clampSelection()
	m.refreshViewport()
	return m, nil
}

func (m model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, cmd := m.form.update(msg)
	switch result {
	case formCancel:
		m.form.reset()
		m.mode = modeList
		return m, nil
	case formSubmit:
		m.submit()
		return m, nil
	}
	return m, cmd
}

// submit adds the form's record. A blank title is rejected silently and
// the form keeps its contents.
func (m *model) submit() {
	title, description, expected := m.form.values()
	rec, err := m.reg.Add(title, description, expected)
	if err != nil {
		if !errors.Is(err, registry.ErrEmptyTitle) {
			m.log.Error("adding record failed", "error", err)
			m.notice = err.Error()
		}
		return
	}
	m.log.Debug("record added", "id", rec.ID, "title", rec.Title)
	m.form.reset()
	m.mode = modeList
	for i, r := range m.visible() {
		if r.ID == rec.ID {
			m.selected = i
			break
		}
	}
	m.clampSelection()
	m.refreshViewport()
}

func (m *model) setStatus(status registry.Status) {
	rec, ok := m.current()
	if !ok {
		return
	}
	m.reg.UpdateStatus(rec.ID, status)
	m.log.Debug("status updated", "id", rec.ID, "from", rec.Status.String(), "to", status.String())
}

func (m *model) setFilter(f registry.Filter) {
	if f == m.filter {
		return
	}
	m.filter = f
	m.selected = 0
}

func (m model) visible() []registry.Record {
	return m.reg.FilteredView(m.filter)
}

func (m model) current() (registry.Record, bool) {
	view := m.visible()
	if m.selected < 0 || m.selected >= len(view) {
		return registry.Record{}, false
	}
	return view[m.selected], true
}

func (m *model) clampSelection() {
	n := len(m.visible())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *model) resize(width, height int) {
	m.width = width
	m.height = height
	m.listWidth = width * 2 / 5
	if m.listWidth < 28 {
		m.listWidth = 28
	}
	if m.listWidth > width/2 {
		m.listWidth = width / 2
	}
	m.detailWidth = width - m.listWidth - 1    // 1 for gap
	m.viewport.Width = max(m.detailWidth-4, 1) // border + padding
	m.viewport.Height = max(m.contentHeight()-2, 1)
	m.help.Width = width
	m.form.setWidth(width - 8)
	m.ready = true
	m.refreshViewport()
}

// contentHeight is the inner height of the list and detail panels.
// title(1) + stats(1) + filters(1) + help(2) + panel borders(2) = 7.
func (m model) contentHeight() int {
	return max(m.height-7, 3)
}

func (m *model) refreshViewport() {
	rec, ok := m.current()
	if !ok {
		m.viewport.SetContent(m.theme.MutedStyle.Render("Select a test to view details"))
		return
	}
	m.viewport.SetContent(renderDetail(rec, m.theme, m.viewport.Width))
	m.viewport.GotoTop()
}

func (m model) View() string {
	if !m.ready {
		return "Loading dashboard..."
	}

	titleText := strings.TrimSpace(m.theme.TitleIcon + " " + m.theme.TitleText)
	if titleText == "" {
		titleText = "Dashboard"
	}
	title := m.theme.TitleStyle.Width(m.width).Render(titleText)

	stats := m.theme.StatsStyle.Render(formatStats(m.reg.Stats()))
	filters := renderFilters(m.reg.Stats(), m.filter, m.theme)

	var body string
	var helpView string
	if m.mode == modeForm {
		body = m.form.view(m.theme)
		helpView = m.help.View(m.form.keys)
	} else {
		body = m.renderPanels()
		helpView = m.help.View(m.keys)
	}

	footer := helpView
	if m.notice != "" {
		footer = m.theme.FailIconStyle.Render(m.notice) + "\n" + helpView
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, stats, filters, body, m.theme.StatusBarStyle.Render(footer))
}

func (m model) renderPanels() string {
	height := m.contentHeight()

	listContent := renderList(m.visible(), m.selected, m.listWidth-4, height, m.filter, m.theme)
	listPanel := m.theme.ListStyle.
		Width(m.listWidth - 2).
		Height(height).
		Render(listContent)

	detail := m.viewport.View()
	if rec, ok := m.current(); ok {
		header := m.theme.DetailHeaderStyle.Render(runewidth.Truncate(rec.Title, max(m.detailWidth-8, 1), "…"))
		detail = header + "\n\n" + detail
	}
	detailPanel := m.theme.DetailBoxStyle.
		Width(m.detailWidth - 2).
		Height(height).
		Render(fitLines(detail, height))

	return lipgloss.JoinHorizontal(lipgloss.Top, listPanel, " ", detailPanel)
}

// renderList draws the visible window of records around the selection.
func renderList(records []registry.Record, selected, width, height int, filter registry.Filter, theme *CompiledTheme) string {
	if len(records) == 0 {
		if filter == registry.FilterAll {
			return theme.MutedStyle.Render("No tests yet. Press n to add one.")
		}
		return theme.MutedStyle.Render(fmt.Sprintf("No %s tests.", filter))
	}
	if width < 8 {
		width = 8
	}

	start := 0
	if selected >= height {
		start = selected - height + 1
	}
	end := min(start+height, len(records))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rec := records[i]
		name := runewidth.Truncate(rec.Title, width-4, "…")
		if i == selected {
			content := fmt.Sprintf("%s %s %s", theme.Icons.Select, theme.RawStatusIcon(rec.Status), name)
			lines = append(lines, theme.SelectedStyle.Width(width).Render(content))
			continue
		}
		lines = append(lines, theme.UnselectedStyle.Render(fmt.Sprintf("  %s %s", theme.StatusIcon(rec.Status), name)))
	}
	return strings.Join(lines, "\n")
}

func renderDetail(rec registry.Record, theme *CompiledTheme, width int) string {
	wrap := lipgloss.NewStyle().Width(max(width, 10))
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %s\n", theme.LabelStyle.Render("Status:"), theme.StatusIcon(rec.Status), rec.Status)
	fmt.Fprintf(&sb, "%s %s\n", theme.LabelStyle.Render("Last run:"), registry.FormatRunAt(rec.LastRunAt))
	fmt.Fprintf(&sb, "%s %s\n\n", theme.LabelStyle.Render("ID:"), theme.MutedStyle.Render(rec.ID))
	sb.WriteString(theme.LabelStyle.Render("Description"))
	sb.WriteString("\n")
	sb.WriteString(wrap.Render(rec.Description))
	sb.WriteString("\n\n")
	sb.WriteString(theme.LabelStyle.Render("Expected result"))
	sb.WriteString("\n")
	sb.WriteString(wrap.Render(rec.ExpectedResult))
	return sb.String()
}

func renderFilters(s registry.Stats, active registry.Filter, theme *CompiledTheme) string {
	counts := map[registry.Filter]int{
		registry.FilterAll:     s.Total,
		registry.FilterPending: s.Pending,
		registry.FilterPass:    s.Pass,
		registry.FilterFail:    s.Fail,
	}
	tabs := make([]string, 0, len(registry.Filters))
	for i, f := range registry.Filters {
		label := fmt.Sprintf("%d %s (%d)", i+1, filterLabel(f), counts[f])
		if f == active {
			tabs = append(tabs, theme.ActiveFilterStyle.Render(label))
		} else {
			tabs = append(tabs, theme.FilterStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func filterLabel(f registry.Filter) string {
	switch f {
	case registry.FilterPending:
		return "Pending"
	case registry.FilterPass:
		return "Pass"
	case registry.FilterFail:
		return "Fail"
	default:
		return "All"
	}
}

func formatStats(s registry.Stats) string {
	return fmt.Sprintf("Total %d · Pending %d · Pass %d · Fail %d", s.Total, s.Pending, s.Pass, s.Fail)
}

// fitLines pads or truncates content to exactly height lines.
func fitLines(content string, height int) string {
	lines := strings.Split(content, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
