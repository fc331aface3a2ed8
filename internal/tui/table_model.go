package tui

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"

	"github.com/rshade/tablekit/internal/dataset"
	"github.com/rshade/tablekit/internal/logging"
	"github.com/rshade/tablekit/internal/notify"
	"github.com/rshade/tablekit/internal/render"
	"github.com/rshade/tablekit/internal/tabular"
	"github.com/rshade/tablekit/internal/theme"
)

const (
	defaultWidth  = 120
	defaultHeight = 30
	minHeight     = 3

	// chromeHeight is the number of lines used around the table body.
	chromeHeight = 8

	maxColumnWidth       = 40
	filterInputCharLimit = 256
	filterInputWidth     = 40
)

// DefaultPageSizeOptions is the page size cycle used when none is configured.
//
//nolint:gochecknoglobals // Read-only default.
var DefaultPageSizeOptions = []int{5, 10, 25, 50}

// ViewState is the current mode of the table model.
type ViewState int

const (
	// ViewStateList shows the table and accepts navigation keys.
	ViewStateList ViewState = iota
	// ViewStateFilter routes keystrokes to the filter input.
	ViewStateFilter
	// ViewStateQuitting is set once the user asks to leave.
	ViewStateQuitting
)

// RowsReloadedMsg carries a freshly loaded dataset, or the error from a
// failed reload.
type RowsReloadedMsg struct {
	Dataset *dataset.Dataset
	Err     error
}

// Options configures a TableModel.
type Options struct {
	// PageSize overrides the dataset page size when positive.
	PageSize int
	// PageSizeOptions is the +/- cycle; DefaultPageSizeOptions when empty.
	PageSizeOptions []int
	// FilterPlaceholder is shown in the empty filter input.
	FilterPlaceholder string
	// ExportPath is where the e key writes CSV; defaults to <name>-export.csv.
	ExportPath string

	Theme    *theme.Service
	Notifier *notify.Service
}

// TableModel is the Bubble Tea model for browsing a dataset.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type TableModel struct {
	state ViewState
	ctx   context.Context
	ds    *dataset.Dataset
	vm    *tabular.ViewModel

	table     table.Model
	textInput textinput.Model
	column    int // selected column for the s key

	width  int
	height int

	pageSizes  []int
	exportPath string
	status     string

	theme       *theme.Service
	notifier    *notify.Service
	unsubscribe func()
	logger      zerolog.Logger
}

// NewTableModel builds a model over ds. The logger is taken from ctx.
func NewTableModel(ctx context.Context, ds *dataset.Dataset, opts Options) (TableModel, error) {
	logger := logging.ComponentLogger(*logging.FromContext(ctx), "tui")

	vmOpts := []tabular.Option{tabular.WithLogger(logger)}
	if opts.PageSize > 0 {
		vmOpts = append(vmOpts, tabular.WithPageSize(opts.PageSize))
	}
	vm, err := ds.ViewModel(vmOpts...)
	if err != nil {
		return TableModel{}, err
	}

	if opts.Theme == nil {
		opts.Theme, _ = theme.NewService(nil)
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.NewService()
	}
	pageSizes := slices.Clone(opts.PageSizeOptions)
	if len(pageSizes) == 0 {
		pageSizes = slices.Clone(DefaultPageSizeOptions)
	}
	slices.Sort(pageSizes)
	exportPath := opts.ExportPath
	if exportPath == "" {
		exportPath = ds.Name + "-export.csv"
	}

	m := TableModel{
		state:      ViewStateList,
		ctx:        ctx,
		ds:         ds,
		vm:         vm,
		textInput:  newFilterInput(opts.FilterPlaceholder),
		width:      defaultWidth,
		height:     defaultHeight,
		pageSizes:  pageSizes,
		exportPath: exportPath,
		theme:      opts.Theme,
		notifier:   opts.Notifier,
		logger:     logger,
	}
	m.unsubscribe = m.notifier.Subscribe(func(st notify.ModalState) {
		logger.Debug().Bool("open", st.Open).Str("title", st.Title).Msg("modal state changed")
	})
	m.rebuildTable()
	return m, nil
}

func newFilterInput(placeholder string) textinput.Model {
	if placeholder == "" {
		placeholder = "Filter"
	}
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth
	ti.Prompt = ""
	return ti
}

// ViewModel exposes the underlying view model.
func (m TableModel) ViewModel() *tabular.ViewModel { return m.vm }

// State returns the current view state.
func (m TableModel) State() ViewState { return m.state }

// SelectedColumn returns the index of the column targeted by the s key.
func (m TableModel) SelectedColumn() int { return m.column }

// Status returns the transient status line.
func (m TableModel) Status() string { return m.status }

// Init initializes the model (Bubble Tea interface).
func (m TableModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m TableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if winMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = winMsg.Width
		m.height = winMsg.Height
		m.rebuildTable()
		return m, nil
	}

	if reloaded, ok := msg.(RowsReloadedMsg); ok {
		return m.handleRowsReloaded(reloaded)
	}

	if m.notifier.Current().Open {
		return m.handleModalInput(msg)
	}

	switch m.state {
	case ViewStateFilter:
		return m.handleFilterInput(msg)
	case ViewStateList:
		return m.handleListUpdate(msg)
	case ViewStateQuitting:
		return m, nil
	default:
		return m, nil
	}
}

func (m TableModel) handleRowsReloaded(msg RowsReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Warn().Err(msg.Err).Msg("dataset reload failed")
		m.notifier.ShowError(msg.Err.Error(), "Reload Failed")
		return m, nil
	}
	if msg.Dataset == nil {
		return m, nil
	}

	if !slices.Equal(msg.Dataset.Columns, m.vm.Columns()) {
		if err := m.vm.SetColumns(msg.Dataset.Columns); err != nil {
			m.notifier.ShowError(err.Error(), "Reload Failed")
			return m, nil
		}
		m.column = min(m.column, max(len(msg.Dataset.Columns)-1, 0))
	}
	m.ds = msg.Dataset
	m.vm.SetRows(msg.Dataset.Rows)
	m.rebuildTable()

	m.logger.Info().Int("rows", m.vm.TotalCount()).Msg("dataset reloaded")
	m.notifier.ShowSuccess(fmt.Sprintf("Reloaded %d rows from %s", m.vm.TotalCount(), msg.Dataset.Source),
		"Dataset Updated")
	return m, nil
}

func (m TableModel) handleModalInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case keyEnter, keyY:
		m.notifier.Confirm()
	case keyEsc, keyN:
		m.notifier.Cancel()
	case keyCtrlC:
		return m.quit()
	}
	return m, nil
}

func (m TableModel) handleFilterInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter, keyEsc:
			m.state = ViewStateList
			m.textInput.Blur()
			m.applyFilter()
			return m, nil
		case keyCtrlC:
			return m.quit()
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m TableModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m.handleListKeypress(keyMsg)
}

//nolint:gocyclo,cyclop,funlen // One case per key binding.
func (m TableModel) handleListKeypress(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	key := keyMsg.String()

	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= 9 {
		m.toggleSortColumn(n - 1)
		return m, nil
	}

	switch key {
	case keyQuit, keyCtrlC:
		return m.quit()
	case keySlash:
		m.state = ViewStateFilter
		cmd := m.textInput.Focus()
		return m, cmd
	case keyEsc:
		if m.textInput.Value() != "" {
			m.textInput.SetValue("")
			m.applyFilter()
		}
		return m, nil
	case keyTab:
		if n := len(m.vm.Columns()); n > 0 {
			m.column = (m.column + 1) % n
			m.rebuildTable()
		}
		return m, nil
	case keyShiftTab:
		if n := len(m.vm.Columns()); n > 0 {
			m.column = (m.column - 1 + n) % n
			m.rebuildTable()
		}
		return m, nil
	case keyS:
		m.toggleSortColumn(m.column)
		return m, nil
	case keyLeft, keyH:
		m.vm.PrevPage()
		m.rebuildTable()
		return m, nil
	case keyRight, keyL:
		m.vm.NextPage()
		m.rebuildTable()
		return m, nil
	case keyG:
		m.vm.FirstPage()
		m.rebuildTable()
		return m, nil
	case keyShiftG:
		m.vm.LastPage()
		m.rebuildTable()
		return m, nil
	case keyPlus:
		m.cyclePageSize(1)
		return m, nil
	case keyMinus:
		m.cyclePageSize(-1)
		return m, nil
	case keyT:
		m.toggleTheme()
		return m, nil
	case keyE:
		m.confirmExport()
		return m, nil
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(keyMsg)
		return m, cmd
	}
}

func (m TableModel) quit() (tea.Model, tea.Cmd) {
	m.state = ViewStateQuitting
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	return m, tea.Quit
}

func (m *TableModel) applyFilter() {
	m.vm.SetFilter(m.textInput.Value())
	m.rebuildTable()
}

func (m *TableModel) toggleSortColumn(idx int) {
	cols := m.vm.Columns()
	if idx < 0 || idx >= len(cols) {
		return
	}
	m.column = idx
	if !cols[idx].Sortable {
		m.status = fmt.Sprintf("%s is not sortable", cols[idx].Title())
		m.rebuildTable()
		return
	}
	m.vm.SetSort(cols[idx].Key)
	m.rebuildTable()
}

// cyclePageSize moves to the next larger (dir > 0) or smaller page size
// option, staying put at either end.
func (m *TableModel) cyclePageSize(dir int) {
	current := m.vm.PageState().PageSize
	next := current
	if dir > 0 {
		for _, s := range m.pageSizes {
			if s > current {
				next = s
				break
			}
		}
	} else {
		for i := len(m.pageSizes) - 1; i >= 0; i-- {
			if m.pageSizes[i] < current {
				next = m.pageSizes[i]
				break
			}
		}
	}
	if next == current {
		return
	}
	if err := m.vm.SetPageSize(next); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("Page size %d", next)
	m.rebuildTable()
}

func (m *TableModel) toggleTheme() {
	mode, err := m.theme.Toggle()
	if err != nil {
		m.logger.Warn().Err(err).Msg("theme toggle failed")
		m.notifier.ShowError(err.Error(), "Theme")
		return
	}
	m.status = fmt.Sprintf("Theme: %s", mode)
	m.rebuildTable()
}

func (m *TableModel) confirmExport() {
	count := m.vm.FilteredCount()
	path := m.exportPath
	vm := m.vm
	notifier := m.notifier
	logger := m.logger

	notifier.ShowConfirm(
		fmt.Sprintf("Export %d rows to %s?", count, path),
		"Export CSV",
		func() {
			if err := render.CSVFile(path, vm, render.ScopeAll); err != nil {
				logger.Error().Err(err).Str("path", path).Msg("export failed")
				notifier.ShowError(err.Error(), "Export Failed")
				return
			}
			logger.Info().Str("path", path).Int("rows", count).Msg("exported rows")
			notifier.ShowSuccess("Data exported successfully!", "Export Complete")
		},
		nil,
	)
}

// rebuildTable reconstructs the table widget from the visible rows.
func (m *TableModel) rebuildTable() {
	styles := m.theme.Styles()
	cols := m.vm.Columns()
	rows := m.vm.VisibleRows()
	sortState := m.vm.SortState()

	tableCols := make([]table.Column, len(cols))
	for i, c := range cols {
		title := render.HeaderText(c, sortState)
		if i == m.column {
			title = "[" + title + "]"
		}
		tableCols[i] = table.Column{Title: title, Width: runewidth.StringWidth(title)}
	}

	tableRows := make([]table.Row, len(rows))
	for r, row := range rows {
		cells := make(table.Row, len(cols))
		for i, c := range cols {
			cells[i] = render.CellText(row[c.Key])
			tableCols[i].Width = max(tableCols[i].Width, runewidth.StringWidth(cells[i]))
		}
		tableRows[r] = cells
	}
	for i := range tableCols {
		tableCols[i].Width = min(tableCols[i].Width, maxColumnWidth)
	}

	height := max(min(len(tableRows), m.height-chromeHeight), minHeight)

	t := table.New(
		table.WithColumns(tableCols),
		table.WithRows(tableRows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = styles.Header
	s.Selected = styles.Selected
	s.Cell = styles.Cell
	t.SetStyles(s)

	m.table = t
}

// View renders the current view (Bubble Tea interface).
func (m TableModel) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}

	if st := m.notifier.Current(); st.Open {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			RenderModal(st, m.theme.Styles()))
	}

	styles := m.theme.Styles()
	parts := []string{styles.Title.Render(m.ds.DisplayTitle())}

	switch {
	case m.state == ViewStateFilter:
		parts = append(parts, styles.FilterPrompt.Render("Filter: ")+m.textInput.View())
	case m.vm.FilterState().Active():
		parts = append(parts, styles.FilterPrompt.Render("Filter: ")+m.vm.FilterState().Query)
	}

	parts = append(parts, m.table.View())
	if m.vm.FilteredCount() == 0 {
		parts = append(parts, styles.Empty.Render(render.EmptyMessage))
	}

	footer := render.Footer(m.vm) + fmt.Sprintf(" · %d per page", m.vm.PageState().PageSize)
	parts = append(parts, styles.Pager.Render(footer))
	if m.status != "" {
		parts = append(parts, m.status)
	}
	parts = append(parts, styles.Help.Render(helpText))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// RenderModal draws a modal box in the style of its variant.
func RenderModal(st notify.ModalState, styles theme.Styles) string {
	var box lipgloss.Style
	switch st.Variant {
	case notify.VariantDanger:
		box = styles.ModalDanger
	case notify.VariantSuccess:
		box = styles.ModalSuccess
	case notify.VariantWarning:
		box = styles.ModalWarning
	default:
		box = styles.ModalDefault
	}

	buttons := "[enter] " + st.ConfirmText
	if st.ShowCancel {
		buttons += "   [esc] " + st.CancelText
	}

	body := strings.Join([]string{styles.ModalTitle.Render(st.Title), "", st.Message, "", buttons}, "\n")
	return box.Render(body)
}
