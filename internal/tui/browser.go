// ABOUTME: Interactive registry browser: freshness banner, partner table, filters, edits, imports.
// ABOUTME: Expensive work runs in tea.Cmds that hand back one immutable result message each.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/partnerdesk/internal/config"
	"github.com/2389-research/partnerdesk/internal/models"
	"github.com/2389-research/partnerdesk/internal/registry"
)

// Mode is what the keyboard is currently driving.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeSearch
	ModeEditFolder
	ModeImport
)

// RefreshMsg asks the browser to re-project the registry. The watch command
// sends it from outside the program.
type RefreshMsg struct{}

// viewLoadedMsg carries a finished projection. seq identifies the request so a
// slow, superseded projection never replaces a newer one.
type viewLoadedMsg struct {
	seq  int
	view registry.View
	err  error
}

type importDoneMsg struct {
	result *registry.ImportResult
	err    error
}

type folderSavedMsg struct {
	id      string
	applied bool
	err     error
}

// BrowserModel is the bubbletea model for the registry browser.
type BrowserModel struct {
	engine  *registry.Engine
	cfg     *config.Config
	checker registry.FolderChecker

	mode      Mode
	filter    models.FilterMode
	search    textinput.Model
	editor    textinput.Model
	editingID string

	table     table.Model
	spinner   spinner.Model
	freshness registry.Freshness
	view      registry.View
	seq       int
	loading   bool
	importing bool
	status    string
	statusErr bool
	width     int
}

var (
	freshStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
	staleStyle   = warnStyle.Bold(true)
	missingStyle = errorStyle.Bold(true)
	helpStyle    = promptStyle
)

// NewBrowserModel creates a browser over engine using cfg for the archive and
// staleness threshold. checker may be nil to use the filesystem.
func NewBrowserModel(engine *registry.Engine, cfg *config.Config, checker registry.FolderChecker) BrowserModel {
	search := textinput.New()
	search.Placeholder = "name or ID"
	search.Prompt = "/ "
	search.Width = 40

	editor := textinput.New()
	editor.Width = 50

	s := spinner.New()
	s.Spinner = spinner.Dot

	t := table.New(
		table.WithColumns(columns(100)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	return BrowserModel{
		engine:  engine,
		cfg:     cfg,
		checker: checker,
		search:  search,
		editor:  editor,
		table:   t,
		spinner: s,
	}
}

func columns(width int) []table.Column {
	name := width - 12 - 24 - 18 - 4 - 10
	if name < 16 {
		name = 16
	}
	return []table.Column{
		{Title: "ID", Width: 12},
		{Title: "Name", Width: name},
		{Title: "Folder", Width: 24},
		{Title: "Updated", Width: 18},
		{Title: "✓", Width: 4},
	}
}

// Init implements tea.Model.
func (m BrowserModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg { return RefreshMsg{} })
}

// refresh evaluates freshness inline and starts a projection off the update loop.
func (m BrowserModel) refresh() (BrowserModel, tea.Cmd) {
	m.freshness = m.engine.Freshness(m.cfg)
	m.seq++
	m.loading = true

	seq := m.seq
	engine, cfg, checker := m.engine, m.cfg, m.checker
	q := registry.Query{Filter: m.filter, Search: m.search.Value()}
	return m, func() tea.Msg {
		v, err := engine.View(context.Background(), cfg, q, checker)
		return viewLoadedMsg{seq: seq, view: v, err: err}
	}
}

// Update implements tea.Model.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetColumns(columns(msg.Width))
		h := msg.Height - 10
		if h < 3 {
			h = 3
		}
		m.table.SetHeight(h)
		return m, nil

	case RefreshMsg:
		return m.refresh()

	case viewLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("view failed: %v", msg.err), true)
			return m, nil
		}
		m.view = msg.view
		m.table.SetRows(rowsFor(msg.view))
		return m, nil

	case importDoneMsg:
		m.importing = false
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("import failed, registry unchanged: %v", msg.err), true)
			return m, nil
		}
		r := msg.result
		m.setStatus(fmt.Sprintf("imported %d rows: %d new, %d renamed, %d unchanged, %d skipped",
			r.Rows, r.Inserted, r.Renamed, r.Unchanged, r.Skipped), false)
		return m.refresh()

	case folderSavedMsg:
		switch {
		case msg.err != nil:
			m.setStatus(fmt.Sprintf("folder not saved: %v", msg.err), true)
			return m, nil
		case !msg.applied:
			m.setStatus(fmt.Sprintf("partner %s not found in registry", msg.id), true)
		default:
			m.setStatus(fmt.Sprintf("folder for %s saved", msg.id), false)
		}
		return m.refresh()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeEditFolder, ModeImport:
			return m.updateEditor(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m BrowserModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		switch msg.Runes[0] {
		case 'q':
			return m, tea.Quit
		case '1':
			m.filter = models.FilterAll
			return m.refresh()
		case '2':
			m.filter = models.FilterMissingFolder
			return m.refresh()
		case '3', '/':
			m.mode = ModeSearch
			m.filter = models.FilterSearch
			m.search.Focus()
			return m.refresh()
		case 'r':
			return m.refresh()
		case 'e':
			row := m.table.SelectedRow()
			if row == nil {
				return m, nil
			}
			m.mode = ModeEditFolder
			m.editingID = row[0]
			m.editor.Prompt = fmt.Sprintf("folder for %s: ", row[0])
			m.editor.Placeholder = "folder name (empty to clear)"
			m.editor.SetValue(row[2])
			m.editor.Focus()
			return m, textinput.Blink
		case 'i':
			if m.importing {
				return m, nil
			}
			m.mode = ModeImport
			m.editor.Prompt = "import file: "
			m.editor.Placeholder = "/path/to/partners.xlsx"
			m.editor.SetValue("")
			m.editor.Focus()
			return m, textinput.Blink
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m BrowserModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEscape:
		m.mode = ModeBrowse
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	// typing always switches to the search filter
	m.filter = models.FilterSearch
	m, refresh := m.refresh()
	return m, tea.Batch(cmd, refresh)
}

func (m BrowserModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeBrowse
		m.editor.Blur()
		return m, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.editor.Value())
		mode := m.mode
		m.mode = ModeBrowse
		m.editor.Blur()
		if mode == ModeImport {
			if value == "" {
				return m, nil
			}
			return m.startImport(value)
		}
		return m, m.saveFolder(m.editingID, value)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m BrowserModel) startImport(path string) (tea.Model, tea.Cmd) {
	m.importing = true
	m.setStatus("importing "+path, false)
	engine := m.engine
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		res, err := engine.ImportFile(context.Background(), path)
		return importDoneMsg{result: res, err: err}
	})
}

func (m BrowserModel) saveFolder(id, folder string) tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		applied, err := engine.SetFolder(context.Background(), id, folder)
		return folderSavedMsg{id: id, applied: applied, err: err}
	}
}

func (m *BrowserModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func rowsFor(v registry.View) []table.Row {
	rows := make([]table.Row, 0, len(v.Partners))
	for _, p := range v.Partners {
		mark := "✗"
		if p.HasFolder {
			mark = "✓"
		}
		rows = append(rows, table.Row{p.ID, p.Name, p.Folder, p.UpdatedAt, mark})
	}
	return rows
}

// View implements tea.Model.
func (m BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(brandStyle.Render("PARTNERDESK"))
	b.WriteString("  ")
	b.WriteString(m.freshnessBanner())
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Total: %d  ", m.view.Total))
	b.WriteString(missingStyle.Render(fmt.Sprintf("Missing folders: %d", m.view.Missing)))
	b.WriteString(fmt.Sprintf("  Filter: %s", m.filter))
	if m.loading || m.importing {
		b.WriteString("  " + m.spinner.View())
	}
	b.WriteString("\n")

	if m.mode == ModeSearch || m.filter == models.FilterSearch {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")

	if m.mode == ModeEditFolder || m.mode == ModeImport {
		b.WriteString(m.editor.View())
		b.WriteString("\n")
	}

	if m.status != "" {
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(successStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("[1] all  [2] missing folders  [/] search  [e] edit folder  [i] import  [r] refresh  [q] quit"))
	b.WriteString("\n")
	return b.String()
}

func (m BrowserModel) freshnessBanner() string {
	f := m.freshness
	label := strings.ToUpper(f.Label)
	if label == "" {
		label = "CHECKING REGISTRY"
	}
	var styled string
	switch f.State {
	case registry.Fresh:
		styled = freshStyle.Render(label)
	case registry.Stale:
		styled = staleStyle.Render(label)
	default:
		styled = missingStyle.Render(label)
	}
	last := f.LastSync
	if last == "" {
		last = registry.NoSyncDisplay
	}
	return fmt.Sprintf("%s  last sync: %s", styled, last)
}

// Filter returns the active filter mode.
func (m BrowserModel) Filter() models.FilterMode {
	return m.filter
}

// CurrentView returns the last applied projection.
func (m BrowserModel) CurrentView() registry.View {
	return m.view
}
