// ABOUTME: Interactive TUI wizard for partnerdesk settings.
// ABOUTME: 3-step bubbletea model collecting archive path, export path, and sync interval.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/partnerdesk/internal/config"
)

// Step represents the current wizard step.
type Step int

const (
	StepArchive Step = iota
	StepExport
	StepInterval
	StepValidating
	StepDone
	StepFailed
)

// validationResultMsg carries the result of an async validation attempt.
type validationResultMsg struct {
	err error
}

// ValidateFn is the function signature for archive validation.
type ValidateFn func(ctx context.Context, archivePath string) error

// cancelHolder shares a cancel function across bubbletea model copies.
// This MUST be stored as a pointer field on SetupModel so that value-receiver
// methods (required by tea.Model) can store the cancel func and have it
// visible to all copies of the model.
type cancelHolder struct {
	cancel context.CancelFunc
}

// SetupModel is the bubbletea model for the settings wizard.
type SetupModel struct {
	step          Step
	inputs        [2]textinput.Model
	interval      int // index into config.IntervalLabels
	spinner       spinner.Model
	validateFn    ValidateFn
	cancelCtx     *cancelHolder
	validationErr error
	quitting      bool
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	choiceStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
)

// NewSetupModel creates a new settings wizard, pre-filled from cfg.
func NewSetupModel(cfg *config.Config) SetupModel {
	archiveInput := textinput.New()
	archiveInput.Placeholder = "/mnt/archive/partners"
	archiveInput.Focus()
	archiveInput.Width = 60
	archiveInput.SetValue(cfg.ArchivePath)

	exportInput := textinput.New()
	exportInput.Placeholder = "/mnt/production/export"
	exportInput.Width = 60
	exportInput.SetValue(cfg.ExportPath)

	s := spinner.New()
	s.Spinner = spinner.Dot

	return SetupModel{
		step:       StepArchive,
		inputs:     [2]textinput.Model{archiveInput, exportInput},
		interval:   intervalIndex(cfg.SyncInterval),
		spinner:    s,
		validateFn: ValidateArchive,
		cancelCtx:  &cancelHolder{},
	}
}

func intervalIndex(label string) int {
	for i, l := range config.IntervalLabels {
		if l == label {
			return i
		}
	}
	for i, l := range config.IntervalLabels {
		if l == config.DefaultInterval {
			return i
		}
	}
	return 0
}

// Init implements tea.Model.
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			if m.cancelCtx.cancel != nil {
				m.cancelCtx.cancel()
			}
			return m, tea.Quit
		}

		switch m.step {
		case StepArchive, StepExport:
			return m.updateInput(msg)
		case StepInterval:
			return m.updateInterval(msg)
		case StepFailed:
			return m.updateFailed(msg)
		}

	case validationResultMsg:
		m.cancelCtx.cancel = nil
		if msg.err == nil {
			m.step = StepDone
			return m, tea.Quit
		}
		m.validationErr = msg.err
		m.step = StepFailed
		return m, nil

	case spinner.TickMsg:
		if m.step == StepValidating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	idx := int(m.step)
	if msg.Type == tea.KeyEnter {
		m.inputs[idx].SetValue(strings.TrimSpace(m.inputs[idx].Value()))

		// The archive is required; the export path may stay empty.
		if m.step == StepArchive && m.inputs[0].Value() == "" {
			return m, nil
		}

		m.inputs[idx].Blur()
		if m.step == StepArchive {
			m.step = StepExport
			m.inputs[1].Focus()
			return m, textinput.Blink
		}
		m.step = StepInterval
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

func (m SetupModel) updateInterval(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyLeft, tea.KeyShiftTab:
		if m.interval > 0 {
			m.interval--
		}
	case tea.KeyRight, tea.KeyTab:
		if m.interval < len(config.IntervalLabels)-1 {
			m.interval++
		}
	case tea.KeyEnter:
		m.step = StepValidating
		return m, tea.Batch(m.startValidation(), m.spinner.Tick)
	}
	return m, nil
}

func (m SetupModel) updateFailed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyRunes {
		switch msg.Runes[0] {
		case 'r':
			m.step = StepValidating
			m.validationErr = nil
			return m, tea.Batch(m.startValidation(), m.spinner.Tick)
		case 's':
			m.step = StepDone
			return m, tea.Quit
		case 'q':
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m SetupModel) startValidation() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelCtx.cancel = cancel
	archive := m.inputs[0].Value()
	fn := m.validateFn
	return func() tea.Msg {
		return validationResultMsg{err: fn(ctx, archive)}
	}
}

// View implements tea.Model.
func (m SetupModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   PARTNERDESK"))
	b.WriteString(titleStyle.Render(" - Settings"))
	b.WriteString("\n\n")

	switch m.step {
	case StepArchive:
		b.WriteString(stepStyle.Render("Step 1 of 3: Archive folder"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("(directory holding one folder per partner)"))
		b.WriteString("\n")
		b.WriteString(m.inputs[0].View())
		b.WriteString("\n")

	case StepExport:
		b.WriteString(fmt.Sprintf("  Archive: %s\n\n", m.inputs[0].Value()))
		b.WriteString(stepStyle.Render("Step 2 of 3: Production export folder"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("(optional, press Enter to skip)"))
		b.WriteString("\n")
		b.WriteString(m.inputs[1].View())
		b.WriteString("\n")

	case StepInterval:
		b.WriteString(fmt.Sprintf("  Archive: %s\n", m.inputs[0].Value()))
		b.WriteString(fmt.Sprintf("  Export:  %s\n\n", m.inputs[1].Value()))
		b.WriteString(stepStyle.Render("Step 3 of 3: Registry sync interval"))
		b.WriteString("\n")
		for i, label := range config.IntervalLabels {
			if i == m.interval {
				b.WriteString(choiceStyle.Render("[" + label + "]"))
			} else {
				b.WriteString(" " + promptStyle.Render(label) + " ")
			}
		}
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("(←/→ to choose, Enter to confirm)"))
		b.WriteString("\n")

	case StepValidating:
		b.WriteString(fmt.Sprintf("  Archive:  %s\n", m.inputs[0].Value()))
		b.WriteString(fmt.Sprintf("  Export:   %s\n", m.inputs[1].Value()))
		b.WriteString(fmt.Sprintf("  Interval: %s\n\n", config.IntervalLabels[m.interval]))
		b.WriteString(m.spinner.View())
		b.WriteString(" Checking archive folder...")
		b.WriteString("\n")

	case StepDone:
		b.WriteString(successStyle.Render("✓ Settings ready"))
		b.WriteString("\n")

	case StepFailed:
		errMsg := "unknown error"
		if m.validationErr != nil {
			errMsg = m.validationErr.Error()
		}
		b.WriteString(errorStyle.Render(fmt.Sprintf("✗ Archive check failed: %s", errMsg)))
		b.WriteString("\n\n")
		b.WriteString(promptStyle.Render("[r]etry  [s]ave anyway  [q]uit"))
		b.WriteString("\n")
	}

	return b.String()
}

// Result returns the entered values.
func (m SetupModel) Result() (archivePath, exportPath, syncInterval string) {
	return m.inputs[0].Value(), m.inputs[1].Value(), config.IntervalLabels[m.interval]
}

// ShouldSave returns true if the wizard completed (via validation success or
// "save anyway") and the user did not cancel with Ctrl+C, Escape, or 'q'.
func (m SetupModel) ShouldSave() bool {
	return m.step == StepDone && !m.quitting
}
