package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mgomes/qscript/qscript"
)

var (
	accentColor = lipgloss.Color("#3B82F6")
	mutedColor  = lipgloss.Color("#6B7280")

	promptStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	outputStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

const (
	replPrompt         = "qscript> "
	replContinuePrompt = "     ... "
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

// replSession owns the machine and any block still being typed. It is shared
// by pointer so the value-typed model can mutate it.
type replSession struct {
	engine  *qscript.Engine
	machine *qscript.Machine
	out     *bytes.Buffer
	pending []string
	depth   int
}

func newREPLSession() *replSession {
	out := new(bytes.Buffer)
	engine := qscript.MustNewEngine(qscript.Config{Output: out})
	return &replSession{engine: engine, machine: engine.NewMachine(), out: out}
}

// submit buffers line until every LOOP and IF opened at the prompt is closed,
// then runs the buffered block. It reports whether more input is needed.
func (s *replSession) submit(line string) (string, bool, error) {
	fields := strings.Fields(line)
	if len(fields) > 0 {
		switch fields[0] {
		case "LOOP", "IF":
			s.depth++
		case "ENDLOOP", "ENDIF":
			if s.depth > 0 {
				s.depth--
			}
		}
	}
	s.pending = append(s.pending, line)
	if s.depth > 0 {
		return "", true, nil
	}

	program := qscript.Compile(strings.Join(s.pending, "\n"))
	s.pending = nil
	err := s.machine.Run(context.Background(), program)
	output := strings.TrimRight(s.out.String(), "\n")
	s.out.Reset()
	return output, false, err
}

func (s *replSession) reset() {
	s.machine.Reset()
	s.pending = nil
	s.depth = 0
	s.out.Reset()
}

type replModel struct {
	textInput   textinput.Model
	session     *replSession
	history     []historyEntry
	recall      []string
	recallIdx   int
	height      int
	showHelp    bool
	showState   bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Quit     key.Binding
	Prev     key.Binding
	Next     key.Binding
	Submit   key.Binding
	Complete key.Binding
	State    key.Binding
	Help     key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
	Prev:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous line")),
	Next:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next line")),
	Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
	Complete: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
	State:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "registers")),
	Help:     key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "help")),
}

func newREPLModel() replModel {
	ti := textinput.New()
	ti.Placeholder = "QREG 2"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = replPrompt

	return replModel{
		textInput: ti,
		session:   newREPLSession(),
		recallIdx: -1,
	}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.State):
			m.showState = !m.showState
			return m, nil
		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, keys.Prev):
			return m.recallLine(-1), nil
		case key.Matches(msg, keys.Next):
			return m.recallLine(1), nil
		case key.Matches(msg, keys.Complete):
			return m.handleAutocomplete(), nil
		case key.Matches(msg, keys.Submit):
			return m.submitInput()
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) submitInput() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textInput.Value())
	m.textInput.SetValue("")
	m.recallIdx = -1
	if input == "" {
		return m, nil
	}
	if strings.HasPrefix(input, ":") {
		model, cmd := m.handleCommand(input)
		return model, cmd
	}
	m.recall = append(m.recall, input)
	return m.evaluate(input), nil
}

// recallLine steps through previously submitted lines; dir is -1 for older
// and 1 for newer. Stepping past the newest clears the input.
func (m replModel) recallLine(dir int) replModel {
	if len(m.recall) == 0 {
		return m
	}
	switch {
	case m.recallIdx == -1 && dir < 0:
		m.recallIdx = len(m.recall) - 1
	case m.recallIdx == -1:
		return m
	default:
		m.recallIdx += dir
	}
	if m.recallIdx < 0 {
		m.recallIdx = 0
	}
	if m.recallIdx >= len(m.recall) {
		m.recallIdx = -1
		m.textInput.SetValue("")
		return m
	}
	m.textInput.SetValue(m.recall[m.recallIdx])
	m.textInput.CursorEnd()
	return m
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	cmd := strings.Fields(input)[0]
	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = nil
	case ":state", ":s":
		m.showState = !m.showState
	case ":reset", ":r":
		m.session.reset()
		m.textInput.Prompt = replPrompt
		m.history = append(m.history, historyEntry{input: input, output: "Registers reset"})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("Unknown command: %s", cmd),
			isErr:  true,
		})
	}
	return m, nil
}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	words := strings.Fields(input)
	if len(words) != 1 || strings.HasSuffix(input, " ") {
		return m
	}
	word := strings.ToUpper(words[0])

	var completions []string
	for _, name := range qscript.Commands() {
		if strings.HasPrefix(name, word) {
			completions = append(completions, name)
		}
	}

	if len(completions) == 1 {
		m.textInput.SetValue(completions[0] + " ")
		m.textInput.CursorEnd()
	} else if len(completions) > 1 {
		m.history = append(m.history, historyEntry{
			output: "Completions: " + strings.Join(completions, ", "),
		})
	}
	return m
}

func (m replModel) evaluate(input string) replModel {
	output, more, err := m.session.submit(input)
	if more {
		m.textInput.Prompt = replContinuePrompt
		m.history = append(m.history, historyEntry{input: input})
		return m
	}
	m.textInput.Prompt = replPrompt

	entry := historyEntry{input: input, output: output}
	if err != nil {
		entry.isErr = true
		entry.output = strings.TrimLeft(output+"\n"+err.Error(), "\n")
	}
	m.history = append(m.history, entry)
	return m
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}
	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("QScript") + " " + mutedStyle.Render(registerSummary(m.session.machine)) + "\n\n")

	visible := m.height - 6
	if m.showHelp {
		visible -= 10
	}
	if m.showState {
		visible -= 8
	}
	start := 0
	if visible > 0 && len(m.history) > visible {
		start = len(m.history) - visible
	}
	for _, entry := range m.history[start:] {
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  › ") + entry.input + "\n")
		}
		switch {
		case entry.isErr:
			b.WriteString("  " + errorStyle.Render("✗ "+entry.output) + "\n\n")
		case entry.output != "":
			b.WriteString("  " + outputStyle.Render("→ "+entry.output) + "\n\n")
		}
	}

	if m.showState {
		b.WriteString(renderStatePanel(m.session) + "\n")
	}
	if m.showHelp {
		b.WriteString(renderHelpPanel() + "\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	footer := make([]string, 0, 3)
	for _, binding := range []key.Binding{keys.Help, keys.State, keys.Quit} {
		help := binding.Help()
		footer = append(footer, keyStyle.Render(help.Key)+mutedStyle.Render(" "+help.Desc))
	}
	b.WriteString(strings.Join(footer, "  "))
	return b.String()
}

// registerSummary describes the allocated registers for the header line.
func registerSummary(machine *qscript.Machine) string {
	state, haveQ := machine.StateVector()
	bits, haveC := machine.ClassicalBits()
	if !haveQ && !haveC {
		return "no registers"
	}
	return fmt.Sprintf("%d qubit(s), %d bit(s)", len(state), len(bits))
}

func renderStatePanel(session *replSession) string {
	lines := []string{titleStyle.Render("Registers")}

	state, ok := session.machine.StateVector()
	if !ok {
		lines = append(lines, mutedStyle.Render("  no quantum register (QREG n)"))
	}
	for i, amp := range state {
		lines = append(lines, fmt.Sprintf("  %s  α=%s  β=%s",
			keyStyle.Render(fmt.Sprintf("q[%d]", i)),
			qscript.FormatAmplitude(amp.Alpha),
			qscript.FormatAmplitude(amp.Beta)))
	}

	bits, ok := session.machine.ClassicalBits()
	if !ok {
		lines = append(lines, mutedStyle.Render("  no classical register (CREG n)"))
	} else {
		parts := make([]string, len(bits))
		for i, bit := range bits {
			parts[i] = fmt.Sprintf("%d", bit)
		}
		lines = append(lines, fmt.Sprintf("  %s  [%s]", keyStyle.Render("c"), strings.Join(parts, " ")))
	}

	if len(session.pending) > 0 {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("  %d line(s) buffered, %d block(s) open", len(session.pending), session.depth)))
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}

func renderHelpPanel() string {
	help := [][2]string{
		{"↑/↓", "Recall earlier lines"},
		{"Tab", "Complete a command name"},
		{"Enter", "Run a line (LOOP/IF wait for ENDLOOP/ENDIF)"},
		{":help", "Toggle this help"},
		{":state", "Toggle the register panel"},
		{":clear", "Clear history"},
		{":reset", "Drop both registers"},
		{":quit", "Exit"},
	}

	lines := []string{titleStyle.Render("Help")}
	for _, h := range help {
		lines = append(lines, "  "+keyStyle.Render(fmt.Sprintf("%-8s", h[0]))+"  "+mutedStyle.Render(h[1]))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func runREPL() error {
	p := tea.NewProgram(newREPLModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
