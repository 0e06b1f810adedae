package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/jvm-bridge/jvm"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	methodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// presets seed the call form. The last entry starts empty.
var presets = []staticCall{
	{class: "java.lang.Integer", method: "parseInt", sig: "(Ljava/lang/String;)I", args: []string{"42"}},
	{class: "java.lang.Math", method: "max", sig: "(JJ)J", args: []string{"-3", "9"}},
	{class: "java.lang.System", method: "getProperty", sig: "(Ljava/lang/String;)Ljava/lang/String;", args: []string{"java.version"}},
	{class: "java.lang.System", method: "currentTimeMillis", sig: "()J"},
	{},
}

const (
	fieldClass = iota
	fieldMethod
	fieldSig
	fieldArgs
	fieldCount
)

var fieldPrompts = [fieldCount]string{"class: ", "method: ", "descriptor: ", "args: "}

type interactiveModel struct {
	err      error
	jvm      *jvm.JVM
	cfg      jvm.Config
	result   string
	call     staticCall
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

type modelState int

const (
	stateSelectCall modelState = iota
	stateInputCall
	stateShowResult
)

func newInteractiveModel(cfg jvm.Config) *interactiveModel {
	return &interactiveModel{
		cfg:   cfg,
		state: stateSelectCall,
	}
}

type createdMsg struct {
	err error
	jvm *jvm.JVM
}

type callResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.createJVM
}

func (m *interactiveModel) createJVM() tea.Msg {
	j, err := jvm.CreateFromConfig(m.cfg)
	return createdMsg{jvm: j, err: err}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.shutdown()
			return m, tea.Quit

		case "q":
			if m.state != stateInputCall {
				m.shutdown()
				return m, tea.Quit
			}

		case "up":
			if m.state == stateSelectCall && m.selected > 0 {
				m.selected--
			}

		case "down":
			if m.state == stateSelectCall && m.selected < len(presets)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectCall:
				if m.jvm == nil {
					return m, nil
				}
				m.prepareInputs(presets[m.selected])
				m.state = stateInputCall
				return m, nil

			case stateInputCall:
				m.call = m.formCall()
				return m, m.callMethod

			case stateShowResult:
				m.state = stateSelectCall
				m.result = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputCall {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputCall:
				m.state = stateSelectCall
				m.inputs = nil
			case stateShowResult:
				m.state = stateInputCall
				m.result = ""
				m.err = nil
			}
		}

	case createdMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.jvm = msg.jvm

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputCall {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) shutdown() {
	if m.jvm != nil {
		shutdown(m.jvm)
	}
}

func (m *interactiveModel) prepareInputs(c staticCall) {
	values := [fieldCount]string{c.class, c.method, c.sig, strings.Join(c.args, ", ")}
	m.inputs = make([]textinput.Model, fieldCount)
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = fieldPrompts[i]
		ti.Width = 60
		ti.SetValue(values[i])
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()
	m.focusIdx = 0
}

// formCall reads the form. Arguments are comma separated.
func (m *interactiveModel) formCall() staticCall {
	c := staticCall{
		class:  strings.TrimSpace(m.inputs[fieldClass].Value()),
		method: strings.TrimSpace(m.inputs[fieldMethod].Value()),
		sig:    strings.TrimSpace(m.inputs[fieldSig].Value()),
	}
	if args := strings.TrimSpace(m.inputs[fieldArgs].Value()); args != "" {
		for _, a := range strings.Split(args, ",") {
			c.args = append(c.args, strings.TrimSpace(a))
		}
	}
	return c
}

func (m *interactiveModel) callMethod() tea.Msg {
	if m.jvm == nil {
		return callResultMsg{err: fmt.Errorf("JVM not created")}
	}
	result, err := m.call.run(m.jvm)
	return callResultMsg{result: result, err: err}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.jvm == nil {
		return "Starting JVM..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("JVM Runner"))
	b.WriteString(" ")
	b.WriteString(typeStyle.Render("JNI " + m.jvm.Version().String()))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectCall:
		b.WriteString("Select a static method to call:\n\n")
		for i, c := range presets {
			line := "(custom)"
			if c.class != "" {
				line = formatCall(c)
			}
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter edit • q quit"))

	case stateInputCall:
		b.WriteString("Static call\n\n")
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter call • esc back"))

	case stateShowResult:
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", formatCall(m.call)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • esc edit • q quit"))
	}

	return b.String()
}

func formatCall(c staticCall) string {
	return methodStyle.Render(c.String()) + " " + typeStyle.Render("["+strings.Join(c.args, ", ")+"]")
}

func runInteractive(cfg jvm.Config) error {
	p := tea.NewProgram(newInteractiveModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
