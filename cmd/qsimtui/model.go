package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"qsim"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusMenu
	focusParam
	focusTarget
	focusQASM
)

// model is the TUI application state.
type model struct {
	grid        grid
	cursorQubit int
	cursorStep  int
	width       int
	height      int
	focus       focus
	statusMsg   string

	// Menu and placement state
	menuCat     int
	menuItem    int
	pendingGate menuItem
	paramInput  string
	targetQubit int

	// QASM editor
	qasmEditor textarea.Model
	lastQASM   string

	// Simulation results, refreshed after every circuit change
	qubitProbs []qsim.QubitProbability
	basis      []qsim.BasisState
	simErr     error
}

func initialModel() model {
	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(36)
	ta.SetHeight(16)
	ta.ShowLineNumbers = true
	ta.KeyMap.InsertNewline.SetEnabled(true)

	m := model{
		grid:       grid{numQubits: 3},
		qasmEditor: ta,
		focus:      focusCircuit,
	}
	m.sync()
	return m
}

// sync recomputes the QASM view and the simulation after a circuit change.
func (m *model) sync() {
	c := m.grid.compile()
	qasm := c.ToQASM()
	m.qasmEditor.SetValue(qasm)
	m.lastQASM = qasm
	m.simulate(c)
}

func (m *model) simulate(c *qsim.Circuit) {
	m.qubitProbs = nil
	m.basis = nil
	m.simErr = nil
	if m.grid.numQubits > maxLiveQubits {
		m.simErr = fmt.Errorf("live simulation capped at %d qubits", maxLiveQubits)
		return
	}
	s, err := c.Execute()
	if err != nil {
		m.simErr = err
		return
	}
	m.qubitProbs = s.QubitProbabilities()
	m.basis = s.BasisStates(1e-9)
}

// parseQASMInput re-parses the editor content when it changed.
func (m *model) parseQASMInput() {
	qasm := m.qasmEditor.Value()
	if qasm == m.lastQASM {
		return
	}
	if err := m.grid.fromQASM(qasm); err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.statusMsg = ""
	m.lastQASM = qasm
	m.simulate(m.grid.compile())
}

// placeGate drops the pending gate at the cursor position.
func (m *model) placeGate(item menuItem, target int) {
	pg := placedGate{
		name:    item.gateType,
		step:    m.cursorStep,
		target:  m.cursorQubit,
		control: -1,
	}
	if item.needsTarget {
		pg.control = m.cursorQubit
		pg.target = target
	}
	if item.needsParam {
		theta, ok := qsim.ParseAngle(m.paramInput)
		if !ok {
			m.statusMsg = "Invalid angle — use numbers or pi expressions (e.g. pi/2, 3*pi/4)"
			return
		}
		pg.theta = theta
		pg.hasTheta = true
	}
	m.grid.place(pg)
	m.paramInput = ""
	m.cursorStep++
	m.sync()
	m.focus = focusCircuit
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		qasmW := max(msg.Width/3-6, 24)
		m.qasmEditor.SetWidth(qasmW)
		m.qasmEditor.SetHeight(max(msg.Height-14, 6))

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusQASM
				m.qasmEditor.Focus()
			case "ctrl+r":
				m.grid.gates = nil
				m.cursorStep = 0
				m.sync()
			case "ctrl+s":
				qasm := m.grid.compile().ToQASM()
				if err := os.WriteFile("circuit.qasm", []byte(qasm), 0644); err != nil {
					m.statusMsg = fmt.Sprintf("Save error: %v", err)
				} else {
					m.statusMsg = "Saved circuit.qasm"
				}
			case "up", "k":
				if m.cursorQubit > 0 {
					m.cursorQubit--
				}
			case "down", "j":
				if m.cursorQubit < m.grid.numQubits-1 {
					m.cursorQubit++
				}
			case "left", "h":
				if m.cursorStep > 0 {
					m.cursorStep--
				}
			case "right", "l":
				m.cursorStep++
			case "+", "=":
				m.grid.numQubits++
				m.sync()
			case "-":
				if m.grid.numQubits > 1 {
					m.grid.numQubits--
					m.cursorQubit = min(m.cursorQubit, m.grid.numQubits-1)
					m.grid.removeOnQubit(m.grid.numQubits)
					m.sync()
				}
			case "a", "enter":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			case "backspace", "delete":
				m.grid.removeAt(m.cursorStep, m.cursorQubit)
				m.sync()
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				if m.menuItem < len(gateMenu[m.menuCat].items)-1 {
					m.menuItem++
				}
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(gateMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "enter":
				item := gateMenu[m.menuCat].items[m.menuItem]
				m.pendingGate = item
				switch {
				case item.needsParam:
					m.paramInput = ""
					m.focus = focusParam
				case item.needsTarget:
					if m.grid.numQubits < 2 {
						m.statusMsg = "Need at least 2 qubits"
						m.focus = focusCircuit
						break
					}
					m.targetQubit = m.cursorQubit + 1
					if m.targetQubit >= m.grid.numQubits {
						m.targetQubit = m.cursorQubit - 1
					}
					m.focus = focusTarget
				default:
					m.placeGate(item, -1)
				}
			}

		case focusParam:
			switch key {
			case "esc":
				m.focus = focusCircuit
				m.paramInput = ""
			case "backspace":
				if len(m.paramInput) > 0 {
					m.paramInput = m.paramInput[:len(m.paramInput)-1]
				}
			case "enter":
				m.placeGate(m.pendingGate, -1)
			default:
				if len(key) == 1 && isAngleChar(key[0]) {
					m.paramInput += key
				}
			}

		case focusTarget:
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "up", "k":
				for next := m.targetQubit - 1; next >= 0; next-- {
					if next != m.cursorQubit {
						m.targetQubit = next
						break
					}
				}
			case "down", "j":
				for next := m.targetQubit + 1; next < m.grid.numQubits; next++ {
					if next != m.cursorQubit {
						m.targetQubit = next
						break
					}
				}
			case "enter":
				m.placeGate(m.pendingGate, m.targetQubit)
			}

		case focusQASM:
			switch key {
			case "tab":
				m.focus = focusCircuit
				m.qasmEditor.Blur()
			default:
				var cmd tea.Cmd
				m.qasmEditor, cmd = m.qasmEditor.Update(msg)
				cmds = append(cmds, cmd)
				m.parseQASMInput()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func isAngleChar(ch byte) bool {
	return (ch >= '0' && ch <= '9') || ch == '.' || ch == '-' || ch == '+' ||
		ch == 'e' || ch == 'E' || ch == 'p' || ch == 'i' || ch == '*' || ch == '/'
}
