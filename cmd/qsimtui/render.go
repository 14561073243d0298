package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qsim"
)

// Cell geometry of the circuit grid.
const (
	cellW    = 7 // characters per step column
	probBarW = 20
)

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len([]rune(s)) >= width {
		return string([]rune(s)[:width])
	}
	total := width - len([]rune(s))
	left := total / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", total-left)
}

// gateLabel returns the boxed display text for a gate.
func gateLabel(name string) string {
	switch name {
	case "SDG":
		return "S†"
	case "TDG":
		return "T†"
	default:
		return name
	}
}

// View renders the UI.
func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	qasmWidth := m.width / 3
	leftWidth := m.width - qasmWidth - 4
	circuitPanel := m.renderCircuitPanel(leftWidth)
	probPanel := m.renderProbPanel(leftWidth)
	qasmPanel := m.renderQASMPanel(qasmWidth)
	helpPanel := m.renderHelpPanel(m.width - 4)

	left := lipgloss.JoinVertical(lipgloss.Left, circuitPanel, probPanel)
	top := lipgloss.JoinHorizontal(lipgloss.Top, left, qasmPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, top, helpPanel)

	switch m.focus {
	case focusMenu:
		frame = lipgloss.JoinVertical(lipgloss.Left, frame, m.renderMenu())
	case focusParam:
		frame = lipgloss.JoinVertical(lipgloss.Left, frame, m.renderParamInput())
	}
	return frame
}

// renderCircuitPanel draws the wire grid with gates, cursor and connectors.
func (m model) renderCircuitPanel(width int) string {
	steps := max(m.grid.maxStep()+2, m.cursorStep+2)
	maxCols := max((width-10)/cellW, 4)
	startStep := 0
	if m.cursorStep >= maxCols {
		startStep = m.cursorStep - maxCols + 1
	}
	endStep := min(startStep+maxCols, steps)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Circuit"))
	sb.WriteString("\n\n")

	for q := 0; q < m.grid.numQubits; q++ {
		sb.WriteString(wireLabelStyle.Render(fmt.Sprintf("q[%d] ", q)))
		for step := startStep; step < endStep; step++ {
			sb.WriteString(m.renderCell(step, q))
		}
		sb.WriteString("\n")
		if q < m.grid.numQubits-1 {
			sb.WriteString("     ")
			for step := startStep; step < endStep; step++ {
				sb.WriteString(m.renderConnector(step, q))
			}
			sb.WriteString("\n")
		}
	}

	switch {
	case m.statusMsg != "":
		sb.WriteString("\n")
		sb.WriteString(errStyle.Render(m.statusMsg))
	default:
		if g := m.grid.gateAt(m.cursorStep, m.cursorQubit); g != nil && g.hasTheta {
			sb.WriteString("\n")
			sb.WriteString(dimStyle.Render(fmt.Sprintf("%s(%s) on q[%d]", g.name, qsim.FormatAngle(g.theta), g.target)))
		}
	}
	return circuitPanelStyle.Width(width).Render(sb.String())
}

// renderCell draws one (step, qubit) cell: wire, gate box, control dot or
// target symbol, with cursor and target-pick highlighting.
func (m model) renderCell(step, qubit int) string {
	g := m.grid.gateAt(step, qubit)

	var body string
	switch {
	case g == nil:
		body = strings.Repeat("─", cellW)
	case g.control == qubit:
		body = padCenterWire("●")
	case g.control >= 0 && g.name == "CZ" && g.target == qubit:
		body = padCenterWire("●")
	case g.control >= 0 && g.target == qubit:
		body = padCenterWire("⊕")
	default:
		label := gateLabel(g.name)
		body = padCenter("["+label+"]", cellW)
	}

	switch {
	case m.focus == focusTarget && qubit == m.targetQubit && step == m.cursorStep:
		return targetPickStyle.Render(body)
	case step == m.cursorStep && qubit == m.cursorQubit && m.focus == focusCircuit:
		return cursorStyle.Render(body)
	case g != nil:
		return gateStyle.Render(body)
	default:
		return dimStyle.Render(body)
	}
}

// padCenterWire centres a symbol on a wire segment.
func padCenterWire(sym string) string {
	side := (cellW - 1) / 2
	return strings.Repeat("─", side) + sym + strings.Repeat("─", cellW-1-side)
}

// renderConnector draws the vertical link between control and target rows.
func (m model) renderConnector(step, qubit int) string {
	for _, g := range m.grid.gates {
		if g.step != step || g.control < 0 {
			continue
		}
		lo, hi := min(g.control, g.target), max(g.control, g.target)
		if qubit >= lo && qubit < hi {
			return dimStyle.Render(padCenter("│", cellW))
		}
	}
	return strings.Repeat(" ", cellW)
}

// renderProbPanel shows per-qubit marginals and the dominant basis states of
// the current circuit's output.
func (m model) renderProbPanel(width int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Probabilities"))
	sb.WriteString("\n")

	if m.simErr != nil {
		sb.WriteString(errStyle.Render(m.simErr.Error()))
		return probPanelStyle.Width(width).Render(sb.String())
	}

	for q, p := range m.qubitProbs {
		filled := int(p.One*probBarW + 0.5)
		bar := barStyle.Render(strings.Repeat("█", filled)) +
			dimStyle.Render(strings.Repeat("░", probBarW-filled))
		fmt.Fprintf(&sb, "%s %s P(1)=%.3f\n",
			wireLabelStyle.Render(fmt.Sprintf("q[%d]", q)), bar, p.One)
	}

	if len(m.basis) > 0 {
		sb.WriteString(dimStyle.Render(strings.Repeat("─", min(width-4, 40))))
		sb.WriteString("\n")
		shown := 0
		for _, bs := range m.basis {
			if shown == 6 {
				fmt.Fprintf(&sb, "%s\n", dimStyle.Render(fmt.Sprintf("… %d more", len(m.basis)-shown)))
				break
			}
			ket := fmt.Sprintf("|%0*b⟩", m.grid.numQubits, bs.Index)
			fmt.Fprintf(&sb, "%s  p=%.4f  φ=%+.3f\n", gateStyle.Render(ket), bs.Probability, bs.Phase)
			shown++
		}
	}
	return probPanelStyle.Width(width).Render(sb.String())
}

func (m model) renderQASMPanel(width int) string {
	var sb strings.Builder
	title := "QASM"
	if m.focus == focusQASM {
		title = "QASM (editing)"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")
	sb.WriteString(m.qasmEditor.View())
	return qasmPanelStyle.Width(width).Render(sb.String())
}

func (m model) renderHelpPanel(width int) string {
	var help string
	switch m.focus {
	case focusQASM:
		help = "Tab back to circuit · edits re-parse live"
	case focusTarget:
		help = "↑↓ pick target qubit · ⏎ place · Esc cancel"
	default:
		help = "←↑↓→ move · a/⏎ add gate · ⌫ delete · +/- qubits · Tab QASM · ^S save · ^R clear · q quit"
	}
	return helpPanelStyle.Width(width).Render(dimStyle.Render(help))
}

func (m model) renderParamInput() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s angle", m.pendingGate.gateType)))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "θ = %s_\n\n", m.paramInput)
	sb.WriteString(dimStyle.Render("Examples: pi/2, 3*pi/4, 1.57 · ⏎ Ok · Esc ✕"))
	return popupStyle.Render(sb.String())
}
