// qsimtui is an interactive terminal circuit explorer: place gates on a step
// grid, watch the resulting state's probabilities live, and edit the circuit
// as QASM.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
