// Command tui is a terminal front end for the portal API.
package main

import (
	"flag"
	"fmt"
	"os"

	"jiansou/cmd/tui/ui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	server := flag.String("server", "http://127.0.0.1:8000", "portal backend base URL")
	flag.Parse()

	p := tea.NewProgram(ui.NewRootModel(ui.NewSession(*server)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "tui:", err)
		os.Exit(1)
	}
}
