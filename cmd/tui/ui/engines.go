package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

type EnginesModel struct {
	Session *Session
	Table   table.Model
	Engines []SearchEngine
	Status  string
	Err     error
}

// BackToDashboardMsg signals transition back to the dashboard.
type BackToDashboardMsg struct{}

type defaultSetMsg struct {
	Name string
	Err  error
}

func NewEnginesModel(s *Session, width, height int) EnginesModel {
	return EnginesModel{
		Session: s,
		Table: newTable([]table.Column{
			{Title: "Name", Width: 12},
			{Title: "Display", Width: 16},
			{Title: "Default", Width: 8},
		}, height),
	}
}

func (m EnginesModel) Init() tea.Cmd {
	return loadEnginesCmd(m.Session)
}

func (m EnginesModel) Update(msg tea.Msg) (EnginesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case enginesLoadedMsg:
		m.Err = msg.Err
		if msg.Err == nil {
			m.Engines = msg.Engines
			rows := make([]table.Row, 0, len(msg.Engines))
			for _, e := range msg.Engines {
				mark := ""
				if e.IsDefault {
					mark = "*"
				}
				rows = append(rows, table.Row{e.Name, e.DisplayName, mark})
			}
			m.Table.SetRows(rows)
		}
		return m, nil

	case defaultSetMsg:
		m.Err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.Status = msg.Name + " is now the default engine"
		return m, loadEnginesCmd(m.Session)

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "b":
			return m, func() tea.Msg { return BackToDashboardMsg{} }
		case "d", "enter":
			idx := m.Table.Cursor()
			if idx < 0 || idx >= len(m.Engines) {
				return m, nil
			}
			return m, setDefaultCmd(m.Session, m.Engines[idx])
		case "q":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func setDefaultCmd(s *Session, e SearchEngine) tea.Cmd {
	return func() tea.Msg {
		if s.Anonymous() {
			return defaultSetMsg{Err: errors.New("sign in to change the default engine")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return defaultSetMsg{Name: e.Name, Err: s.SetDefaultEngine(ctx, e.ID)}
	}
}

func (m EnginesModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Search engines") + "\n\n")
	b.WriteString(m.Table.View())
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("Enter/d make default  Esc back  q quit"))
	if m.Status != "" {
		b.WriteString("\n" + statusMessageStyle(m.Status))
	}
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
