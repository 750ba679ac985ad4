package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type DashboardModel struct {
	Session   *Session
	Table     table.Model
	Search    textinput.Model
	Links     []QuickLink
	Engines   []SearchEngine
	EngineIdx int
	Result    string
	Err       error
}

type linksLoadedMsg struct {
	Links []QuickLink
	Err   error
}

type enginesLoadedMsg struct {
	Engines []SearchEngine
	Err     error
}

type searchDoneMsg struct {
	URL string
	Err error
}

// ShowEnginesMsg switches to the engine list.
type ShowEnginesMsg struct{}

// LogoutMsg returns to the sign-in form.
type LogoutMsg struct{}

func newTable(columns []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-12, 5)),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(st)
	return t
}

func NewDashboardModel(s *Session, width, height int) DashboardModel {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "press / to type a query"

	return DashboardModel{
		Session: s,
		Table: newTable([]table.Column{
			{Title: "Name", Width: 16},
			{Title: "Category", Width: 10},
			{Title: "URL", Width: max(width-36, 30)},
		}, height),
		Search: search,
	}
}

func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(loadLinksCmd(m.Session), loadEnginesCmd(m.Session))
}

func loadLinksCmd(s *Session) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		links, err := s.QuickLinks(ctx, "")
		return linksLoadedMsg{Links: links, Err: err}
	}
}

func loadEnginesCmd(s *Session) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		engines, err := s.SearchEngines(ctx)
		return enginesLoadedMsg{Engines: engines, Err: err}
	}
}

func searchCmd(s *Session, query, engine string) tea.Cmd {
	return func() tea.Msg {
		if s.Anonymous() {
			return searchDoneMsg{Err: errors.New("sign in to search")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		u, err := s.Search(ctx, query, engine)
		return searchDoneMsg{URL: u, Err: err}
	}
}

func (m DashboardModel) engineName() string {
	if len(m.Engines) == 0 {
		return ""
	}
	return m.Engines[m.EngineIdx%len(m.Engines)].Name
}

func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case linksLoadedMsg:
		m.Err = msg.Err
		if msg.Err == nil {
			m.Links = msg.Links
			rows := make([]table.Row, 0, len(msg.Links))
			for _, l := range msg.Links {
				rows = append(rows, table.Row{l.Name, l.Category, l.URL})
			}
			m.Table.SetRows(rows)
		}
		return m, nil

	case enginesLoadedMsg:
		if msg.Err != nil {
			m.Err = msg.Err
			return m, nil
		}
		m.Engines = msg.Engines
		m.EngineIdx = 0
		for i, e := range msg.Engines {
			if e.IsDefault {
				m.EngineIdx = i
			}
		}
		return m, nil

	case searchDoneMsg:
		m.Err = msg.Err
		m.Result = msg.URL
		return m, nil

	case tea.KeyMsg:
		if m.Search.Focused() {
			switch msg.Type {
			case tea.KeyEsc:
				m.Search.Blur()
				m.Table.Focus()
				return m, nil
			case tea.KeyTab:
				if len(m.Engines) > 0 {
					m.EngineIdx = (m.EngineIdx + 1) % len(m.Engines)
				}
				return m, nil
			case tea.KeyEnter:
				q := strings.TrimSpace(m.Search.Value())
				if q == "" {
					return m, nil
				}
				return m, searchCmd(m.Session, q, m.engineName())
			}
			var cmd tea.Cmd
			m.Search, cmd = m.Search.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "/":
			m.Table.Blur()
			return m, m.Search.Focus()
		case "r":
			return m, m.Init()
		case "e":
			return m, func() tea.Msg { return ShowEnginesMsg{} }
		case "l":
			return m, func() tea.Msg { return LogoutMsg{} }
		case "q":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m DashboardModel) View() string {
	var b strings.Builder
	who := "anonymous"
	if !m.Session.Anonymous() {
		who = m.Session.Username
	}
	b.WriteString(titleStyle.Render("Quick links - "+who) + "\n\n")
	b.WriteString(m.Table.View())
	b.WriteString("\n\n")
	b.WriteString(m.Search.View())
	if name := m.engineName(); name != "" {
		b.WriteString(blurredStyle.Render("  [" + name + "]"))
	}
	if m.Result != "" {
		b.WriteString("\n" + statusMessageStyle(m.Result))
	}
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("/ search (Tab engine, Esc back)  e engines  r refresh  l sign out  q quit"))
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
