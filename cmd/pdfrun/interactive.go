package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	pdfservice "github.com/shelfwise/pdf-service"
	"github.com/shelfwise/pdf-service/service"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	pageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	snippetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateLoading modelState = iota
	statePageList
	statePageText
	stateSearchInput
	stateSearchResults
)

type browserModel struct {
	err      error
	svc      *service.Service
	opts     []service.Option
	filename string
	key      string
	info     pdfservice.DocumentInfo
	pageText string
	results  []pdfservice.SearchResult
	search   textinput.Model
	selected int
	state    modelState
}

func newBrowserModel(filename string, opts []service.Option) *browserModel {
	key := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	ti := textinput.New()
	ti.Placeholder = "search text"
	ti.Prompt = "/ "
	ti.Width = 40
	return &browserModel{
		filename: filename,
		key:      key,
		opts:     opts,
		search:   ti,
		state:    stateLoading,
	}
}

type openedMsg struct {
	err  error
	svc  *service.Service
	info pdfservice.DocumentInfo
}

type pageTextMsg struct {
	err  error
	text string
	page int
}

type searchMsg struct {
	err     error
	results []pdfservice.SearchResult
}

func (m *browserModel) Init() tea.Cmd {
	return m.openDocument
}

func (m *browserModel) openDocument() tea.Msg {
	svc, err := service.Start(m.opts...)
	if err != nil {
		return openedMsg{err: err}
	}

	info, err := svc.OpenPath(context.Background(), m.key, m.filename)
	if err != nil {
		svc.Shutdown(context.Background())
		return openedMsg{err: err}
	}
	return openedMsg{svc: svc, info: info}
}

func (m *browserModel) loadPageText(page int) tea.Cmd {
	return func() tea.Msg {
		text, err := m.svc.PageText(context.Background(), m.key, page)
		return pageTextMsg{text: text, page: page, err: err}
	}
}

func (m *browserModel) runSearch(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.svc.Search(context.Background(), m.key, query, 50)
		return searchMsg{results: results, err: err}
	}
}

func (m *browserModel) quit() (tea.Model, tea.Cmd) {
	if m.svc != nil {
		m.svc.Shutdown(context.Background())
	}
	return m, tea.Quit
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateSearchInput {
			switch msg.String() {
			case "ctrl+c":
				return m.quit()
			case "enter":
				query := m.search.Value()
				if query == "" {
					m.state = statePageList
					return m, nil
				}
				return m, m.runSearch(query)
			case "esc":
				m.state = statePageList
				return m, nil
			}
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m.quit()

		case "up", "k":
			if m.state == statePageList && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == statePageList && m.selected < m.info.PageCount-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case statePageList:
				return m, m.loadPageText(m.selected)
			case statePageText, stateSearchResults:
				m.state = statePageList
			}

		case "/":
			if m.state == statePageList {
				m.search.SetValue("")
				m.search.Focus()
				m.state = stateSearchInput
			}

		case "esc":
			if m.state != statePageList && m.state != stateLoading {
				m.state = statePageList
				m.err = nil
			}
		}

	case openedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.svc = msg.svc
		m.info = msg.info
		m.state = statePageList

	case pageTextMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.pageText = msg.text
		m.state = statePageText

	case searchMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = statePageList
			return m, nil
		}
		m.results = msg.results
		m.state = stateSearchResults
	}

	return m, nil
}

func (m *browserModel) View() string {
	if m.err != nil && m.svc == nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("PDF Browser"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	switch m.state {
	case stateLoading:
		b.WriteString("Opening document...")

	case statePageList:
		if m.info.Title != "" {
			b.WriteString(m.info.Title)
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%d page(s)\n\n", m.info.PageCount))
		for i := 0; i < m.info.PageCount; i++ {
			label := fmt.Sprintf("Page %d", i+1)
			if i < len(m.info.Pages) {
				p := m.info.Pages[i]
				label += dimStyle.Render(fmt.Sprintf("  %.0f x %.0f pt", p.Width, p.Height))
			}
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + label))
			} else {
				b.WriteString("  " + label)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter view text • / search • q quit"))

	case statePageText:
		b.WriteString(fmt.Sprintf("Text of %s:\n\n", pageStyle.Render(fmt.Sprintf("page %d", m.selected+1))))
		text := m.pageText
		if strings.TrimSpace(text) == "" {
			text = dimStyle.Render("(no text on this page)")
		}
		b.WriteString(text)
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter back • q quit"))

	case stateSearchInput:
		b.WriteString("Search document:\n\n")
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter search • esc back"))

	case stateSearchResults:
		b.WriteString(fmt.Sprintf("%d match(es) for %q:\n\n", len(m.results), m.search.Value()))
		for _, r := range m.results {
			b.WriteString(pageStyle.Render(fmt.Sprintf("  page %d", r.Page+1)))
			b.WriteString("  ")
			b.WriteString(snippetStyle.Render(r.Snippet))
			b.WriteString("\n")
		}
		if len(m.results) == 0 {
			b.WriteString(dimStyle.Render("  nothing found"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter back • q quit"))
	}

	return b.String()
}

func runInteractive(filename string, opts []service.Option) error {
	p := tea.NewProgram(newBrowserModel(filename, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
