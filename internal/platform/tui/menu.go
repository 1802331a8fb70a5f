package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/breaker/internal/core"
	"github.com/vovakirdan/breaker/internal/registry"
	"github.com/vovakirdan/breaker/internal/storage"
)

// MenuItem is one selectable control style.
type MenuItem struct {
	GameID    string
	Title     string
	Aliases   []string
	HighScore int
	Rounds    int
}

// MenuModel picks the control style to play.
type MenuModel struct {
	items    []MenuItem
	cursor   int
	width    int
	config   core.RuntimeConfig
	keys     MenuKeyMap
	help     help.Model
	selected *MenuItem
	scores   bool // Tab pressed
	quitting bool
}

// NewMenuModel creates a menu listing every registered game.
// Best scores and round counts stay zero without a store.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var stats map[string]*storage.GameStats
	if store != nil {
		stats, _ = store.GetAllGamesStats()
	}

	games := registry.List()
	items := make([]MenuItem, len(games))
	for i, g := range games {
		items[i] = MenuItem{GameID: g.ID, Title: g.Title, Aliases: g.Aliases}
		if s, ok := stats[g.ID]; ok {
			items[i].HighScore = s.HighScore
			items[i].Rounds = s.GamesCount
		}
	}

	m := MenuModel{
		items:  items,
		width:  cfg.ScreenW,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
	m.help.Width = cfg.ScreenW
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.items)

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Scores):
		m.scores = true
		return m, tea.Quit
	case n == 0:
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.cursor = (m.cursor + n - 1) % n
	case key.Matches(msg, m.keys.Down):
		m.cursor = (m.cursor + 1) % n
	case key.Matches(msg, m.keys.Play):
		item := m.items[m.cursor]
		m.selected = &item
		return m, tea.Quit
	}

	return m, nil
}

var (
	menuLogoStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuListStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	rows := make([]string, 0, len(m.items)+2)
	for i, item := range m.items {
		best := "-"
		if item.HighScore > 0 {
			best = fmt.Sprint(item.HighScore)
		}
		row := fmt.Sprintf("%-20s %8s %6d", item.Title, best, item.Rounds)
		if i == m.cursor {
			rows = append(rows, menuCursorStyle.Render("> "+row))
		} else {
			rows = append(rows, "  "+row)
		}
	}
	header := menuDimStyle.Render(fmt.Sprintf("  %-20s %8s %6s", "Style", "Best", "Rounds"))
	rows = append([]string{header}, rows...)
	if len(m.items) > 0 && len(m.items[m.cursor].Aliases) > 0 {
		hint := "breaker play " + m.items[m.cursor].Aliases[0]
		rows = append(rows, "", menuDimStyle.Render(hint))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuLogoStyle.Render("B R E A K E R"), m.width))
	b.WriteString("\n\n")
	for _, line := range strings.Split(menuListStyle.Render(strings.Join(rows, "\n")), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen style, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting reports whether the user quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports whether the user opened the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.scores
}

// Config returns the runtime config, resized if the window changed.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads text to the middle of width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult is what the user picked.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the picker in its own program.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}
	return result, nil
}
