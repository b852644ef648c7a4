package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stackmatch/internal/core"
	"github.com/vovakirdan/stackmatch/internal/registry"
	"github.com/vovakirdan/stackmatch/internal/storage"
)

// freePlayLevels is how many campaign levels the menu lists when there is
// no progress store to unlock them.
const freePlayLevels = 10

// MenuItem represents a selectable level in the menu.
type MenuItem struct {
	ModeID string
	Level  int
	Title  string
	Locked bool
	Done   bool // daily challenge already completed
}

// MenuModel is the Bubble Tea model for the mode and level picker.
type MenuModel struct {
	modes          []registry.ModeInfo
	modeCursor     int
	items          []MenuItem
	cursor         int
	width          int
	height         int
	store          *storage.Store
	player         string
	now            func() time.Time
	profile        storage.Profile
	status         string
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a new menu model for player.
func NewMenuModel(store *storage.Store, player string, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		modes:   registry.List(),
		width:   cfg.ScreenW,
		height:  cfg.ScreenH,
		store:   store,
		player:  player,
		now:     time.Now,
		profile: storage.Profile{Player: player, MaxLevel: 1},
	}
	if store != nil {
		if p, err := store.Profile(player); err == nil {
			m.profile = p
		}
	}
	m.loadItems()
	return m
}

// loadItems lists the levels of the current mode.
func (m *MenuModel) loadItems() {
	m.items = nil
	m.cursor = 0
	if len(m.modes) == 0 {
		return
	}
	mode, err := registry.Create(m.modes[m.modeCursor].ID)
	if err != nil {
		m.status = err.Error()
		return
	}

	count := mode.Count()
	if count == 0 {
		count = freePlayLevels
		if m.store != nil {
			count = m.profile.MaxLevel + 1
		}
	}

	now := m.now()
	for n := 1; n <= count; n++ {
		lvl, err := mode.Level(n, now)
		if err != nil {
			continue
		}
		item := MenuItem{
			ModeID: mode.ID(),
			Level:  n,
			Title:  fmt.Sprintf("%2d. %s", n, lvl.Spec.Name),
			Locked: m.store != nil && mode.Progressive() && n > m.profile.MaxLevel,
		}
		if lvl.Day != "" {
			item.Title = lvl.Spec.Name
			if m.store != nil {
				item.Done, _ = m.store.DailyCompleted(m.player, lvl.Day)
			}
		}
		m.items = append(m.items, item)
	}

	// Start on the newest unlocked level.
	for i, item := range m.items {
		if !item.Locked {
			m.cursor = i
		}
	}
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
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if len(m.modes) > 0 {
			m.modeCursor = (m.modeCursor + len(m.modes) - 1) % len(m.modes)
			m.loadItems()
		}

	case MenuActionRight:
		if len(m.modes) > 0 {
			m.modeCursor = (m.modeCursor + 1) % len(m.modes)
			m.loadItems()
		}

	case MenuActionSelect:
		if len(m.items) == 0 {
			break
		}
		item := m.items[m.cursor]
		if item.Locked {
			m.status = "Win the previous level to unlock this one."
			break
		}
		m.selected = &item

	case MenuActionScoreboard:
		m.openScoreboard = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	activeTab := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("S T A C K M A T C H"), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.modes))
	for i, mode := range m.modes {
		if i == m.modeCursor {
			tabs[i] = activeTab.Render(mode.Title)
		} else {
			tabs[i] = tabStyle.Render(mode.Title)
		}
	}
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n\n")

	// Keep the cursor visible on short terminals.
	visible := max(3, m.height-12)
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	for i := start; i < len(m.items) && i < start+visible; i++ {
		item := m.items[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := cursor + item.Title
		switch {
		case item.Locked:
			line = dimStyle.Render(line + "  (locked)")
		case item.Done:
			line += "  ✓"
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.store != nil {
		info := fmt.Sprintf("%s  ·  %d coins  ·  level %d unlocked", m.player, m.profile.Coins, m.profile.MaxLevel)
		b.WriteString(centerText(info, m.width))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(centerText(m.status, m.width))
		b.WriteString("\n")
	}
	controls := "↑/↓: Level  |  ←/→: Mode  |  Enter: Play  |  T: Scores  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
