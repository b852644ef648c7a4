package tui

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stackmatch/internal/registry"
	"github.com/vovakirdan/stackmatch/internal/storage"
)

// maxScores bounds the rows loaded per mode.
const maxScores = 100

// scoreFilter selects whose scores the board lists.
type scoreFilter int

const (
	filterEveryone scoreFilter = iota
	filterMine
)

var (
	boardTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardMuted  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardActive = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardTab    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardFrame  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Mine     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.Mine, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Mine, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		NextMode: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next mode")),
		PrevMode: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev mode")),
		Mine:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mine/all")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists recorded results per mode, for everyone or for
// one player.
type ScoreboardModel struct {
	store      *storage.Store
	player     string
	modes      []registry.ModeInfo
	mode       int
	filter     scoreFilter
	scores     []storage.ScoreEntry
	stats      *storage.ModeStats
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	quitting   bool
	leaving    bool
	standalone bool // back quits the program
}

// NewScoreboardModel creates a scoreboard. player is highlighted and is
// the subject of the "mine" filter.
func NewScoreboardModel(store *storage.Store, player string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		player: player,
		modes:  registry.List(),
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = newScoreTable(width, height)
	m.reload()
	return m
}

// newScoreTable sizes the table to the terminal, giving spare width to
// the player column.
func newScoreTable(width, height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Player", Width: 12},
		{Title: "Lvl", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Result", Width: 6},
		{Title: "Date", Width: 12},
	}
	fixed := 0
	for _, c := range columns {
		fixed += c.Width + 2
	}
	if spare := width - 6 - fixed; spare > 0 {
		columns[1].Width += min(spare, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, height-10)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload fetches rows and stats for the current mode and filter.
func (m *ScoreboardModel) reload() {
	m.scores, m.stats = nil, nil
	if m.store != nil && len(m.modes) > 0 {
		modeID := m.modes[m.mode].ID
		if m.filter == filterMine {
			m.scores = m.playerScores(modeID)
		} else if top, err := m.store.TopScores(modeID, maxScores); err == nil {
			m.scores = top
		}
		if stats, err := m.store.GetModeStats(modeID); err == nil {
			m.stats = stats
		}
	}
	m.table.SetRows(scoreRows(m.scores))
	m.table.GotoTop()
}

// playerScores returns the player's results in modeID, best first.
func (m *ScoreboardModel) playerScores(modeID string) []storage.ScoreEntry {
	all, err := m.store.PlayerScores(m.player, maxScores)
	if err != nil {
		return nil
	}
	var out []storage.ScoreEntry
	for _, e := range all {
		if e.Mode == modeID {
			out = append(out, e)
		}
	}
	sortScores(out)
	return out
}

// sortScores orders entries by score, highest first, keeping date order
// for ties.
func sortScores(entries []storage.ScoreEntry) {
	slices.SortStableFunc(entries, func(a, b storage.ScoreEntry) int {
		return cmp.Compare(b.Score, a.Score)
	})
}

// scoreRows formats entries as table rows.
func scoreRows(entries []storage.ScoreEntry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		result := "lost"
		if e.Won {
			result = "won"
		}
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			e.Player,
			strconv.Itoa(e.Level),
			strconv.Itoa(e.Score),
			result,
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// statsLine summarises a mode's aggregate statistics.
func statsLine(s *storage.ModeStats) string {
	if s == nil || s.GamesCount == 0 {
		return "No games yet"
	}
	return fmt.Sprintf("%d games · %.0f%% won · best %d · avg %.0f",
		s.GamesCount, 100*s.WinRate(), s.HighScore, s.AvgScore)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.leaving = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(msg, m.keys.NextMode):
			m.cycleMode(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.cycleMode(-1)
			return m, nil
		case key.Matches(msg, m.keys.Mine):
			m.filter = 1 - m.filter
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = newScoreTable(m.width, m.height)
		m.table.SetRows(scoreRows(m.scores))
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) cycleMode(step int) {
	if len(m.modes) == 0 {
		return
	}
	m.mode = (m.mode + step + len(m.modes)) % len(m.modes)
	m.reload()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.leaving {
		return ""
	}

	var b strings.Builder
	title := "HIGH SCORES"
	if m.filter == filterMine {
		title = "YOUR SCORES - " + m.player
	}
	b.WriteString(centerText(boardTitle.Render(title), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.modes))
	for i, mode := range m.modes {
		if i == m.mode {
			tabs[i] = boardActive.Render(mode.Title)
		} else {
			tabs[i] = boardTab.Render(mode.Title)
		}
	}
	tabLine := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(tabLine) > m.width-4 && len(m.modes) > 0 {
		tabLine = "< " + m.modes[m.mode].Title + " >"
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	body := m.table.View()
	if len(m.scores) == 0 {
		body = boardMuted.Italic(true).Padding(1, 4).Render("No scores recorded yet.\nClear a level to set one!")
	}
	b.WriteString(centerText(boardFrame.Render(body), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(boardMuted.Render(statsLine(m.stats)), m.width))
	b.WriteString("\n\n")
	b.WriteString(boardMuted.Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.leaving
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen on its own until the user
// leaves it.
func RunScoreboard(store *storage.Store, player string, width, height int) error {
	model := NewScoreboardModel(store, player, width, height)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
