package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stackmatch/internal/core"
	"github.com/vovakirdan/stackmatch/internal/registry"
	"github.com/vovakirdan/stackmatch/internal/session"
	"github.com/vovakirdan/stackmatch/internal/storage"
)

type appScreen int

const (
	screenMenu appScreen = iota
	screenPlay
	screenScores
)

// AppModel manages the full session flow: menu -> level -> menu, with the
// scoreboard reachable from the menu. It is the top-level model for
// `stackmatch menu` and for SSH sessions.
type AppModel struct {
	store    *storage.Store
	sess     *session.Session
	config   core.RuntimeConfig
	screen   appScreen
	menu     MenuModel
	play     *PlayModel
	scores   ScoreboardModel
	quitting bool
}

// NewAppModel creates the session flow for sess's player.
func NewAppModel(store *storage.Store, sess *session.Session, cfg core.RuntimeConfig) AppModel {
	return AppModel{
		store:  store,
		sess:   sess,
		config: cfg,
		menu:   NewMenuModel(store, sess.Player(), cfg),
	}
}

// Init initializes the session.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenPlay:
		return m.updatePlay(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.scores = NewScoreboardModel(m.store, m.sess.Player(), m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scores.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		mode, err := registry.Create(selected.ModeID)
		if err == nil {
			err = m.sess.Start(mode, selected.Level)
		}
		if err != nil {
			m.menu = NewMenuModel(m.store, m.sess.Player(), m.config)
			m.menu.status = err.Error()
			return m, nil
		}

		play := NewPlayModel(m.sess, m.config, true)
		m.play = &play
		m.screen = screenPlay
		return m, m.play.Init()
	}

	return m, cmd
}

// updatePlay handles updates when a level is being played.
func (m AppModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.play.Update(msg)
	if playModel, ok := newModel.(PlayModel); ok {
		m.play = &playModel
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.play.BackToMenu() {
		m.play = nil
		m.screen = screenMenu
		m.menu = NewMenuModel(m.store, m.sess.Player(), m.config)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates on the scoreboard.
func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scores.IsGoingBack() {
		m.screen = screenMenu
		m.menu = NewMenuModel(m.store, m.sess.Player(), m.config)
		return m, nil
	}

	return m, cmd
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenPlay:
		return m.play.View()
	case screenScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// RunApp runs the menu-driven session flow in the local terminal.
func RunApp(store *storage.Store, sess *session.Session, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewAppModel(store, sess, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
