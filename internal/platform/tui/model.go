package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stackmatch/internal/core"
	"github.com/vovakirdan/stackmatch/internal/engine"
	"github.com/vovakirdan/stackmatch/internal/session"
)

// Screen rows above the board and between the board and the tray.
const (
	headerRows = 2
	boardGap   = 1
)

// PlayModel is the Bubble Tea model for playing one level of a session.
type PlayModel struct {
	sess       *session.Session
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	cursor     engine.TileID
	cursorAt   core.Vec
	message    string
	msgColor   core.Color
	embedded   bool // back returns to the menu instead of quitting
	quitting   bool
	backToMenu bool
}

// NewPlayModel creates a play screen for a session whose level has been
// started.
func NewPlayModel(sess *session.Session, cfg core.RuntimeConfig, embedded bool) PlayModel {
	h := help.New()
	h.Width = cfg.ScreenW
	m := PlayModel{
		sess:     sess,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH-1),
		config:   cfg,
		keys:     DefaultKeyMap(),
		help:     h,
		embedded: embedded,
	}
	m.resetCursor()
	return m
}

// Init starts the tick loop.
func (m PlayModel) Init() tea.Cmd {
	return tickCmd(m.config.TickInterval())
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+s" {
			m.saveScreenshot()
			return m, nil
		}
		return m.handleAction(m.keys.Action(msg))

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.screen.Resize(msg.Width, msg.Height-1)
		return m, nil

	case TickMsg:
		if game := m.sess.Game(); game != nil {
			game.Tick()
		}
		return m, tickCmd(m.config.TickInterval())
	}
	return m, nil
}

// handleAction applies one player action.
func (m PlayModel) handleAction(action core.Action) (tea.Model, tea.Cmd) {
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll

	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		dx, dy, _ := action.Direction()
		m.moveCursor(dx, dy)

	case core.ActionSelect:
		m.selectTile()

	case core.ActionShuffle:
		m.usePowerUp(engine.PowerUpShuffle)
	case core.ActionUndo:
		m.usePowerUp(engine.PowerUpUndo)
	case core.ActionDiscard:
		m.usePowerUp(engine.PowerUpDiscard)
	case core.ActionHint:
		m.usePowerUp(engine.PowerUpHint)

	case core.ActionRestart:
		if err := m.sess.Restart(); err != nil {
			m.setMessage(err.Error(), core.ColorRed)
			break
		}
		m.resetCursor()
		m.setMessage("Board reshuffled from the start.", core.ColorGray)

	case core.ActionNext:
		if err := m.sess.Next(); err != nil {
			m.setMessage(nextError(err), core.ColorGray)
			break
		}
		m.resetCursor()
		m.setMessage("", core.ColorDefault)
	}
	return m, nil
}

func nextError(err error) string {
	switch {
	case errors.Is(err, session.ErrNotFinished):
		return "Clear the board first."
	case errors.Is(err, session.ErrNoMoreLevels):
		return "That was the last level."
	}
	return err.Error()
}

// moveCursor steps to the nearest selectable tile in direction (dx, dy).
func (m *PlayModel) moveCursor(dx, dy int) {
	tiles := m.sess.Game().State().Tiles
	if t, ok := nextTile(tiles, m.cursorAt, dx, dy); ok {
		m.cursor = t.ID
		m.cursorAt = t.Pos()
	}
}

// resetCursor places the cursor on the selectable tile nearest the top-left.
func (m *PlayModel) resetCursor() {
	m.cursor = 0
	m.cursorAt = core.Vec{}
	m.fixCursor()
}

// fixCursor moves the cursor off a tile that is no longer selectable.
func (m *PlayModel) fixCursor() {
	state := m.sess.Game().State()
	if t, ok := state.Tile(m.cursor); ok && t.Selectable() {
		return
	}
	if t, ok := nearestTile(state.Tiles, m.cursorAt); ok {
		m.cursor = t.ID
		m.cursorAt = t.Pos()
		return
	}
	m.cursor = 0
}

// selectTile moves the tile under the cursor to the tray.
func (m *PlayModel) selectTile() {
	game := m.sess.Game()
	if game.Status().Terminal() {
		return
	}
	res := game.Select(m.cursor)
	switch {
	case !res.Accepted:
		m.setMessage("That tile is covered.", core.ColorGray)
	case res.Matched():
		m.setMessage(fmt.Sprintf("Match! +%d", res.Points()), core.ColorBrightGreen)
	default:
		m.setMessage("", core.ColorDefault)
	}
	m.fixCursor()
	m.announceFinish()
}

// usePowerUp spends a power-up and reports the outcome.
func (m *PlayModel) usePowerUp(p engine.PowerUp) {
	info := p.Info()
	err := m.sess.UsePowerUp(p)
	switch {
	case err == nil:
		m.setMessage(info.Name+" used.", core.ColorCyan)
	case errors.Is(err, session.ErrNoInventory):
		m.setMessage("No "+info.Name+" left.", core.ColorRed)
	case errors.Is(err, session.ErrRejected):
		m.setMessage(info.Name+" has nothing to do right now.", core.ColorGray)
	default:
		m.setMessage(err.Error(), core.ColorRed)
	}
	m.fixCursor()
	m.announceFinish()
}

// announceFinish replaces the message with the level result once the game
// has ended.
func (m *PlayModel) announceFinish() {
	res, ok := m.sess.Result()
	if !ok {
		return
	}
	switch res.Outcome.Status {
	case engine.StatusWon:
		text := fmt.Sprintf("Level cleared! Score %d", res.Outcome.Score)
		if res.Coins > 0 {
			text += fmt.Sprintf(", +%d coins", res.Coins)
		}
		if res.Unlocked > 0 {
			text += fmt.Sprintf(", level %d unlocked", res.Unlocked)
		}
		if m.sess.HasNext() {
			text += ".  [n] next"
		} else {
			text += "."
		}
		m.setMessage(text+"  [r] replay", core.ColorBrightGreen)
	case engine.StatusLost:
		m.setMessage(fmt.Sprintf("Tray full! Score %d.  [r] retry", res.Outcome.Score), core.ColorBrightRed)
	}
}

func (m *PlayModel) setMessage(text string, c core.Color) {
	m.message = text
	m.msgColor = c
}

// render draws the current frame into the screen buffer.
func (m PlayModel) render() {
	s := m.screen
	s.Clear()
	game := m.sess.Game()
	state := game.State()
	lvl := m.sess.Level()

	title := fmt.Sprintf("%s · Level %d · %s", m.sess.Mode().Title(), lvl.Number, lvl.Spec.Name)
	if lvl.Day != "" {
		title = lvl.Spec.Name
	}
	s.DrawText(1, 0, title, core.ColorBrightWhite)
	stats := fmt.Sprintf("Score %d   Tiles %d", state.Score, state.VisibleCount())
	s.DrawText(s.Width()-len([]rune(stats))-1, 0, stats, core.ColorYellow)

	layout := newBoardLayout(state.Tiles, s.Width(), headerRows)
	drawBoard(s, layout, state.Tiles, tileMarks{
		cursor: m.cursor,
		hinted: game.Hinted(),
	})

	y := headerRows + layout.rows + boardGap
	drawTray(s, y, state.Tray, state.Rules.TrayCapacity)
	y += 3
	s.DrawTextCentered(y, powerUpBar(m.sess.Inventory()), core.ColorCyan)
	y++
	if m.message != "" {
		s.DrawTextCentered(y, m.message, m.msgColor)
	}
}

// saveScreenshot writes the plain-text frame to ~/.stackmatch/screenshots.
func (m *PlayModel) saveScreenshot() {
	m.render()
	dir := filepath.Join(os.Getenv("HOME"), ".stackmatch", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("%s_%d_%s.txt", m.sess.Mode().ID(), m.sess.Level().Number, time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}
	m.render()
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// IsQuitting returns true if user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m PlayModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays the session's started level in the terminal until the user
// quits.
func Run(sess *session.Session, cfg core.RuntimeConfig) error {
	model := NewPlayModel(sess, cfg, false)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
