package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/wires/internal/core"
	"github.com/vovakirdan/wires/internal/registry"
	"github.com/vovakirdan/wires/internal/storage"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
	screenClosed
)

// SessionModel chains menu, runs and scoreboard inside one program, which
// is what an SSH connection needs. Child models signal completion with
// tea.Quit; the session swallows those commands and switches screens.
type SessionModel struct {
	store  *storage.Store
	config core.RuntimeConfig
	screen sessionScreen
	menu   MenuModel
	game   GameModel
	board  ScoreboardModel
}

// NewSessionModel opens a session on the menu.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		store:  store,
		config: cfg,
		menu:   NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes the message to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = ws.Width, ws.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenClosed:
		return m, tea.Quit
	}
	return m.updateMenu(msg)
}

func (m SessionModel) close() (tea.Model, tea.Cmd) {
	m.screen = screenClosed
	return m, tea.Quit
}

// toMenu rebuilds the menu so records are fresh.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		return m.close()
	case m.menu.WantsScoreboard():
		m.screen = screenScores
		m.board = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		return m, m.board.Init()
	}

	sel := m.menu.Selected()
	if sel == nil {
		return m, cmd
	}
	game, err := registry.Create(sel.GameID)
	if err != nil {
		return m.toMenu()
	}
	m.config = m.menu.Config()
	m.config.Seed = time.Now().UnixNano()
	m.screen = screenGame
	m.game = NewGameModel(game, m.store, m.config)
	return m, m.game.Init()
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	m.board = next.(ScoreboardModel)

	switch {
	case m.board.IsQuitting():
		return m.close()
	case m.board.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(GameModel)

	switch {
	case m.game.BackToMenu():
		return m.toMenu()
	case m.game.IsQuitting():
		return m.close()
	}
	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.board.View()
	case screenMenu:
		return m.menu.View()
	}
	return ""
}
