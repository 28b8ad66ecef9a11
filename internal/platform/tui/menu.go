package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/wires/internal/config"
	"github.com/vovakirdan/wires/internal/core"
	"github.com/vovakirdan/wires/internal/registry"
	"github.com/vovakirdan/wires/internal/storage"
)

// MenuItem is one playable variant with its stored records.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
	HighScore   int
	BestStage   int // highest multiplier stage of the best run, -1 if none
}

type menuOutcome int

const (
	menuBrowsing menuOutcome = iota
	menuPlay
	menuScores
	menuQuit
)

// presetChoices is the difficulty carousel; "" keeps the loaded config.
var presetChoices = append([]config.DifficultyPreset{""}, config.Presets()...)

// MenuModel picks a variant and a difficulty preset.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	preset    int // index into presetChoices
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	help      help.Model
	outcome   menuOutcome
}

// NewMenuModel builds the menu from the registry and the score store.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		items:     loadMenuItems(store),
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
	}
	for i, p := range presetChoices {
		if string(p) == cfg.Preset {
			m.preset = i
		}
	}
	return m
}

func loadMenuItems(store *storage.Store) []MenuItem {
	games := registry.List()
	items := make([]MenuItem, len(games))
	for i, g := range games {
		items[i] = MenuItem{GameID: g.ID, Title: g.Title, Description: g.Description, BestStage: -1}
		if store == nil {
			continue
		}
		if high, err := store.HighScore(g.ID); err == nil {
			items[i].HighScore = high
		}
		if best, err := store.BestRun(g.ID); err == nil && best != nil {
			items[i].BestStage = best.MaxStage
		}
	}
	return items
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(presetChoices)
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)
	case MenuActionDown:
		m.cursor = min(m.cursor+1, max(len(m.items)-1, 0))
	case MenuActionPresetPrev:
		m.preset = (m.preset + n - 1) % n
		m.config.Preset = string(presetChoices[m.preset])
	case MenuActionPresetNext:
		m.preset = (m.preset + 1) % n
		m.config.Preset = string(presetChoices[m.preset])
	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		m.outcome = menuPlay
		return m, tea.Quit
	case MenuActionScoreboard:
		m.outcome = menuScores
		return m, tea.Quit
	case MenuActionQuit:
		m.outcome = menuQuit
		return m, tea.Quit
	}
	return m, nil
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuItemStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	menuCurStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("37")).
			Padding(1, 3)
)

func presetLabel(p config.DifficultyPreset) string {
	if p == "" {
		return "as configured"
	}
	return string(p)
}

func (item MenuItem) line() string {
	if item.HighScore <= 0 {
		return item.Title
	}
	s := fmt.Sprintf("%s  (best %d", item.Title, item.HighScore)
	if item.BestStage >= 0 {
		s += fmt.Sprintf(" x%d", 1<<item.BestStage)
	}
	return s + ")"
}

// View renders the menu panel centered on the screen.
func (m MenuModel) View() string {
	if m.outcome == menuQuit {
		return ""
	}

	rows := []string{
		menuTitleStyle.Render("W I R E S"),
		menuDimStyle.Render("ride the spark, mind the gap"),
		"",
	}
	for i, item := range m.items {
		if i == m.cursor {
			rows = append(rows, menuCurStyle.Render("> "+item.line()))
		} else {
			rows = append(rows, menuItemStyle.Render("  "+item.line()))
		}
	}
	if len(m.items) > 0 && m.items[m.cursor].Description != "" {
		rows = append(rows, "", menuDimStyle.Render(m.items[m.cursor].Description))
	}
	rows = append(rows, "",
		menuItemStyle.Render(fmt.Sprintf("difficulty  < %s >", presetLabel(presetChoices[m.preset]))))

	panel := menuPanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	body := lipgloss.JoinVertical(lipgloss.Center, panel, "", m.help.View(m.keyMapper.Menu))
	if m.config.ScreenW <= 0 || m.config.ScreenH <= 0 {
		return body
	}
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, body)
}

// Selected returns the highlighted item once the user chose to play.
func (m MenuModel) Selected() *MenuItem {
	if m.outcome != menuPlay {
		return nil
	}
	item := m.items[m.cursor]
	return &item
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.outcome == menuQuit
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.outcome == menuScores
}

// Config returns the runtime config with the latest size and preset.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config()}
	switch m.outcome {
	case menuPlay:
		res.GameID = m.items[m.cursor].GameID
	case menuScores:
		res.WantsScoreboard = true
	default:
		res.Quit = true
	}
	return res, nil
}

// centerText centers text within width. Text may contain ANSI escapes.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
