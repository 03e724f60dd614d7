// Package console is a small terminal front end for instructors
// running a class without the web admin: list games, advance or rewind
// the clock, and add games and teams.
package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bfilipov/warehouse-game/internal/database"
	"github.com/bfilipov/warehouse-game/internal/engine"
	"github.com/bfilipov/warehouse-game/internal/models"
	"github.com/bfilipov/warehouse-game/internal/util"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	rowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

type gameRow struct {
	game  models.Game
	teams int
}

type gamesMsg []gameRow

type standingRow struct {
	team  models.Team
	day   int
	money float64
}

type standingsMsg struct {
	gameID int64
	rows   []standingRow
}

type statusMsg string

type errMsg struct{ err error }

// Model is the root bubbletea model of the console.
type Model struct {
	ctx    context.Context
	store  database.Store
	engine *engine.Engine

	games        []gameRow
	cursor       int
	status       string
	err          error
	standings    []standingRow
	standingsFor int64

	naming    bool
	nameInput textinput.Model
}

// New creates the console model over the given store and engine.
func New(ctx context.Context, store database.Store, eng *engine.Engine) Model {
	ti := textinput.New()
	ti.Placeholder = "team name"
	ti.CharLimit = 40
	ti.Width = 30
	return Model{ctx: ctx, store: store, engine: eng, nameInput: ti}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadGames, textinput.Blink)
}

func (m Model) loadGames() tea.Msg {
	games, err := m.store.ListActiveGames(m.ctx)
	if err != nil {
		return errMsg{err}
	}
	rows := make([]gameRow, 0, len(games))
	for _, g := range games {
		teams, err := m.store.ListTeamsForGame(m.ctx, g.ID)
		if err != nil {
			return errMsg{err}
		}
		rows = append(rows, gameRow{game: g, teams: len(teams)})
	}
	return gamesMsg(rows)
}

func (m Model) selected() (models.Game, bool) {
	if m.cursor < 0 || m.cursor >= len(m.games) {
		return models.Game{}, false
	}
	return m.games[m.cursor].game, true
}

func (m Model) advanceSelected() tea.Cmd {
	game, ok := m.selected()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		sum, err := m.engine.AdvancePeriod(m.ctx, game)
		if err != nil {
			return errMsg{err}
		}
		if sum.MaxDayReached {
			return statusMsg(fmt.Sprintf("game %d is already at the final day", game.ID))
		}
		return statusMsg(fmt.Sprintf("game %d advanced to day %d", game.ID, sum.ToDay))
	}
}

func (m Model) rewindSelected() tea.Cmd {
	game, ok := m.selected()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		sum, err := m.engine.RewindPeriod(m.ctx, game)
		if err != nil {
			return errMsg{err}
		}
		if sum.Clamped {
			return statusMsg(fmt.Sprintf("game %d is already at day 1", game.ID))
		}
		return statusMsg(fmt.Sprintf("game %d rewound to day %d", game.ID, sum.ToDay))
	}
}

// loadStandings fetches each team's most recent period figures for
// the selected game.
func (m Model) loadStandings() tea.Cmd {
	game, ok := m.selected()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		teams, err := m.store.ListTeamsForGame(m.ctx, game.ID)
		if err != nil {
			return errMsg{err}
		}
		rows := make([]standingRow, 0, len(teams))
		for _, team := range teams {
			row := standingRow{team: team}
			history, err := m.store.ListInputs(m.ctx, game.ID, team.ID)
			if err != nil {
				return errMsg{err}
			}
			if len(history) > 0 {
				latest := history[len(history)-1]
				row.day = latest.ActiveAtDay
				row.money = latest.MoneyAtStart
			}
			rows = append(rows, row)
		}
		return standingsMsg{gameID: game.ID, rows: rows}
	}
}

func (m Model) createGame() tea.Msg {
	game, err := m.store.CreateGame(m.ctx)
	if err != nil {
		return errMsg{err}
	}
	return statusMsg(fmt.Sprintf("created game %d", game.ID))
}

func (m Model) createTeam(name string) tea.Cmd {
	game, ok := m.selected()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		team, err := m.store.CreateTeam(m.ctx, name)
		if err != nil {
			return errMsg{err}
		}
		if err := m.store.AssignTeamToGame(m.ctx, team.ID, game.ID); err != nil {
			return errMsg{err}
		}
		if _, err := m.engine.ResolvePeriod(m.ctx, game, team); err != nil {
			return errMsg{err}
		}
		return statusMsg(fmt.Sprintf("team %q joined game %d", name, game.ID))
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case gamesMsg:
		m.games = msg
		if m.cursor >= len(m.games) {
			m.cursor = len(m.games) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil
	case standingsMsg:
		m.standings = msg.rows
		m.standingsFor = msg.gameID
		return m, nil
	case statusMsg:
		m.status = string(msg)
		m.err = nil
		if m.standingsFor != 0 {
			return m, tea.Batch(m.loadGames, m.loadStandings())
		}
		return m, m.loadGames
	case errMsg:
		m.err = msg.err
		return m, nil
	case tea.KeyMsg:
		if m.naming {
			return m.updateNaming(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.games)-1 {
			m.cursor++
		}
	case "enter":
		if game, ok := m.selected(); ok {
			if m.standingsFor == game.ID {
				m.standingsFor = 0
				m.standings = nil
				return m, nil
			}
			return m, m.loadStandings()
		}
	case "a":
		return m, m.advanceSelected()
	case "r":
		return m, m.rewindSelected()
	case "g":
		return m, m.createGame
	case "t":
		if _, ok := m.selected(); ok {
			m.naming = true
			m.nameInput.SetValue("")
			m.nameInput.Focus()
		}
	case "R":
		return m, m.loadGames
	}
	return m, nil
}

func (m Model) updateNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.naming = false
		return m, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.nameInput.Value())
		m.naming = false
		if name == "" {
			return m, nil
		}
		return m, m.createTeam(name)
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Warehouse Game"))
	b.WriteString("\n\n")

	if len(m.games) == 0 {
		b.WriteString(dimStyle.Render("no active games, press g to create one"))
		b.WriteString("\n")
	}
	for i, row := range m.games {
		cursor := "  "
		style := rowStyle
		if i == m.cursor {
			cursor = "> "
			style = cursorStyle
		}
		line := fmt.Sprintf("%sgame %d  day %d  %d teams",
			cursor, row.game.ID, row.game.CurrentDay, row.teams)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if m.standingsFor != 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render(fmt.Sprintf("Standings (game %d)", m.standingsFor)))
		b.WriteString("\n")
		if len(m.standings) == 0 {
			b.WriteString(dimStyle.Render("  no teams yet"))
			b.WriteString("\n")
		}
		for _, row := range m.standings {
			line := fmt.Sprintf("  %-20s day %-4d %s",
				row.team.DisplayName, row.day, util.Money(row.money))
			b.WriteString(rowStyle.Render(line))
			b.WriteString("\n")
		}
	}

	if m.naming {
		b.WriteString("\nNew team: ")
		b.WriteString(m.nameInput.View())
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter standings · a advance · r rewind · g new game · t new team · R refresh · q quit"))
	b.WriteString("\n")
	return b.String()
}
