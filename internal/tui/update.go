package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"pipeterm/internal/palette"
	"pipeterm/internal/shell"
	"pipeterm/internal/snake"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case logsMsg:
		m.entries = msg
		return m, m.waitForLogs()
	case scrambleTickMsg:
		if m.hero.Step() {
			return m, scrambleTick()
		}
		return m, nil
	case gameTickMsg:
		if msg.gen != m.gameGen || m.mode != modeGame {
			return m, nil
		}
		m.game.Tick()
		if m.game.Status() == snake.Playing {
			return m, gameTick(m.gameGen)
		}
		m.log.Debug("deploy game over", "score", m.game.Score(), "high", m.game.HighScore())
		return m, nil
	case clockTickMsg:
		if msg.gen != m.clockGen || m.vis != shell.Monitor {
			return m, nil
		}
		m.now = msg.t
		return m, clockTick(m.clockGen)
	case pullTickMsg:
		if msg.idx < len(m.pulls) && m.pulls[msg.idx].Advance() {
			return m, pullTick(msg.idx)
		}
		return m, nil
	case suiteTickMsg:
		if m.runner.Step() {
			return m, suiteTick()
		}
		m.message = "Quality gate passed"
		return m, nil
	case spinner.TickMsg:
		if !m.runner.Running() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case openedMsg:
		if msg.err != nil {
			m.message = "Could not open " + msg.url
			m.log.Warn("open url failed", "url", msg.url, "error", msg.err)
		}
		return m, nil
	}
	return m, nil
}

// handleKey applies the global shortcuts and then routes the key to the
// active layer.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	if m.mode == modeGodMode {
		m.mode = m.prevMode
		return m, m.resume()
	}
	// the monitor swallows the first key, hotkeys included
	if m.vis == shell.Monitor {
		return m, m.setVis(m.vis.Next(shell.EventKey))
	}
	if m.konami.push(key) {
		m.prevMode = m.mode
		m.mode = modeGodMode
		m.log.Info("konami code entered")
		return m, nil
	}
	if key == "ctrl+k" {
		return m, m.togglePalette()
	}
	if (key == "`" || key == "~") && (m.mode == modeBrowse || m.mode == modeTerminal) {
		return m, m.setVis(m.vis.Next(shell.EventToggle))
	}

	switch m.mode {
	case modeTerminal:
		return m.updateTerminal(msg)
	case modeGame:
		return m.updateGame(msg)
	case modePalette:
		return m.updatePalette(msg)
	default:
		return m.updateBrowse(msg)
	}
}

// setVis moves the terminal to v, adjusting focus and the monitor clock.
func (m *Model) setVis(v shell.Visibility) tea.Cmd {
	m.vis = v
	m.clockGen++
	switch v {
	case shell.Closed:
		m.mode = modeBrowse
		m.input.Blur()
		return nil
	case shell.Monitor:
		m.mode = modeTerminal
		m.input.Blur()
		m.now = m.clock()
		return clockTick(m.clockGen)
	default:
		m.mode = modeTerminal
		return m.input.Focus()
	}
}

func (m Model) updateTerminal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, m.setVis(m.vis.Next(shell.EventExit))
	case "enter":
		return m, m.execute()
	case "pgup", "pgdown", "up", "down":
		var cmd tea.Cmd
		m.scroll, cmd = m.scroll.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// execute runs the prompt line through the interpreter and applies its
// side effect.
func (m *Model) execute() tea.Cmd {
	line := m.input.Value()
	m.input.Reset()
	res := m.shell.Execute(line)
	m.refreshScroll()

	if ev, ok := res.Effect.Event(); ok {
		return m.setVis(m.vis.Next(ev))
	}
	if res.Effect == shell.EffectOpenURL {
		return m.open(res.URL)
	}
	return nil
}

func (m Model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.game.Reset()
		m.gameGen++
		m.mode = modeBrowse
		return m, nil
	case "enter":
		if m.game.Status() == snake.Playing {
			return m, nil
		}
		m.game.Start()
		m.gameGen++
		return m, gameTick(m.gameGen)
	case "up":
		m.game.Steer(snake.Up)
	case "down":
		m.game.Steer(snake.Down)
	case "left":
		m.game.Steer(snake.Left)
	case "right":
		m.game.Steer(snake.Right)
	}
	return m, nil
}

// resume restarts the game tick when returning to a running game.
func (m *Model) resume() tea.Cmd {
	if m.mode != modeGame || m.game.Status() != snake.Playing {
		return nil
	}
	m.gameGen++
	return gameTick(m.gameGen)
}

// openGame shows the game modal. A game left running behind another layer
// gets a fresh tick loop.
func (m *Model) openGame() tea.Cmd {
	m.mode = modeGame
	m.gameGen++
	if m.game.Status() == snake.Playing {
		return gameTick(m.gameGen)
	}
	return nil
}

func (m *Model) togglePalette() tea.Cmd {
	if m.mode == modePalette {
		m.mode = m.prevMode
		m.query.Blur()
		return m.resume()
	}
	m.prevMode = m.mode
	m.mode = modePalette
	m.query.Reset()
	m.menu.SetQuery("")
	return m.query.Focus()
}

func (m Model) updatePalette(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, m.togglePalette()
	case "up":
		m.menu.Up()
		return m, nil
	case "down":
		m.menu.Down()
		return m, nil
	case "enter":
		item, ok := m.menu.Selected()
		resume := m.togglePalette()
		if !ok {
			return m, resume
		}
		return m, tea.Batch(resume, m.runItem(item))
	}
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	m.menu.SetQuery(strings.TrimSpace(m.query.Value()))
	return m, cmd
}

func (m *Model) runItem(item palette.Item) tea.Cmd {
	m.log.Debug("palette action", "title", item.Title)
	switch item.Kind {
	case palette.GoToSection:
		m.goTo(section(item.Section))
	case palette.OpenURL:
		return m.open(item.URL)
	case palette.OpenTerminal:
		if m.vis == shell.Closed {
			return m.setVis(m.vis.Next(shell.EventToggle))
		}
	case palette.StartDeploy:
		if m.vis != shell.Closed {
			m.setVis(m.vis.Next(shell.EventExit))
		}
		m.goTo(sectionDeploy)
		return m.openGame()
	}
	return nil
}

// goTo scrolls to s and reports the move to the log stream.
func (m *Model) goTo(s section) {
	if s < sectionHero || int(s) >= len(palette.Sections) || s == m.section {
		return
	}
	m.section = s
	m.logs.Navigate(int(s), s.String())
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "tab", "down", "j", "pgdown":
		m.goTo(m.section + 1)
		return m, nil
	case "shift+tab", "up", "k", "pgup":
		m.goTo(m.section - 1)
		return m, nil
	case "home":
		m.goTo(sectionHero)
		return m, nil
	case "end":
		m.goTo(sectionStatus)
		return m, nil
	}

	switch m.section {
	case sectionBuild:
		return m.updateBuild(msg)
	case sectionTest:
		if k := msg.String(); k == "enter" || k == "r" {
			if m.runner.Run() {
				m.message = ""
				return m, tea.Batch(suiteTick(), m.spin.Tick)
			}
		}
	case sectionDeploy:
		if msg.String() == "enter" {
			return m, m.openGame()
		}
	}
	return m, nil
}

func (m Model) updateBuild(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if m.artifact > 0 {
			m.artifact--
		}
	case "right", "l":
		if m.artifact < len(m.pulls)-1 {
			m.artifact++
		}
	case "enter", "p":
		if m.pulls[m.artifact].Begin(m.rand) {
			return m, pullTick(m.artifact)
		}
	}
	return m, nil
}

// resize fits the terminal scrollback to the window.
func (m *Model) resize() {
	w := m.width - 8
	if w < 20 {
		w = 20
	}
	h := m.height - 14
	if h < 5 {
		h = 5
	}
	m.scroll.Width = w
	m.scroll.Height = h
	m.input.Width = w - len(m.input.Prompt) - 1
	m.refreshScroll()
}

func (m *Model) refreshScroll() {
	m.scroll.SetContent(strings.Join(m.shell.History(), "\n"))
	m.scroll.GotoBottom()
}
