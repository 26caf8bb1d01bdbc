package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	figure "github.com/common-nighthawk/go-figure"

	"pipeterm/internal/logstream"
	"pipeterm/internal/monitor"
	"pipeterm/internal/palette"
	"pipeterm/internal/pipeline"
	"pipeterm/internal/shell"
	"pipeterm/internal/snake"
)

// logPaneLines is how much of the log stream is shown under a section.
const logPaneLines = 5

// View implements tea.Model. Overlays replace the section body; the
// navigation bar, log pane and status line stay put.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	width := m.width
	if width == 0 {
		width = 80
	}
	if m.mode == modeGodMode {
		return m.godModeView(width)
	}
	center := func(s string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
	}

	var out strings.Builder
	out.WriteString(m.navView(width))
	out.WriteString("\n\n")

	switch {
	case m.mode == modePalette:
		out.WriteString(center(m.paletteView()))
	case m.vis == shell.Monitor:
		out.WriteString(monitor.Render(width, m.now, m.paint, m.owner.Name))
	case m.vis == shell.Prompt:
		out.WriteString(center(m.terminalView()))
	case m.mode == modeGame:
		out.WriteString(center(m.gameView()))
	default:
		out.WriteString(m.sectionView(width))
		if m.section != sectionHero && m.section != sectionHistory {
			out.WriteString("\n\n")
			out.WriteString(logPane(m.entries))
		}
	}

	out.WriteString("\n\n")
	out.WriteString(center(dimStyle.Render(m.legend())))
	if m.message != "" {
		out.WriteString("\n")
		out.WriteString(center(messageStyle.Render(m.message)))
	}
	return out.String()
}

func (m Model) navView(width int) string {
	parts := make([]string, len(palette.Sections))
	for i, name := range palette.Sections {
		if section(i) == m.section {
			parts[i] = navActive.Render(name)
		} else {
			parts[i] = navIdle.Render(name)
		}
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}

func (m Model) legend() string {
	switch {
	case m.mode == modePalette:
		return "↑/↓ Select   Enter Run   Esc Close"
	case m.vis == shell.Monitor:
		return "Any key Detach"
	case m.vis == shell.Prompt:
		return "Enter Run   PgUp/PgDn Scroll   ` Close   Ctrl+K Commands"
	case m.mode == modeGame:
		return "Arrows Steer   Enter Start   Esc Abort"
	}
	legend := "↑/↓ Section   ` Terminal   Ctrl+K Commands   Q Quit"
	switch m.section {
	case sectionBuild:
		legend = "←/→ Artifact   Enter Pull   " + legend
	case sectionTest:
		legend = "Enter Run Pipeline   " + legend
	case sectionDeploy:
		legend = "Enter Deploy   " + legend
	}
	return legend
}

func (m Model) sectionView(width int) string {
	switch m.section {
	case sectionHistory:
		return m.historyView(width)
	case sectionBuild:
		return m.buildView(width)
	case sectionTest:
		return m.testView(width)
	case sectionDeploy:
		return m.deployView(width)
	case sectionStatus:
		return m.statusView(width)
	default:
		return m.heroView(width)
	}
}

func (m Model) heroView(width int) string {
	centerLine := func(s string) string {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s)
	}
	var b strings.Builder
	fig := figure.NewFigure("PIPETERM", "", true)
	for _, line := range strings.Split(fig.String(), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString(centerLine(headerStyle.Render(line)) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(centerLine(titleStyle.Render(m.hero.Frame())) + "\n\n")
	b.WriteString(centerLine(m.owner.Name+" | "+m.owner.Role) + "\n")
	b.WriteString(centerLine(dimStyle.Render("Press ` to open the terminal")))
	return b.String()
}

func (m Model) historyView(width int) string {
	details := lipgloss.NewStyle().Width(width - 8).PaddingLeft(4).Foreground(colorGray)
	var b strings.Builder
	b.WriteString(titleStyle.Render("SOURCE  git log --graph main") + "\n\n")
	for _, c := range pipeline.Commits {
		node := okStyle
		switch c.Type {
		case pipeline.Chore:
			node = infoStyle
		case pipeline.Init:
			node = purpleStyle
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s\n",
			node.Render("*"),
			warnStyle.Render(c.Hash),
			dimStyle.Render("("+c.Tag+", "+c.Date+")"),
			c.Message))
		b.WriteString(details.Render(c.Details) + "\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func progressBar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return okStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
}

func (m Model) buildView(width int) string {
	cards := make([]string, len(pipeline.Artifacts))
	for i, a := range pipeline.Artifacts {
		p := m.pulls[i]
		var status string
		switch p.State {
		case pipeline.Pulling:
			status = fmt.Sprintf("Pulling layer %s... %3.0f%%\n%s\n%s",
				strings.TrimPrefix(a.ID, "img-"), p.Progress(), progressBar(p.Progress(), 24),
				dimStyle.Render("Verifying checksum...\nExtracting layers..."))
		case pipeline.Pulled:
			status = okStyle.Render("✔ Image successfully pulled")
		default:
			status = infoStyle.Render("[ docker pull " + a.Ref() + " ]")
		}
		card := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(a.Name)+" "+dimStyle.Render(a.Tag),
			lipgloss.NewStyle().Width(28).Render(a.Description),
			purpleStyle.Render(strings.Join(a.Tech, " · ")),
			"",
			status,
		)
		style := boxStyle
		if i == m.artifact {
			style = style.BorderForeground(colorGreen)
		}
		cards[i] = style.Render(card)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	if lipgloss.Width(row) > width {
		row = lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	return titleStyle.Render("BUILD  artifact registry") + "\n\n" + row
}

func (m Model) testView(width int) string {
	button := okStyle.Render("[ Execute Pipeline ]")
	if m.runner.Running() {
		button = m.spin.View() + " " + grayStyle.Render("Running Suite...")
	}
	var suites strings.Builder
	for _, s := range m.runner.Suites() {
		icon := dimStyle.Render("○")
		switch s.Status {
		case pipeline.Running:
			icon = purpleStyle.Render("●")
		case pipeline.Passed:
			icon = okStyle.Render("✔")
		}
		dur := ""
		if s.Duration > 0 {
			dur = dimStyle.Render(fmt.Sprintf("%dms", s.Duration.Milliseconds()))
		}
		suites.WriteString(fmt.Sprintf("%s %-12s %-28s %s\n", icon, s.Type, s.Name, dur))
	}
	log := m.runner.Log()
	if len(log) > 10 {
		log = log[len(log)-10:]
	}
	logBox := boxStyle.Width(min(width-4, 72)).Render(strings.Join(log, "\n"))
	return titleStyle.Render("TEST  quality gate") + "   " + button + "\n\n" +
		strings.TrimRight(suites.String(), "\n") + "\n\n" + logBox
}

func (m Model) deployView(int) string {
	return titleStyle.Render("DEPLOY  production") + "\n\n" +
		"Production deploy is blocked by open bugs.\n" +
		"Press enter to start debugging.\n\n" +
		dimStyle.Render(fmt.Sprintf("High score: %d", m.game.HighScore()))
}

func (m Model) statusView(width int) string {
	cards := pipeline.Cards()
	boxes := make([]string, len(cards))
	for i, c := range cards {
		value := okStyle.Render(c.Value)
		if !c.Good {
			value = grayStyle.Render(c.Value)
		}
		boxes[i] = boxStyle.Width(32).Render(dimStyle.Render(c.Label) + "\n" + value + "\n" + dimStyle.Render(c.Sub))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
	if lipgloss.Width(row) > width {
		row = lipgloss.JoinVertical(lipgloss.Left, boxes...)
	}
	return titleStyle.Render("STATUS") + "   " + okStyle.Render("All Systems Operational") + "\n\n" + row + "\n\n" +
		dimStyle.Render("Incident History: No incidents reported today.\nScheduled Maintenance: None.")
}

func logPane(entries []logstream.Entry) string {
	if len(entries) > logPaneLines {
		entries = entries[len(entries)-logPaneLines:]
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		level := dimStyle
		switch e.Level {
		case logstream.Info:
			level = infoStyle
		case logstream.Warn:
			level = warnStyle
		case logstream.Success:
			level = okStyle
		}
		lines[i] = dimStyle.Render("["+e.Timestamp()+"]") + " " + level.Render("["+string(e.Level)+"]") + " " + grayStyle.Render(e.Message)
	}
	return strings.Join(lines, "\n")
}

func (m Model) terminalView() string {
	title := okStyle.Render("root@portfolio: ~")
	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", m.scroll.View(), m.input.View()))
}

func (m Model) paletteView() string {
	var b strings.Builder
	b.WriteString(m.query.View() + "\n\n")
	results := m.menu.Results()
	if len(results) == 0 {
		b.WriteString(dimStyle.Render("No results found."))
	}
	for i, it := range results {
		line := fmt.Sprintf(" %-20s %s ", it.Title, dimStyle.Render(string(it.Group)))
		if i == m.menu.Cursor() {
			line = selectedStyle.Render(fmt.Sprintf(" %-20s %s ", it.Title, it.Group))
		}
		b.WriteString(line + "\n")
	}
	return modalStyle.Width(44).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) gameView() string {
	snap := m.game.Snapshot()
	header := fmt.Sprintf("%s   %s",
		okStyle.Render(fmt.Sprintf("BUGS FIXED: %d", snap.Score)),
		purpleStyle.Render(fmt.Sprintf("HIGH: %d", snap.HighScore)))

	var board string
	switch snap.Status {
	case snake.Idle:
		board = boardPanel(snap,
			errStyle.Render("SYSTEM FAILURE"),
			grayStyle.Render("ERROR_CODE: 0xDEADBEEF"),
			"",
			okStyle.Render("[enter] INITIATE DEBUGGING"))
	case snake.GameOver:
		board = boardPanel(snap,
			errStyle.Render("DEPLOYMENT FAILED"),
			grayStyle.Render("Fixed "+pipeline.Count("bug", snap.Score)),
			"",
			okStyle.Render("[enter] RESTART SEQUENCE"))
	default:
		board = renderBoard(snap)
	}

	parts := []string{header, "", board}
	if snap.SecretUnlocked() {
		parts = append(parts, "", purpleStyle.Render("SECRET UNLOCKED: ↑ ↑ ↓ ↓ ← → ← → B A"))
	}
	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
}

// renderBoard draws two columns per cell so the board looks square.
func renderBoard(snap snake.Snapshot) string {
	body := make(map[snake.Point]bool, len(snap.Snake))
	for _, p := range snap.Snake {
		body[p] = true
	}
	var b strings.Builder
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			p := snake.Point{X: x, Y: y}
			switch {
			case len(snap.Snake) > 0 && p == snap.Snake[0]:
				b.WriteString(headStyle.Render("██"))
			case body[p]:
				b.WriteString(snakeStyle.Render("▓▓"))
			case p == snap.Food:
				b.WriteString(foodStyle.Render("<>"))
			default:
				b.WriteString(dimStyle.Render(" ."))
			}
		}
		if y < snap.Height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// boardPanel centers lines in a board-sized area.
func boardPanel(snap snake.Snapshot, lines ...string) string {
	return lipgloss.Place(snap.Width*2, snap.Height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (m Model) godModeView(width int) string {
	rain := func(rows int) string {
		var b strings.Builder
		for r := 0; r < rows; r++ {
			for c := 0; c < width/2; c++ {
				b.WriteRune(rune(0x30A0 + m.paint.Intn(96)))
			}
			b.WriteString("\n")
		}
		return dimStyle.Render(strings.TrimRight(b.String(), "\n"))
	}
	centerLine := func(s string) string {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s)
	}
	var b strings.Builder
	b.WriteString(rain(4) + "\n\n")
	for _, line := range strings.Split(figure.NewFigure("GOD MODE", "", true).String(), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString(centerLine(okStyle.Render(line)) + "\n")
	}
	b.WriteString("\n" + centerLine(okStyle.Render("ACCESS GRANTED - SYSTEM OVERRIDE")) + "\n")
	b.WriteString(centerLine(dimStyle.Render("press any key")) + "\n\n")
	b.WriteString(rain(4))
	return b.String()
}
