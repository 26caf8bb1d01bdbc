package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorGreen  = lipgloss.Color("10")
	colorRed    = lipgloss.Color("9")
	colorBlue   = lipgloss.Color("12")
	colorYellow = lipgloss.Color("11")
	colorPurple = lipgloss.Color("141")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")

	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	grayStyle     = lipgloss.NewStyle().Foreground(colorGray)
	okStyle       = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	errStyle      = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	warnStyle     = lipgloss.NewStyle().Foreground(colorYellow)
	infoStyle     = lipgloss.NewStyle().Foreground(colorBlue)
	purpleStyle   = lipgloss.NewStyle().Foreground(colorPurple)
	messageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15"))
	navActive     = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(colorGreen).Bold(true).Padding(0, 1)
	navIdle       = lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(colorGreen).Padding(0, 1)
	snakeStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	headStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	foodStyle     = lipgloss.NewStyle().Foreground(colorRed)
)
