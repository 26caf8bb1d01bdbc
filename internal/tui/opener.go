package tui

import (
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
)

// OpenURL hands url to the desktop's default handler. It returns once the
// handler has been started and does not wait for it.
func OpenURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "opening %s", url)
	}
	go cmd.Wait()
	return nil
}

// open shows url in the status line and, if an opener is configured,
// launches it off the event loop.
func (m *Model) open(url string) tea.Cmd {
	m.message = "Opening " + url
	if m.opener == nil {
		return nil
	}
	opener := m.opener
	return func() tea.Msg {
		return openedMsg{url: url, err: opener(url)}
	}
}
