package bubbletea

import tea "github.com/charmbracelet/bubbletea"

// ProgressBar exports progressBar for testing.
func ProgressBar(s Styles, ratio float64, width int) string {
	return s.progressBar(ratio, width)
}

// ExpireNotice returns the message that clears the current notification.
func ExpireNotice(m Model) tea.Msg {
	return noticeExpiredMsg{seq: m.noticeSeq}
}

// Mode reports the active screen for testing.
func Mode(m Model) string {
	switch m.mode {
	case modeDetail:
		return "detail"
	case modeForm:
		return "form"
	case modeConfirm:
		return "confirm"
	}
	return "list"
}

// DetailContent exports detailContent for testing.
func DetailContent(m Model) string {
	return m.detailContent()
}
