package render

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/bowerhall/brandchat/internal/chat"
	"github.com/charmbracelet/lipgloss"
)

var (
	userHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			Padding(0, 1)

	agentHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true).
				Padding(0, 1)

	contentStyle = lipgloss.NewStyle().
			Padding(0, 2).
			MarginBottom(1)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	typingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true).
			Padding(0, 1)

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Padding(0, 1)
)

// inline data-URI images cannot be shown in a terminal
var inlineImage = regexp.MustCompile(`!\[([^\]]*)\]\(data:image/[^)]*\)`)

// Transcript writes every message in order, followed by the typing
// indicator when typing is true.
func Transcript(w io.Writer, msgs []chat.Message, typing bool) error {
	var b strings.Builder

	for _, m := range msgs {
		b.WriteString(Message(m))
		b.WriteString("\n")
	}

	if typing {
		b.WriteString(typingStyle.Render("… agent is typing"))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Message renders one transcript entry as a header line and an indented body.
func Message(m chat.Message) string {
	style := agentHeaderStyle
	if m.Sender == chat.SenderUser {
		style = userHeaderStyle
	}

	header := style.Render(strings.TrimSpace(m.AvatarGlyph + " " + senderLabel(m)))
	if !m.Timestamp.IsZero() {
		header += " " + timestampStyle.Render(m.Timestamp.Format("15:04:05"))
	}

	body := inlineImage.ReplaceAllString(m.Content, "[image preview: $1]")
	if m.Kind != "" && m.Kind != chat.KindText {
		body = strings.TrimSpace(fmt.Sprintf("%s\n[%s]", body, m.Kind))
	}

	return header + "\n" + contentStyle.Render(body)
}

// Pending lists staged files with the given size formatter.
func Pending(files []chat.FileHandle, size func(chat.FileHandle) string) string {
	if len(files) == 0 {
		return ""
	}

	lines := make([]string, 0, len(files)+1)
	lines = append(lines, fmt.Sprintf("staged (%d):", len(files)))
	for _, f := range files {
		lines = append(lines, fmt.Sprintf("  %s (%s)", f.Name, size(f)))
	}
	return pendingStyle.Render(strings.Join(lines, "\n"))
}

func senderLabel(m chat.Message) string {
	if m.SenderLabel != "" {
		return m.SenderLabel
	}
	return string(m.Sender)
}
