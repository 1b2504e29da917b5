// Package view provides rendering helpers shared by the calendar views.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PadLinesWithBackground pads content to width/height with a background color.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	padding := lipgloss.NewStyle().Background(bg)

	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := 0; i < height; i++ {
		w := lipgloss.Width(lines[i])
		if w < width {
			lines[i] += padding.Render(strings.Repeat(" ", width-w))
		}
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// Overlay splices modal content over base content, centered. Each base
// line is cut around the modal with ANSI-aware slicing so styled cells on
// either side keep their colors.
func Overlay(base, modal string, width, height int, modalBg lipgloss.Color) string {
	modalLines := strings.Split(modal, "\n")
	modalH := len(modalLines)
	if modalH == 0 {
		return base
	}

	modalW := 0
	for _, line := range modalLines {
		if w := lipgloss.Width(line); w > modalW {
			modalW = w
		}
	}
	if modalW == 0 {
		return base
	}
	if modalW > width {
		modalW = width
	}

	top := (height - modalH) / 2
	left := (width - modalW) / 2
	if top < 0 {
		top = 0
	}
	if left < 0 {
		left = 0
	}

	bgSeq := backgroundSeq(modalBg)
	padding := lipgloss.NewStyle().Background(modalBg)
	for i, line := range modalLines {
		w := lipgloss.Width(line)
		if w > modalW {
			line = ansi.Cut(line, 0, modalW)
		} else if w < modalW {
			line += padding.Render(strings.Repeat(" ", modalW-w))
		}
		// Inner resets would leak the base background into the modal.
		if bgSeq != "" {
			line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bgSeq)
		}
		modalLines[i] = line + ansi.ResetStyle
	}

	baseLines := strings.Split(PadLinesWithBackground(base, width, height, lipgloss.Color("")), "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}

	out := make([]string, 0, height)
	for row := 0; row < height; row++ {
		if row < top || row >= top+modalH {
			out = append(out, baseLines[row])
			continue
		}
		baseLine := baseLines[row]
		out = append(out,
			ansi.Cut(baseLine, 0, left)+
				modalLines[row-top]+
				ansi.Cut(baseLine, left+modalW, width))
	}
	return strings.Join(out, "\n")
}

func backgroundSeq(bg lipgloss.Color) string {
	if bg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.XParseColor(string(bg))).String()
}

// ModalStyles groups the styles needed to render a modal frame.
type ModalStyles struct {
	Frame  lipgloss.Style
	Header lipgloss.Style
	Title  lipgloss.Style
	Footer lipgloss.Style
}

// RenderModalFrame renders a modal with the provided title, body, and footer.
func RenderModalFrame(title, body, footer string, styles ModalStyles) string {
	var b strings.Builder

	b.WriteString(styles.Header.Render(styles.Title.Render(title)))
	if body != "" {
		b.WriteString("\n\n")
		b.WriteString(body)
	}
	if footer != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.Footer.Render(footer))
	}

	return styles.Frame.Render(b.String())
}
