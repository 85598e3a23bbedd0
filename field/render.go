package field

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/iw2rmb/retype/buffer"
	"github.com/iw2rmb/retype/internal/grapheme"
)

var clampPolicy = buffer.ConvertPolicy{ClampMode: buffer.OffsetClamp}

func (m Model) View() string {
	st := m.cfg.Style.Blurred
	if m.focused {
		st = m.cfg.Style.Focused
	}
	return st.Render(m.body())
}

// windowed reports whether the text is shown through the viewport.
func (m Model) windowed() bool { return m.ctl.multiline() && m.cfg.Height > 0 }

func (m Model) body() string {
	if !m.windowed() {
		return m.renderContent()
	}
	m.vp.SetContent(m.renderContent())
	return m.vp.View()
}

type lineSpan struct{ lo, hi int }

func splitLines(text string) []lineSpan {
	var out []lineSpan
	lo := 0
	for {
		i := strings.IndexByte(text[lo:], '\n')
		if i < 0 {
			return append(out, lineSpan{lo: lo, hi: len(text)})
		}
		out = append(out, lineSpan{lo: lo, hi: lo + i})
		lo += i + 1
	}
}

// displayCluster returns how a cluster is drawn and how many cells it takes.
func displayCluster(s string) (string, int) {
	if s == "\t" {
		return " ", 1
	}
	w := runewidth.StringWidth(s)
	if w < 1 {
		w = 1
	}
	return s, w
}

func (m Model) caretBytes() (cur, selLo, selHi int) {
	b := m.buf()
	text := b.Text()
	cur, _ = buffer.ByteOffset(text, b.Cursor(), b.Unit(), clampPolicy)
	selLo, selHi, _ = buffer.ByteRange(text, b.Selection(), clampPolicy)
	return cur, selLo, selHi
}

func (m Model) promptWidth() int {
	if m.ctl.multiline() {
		return 0
	}
	return lipgloss.Width(m.cfg.Prompt)
}

// textWidth is the number of cells available for text; 0 means unbounded.
func (m Model) textWidth() int {
	if m.cfg.Width <= 0 {
		return 0
	}
	return max(m.cfg.Width-m.promptWidth(), 1)
}

func (m *Model) renderContent() string {
	b := m.buf()
	text := b.Text()
	st := m.cfg.Style

	prompt := ""
	if m.cfg.Prompt != "" && !m.ctl.multiline() {
		prompt = st.Prompt.Render(m.cfg.Prompt)
	}

	if text == "" && m.cfg.Placeholder != "" {
		var sb strings.Builder
		sb.WriteString(prompt)
		if m.focused {
			sb.WriteString(st.Cursor.Render(" "))
		}
		sb.WriteString(st.Placeholder.Render(m.cfg.Placeholder))
		return sb.String()
	}

	cur, selLo, selHi := m.caretBytes()
	lines := splitLines(text)

	left := 0
	if !m.ctl.multiline() {
		left = m.xOffset
	}
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		out = append(out, prompt+m.renderLine(text[ln.lo:ln.hi], ln.lo, cur, selLo, selHi, left, m.textWidth()))
	}
	return strings.Join(out, "\n")
}

type runKind uint8

const (
	runText runKind = iota
	runSelection
	runCursor
)

// renderLine draws the cells of line in [left, left+width). base is the byte
// offset of line in the whole text.
func (m *Model) renderLine(line string, base, cur, selLo, selHi, left, width int) string {
	st := m.cfg.Style
	var sb, run strings.Builder
	kind := runText
	flush := func() {
		if run.Len() == 0 {
			return
		}
		switch kind {
		case runSelection:
			sb.WriteString(st.Selection.Render(run.String()))
		case runCursor:
			sb.WriteString(st.Cursor.Render(run.String()))
		default:
			sb.WriteString(st.Text.Render(run.String()))
		}
		run.Reset()
	}
	emit := func(k runKind, s string) {
		if k != kind || k == runCursor {
			flush()
			kind = k
		}
		run.WriteString(s)
	}

	col, off := 0, base
	for _, cl := range grapheme.Split(line) {
		s, w := displayCluster(cl)
		at := off
		off += len(cl)
		if col < left {
			col += w
			continue
		}
		if width > 0 && col+w > left+width {
			break
		}
		col += w
		switch {
		case m.focused && at == cur:
			emit(runCursor, s)
		case at >= selLo && at < selHi:
			emit(runSelection, s)
		default:
			emit(runText, s)
		}
	}
	if m.focused && cur == base+len(line) && (width <= 0 || col < left+width) {
		emit(runCursor, " ")
	}
	flush()
	return sb.String()
}

// cursorPos returns the caret's row and cell column.
func (m Model) cursorPos() (row, col int) {
	text := m.buf().Text()
	cur, _, _ := m.caretBytes()
	lo := strings.LastIndexByte(text[:cur], '\n') + 1
	row = strings.Count(text[:lo], "\n")
	for _, cl := range grapheme.Split(text[lo:cur]) {
		_, w := displayCluster(cl)
		col += w
	}
	return row, col
}

// follow scrolls so the caret stays visible.
func (m *Model) follow() {
	row, col := m.cursorPos()
	if m.ctl.multiline() {
		if !m.windowed() {
			return
		}
		m.vp.SetContent(m.renderContent())
		h := m.vp.Height - m.vp.Style.GetVerticalFrameSize()
		if h <= 0 {
			return
		}
		y := m.vp.YOffset
		if row < y {
			m.vp.SetYOffset(row)
		} else if row >= y+h {
			m.vp.SetYOffset(row - h + 1)
		}
		return
	}

	w := m.textWidth()
	if w <= 0 {
		m.xOffset = 0
		return
	}
	if col < m.xOffset {
		m.xOffset = col
	} else if col >= m.xOffset+w {
		m.xOffset = col - w + 1
	}
}
