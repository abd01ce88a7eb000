package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"wordsheet/internal/domain"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Styles
var (
	styleDefault  = tcell.StyleDefault
	styleTitle    = tcell.StyleDefault.Bold(true).Italic(true).Foreground(tcell.ColorWhite)
	styleTab      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTabSel   = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	styleHeader   = tcell.StyleDefault.Foreground(tcell.ColorSilver).Bold(true)
	styleGutter   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBorder   = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleMeaning  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleBlank    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleRange    = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleCursor   = tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite)
	styleEditing  = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	styleAddRow   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleSaved    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorNavy).Bold(true)
	styleConfirm  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon).Bold(true)
	styleShuffle  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Background(tcell.ColorNavy)
	addRowLabel   = "+ ADD TO END"
	confirmPrompt = "Delete every word? This cannot be undone. (y/n)"
)

const (
	gutterWidth = 4
	headerRows  = 2
	footerRows  = 1
	cellPadding = 1
)

// layout is the screen geometry for one frame
type layout struct {
	width, height int
	wordX, wordW  int
	sepX          int
	meaningX      int
	meaningW      int
	bodyTop       int
	bodyRows      int
}

func newLayout(w, h int) layout {
	avail := w - gutterWidth - 1
	if avail < 2 {
		avail = 2
	}
	wordW := avail / 2
	bodyRows := h - headerRows - footerRows
	if bodyRows < 0 {
		bodyRows = 0
	}
	return layout{
		width:    w,
		height:   h,
		wordX:    gutterWidth,
		wordW:    wordW,
		sepX:     gutterWidth + wordW,
		meaningX: gutterWidth + wordW + 1,
		meaningW: avail - wordW,
		bodyTop:  headerRows,
		bodyRows: bodyRows,
	}
}

// fieldAt maps a column to a field. The row number gutter belongs to the
// word field.
func (l layout) fieldAt(x int) (domain.Field, bool) {
	switch {
	case x < 0 || x >= l.width:
		return 0, false
	case x <= l.sepX:
		return domain.FieldWord, true
	default:
		return domain.FieldMeaning, true
	}
}

func (l layout) column(f domain.Field) (x, w int) {
	if f == domain.FieldWord {
		return l.wordX, l.wordW
	}
	return l.meaningX, l.meaningW
}

func (a *App) layout() layout {
	w, h := a.screen.Size()
	return newLayout(w, h)
}

func (a *App) draw() {
	a.screen.Clear()
	a.screen.HideCursor()
	l := a.layout()

	a.drawTitle(l)
	a.drawHeader(l)

	rows := a.engine.Rows()
	for i := 0; i < l.bodyRows; i++ {
		row := a.top + i
		y := l.bodyTop + i
		switch {
		case row < len(rows):
			a.drawRow(l, y, row, rows[row])
		case row == len(rows):
			drawText(a.screen, l.wordX+cellPadding, y, l.width, addRowLabel, styleAddRow)
		}
	}

	a.drawStatus(l)
}

func (a *App) drawTitle(l layout) {
	x := drawText(a.screen, 1, 0, l.width, "Word Sheet", styleTitle) + 3

	tabs := []struct {
		label string
		mode  domain.Mode
	}{
		{"F1 Study", domain.ModeStudy},
		{"F2 Word quiz", domain.ModeQuizWord},
		{"F3 Meaning quiz", domain.ModeQuizMeaning},
	}
	for _, t := range tabs {
		style := styleTab
		if a.engine.Mode() == t.mode {
			style = styleTabSel
		}
		x = drawText(a.screen, x, 0, l.width, " "+t.label+" ", style) + 1
	}
}

func (a *App) drawHeader(l layout) {
	drawText(a.screen, 1, 1, l.width, "#", styleHeader)
	drawText(a.screen, l.wordX+cellPadding, 1, l.sepX, "WORD", styleHeader)
	a.screen.SetContent(l.sepX, 1, '│', nil, styleBorder)
	drawText(a.screen, l.meaningX+cellPadding, 1, l.width, "MEANING", styleHeader)
}

func (a *App) drawRow(l layout, y, row int, entry domain.WordEntry) {
	drawText(a.screen, 1, y, gutterWidth, fmt.Sprintf("%02d", row+1), styleGutter)

	for _, f := range domain.Fields {
		a.drawCell(l, y, row, entry, f)
	}
	a.screen.SetContent(l.sepX, y, '│', nil, styleBorder)
}

func (a *App) drawCell(l layout, y, row int, entry domain.WordEntry, f domain.Field) {
	x, w := l.column(f)
	inner := w - 2*cellPadding

	style := styleDefault
	if f == domain.FieldMeaning {
		style = styleMeaning
	}
	editing := a.engine.IsEditing(row, f)
	switch {
	case editing:
		style = styleEditing
	case a.isCursor(entry.ID, f):
		style = styleCursor
	case a.engine.IsSelected(row, f):
		style = styleRange
	}
	fill(a.screen, x, y, w, style)

	if a.engine.Mode().Hides(f) {
		if style == styleDefault || style == styleMeaning {
			style = styleBlank
		}
		drawText(a.screen, x+cellPadding, y, x+w, strings.Repeat("_", max(inner, 0)), style)
		return
	}

	text := entry.Get(f)
	if editing {
		// Keep the end of the text and the cursor in view
		for runewidth.StringWidth(text) >= inner && text != "" {
			_, size := utf8.DecodeRuneInString(text)
			text = text[size:]
		}
		end := drawText(a.screen, x+cellPadding, y, x+w, text, style)
		a.screen.ShowCursor(end, y)
		return
	}
	drawText(a.screen, x+cellPadding, y, x+w, runewidth.Truncate(text, inner, "…"), style)
}

func (a *App) isCursor(id string, f domain.Field) bool {
	if _, hasRange := a.engine.Selection(); hasRange {
		return false
	}
	sel, ok := a.engine.Selected()
	return ok && sel.RowID == id && sel.Field == f
}

func (a *App) drawStatus(l layout) {
	y := l.height - 1
	fill(a.screen, 0, y, l.width, styleStatus)

	if a.confirming {
		fill(a.screen, 0, y, l.width, styleConfirm)
		drawText(a.screen, 1, y, l.width, confirmPrompt, styleConfirm)
		return
	}

	x := drawText(a.screen, 1, y, l.width, fmt.Sprintf("%s · %d words", modeLabel(a.engine.Mode()), a.engine.Len()), styleStatus)

	if !a.savedAt.IsZero() {
		x = drawText(a.screen, x+2, y, l.width, "● saved "+a.savedAt.Format("15:04:05"), styleSaved)
	}
	if a.engine.MultiRowSelected() {
		x = drawText(a.screen, x+2, y, l.width, "Ctrl+S shuffle selection", styleShuffle)
	}

	msg := a.message
	if msg == "" {
		msg = "^N add  ^D delete row  ^X delete all  ^P export  ^Q quit"
	}
	drawText(a.screen, x+2, y, l.width, msg, styleStatus)
}

func modeLabel(m domain.Mode) string {
	switch m {
	case domain.ModeQuizWord:
		return "Word quiz"
	case domain.ModeQuizMeaning:
		return "Meaning quiz"
	default:
		return "Study"
	}
}

// drawText draws s from x up to (not including) column limit and returns the
// column after the last cell drawn
func drawText(s tcell.Screen, x, y, limit int, text string, style tcell.Style) int {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > limit {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

func fill(s tcell.Screen, x, y, w int, style tcell.Style) {
	for i := 0; i < w; i++ {
		s.SetContent(x+i, y, ' ', nil, style)
	}
}
