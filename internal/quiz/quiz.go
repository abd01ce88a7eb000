// Package quiz lays out a word list as a printable plain-text test sheet.
package quiz

import (
	"fmt"
	"io"
	"strings"

	"wordsheet/internal/domain"

	"github.com/mattn/go-runewidth"
)

const (
	minColumnWidth = 12
	maxColumnWidth = 32
	footerGap      = 4
)

// Filename returns the export file name for the sheet, e.g.
// quiz-20240615-090000-word.txt
func Filename(sheet domain.QuizSheet, mode domain.Mode) string {
	return fmt.Sprintf("quiz-%s-%s-%s.txt", sheet.DateString(), sheet.Date.Format("150405"), mode)
}

// Render writes the sheet. In a quiz mode the quizzed column is printed as
// an answer line instead of its text.
func Render(w io.Writer, entries []domain.WordEntry, mode domain.Mode, sheet domain.QuizSheet) error {
	wordWidth := columnWidth(entries, domain.FieldWord)
	meaningWidth := columnWidth(entries, domain.FieldMeaning)

	var b strings.Builder
	for i, e := range entries {
		b.WriteString(fmt.Sprintf("%02d  ", i+1))
		b.WriteString(cell(e, domain.FieldWord, mode, wordWidth))
		b.WriteString("  ")
		b.WriteString(strings.TrimRight(cell(e, domain.FieldMeaning, mode, meaningWidth), " "))
		b.WriteByte('\n')
	}

	width := 4 + wordWidth + 2 + meaningWidth
	b.WriteString(strings.Repeat("-", width))
	b.WriteString("\n\n")
	writeFooter(&b, sheet, width)

	_, err := io.WriteString(w, b.String())
	return err
}

// String renders the sheet into a string
func String(entries []domain.WordEntry, mode domain.Mode, sheet domain.QuizSheet) string {
	var b strings.Builder
	// strings.Builder never fails a write
	_ = Render(&b, entries, mode, sheet)
	return b.String()
}

func cell(e domain.WordEntry, f domain.Field, mode domain.Mode, width int) string {
	if mode.Hides(f) {
		return strings.Repeat("_", width)
	}
	text := runewidth.Truncate(e.Get(f), width, "…")
	return runewidth.FillRight(text, width)
}

func columnWidth(entries []domain.WordEntry, f domain.Field) int {
	width := minColumnWidth
	for _, e := range entries {
		if w := runewidth.StringWidth(e.Get(f)); w > width {
			width = w
		}
	}
	if width > maxColumnWidth {
		width = maxColumnWidth
	}
	return width
}

func writeFooter(b *strings.Builder, sheet domain.QuizSheet, width int) {
	left := []string{
		"NAME  " + strings.Repeat("_", minColumnWidth),
		"DATE  " + sheet.DisplayString(),
	}
	middle := []string{
		"WORD SHEET TEST",
		fmt.Sprintf("Total %d Words", sheet.Total),
	}
	right := []string{
		"SCORE",
		sheet.ScoreString(),
	}

	leftWidth := maxWidth(left) + footerGap
	middleWidth := maxWidth(middle) + footerGap
	rightWidth := maxWidth(right)
	if spare := width - leftWidth - middleWidth - rightWidth; spare > 0 {
		middleWidth += spare
	}

	for i := range left {
		b.WriteString(runewidth.FillRight(left[i], leftWidth))
		b.WriteString(runewidth.FillRight(middle[i], middleWidth))
		b.WriteString(runewidth.FillLeft(right[i], rightWidth))
		b.WriteByte('\n')
	}
}

func maxWidth(lines []string) int {
	width := 0
	for _, l := range lines {
		if w := runewidth.StringWidth(l); w > width {
			width = w
		}
	}
	return width
}
