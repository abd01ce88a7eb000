package tui

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"wordsheet/internal/domain"
	"wordsheet/internal/grid"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testWidth  = 60
	testHeight = 12
	wordX      = 10
	meaningX   = 40
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestApp(t *testing.T, words ...string) (*App, tcell.SimulationScreen, *fakeClock) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(testWidth, testHeight)
	t.Cleanup(screen.Fini)

	n := 0
	store := grid.NewStore(func() string {
		n++
		return "new" + strconv.Itoa(n)
	}, nil)
	entries := make([]domain.WordEntry, 0, len(words))
	for i, w := range words {
		entries = append(entries, domain.NewWordEntry("r"+strconv.Itoa(i), w, "뜻"+strconv.Itoa(i)))
	}
	engine := grid.NewEngine(store)
	engine.Load(entries)

	clock := &fakeClock{now: time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)}
	app := New(screen, engine, zap.NewNop(), Options{ExportDir: t.TempDir(), Now: clock.Now})
	return app, screen, clock
}

func key(k tcell.Key) *tcell.EventKey {
	mod := tcell.ModNone
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		mod = tcell.ModCtrl
	}
	return tcell.NewEventKey(k, 0, mod)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func press(x, y int) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone)
}

func release(x, y int) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone)
}

func clickAt(a *App, x, y int) {
	a.handleEvent(press(x, y))
	a.handleEvent(release(x, y))
}

// bodyY returns the screen line of a row when the sheet is not scrolled
func bodyY(row int) int {
	return headerRows + row
}

func line(t *testing.T, a *App, screen tcell.SimulationScreen, y int) string {
	t.Helper()
	a.draw()
	screen.Show()

	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for _, c := range cells[y*w : (y+1)*w] {
		if len(c.Runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(string(c.Runes))
	}
	return b.String()
}

func TestDraw_Sheet(t *testing.T) {
	a, screen, _ := newTestApp(t, "apple", "pear")

	assert.Contains(t, line(t, a, screen, 0), "Word Sheet")
	header := line(t, a, screen, 1)
	assert.Contains(t, header, "WORD")
	assert.Contains(t, header, "MEANING")

	first := line(t, a, screen, bodyY(0))
	assert.Contains(t, first, "01")
	assert.Contains(t, first, "apple")
	assert.Contains(t, strings.ReplaceAll(first, " ", ""), "뜻0")
	assert.Contains(t, line(t, a, screen, bodyY(1)), "02")
	assert.Contains(t, line(t, a, screen, bodyY(2)), addRowLabel)

	status := line(t, a, screen, testHeight-1)
	assert.Contains(t, status, "Study")
	assert.Contains(t, status, "2 words")
}

func TestDraw_QuizModes(t *testing.T) {
	tests := []struct {
		name      string
		key       tcell.Key
		hidden    string
		visible   string
		statusTag string
	}{
		{name: "word quiz", key: tcell.KeyF2, hidden: "apple", visible: "뜻0", statusTag: "Word quiz"},
		{name: "meaning quiz", key: tcell.KeyF3, hidden: "뜻0", visible: "apple", statusTag: "Meaning quiz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, screen, _ := newTestApp(t, "apple")

			a.handleEvent(key(tt.key))

			row := strings.ReplaceAll(line(t, a, screen, bodyY(0)), " ", "")
			assert.NotContains(t, row, tt.hidden)
			assert.Contains(t, row, tt.visible)
			assert.Contains(t, row, "____")
			assert.Contains(t, line(t, a, screen, testHeight-1), tt.statusTag)
		})
	}
}

func TestKeys_AppendAndDeleteRow(t *testing.T) {
	a, _, _ := newTestApp(t, "apple", "pear")

	a.handleEvent(key(tcell.KeyCtrlN))
	assert.Equal(t, 3, a.engine.Len())

	clickAt(a, wordX, bodyY(0))
	a.handleEvent(key(tcell.KeyCtrlD))

	rows := a.engine.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "pear", rows[0].Word)
}

func TestKeys_DeleteAllNeedsConfirmation(t *testing.T) {
	a, screen, _ := newTestApp(t, "apple", "pear")

	a.handleEvent(key(tcell.KeyCtrlX))
	assert.Contains(t, line(t, a, screen, testHeight-1), "(y/n)")
	a.handleEvent(runeKey('n'))

	assert.Equal(t, 2, a.engine.Len())
	assert.Equal(t, "Cancelled", a.message)

	a.handleEvent(key(tcell.KeyCtrlX))
	a.handleEvent(runeKey('y'))

	assert.Equal(t, 0, a.engine.Len())
}

func TestKeys_Quit(t *testing.T) {
	a, _, _ := newTestApp(t)

	assert.True(t, a.handleEvent(key(tcell.KeyCtrlQ)))
	assert.True(t, a.handleEvent(nil))
	assert.False(t, a.handleEvent(key(tcell.KeyF1)))
}

func TestKeys_TypingEditsSelectedCell(t *testing.T) {
	a, screen, _ := newTestApp(t, "apple")

	clickAt(a, meaningX, bodyY(0))
	a.handleEvent(runeKey('새'))
	a.handleEvent(runeKey('로'))

	assert.True(t, a.engine.IsEditing(0, domain.FieldMeaning))
	assert.Equal(t, "새로", a.engine.Rows()[0].Meaning)
	assert.Contains(t, strings.ReplaceAll(line(t, a, screen, bodyY(0)), " ", ""), "새로")

	a.handleEvent(key(tcell.KeyEnter))
	assert.False(t, a.engine.IsEditing(0, domain.FieldMeaning))
}

func TestMouse_ClickSelectsCell(t *testing.T) {
	a, _, _ := newTestApp(t, "apple", "pear")

	clickAt(a, meaningX, bodyY(1))

	sel, ok := a.engine.Selected()
	require.True(t, ok)
	assert.Equal(t, domain.Cursor{RowID: "r1", Field: domain.FieldMeaning}, sel)
}

func TestMouse_GutterSelectsWord(t *testing.T) {
	a, _, _ := newTestApp(t, "apple")

	clickAt(a, 1, bodyY(0))

	sel, ok := a.engine.Selected()
	require.True(t, ok)
	assert.Equal(t, domain.FieldWord, sel.Field)
}

func TestMouse_DoubleClick(t *testing.T) {
	tests := []struct {
		name     string
		gap      time.Duration
		expected bool
	}{
		{name: "fast second click edits", gap: 100 * time.Millisecond, expected: true},
		{name: "slow second click selects", gap: time.Second, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, clock := newTestApp(t, "apple")

			clickAt(a, wordX, bodyY(0))
			clock.Advance(tt.gap)
			clickAt(a, wordX, bodyY(0))

			assert.Equal(t, tt.expected, a.engine.IsEditing(0, domain.FieldWord))
		})
	}
}

func TestMouse_DragSelectsRange(t *testing.T) {
	a, screen, _ := newTestApp(t, "a", "b", "c", "d")

	a.handleEvent(press(meaningX, bodyY(0)))
	a.handleEvent(press(meaningX, bodyY(1)))
	a.handleEvent(press(meaningX, bodyY(2)))
	a.handleEvent(release(meaningX, bodyY(2)))

	r, ok := a.engine.Selection()
	require.True(t, ok)
	assert.Equal(t, domain.Range{StartRow: 0, StartField: domain.FieldMeaning, EndRow: 2, EndField: domain.FieldMeaning}, r)
	assert.True(t, a.engine.MultiRowSelected())
	assert.Contains(t, line(t, a, screen, testHeight-1), "Ctrl+S shuffle")

	a.handleEvent(key(tcell.KeyCtrlS))
	assert.Equal(t, "Shuffled selected rows", a.message)
	assert.Equal(t, "d", a.engine.Rows()[3].Word)
}

func TestMouse_AddRowLine(t *testing.T) {
	a, _, _ := newTestApp(t, "apple")

	clickAt(a, wordX, bodyY(1))

	assert.Equal(t, 2, a.engine.Len())
}

func TestMouse_OutsideBodyIsIgnored(t *testing.T) {
	a, _, _ := newTestApp(t, "apple")

	clickAt(a, wordX, 1)
	clickAt(a, wordX, bodyY(5))

	_, ok := a.engine.Selected()
	assert.False(t, ok)
	assert.Equal(t, 1, a.engine.Len())
}

func TestScroll_FollowsSelection(t *testing.T) {
	words := make([]string, 30)
	for i := range words {
		words[i] = "w" + strconv.Itoa(i)
	}
	a, screen, _ := newTestApp(t, words...)
	bodyRows := a.layout().bodyRows

	clickAt(a, wordX, bodyY(0))
	for i := 0; i < 20; i++ {
		a.handleEvent(key(tcell.KeyDown))
	}

	assert.Equal(t, 20, a.engine.SelectedIndex())
	assert.Equal(t, 20-bodyRows+1, a.top)
	assert.Contains(t, line(t, a, screen, bodyY(bodyRows-1)), "21")

	a.handleEvent(tcell.NewEventMouse(wordX, bodyY(0), tcell.WheelDown, tcell.ModNone))
	assert.Equal(t, 20-bodyRows+1+wheelStep, a.top)

	for i := 0; i < 20; i++ {
		a.handleEvent(tcell.NewEventMouse(wordX, bodyY(0), tcell.WheelUp, tcell.ModNone))
	}
	assert.Equal(t, 0, a.top)
}

func TestExport_WritesQuizFile(t *testing.T) {
	a, _, _ := newTestApp(t, "apple")
	a.handleEvent(key(tcell.KeyF2))

	a.handleEvent(key(tcell.KeyCtrlP))

	path := filepath.Join(a.exportDir, "quiz-20240615-090000-word.txt")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "WORD SHEET TEST")
	assert.NotContains(t, string(data), "apple")
	assert.Equal(t, "Exported "+path, a.message)
}

func TestExport_KeepsEarlierSheetsOfTheDay(t *testing.T) {
	a, _, _ := newTestApp(t, "apple")

	a.handleEvent(key(tcell.KeyF2))
	a.handleEvent(key(tcell.KeyCtrlP))
	a.handleEvent(key(tcell.KeyF3))
	a.handleEvent(key(tcell.KeyCtrlP))

	files, err := filepath.Glob(filepath.Join(a.exportDir, "quiz-20240615-*.txt"))
	require.NoError(t, err)
	assert.Len(t, files, 2)

	word, err := os.ReadFile(filepath.Join(a.exportDir, "quiz-20240615-090000-word.txt"))
	require.NoError(t, err)
	assert.NotContains(t, string(word), "apple")
}

func TestSavedNotification(t *testing.T) {
	a, screen, _ := newTestApp(t, "apple")
	at := time.Date(2024, 6, 15, 9, 30, 5, 0, time.Local)

	a.handleEvent(tcell.NewEventInterrupt(at))

	assert.Contains(t, line(t, a, screen, testHeight-1), "saved 09:30:05")
}
