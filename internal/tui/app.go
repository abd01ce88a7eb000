// Package tui runs the word sheet editor in a terminal.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"wordsheet/internal/domain"
	"wordsheet/internal/grid"
	"wordsheet/internal/quiz"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

const (
	doubleClickWindow = 400 * time.Millisecond
	wheelStep         = 3
)

// Options configures an App
type Options struct {
	// ExportDir is where Ctrl+P writes quiz sheets
	ExportDir string
	// Now defaults to time.Now
	Now func() time.Time
}

// App owns the screen and feeds terminal events to the engine. All engine
// calls happen on the goroutine running Run.
type App struct {
	screen    tcell.Screen
	engine    *grid.Engine
	logger    *zap.Logger
	exportDir string
	now       func() time.Time

	top        int
	confirming bool
	message    string
	savedAt    time.Time

	button1   bool
	lastClick click
}

type click struct {
	at    time.Time
	row   int
	field domain.Field
	ok    bool
}

// New creates an app on an initialised screen
func New(screen tcell.Screen, engine *grid.Engine, logger *zap.Logger, opts Options) *App {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	return &App{
		screen:    screen,
		engine:    engine,
		logger:    logger,
		exportDir: opts.ExportDir,
		now:       opts.Now,
	}
}

// Run draws and handles events until the user quits or the screen closes
func (a *App) Run() {
	for {
		a.draw()
		a.screen.Show()

		if a.handleEvent(a.screen.PollEvent()) {
			return
		}
	}
}

// NotifySaved marks the sheet as saved at the given time. It is safe to call
// from any goroutine.
func (a *App) NotifySaved(at time.Time) {
	if err := a.screen.PostEvent(tcell.NewEventInterrupt(at)); err != nil {
		a.logger.Debug("Dropped saved notification", zap.Error(err))
	}
}

// handleEvent reports whether the app should stop
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case nil:
		return true
	case *tcell.EventResize:
		a.screen.Sync()
		a.ensureVisible()
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventInterrupt:
		if at, ok := ev.Data().(time.Time); ok {
			a.savedAt = at
		}
	}
	return false
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	a.message = ""

	if a.confirming {
		a.confirming = false
		if ev.Key() == tcell.KeyRune && (ev.Rune() == 'y' || ev.Rune() == 'Y') {
			a.engine.DeleteAll()
			a.top = 0
			a.logger.Info("All rows deleted")
			a.message = "All words deleted"
		} else {
			a.message = "Cancelled"
		}
		return false
	}

	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyCtrlC:
		return true
	case tcell.KeyCtrlN:
		a.engine.AppendEnd()
		a.scrollTo(a.engine.Len())
		return false
	case tcell.KeyCtrlD:
		a.engine.DeleteSelectedRow()
	case tcell.KeyCtrlX:
		a.confirming = true
	case tcell.KeyCtrlS:
		if a.engine.ShuffleSelection() {
			a.message = "Shuffled selected rows"
		} else {
			a.message = "Drag over rows to shuffle them"
		}
	case tcell.KeyCtrlP:
		a.export()
	case tcell.KeyF1:
		a.engine.SetMode(domain.ModeStudy)
	case tcell.KeyF2:
		a.engine.SetMode(domain.ModeQuizWord)
	case tcell.KeyF3:
		a.engine.SetMode(domain.ModeQuizMeaning)
	default:
		if k, ok := translateKey(ev); ok {
			a.engine.HandleKey(k)
		}
	}

	a.ensureVisible()
	return false
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		a.scroll(-wheelStep)
		return
	case buttons&tcell.WheelDown != 0:
		a.scroll(wheelStep)
		return
	}

	pressed := buttons&tcell.Button1 != 0
	switch {
	case pressed && !a.button1:
		a.button1 = true
		a.press(x, y)
	case pressed:
		if row, field, ok := a.hitTest(x, y); ok {
			a.engine.MouseEnter(row, field)
		}
	case a.button1:
		a.button1 = false
		a.engine.MouseUp()
	}
}

func (a *App) press(x, y int) {
	if a.onAddRow(x, y) {
		a.engine.AppendEnd()
		a.scrollTo(a.engine.Len())
		return
	}

	row, field, ok := a.hitTest(x, y)
	if !ok {
		return
	}

	now := a.now()
	last := a.lastClick
	if last.ok && last.row == row && last.field == field && now.Sub(last.at) < doubleClickWindow {
		a.lastClick = click{}
		a.engine.DoubleClick(row, field)
		return
	}

	a.lastClick = click{at: now, row: row, field: field, ok: true}
	a.engine.MouseDown(row, field)
}

// hitTest maps a screen position to a sheet cell
func (a *App) hitTest(x, y int) (int, domain.Field, bool) {
	l := a.layout()
	if y < l.bodyTop || y >= l.bodyTop+l.bodyRows {
		return 0, 0, false
	}
	row := a.top + y - l.bodyTop
	if row >= a.engine.Len() {
		return 0, 0, false
	}
	field, ok := l.fieldAt(x)
	return row, field, ok
}

func (a *App) onAddRow(x, y int) bool {
	l := a.layout()
	if y < l.bodyTop || y >= l.bodyTop+l.bodyRows || x < 0 || x >= l.width {
		return false
	}
	return a.top+y-l.bodyTop == a.engine.Len()
}

func (a *App) ensureVisible() {
	if idx := a.engine.SelectedIndex(); idx >= 0 {
		a.scrollTo(idx)
		return
	}
	a.scroll(0)
}

// scrollTo moves the viewport the least needed to show row
func (a *App) scrollTo(row int) {
	l := a.layout()
	if row < a.top {
		a.top = row
	}
	if l.bodyRows > 0 && row >= a.top+l.bodyRows {
		a.top = row - l.bodyRows + 1
	}
	a.scroll(0)
}

func (a *App) scroll(delta int) {
	l := a.layout()
	a.top += delta

	// One extra line for the add row
	maxTop := a.engine.Len() + 1 - l.bodyRows
	if a.top > maxTop {
		a.top = maxTop
	}
	if a.top < 0 {
		a.top = 0
	}
}

// export writes the current sheet as a printable quiz file
func (a *App) export() {
	rows := a.engine.Rows()
	sheet := domain.QuizSheet{Date: a.now(), Total: len(rows)}
	path := filepath.Join(a.exportDir, quiz.Filename(sheet, a.engine.Mode()))

	if err := writeQuiz(path, rows, a.engine.Mode(), sheet); err != nil {
		a.logger.Error("Failed to export quiz", zap.String("path", path), zap.Error(err))
		a.message = "Export failed: " + err.Error()
		return
	}

	a.logger.Info("Quiz exported", zap.String("path", path), zap.Int("words", len(rows)))
	a.message = "Exported " + path
}

func writeQuiz(path string, rows []domain.WordEntry, mode domain.Mode, sheet domain.QuizSheet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := quiz.Render(f, rows, mode, sheet); err != nil {
		f.Close()
		return fmt.Errorf("failed to write quiz: %w", err)
	}
	return f.Close()
}
