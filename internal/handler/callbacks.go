package handler

import (
	"fmt"
	"html"
	"strings"
	"time"
	"unicode"

	"wordsheet/internal/domain"
	"wordsheet/internal/quiz"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Longer sheets go out as a file instead of a message
const maxInlineSheet = 3500

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// Another callback already edited this message
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// editOrSend edits the callback message in place, falling back to a new one
func (h *Handler) editOrSend(c tele.Context, text string, opts ...interface{}) error {
	if c.Callback() == nil {
		return c.Send(text, opts...)
	}
	if err := c.Edit(text, opts...); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil
		}
		return c.Send(text, opts...)
	}
	return c.Respond()
}

// handleCallback handles callbacks that no button route matched
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	data := cleanCallbackData(callback.Data)
	key := callback.Unique
	if key == "" {
		key = data
	}

	h.logger.Info("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	switch key {
	case btnRandomPair.Unique, btnMore.Unique:
		return h.handleRandomPair(c)
	case btnWordQuiz.Unique:
		return h.handleWordQuiz(c)
	case btnMeaningQuiz.Unique:
		return h.handleMeaningQuiz(c)
	case btnStudySheet.Unique:
		return h.handleStudySheet(c)
	case btnShuffle.Unique:
		return h.handleShuffle(c)
	case btnCancel.Unique:
		return h.handleCancel(c)
	case btnBack.Unique:
		return h.handleStart(c)
	}

	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleRandomPair shows a random word-meaning pair
func (h *Handler) handleRandomPair(c tele.Context) error {
	lock := h.userLock(c.Sender().ID)
	lock.Lock()
	defer lock.Unlock()

	word, err := h.wordService.GetRandomPair()
	if err != nil {
		h.logger.Error("Failed to get random word", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Failed to load"})
	}

	if word == nil {
		return c.Respond(&tele.CallbackResponse{
			Text:      "The sheet has no words yet",
			ShowAlert: true,
		})
	}

	text := fmt.Sprintf("🎲 Random pair:\n\n📝 %s\n🔄 %s", word.Word, word.Meaning)

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnMore),
		markup.Row(btnBack),
	)

	return h.editOrSend(c, text, markup)
}

func (h *Handler) handleWordQuiz(c tele.Context) error {
	return h.sendSheet(c, domain.ModeQuizWord)
}

func (h *Handler) handleMeaningQuiz(c tele.Context) error {
	return h.sendSheet(c, domain.ModeQuizMeaning)
}

func (h *Handler) handleStudySheet(c tele.Context) error {
	return h.sendSheet(c, domain.ModeStudy)
}

// sendSheet sends the whole list laid out as a test sheet
func (h *Handler) sendSheet(c tele.Context, mode domain.Mode) error {
	lock := h.userLock(c.Sender().ID)
	lock.Lock()
	defer lock.Unlock()

	words, err := h.wordService.GetAll()
	if err != nil {
		h.logger.Error("Failed to load words", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Failed to load"})
	}

	if len(words) == 0 {
		return c.Respond(&tele.CallbackResponse{
			Text:      "The sheet has no words yet",
			ShowAlert: true,
		})
	}

	sheet := domain.QuizSheet{Date: time.Now(), Total: len(words)}
	text := quiz.String(words, mode, sheet)

	if len(text) > maxInlineSheet {
		doc := &tele.Document{
			File:     tele.FromReader(strings.NewReader(text)),
			FileName: quiz.Filename(sheet, mode),
		}
		if err := c.Send(doc); err != nil {
			return err
		}
	} else if err := c.Send("<pre>"+html.EscapeString(text)+"</pre>", tele.ModeHTML, backMarkup()); err != nil {
		return err
	}

	h.logger.Info("Sheet sent",
		zap.Int64("user_id", c.Sender().ID),
		zap.String("mode", string(mode)),
		zap.Int("words", len(words)),
	)

	if c.Callback() != nil {
		return c.Respond()
	}
	return nil
}

// handleShuffle shuffles the whole list
func (h *Handler) handleShuffle(c tele.Context) error {
	lock := h.userLock(c.Sender().ID)
	lock.Lock()
	defer lock.Unlock()

	if err := h.wordService.ShuffleAll(); err != nil {
		h.logger.Error("Failed to shuffle words", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Failed to shuffle"})
	}

	return c.Respond(&tele.CallbackResponse{Text: "🔀 Shuffled"})
}

// handleCancel cancels current operation and resets state
func (h *Handler) handleCancel(c tele.Context) error {
	h.ResetState(c.Sender().ID)
	return h.editOrSend(c, mainMenuText, mainMenuMarkup())
}
