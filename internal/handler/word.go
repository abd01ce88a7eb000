package handler

import (
	"strings"

	"wordsheet/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") || text == "" {
		return nil
	}

	if err := h.authService.EnsureUserExists(userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return nil
	}

	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(errorText)
	}

	// Anything an unauthorized user sends is a password attempt
	if !authorized {
		ok, err := h.authService.Login(userID, text)
		if err != nil {
			h.logger.Error("Failed to authorize user", zap.Error(err))
			return c.Send(errorText)
		}
		if !ok {
			return c.Send("Wrong password")
		}

		h.logger.Info("User authorized", zap.Int64("user_id", userID))
		h.ResetState(userID)
		return c.Send("✅ Access granted!\n\n"+mainMenuText, mainMenuMarkup())
	}

	state := h.GetState(userID)

	switch state.State {
	case domain.StateWaitingMeaning:
		word := state.CurrentWord
		meaning := text

		entry, err := h.wordService.AddPair(word, meaning)
		if err != nil {
			h.logger.Error("Failed to save word pair",
				zap.Error(err),
				zap.Int64("user_id", userID),
			)
			return c.Send("Could not save the word. Try again.")
		}

		h.logger.Info("Word pair saved",
			zap.Int64("user_id", userID),
			zap.String("id", entry.ID),
			zap.String("word", entry.Word),
		)

		h.SetState(userID, &domain.StateData{State: domain.StateWaitingWord})

		return c.Send("✅ Saved!\n\nSend the next word or go back with /start")

	default:
		// Idle or waiting for a word: this text is the word
		h.SetState(userID, &domain.StateData{
			State:       domain.StateWaitingMeaning,
			CurrentWord: text,
		})

		return c.Send("Now send the meaning", cancelMarkup())
	}
}
