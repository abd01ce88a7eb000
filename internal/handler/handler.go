package handler

import (
	"sync"

	"wordsheet/internal/domain"
	"wordsheet/internal/middleware"
	"wordsheet/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot         *tele.Bot
	authService *service.AuthService
	wordService *service.WordService
	logger      *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Serialises callbacks per user so double taps don't race
	callbackLocks map[int64]*sync.Mutex
	callbackMux   sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	wordService *service.WordService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:           bot,
		authService:   authService,
		wordService:   wordService,
		logger:        logger,
		states:        make(map[int64]*domain.StateData),
		callbackLocks: make(map[int64]*sync.Mutex),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands and text carry the password, so they stay open
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	protected := h.bot.Group()
	protected.Use(middleware.AuthMiddleware(h.authService, h.logger))

	protected.Handle(&btnRandomPair, h.handleRandomPair)
	protected.Handle(&btnMore, h.handleRandomPair)
	protected.Handle(&btnWordQuiz, h.handleWordQuiz)
	protected.Handle(&btnMeaningQuiz, h.handleMeaningQuiz)
	protected.Handle(&btnStudySheet, h.handleStudySheet)
	protected.Handle(&btnShuffle, h.handleShuffle)
	protected.Handle(&btnCancel, h.handleCancel)
	protected.Handle(&btnBack, h.handleStart)

	// Generic callback handler for dynamic data
	protected.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

func (h *Handler) userLock(userID int64) *sync.Mutex {
	h.callbackMux.Lock()
	defer h.callbackMux.Unlock()

	lock, exists := h.callbackLocks[userID]
	if !exists {
		lock = &sync.Mutex{}
		h.callbackLocks[userID] = lock
	}
	return lock
}

// Inline keyboard buttons
var (
	btnRandomPair = tele.Btn{
		Unique: "random_pair",
		Text:   "🎲 Random pair",
	}
	btnWordQuiz = tele.Btn{
		Unique: "word_quiz",
		Text:   "📝 Word quiz",
	}
	btnMeaningQuiz = tele.Btn{
		Unique: "meaning_quiz",
		Text:   "📝 Meaning quiz",
	}
	btnStudySheet = tele.Btn{
		Unique: "study_sheet",
		Text:   "📋 Whole sheet",
	}
	btnShuffle = tele.Btn{
		Unique: "shuffle",
		Text:   "🔀 Shuffle",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnMore = tele.Btn{
		Unique: "more",
		Text:   "🔄 Another",
	}
	btnBack = tele.Btn{
		Unique: "back",
		Text:   "🏠 Back",
	}
)

const (
	mainMenuText   = "🏠 Main menu\n\nSend a word to add it, or pick an action:"
	passwordPrompt = "Hi! Send the password to continue:"
	errorText      = "Something went wrong. Try again later."
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnRandomPair),
		menu.Row(btnWordQuiz, btnMeaningQuiz),
		menu.Row(btnStudySheet, btnShuffle),
	)
	return menu
}

func cancelMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))
	return markup
}

func backMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnBack))
	return markup
}
