package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/korjavin/fridgechef/pkg/chef"
	"github.com/korjavin/fridgechef/pkg/ingredient"
	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/messages"
	"github.com/korjavin/fridgechef/pkg/models"
	"github.com/korjavin/fridgechef/pkg/state"
)

const cookCallback = "cook"

// Sender is the part of the Telegram API the handlers talk to
type Sender interface {
	SendMessage(chatID int64, text string) (tgbotapi.Message, error)
	SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error)
	SendChatAction(chatID int64, action string) error
	AnswerCallbackQuery(callbackID string, text string) error
	FileURL(fileID string) (string, error)
}

// Detector turns a photo into ingredient labels
type Detector interface {
	DetectIngredients(ctx context.Context, photoURL string) ([]string, error)
}

// Pantry stores what each chat has on hand
type Pantry interface {
	Query(chatID int64) (*ingredient.Query, error)
	AddDetected(chatID int64, labels []string) (int, error)
	AddManual(chatID int64, text string) (int, error)
	RemoveIngredient(chatID int64, name string) (bool, error)
	ListIngredients(chatID int64) ([]string, error)
	ResetFridge(chatID int64) error
}

// Suggester runs the suggestion flow
type Suggester interface {
	Suggest(ctx context.Context, q *ingredient.Query) chef.Suggestion
}

// Stats keeps per chat suggestion counts
type Stats interface {
	Record(chatID int64, s chef.Suggestion) error
	GetStatistics(chatID int64) (*models.Statistics, error)
	GetTopRecipes(chatID int64, limit int) ([]models.RecipeStat, error)
}

// Handlers implements the bot commands
type Handlers struct {
	sender   Sender
	stats    Stats
	pantry   Pantry
	chef     Suggester
	detector Detector
	states   *state.Manager
	minScore float64
	timeout  time.Duration
	logger   *logger.Logger
}

// NewHandlers wires the bot commands. detector may be nil, photos are then
// declined.
func NewHandlers(sender Sender, pantry Pantry, suggester Suggester, detector Detector, states *state.Manager, minScore float64) *Handlers {
	return &Handlers{
		sender:   sender,
		pantry:   pantry,
		chef:     suggester,
		detector: detector,
		states:   states,
		minScore: minScore,
		timeout:  90 * time.Second,
		logger:   logger.New("handlers"),
	}
}

// WithStats enables the /stats command and suggestion counting
func (h *Handlers) WithStats(st Stats) *Handlers {
	h.stats = st
	return h
}

// Commands returns the command table for Bot.Start
func (h *Handlers) Commands() map[string]CommandHandler {
	return map[string]CommandHandler{
		"start": func(m *tgbotapi.Message) {
			h.reply(m.Chat.ID, messages.WelcomeMessage)
		},
		"help": func(m *tgbotapi.Message) {
			h.reply(m.Chat.ID, messages.HelpMessage)
		},
		"add":    h.handleAdd,
		"remove": h.handleRemove,
		"pantry": h.handlePantry,
		"clear":  h.handleClear,
		"cook": func(m *tgbotapi.Message) {
			h.cook(m.Chat.ID)
		},
		"stats": h.handleStats,
	}
}

// Callbacks returns the callback table for Bot.Start
func (h *Handlers) Callbacks() map[string]CallbackHandler {
	return map[string]CallbackHandler{
		cookCallback: func(cb *tgbotapi.CallbackQuery) {
			if err := h.sender.AnswerCallbackQuery(cb.ID, "Cooking up ideas..."); err != nil {
				h.logger.Warn("Failed to answer callback: %v", err)
			}
			if cb.Message == nil || cb.Message.Chat == nil {
				return
			}
			h.cook(cb.Message.Chat.ID)
		},
	}
}

// Default handles photos and plain text
func (h *Handlers) Default(update tgbotapi.Update) {
	m := update.Message
	if m == nil || m.Chat == nil {
		return
	}
	chatID := m.Chat.ID

	if len(m.Photo) > 0 {
		h.handlePhoto(m)
		return
	}

	if m.Text == "" || m.IsCommand() {
		return
	}

	if h.states.GetState(chatID) == state.StateAwaitingIngredients {
		h.states.ClearState(chatID)
		h.addManual(chatID, m.Text)
		return
	}

	// A lone word outside of /add is taken as one ingredient
	text := strings.TrimSpace(m.Text)
	if !strings.Contains(text, " ") && len(text) < 30 {
		h.addManual(chatID, text)
	}
}

func (h *Handlers) handleAdd(m *tgbotapi.Message) {
	chatID := m.Chat.ID
	args := strings.TrimSpace(m.CommandArguments())
	if args == "" {
		h.states.SetState(chatID, state.StateAwaitingIngredients)
		h.reply(chatID, messages.AskIngredientsMessage)
		return
	}
	h.addManual(chatID, args)
}

func (h *Handlers) handleRemove(m *tgbotapi.Message) {
	chatID := m.Chat.ID
	name := strings.TrimSpace(m.CommandArguments())
	if name == "" {
		h.reply(chatID, messages.RemoveUsageMessage)
		return
	}
	removed, err := h.pantry.RemoveIngredient(chatID, name)
	if err != nil {
		h.logger.Error("Failed to remove %q for %d: %v", name, chatID, err)
		h.reply(chatID, messages.ErrorMessage)
		return
	}
	h.reply(chatID, messages.FormatRemoved(name, removed))
}

func (h *Handlers) addManual(chatID int64, text string) {
	added, err := h.pantry.AddManual(chatID, text)
	if err != nil {
		h.logger.Error("Failed to add ingredients for %d: %v", chatID, err)
		h.reply(chatID, messages.ErrorMessage)
		return
	}
	h.replyWithCook(chatID, messages.FormatAdded(added, h.count(chatID)))
}

func (h *Handlers) handlePhoto(m *tgbotapi.Message) {
	chatID := m.Chat.ID
	if h.detector == nil {
		h.reply(chatID, "Photo detection is not configured. Please use /add instead.")
		return
	}

	// Telegram lists sizes from smallest to largest
	photo := m.Photo[len(m.Photo)-1]
	url, err := h.sender.FileURL(photo.FileID)
	if err != nil {
		h.logger.Error("Failed to get photo URL: %v", err)
		h.reply(chatID, messages.ErrorMessage)
		return
	}

	h.typing(chatID)
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	labels, err := h.detector.DetectIngredients(ctx, url)
	if err != nil {
		h.logger.Error("Failed to detect ingredients: %v", err)
		h.reply(chatID, fmt.Sprintf("%s%v", chef.AIErrorPrefix, err))
		return
	}

	added, err := h.pantry.AddDetected(chatID, labels)
	if err != nil {
		h.logger.Error("Failed to store detected ingredients: %v", err)
		h.reply(chatID, messages.ErrorMessage)
		return
	}
	h.replyWithCook(chatID, messages.FormatDetected(labels, added))
}

func (h *Handlers) handlePantry(m *tgbotapi.Message) {
	chatID := m.Chat.ID
	items, err := h.pantry.ListIngredients(chatID)
	if err != nil {
		h.logger.Error("Failed to list ingredients: %v", err)
		h.reply(chatID, messages.ErrorMessage)
		return
	}
	h.reply(chatID, messages.FormatPantry(items))
}

func (h *Handlers) handleClear(m *tgbotapi.Message) {
	chatID := m.Chat.ID
	h.states.ClearState(chatID)
	if err := h.pantry.ResetFridge(chatID); err != nil {
		h.logger.Error("Failed to reset pantry: %v", err)
		h.reply(chatID, messages.ErrorMessage)
		return
	}
	h.reply(chatID, "🧹 Pantry cleared! Send a photo or use /add to start again.")
}

func (h *Handlers) cook(chatID int64) {
	q, err := h.pantry.Query(chatID)
	if err != nil {
		h.logger.Error("Failed to load pantry: %v", err)
		h.reply(chatID, messages.ErrorMessage)
		return
	}

	h.typing(chatID)
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	s := h.chef.Suggest(ctx, q)
	h.reply(chatID, messages.FormatSuggestion(s, h.minScore))

	if h.stats != nil {
		if err := h.stats.Record(chatID, s); err != nil {
			h.logger.Warn("Failed to record statistics: %v", err)
		}
	}
}

func (h *Handlers) handleStats(m *tgbotapi.Message) {
	chatID := m.Chat.ID
	if h.stats == nil {
		h.reply(chatID, "Statistics are not enabled.")
		return
	}
	st, err := h.stats.GetStatistics(chatID)
	if err != nil {
		h.logger.Error("Failed to get statistics: %v", err)
		h.reply(chatID, messages.ErrorMessage)
		return
	}
	top, err := h.stats.GetTopRecipes(chatID, 3)
	if err != nil {
		h.logger.Error("Failed to get top recipes: %v", err)
		h.reply(chatID, messages.ErrorMessage)
		return
	}
	h.reply(chatID, messages.FormatStats(st, top))
}

func (h *Handlers) count(chatID int64) int {
	items, err := h.pantry.ListIngredients(chatID)
	if err != nil {
		return 0
	}
	return len(items)
}

func (h *Handlers) typing(chatID int64) {
	if err := h.sender.SendChatAction(chatID, tgbotapi.ChatTyping); err != nil {
		h.logger.Debug("Failed to send typing action to %d: %v", chatID, err)
	}
}

func (h *Handlers) reply(chatID int64, text string) {
	if _, err := h.sender.SendMessage(chatID, text); err != nil {
		h.logger.Error("Failed to send message to %d: %v", chatID, err)
	}
}

func (h *Handlers) replyWithCook(chatID int64, text string) {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍳 Cook now", cookCallback),
		),
	)
	if _, err := h.sender.SendMessageWithKeyboard(chatID, text, keyboard); err != nil {
		h.logger.Error("Failed to send message to %d: %v", chatID, err)
	}
}
