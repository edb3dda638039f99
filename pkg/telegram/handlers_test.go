package telegram

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/korjavin/fridgechef/pkg/chef"
	"github.com/korjavin/fridgechef/pkg/corpus"
	"github.com/korjavin/fridgechef/pkg/fridge"
	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/match"
	"github.com/korjavin/fridgechef/pkg/messages"
	"github.com/korjavin/fridgechef/pkg/state"
	"github.com/korjavin/fridgechef/pkg/stats"
	"github.com/korjavin/fridgechef/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	chatID   int64
	text     string
	keyboard bool
}

type recordingSender struct {
	sent     []sentMessage
	answered []string
	actions  []string
}

func (r *recordingSender) SendMessage(chatID int64, text string) (tgbotapi.Message, error) {
	r.sent = append(r.sent, sentMessage{chatID: chatID, text: text})
	return tgbotapi.Message{}, nil
}

func (r *recordingSender) SendMessageWithKeyboard(chatID int64, text string, _ tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	r.sent = append(r.sent, sentMessage{chatID: chatID, text: text, keyboard: true})
	return tgbotapi.Message{}, nil
}

func (r *recordingSender) SendChatAction(_ int64, action string) error {
	r.actions = append(r.actions, action)
	return nil
}

func (r *recordingSender) AnswerCallbackQuery(callbackID string, _ string) error {
	r.answered = append(r.answered, callbackID)
	return nil
}

func (r *recordingSender) FileURL(fileID string) (string, error) {
	return "https://files.example/" + fileID, nil
}

func (r *recordingSender) last() sentMessage {
	if len(r.sent) == 0 {
		return sentMessage{}
	}
	return r.sent[len(r.sent)-1]
}

// MockDetector is a mock implementation of Detector
type MockDetector struct {
	mock.Mock
}

// DetectIngredients mocks the DetectIngredients method
func (m *MockDetector) DetectIngredients(ctx context.Context, photoURL string) ([]string, error) {
	args := m.Called(ctx, photoURL)
	labels, _ := args.Get(0).([]string)
	return labels, args.Error(1)
}

func newHandlers(t *testing.T, detector Detector) (*Handlers, *recordingSender) {
	t.Helper()
	store, err := storage.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc := chef.New(corpus.New(corpus.Fallback(".jpg")), match.NewEngine(5), match.Policy{Threshold: 0.3}, nil)
	sender := &recordingSender{}
	h := NewHandlers(sender, fridge.New(storage.NewPantryStore(store)), svc, detector, state.New(), 0.2).
		WithStats(stats.New(store))
	return h, sender
}

func command(chatID int64, text string, name string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: len(name) + 1},
		},
	}
}

func TestHandlers_AddAndCook(t *testing.T) {
	h, sender := newHandlers(t, nil)
	cmds := h.Commands()

	cmds["add"](command(1, "/add egg, milk, butter", "add"))
	assert.Equal(t, messages.FormatAdded(3, 3), sender.last().text)
	assert.True(t, sender.last().keyboard)

	cmds["cook"](command(1, "/cook", "cook"))
	assert.Equal(t, []string{tgbotapi.ChatTyping}, sender.actions)
	out := sender.last().text
	assert.Contains(t, out, "Simple Scrambled Eggs")
	assert.Contains(t, out, "Match: 75%")
	assert.Contains(t, out, "• Salt")
}

func TestHandlers_AddWithoutArgumentsWaitsForList(t *testing.T) {
	h, sender := newHandlers(t, nil)

	h.Commands()["add"](command(2, "/add", "add"))
	assert.Equal(t, messages.AskIngredientsMessage, sender.last().text)

	h.Default(tgbotapi.Update{Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 2}, Text: "rice, bread, chicken"}})
	assert.Equal(t, messages.FormatAdded(3, 3), sender.last().text)

	h.Commands()["pantry"](command(2, "/pantry", "pantry"))
	assert.Equal(t, messages.FormatPantry([]string{"rice", "bread", "chicken"}), sender.last().text)
}

func TestHandlers_WeakMatchWithoutGenerator(t *testing.T) {
	h, sender := newHandlers(t, nil)

	h.Commands()["add"](command(3, "/add rice", "add"))
	h.Callbacks()[cookCallback](&tgbotapi.CallbackQuery{
		ID:      "cb-1",
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 3}},
	})

	assert.Equal(t, []string{"cb-1"}, sender.answered)
	assert.Contains(t, sender.last().text, messages.NoMatchesHeader)
	assert.Contains(t, sender.last().text, chef.AIErrorPrefix)
}

func TestHandlers_Photo(t *testing.T) {
	detector := new(MockDetector)
	detector.On("DetectIngredients", mock.Anything, "https://files.example/big").
		Return([]string{"egg", "milk"}, nil).Once()

	h, sender := newHandlers(t, detector)
	h.Default(tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:  &tgbotapi.Chat{ID: 4},
		Photo: []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "big"}},
	}})

	assert.Equal(t, messages.FormatDetected([]string{"egg", "milk"}, 2), sender.last().text)
	assert.Equal(t, []string{tgbotapi.ChatTyping}, sender.actions)
	detector.AssertExpectations(t)
}

func TestHandlers_PhotoDetectionFails(t *testing.T) {
	detector := new(MockDetector)
	detector.On("DetectIngredients", mock.Anything, mock.Anything).
		Return(nil, errors.New("vision down")).Once()

	h, sender := newHandlers(t, detector)
	h.Default(tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:  &tgbotapi.Chat{ID: 4},
		Photo: []tgbotapi.PhotoSize{{FileID: "only"}},
	}})

	assert.Equal(t, chef.AIErrorPrefix+"vision down", sender.last().text)
}

func TestHandlers_Stats(t *testing.T) {
	h, sender := newHandlers(t, nil)
	cmds := h.Commands()

	cmds["add"](command(6, "/add egg, milk", "add"))
	cmds["cook"](command(6, "/cook", "cook"))
	cmds["stats"](command(6, "/stats", "stats"))

	out := sender.last().text
	assert.Contains(t, out, "Suggestions: 1")
	assert.Contains(t, out, "1. Simple Scrambled Eggs (1x, best 50%)")
}

func TestHandlers_Remove(t *testing.T) {
	h, sender := newHandlers(t, nil)
	cmds := h.Commands()

	cmds["add"](command(7, "/add rice, bread, chicken", "add"))
	cmds["remove"](command(7, "/remove Bread", "remove"))
	assert.Equal(t, messages.FormatRemoved("Bread", true), sender.last().text)

	cmds["remove"](command(7, "/remove tofu", "remove"))
	assert.Equal(t, messages.FormatRemoved("tofu", false), sender.last().text)

	cmds["remove"](command(7, "/remove", "remove"))
	assert.Equal(t, messages.RemoveUsageMessage, sender.last().text)

	cmds["pantry"](command(7, "/pantry", "pantry"))
	assert.Equal(t, messages.FormatPantry([]string{"rice", "chicken"}), sender.last().text)
}

func TestHandlers_Clear(t *testing.T) {
	h, sender := newHandlers(t, nil)
	cmds := h.Commands()

	cmds["add"](command(5, "/add egg", "add"))
	cmds["clear"](command(5, "/clear", "clear"))
	cmds["cook"](command(5, "/cook", "cook"))

	assert.Equal(t, messages.EmptyPantryMessage, sender.last().text)
}

func TestDispatch_RoutesCommandsAndCallbacks(t *testing.T) {
	var got []string
	commands := map[string]CommandHandler{
		"cook": func(*tgbotapi.Message) { got = append(got, "command") },
	}
	callbacks := map[string]CallbackHandler{
		"cook": func(*tgbotapi.CallbackQuery) { got = append(got, "callback") },
	}
	fallback := func(tgbotapi.Update) { got = append(got, "default") }

	base := logger.Nop()
	dispatch(base, tgbotapi.Update{Message: command(1, "/cook", "cook")}, commands, callbacks, fallback)
	dispatch(base, tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{Data: "cook"}}, commands, callbacks, fallback)
	dispatch(base, tgbotapi.Update{Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}, Text: "hello"}}, commands, callbacks, fallback)

	assert.Equal(t, []string{"command", "callback", "default"}, got)
}
