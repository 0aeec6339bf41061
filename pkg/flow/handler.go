package flow

import (
	"context"
	"strings"

	"driverprofilebot/pkg/ports/botport"
	"driverprofilebot/pkg/security"
	"driverprofilebot/pkg/state"
	"driverprofilebot/pkg/storage"
	"driverprofilebot/pkg/survey"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Handler dispatches inbound updates to the survey machine, the edit overlay
// and the menu actions.
type Handler struct {
	Bot      botport.BotPort
	Profiles storage.ProfileStore
	Guard    *security.Guard
	Store    *state.Store
	Log      *zap.Logger
	// StrictPersistence surfaces finalizer storage failures to the user
	// instead of completing the survey regardless.
	StrictPersistence bool
}

func NewHandler(bot botport.BotPort, profiles storage.ProfileStore, guard *security.Guard, store *state.Store, log *zap.Logger, strict bool) *Handler {
	return &Handler{
		Bot:               bot,
		Profiles:          profiles,
		Guard:             guard,
		Store:             store,
		Log:               log,
		StrictPersistence: strict,
	}
}

// HandleUpdate processes one Telegram update end to end. Safe to call from
// its own goroutine per update, the session mutex serializes per user.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	var from *tgbotapi.User
	var chatID int64

	if update.Message != nil {
		if update.Message.From == nil {
			h.Log.Warn("message without sender, dropping")
			return
		}
		from = update.Message.From
		chatID = update.Message.Chat.ID
	} else if update.CallbackQuery != nil {
		if update.CallbackQuery.From == nil {
			h.Log.Warn("callback without sender, dropping")
			return
		}
		if update.CallbackQuery.Message == nil || update.CallbackQuery.Message.Chat == nil {
			h.Log.Warn("callback without message, dropping")
			return
		}
		from = update.CallbackQuery.From
		chatID = update.CallbackQuery.Message.Chat.ID
	} else {
		return
	}

	sess := h.Store.GetOrCreate(from.ID, displayUsername(from))
	sess.Mu.Lock()
	defer sess.Mu.Unlock()

	verdict := h.Guard.Allow(guardEvent(update, sess))
	if !verdict.Allowed {
		h.Log.Warn("update dropped by abuse gate",
			zap.Int64("user_id", from.ID),
			zap.String("check", verdict.Check),
			zap.String("reason", verdict.Reason))
		return
	}

	if update.Message != nil {
		h.handleMessage(ctx, update.Message, sess)
	} else {
		h.handleCallbackQuery(ctx, update.CallbackQuery, sess, chatID)
	}
}

func displayUsername(from *tgbotapi.User) string {
	if from.UserName != "" {
		return from.UserName
	}
	name := from.FirstName
	if from.LastName != "" {
		name += " " + from.LastName
	}
	return name
}

func guardEvent(update tgbotapi.Update, sess *state.Session) security.Event {
	ev := security.Event{UserID: sess.UserID}
	if update.Message != nil {
		ev.Text = update.Message.Text
	} else if update.CallbackQuery != nil {
		ev.IsCallback = true
		ev.CallbackData = update.CallbackQuery.Data
	}
	if st := sess.Machine.Current(); st != StateIdle {
		ev.SurveyState = st
	}
	return ev
}

func (h *Handler) handleMessage(ctx context.Context, msg *tgbotapi.Message, sess *state.Session) {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			h.handleStart(ctx, sess, chatID)
		default:
			h.reply(ctx, chatID, survey.MsgUnknownAction)
		}
		return
	}

	current := sess.Machine.Current()

	if current == StateIdle {
		switch msg.Text {
		case survey.ButtonCreateProfile:
			h.startSurvey(ctx, sess, chatID)
		case survey.ButtonMyProfile:
			h.showProfile(ctx, sess, chatID)
		default:
			// Stray text outside any flow is ignored.
		}
		return
	}

	switch current {
	case StateName:
		h.handleNameInput(ctx, sess, chatID, msg.Text)
	case StatePhone:
		h.handlePhoneInput(ctx, sess, chatID, msg)
	case StateAge:
		h.handleAgeInput(ctx, sess, chatID, msg.Text)
	case StateCity:
		h.handleCityInput(ctx, sess, chatID, msg.Text)
	case StateExperience:
		h.handleExperienceInput(ctx, sess, chatID, msg.Text)
	case StateVehicles:
		h.handleVehiclesInput(ctx, sess, chatID, msg.Text)
	case StateSalary:
		h.handleSalaryInput(ctx, sess, chatID, msg.Text)
	case StateDescription:
		h.handleDescriptionInput(ctx, sess, chatID, msg.Text)
	default:
		// Button-only steps do not accept free text.
		h.reply(ctx, chatID, survey.MsgUseButtonsHint)
	}
}

// handleCallbackQuery routes one inline-button tap. The callback is answered
// exactly once, with whatever toast the handler produced.
func (h *Handler) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery, sess *state.Session, chatID int64) {
	messageID := query.Message.MessageID
	parts := strings.SplitN(query.Data, ":", 2)
	prefix := parts[0] + ":"
	value := ""
	if len(parts) > 1 {
		value = parts[1]
	}

	var ack string
	switch prefix {
	case CallbackRegionPrefix:
		ack = h.handleRegionSelect(ctx, sess, chatID, messageID, value)
	case CallbackCategoriesPrefix, CallbackSemiTrailersPrefix, CallbackWorkTypesPrefix, CallbackRacePrefix, CallbackDocsPrefix:
		ack = h.handleMultiSelect(ctx, sess, chatID, messageID, prefix, value)
	case CallbackADRPrefix:
		ack = h.handleADRAnswer(ctx, sess, chatID, messageID, value)
	case CallbackMilitaryPrefix:
		ack = h.handleMilitaryAnswer(ctx, sess, chatID, messageID, value)
	case CallbackDescPrefix:
		ack = h.handleDescriptionSkip(ctx, sess, query, chatID, messageID, value)
	case CallbackMenuPrefix:
		ack = h.handleMenuAction(ctx, sess, chatID, messageID, value)
	case CallbackEditPrefix:
		ack = h.handleEditAction(ctx, sess, chatID, messageID, value)
	default:
		h.Log.Info("unknown callback prefix",
			zap.Int64("user_id", sess.UserID),
			zap.String("data", query.Data))
	}

	if err := h.Bot.AnswerCallback(ctx, query.ID, ack); err != nil {
		h.Log.Warn("answering callback failed",
			zap.Int64("user_id", sess.UserID),
			zap.Error(err))
	}
}

func (h *Handler) handleStart(ctx context.Context, sess *state.Session, chatID int64) {
	if sess.Machine.Current() != StateIdle {
		h.Log.Info("resetting flow via /start",
			zap.Int64("user_id", sess.UserID),
			zap.String("state", sess.Machine.Current()))
		// Drop the last prompt so its stale keyboard cannot be tapped.
		if sess.LastMessageID != 0 {
			if err := h.Bot.DeleteMessage(ctx, chatID, sess.LastMessageID); err != nil && !botport.IsCode(err, "message_not_found") {
				h.Log.Warn("deleting stale prompt failed",
					zap.Int64("chat_id", chatID),
					zap.Int("message_id", sess.LastMessageID),
					zap.Error(err))
			}
		}
		if err := sess.Machine.Event(ctx, EventCancel, h, sess, chatID, 0); err != nil {
			sess.Machine.SetState(StateIdle)
		}
		sess.ResetFlow()
		h.reply(ctx, chatID, survey.MsgSurveyCancelled)
	}
	h.sendMainMenu(ctx, chatID, h.hasProfile(ctx, sess.UserID))
}

func (h *Handler) hasProfile(ctx context.Context, userID int64) bool {
	p, err := h.Profiles.Get(ctx, userID)
	if err != nil {
		h.Log.Warn("profile lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		return false
	}
	return p != nil
}

// advance fires a machine event carrying the standard enter-callback args.
// A refused self-transition falls back to re-rendering the current prompt.
func (h *Handler) advance(ctx context.Context, sess *state.Session, event string, chatID int64, messageID int) {
	err := sess.Machine.Event(ctx, event, h, sess, chatID, messageID)
	if err == nil || isNoTransitionError(err) {
		if isNoTransitionError(err) {
			h.promptState(ctx, sess, chatID, messageID)
		}
		return
	}
	h.Log.Error("machine event failed",
		zap.Int64("user_id", sess.UserID),
		zap.String("event", event),
		zap.String("state", sess.Machine.Current()),
		zap.Error(err))
	h.reply(ctx, chatID, survey.MsgInternalError)
}

func (h *Handler) reply(ctx context.Context, chatID int64, text string) {
	if _, err := h.Bot.SendMessage(ctx, chatID, text, nil); err != nil {
		h.Log.Warn("sending reply failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
