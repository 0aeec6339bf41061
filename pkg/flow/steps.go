package flow

import (
	"context"
	"strconv"
	"strings"
	"time"

	"driverprofilebot/pkg/state"
	"driverprofilebot/pkg/survey"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) startSurvey(ctx context.Context, sess *state.Session, chatID int64) {
	sess.ResetFlow()
	sess.SurveyStartedAt = time.Now()
	h.Log.Info("survey started", zap.Int64("user_id", sess.UserID))
	h.advance(ctx, sess, EventBegin, chatID, 0)
}

func (h *Handler) showProfile(ctx context.Context, sess *state.Session, chatID int64) {
	p, err := h.Profiles.Get(ctx, sess.UserID)
	if err != nil {
		h.Log.Error("profile lookup failed", zap.Int64("user_id", sess.UserID), zap.Error(err))
		h.reply(ctx, chatID, survey.MsgInternalError)
		return
	}
	if p == nil {
		h.reply(ctx, chatID, survey.MsgProfileNotFound)
		h.sendMainMenu(ctx, chatID, false)
		return
	}
	if _, err := h.Bot.SendMessage(ctx, chatID, survey.FormatProfile(p), profileMenuKeyboard()); err != nil {
		h.Log.Warn("sending profile view failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// rejectInput tells the user why the answer was refused. The step does not
// move, the next message is validated against the same rule.
func (h *Handler) rejectInput(ctx context.Context, sess *state.Session, chatID int64, field string, ve *survey.ValidationError) {
	h.Log.Warn("answer rejected",
		zap.Int64("user_id", sess.UserID),
		zap.String("field", field),
		zap.String("reason", ve.Reason))
	h.reply(ctx, chatID, ve.Message)
}

func (h *Handler) handleNameInput(ctx context.Context, sess *state.Session, chatID int64, text string) {
	name, ve := survey.ValidateName(text)
	if ve != nil {
		h.rejectInput(ctx, sess, chatID, survey.FieldName, ve)
		return
	}
	if sess.Editing != nil {
		h.saveEdit(ctx, sess, chatID, map[string]any{"name": survey.StripEmoji(name)})
		return
	}
	sess.Draft.Name = name
	h.advance(ctx, sess, EventToPhone, chatID, 0)
}

func (h *Handler) handlePhoneInput(ctx context.Context, sess *state.Session, chatID int64, msg *tgbotapi.Message) {
	var phone string
	if msg.Contact != nil {
		// Contact shares come from Telegram itself and are trusted as is.
		phone = msg.Contact.PhoneNumber
		if phone != "" && !strings.HasPrefix(phone, "+") {
			phone = "+" + phone
		}
	} else {
		var ve *survey.ValidationError
		phone, ve = survey.ValidatePhone(msg.Text)
		if ve != nil {
			h.rejectInput(ctx, sess, chatID, survey.FieldPhone, ve)
			return
		}
	}
	if sess.Editing != nil {
		h.saveEdit(ctx, sess, chatID, map[string]any{"phone": phone})
		return
	}
	sess.Draft.Phone = phone
	h.advance(ctx, sess, EventToAge, chatID, 0)
}

func (h *Handler) handleAgeInput(ctx context.Context, sess *state.Session, chatID int64, text string) {
	age, ve := survey.ValidateAge(text)
	if ve != nil {
		h.rejectInput(ctx, sess, chatID, survey.FieldAge, ve)
		return
	}
	if sess.Editing != nil {
		h.saveEdit(ctx, sess, chatID, map[string]any{"age": age})
		return
	}
	sess.Draft.Age = age
	h.advance(ctx, sess, EventToRegion, chatID, 0)
}

func (h *Handler) handleRegionSelect(ctx context.Context, sess *state.Session, chatID int64, messageID int, value string) string {
	if sess.Machine.Current() != StateRegion {
		return ""
	}
	key := resolveRegionKey(value)
	if key == "" {
		h.Log.Info("unknown region payload",
			zap.Int64("user_id", sess.UserID),
			zap.String("value", value))
		return ""
	}
	sess.Draft.RegionKey = key
	h.advance(ctx, sess, EventToCity, chatID, messageID)
	return survey.MsgSelectionAccepted
}

func resolveRegionKey(value string) string {
	if i, err := strconv.Atoi(value); err == nil {
		if i >= 0 && i < len(survey.Regions) {
			return survey.Regions[i].Key
		}
		return ""
	}
	for _, r := range survey.Regions {
		if r.Key == value || strings.HasPrefix(r.Key, value) {
			return r.Key
		}
	}
	return ""
}

func (h *Handler) handleCityInput(ctx context.Context, sess *state.Session, chatID int64, text string) {
	city, ve := survey.ValidateCity(text)
	if ve != nil {
		h.rejectInput(ctx, sess, chatID, survey.FieldLocation, ve)
		return
	}
	if sess.Editing != nil {
		place := survey.Place{
			RegionKey:  sess.Draft.RegionKey,
			RegionName: survey.RegionName(sess.Draft.RegionKey),
			City:       survey.StripEmoji(city),
		}
		h.saveEdit(ctx, sess, chatID, map[string]any{"place_of_living": place})
		return
	}
	sess.Draft.City = city
	h.advance(ctx, sess, EventToCategories, chatID, 0)
}

// multiStep binds a callback prefix to one multi-select question.
type multiStep struct {
	field     string
	state     string
	options   []string
	exclusive string
}

var multiSteps = map[string]multiStep{
	CallbackCategoriesPrefix:   {field: survey.FieldCategories, state: StateCategories, options: survey.DrivingCategories},
	CallbackSemiTrailersPrefix: {field: survey.FieldSemiTrailers, state: StateSemiTrailers, options: survey.SemiTrailerTypes},
	CallbackWorkTypesPrefix:    {field: survey.FieldWorkTypes, state: StateWorkTypes, options: survey.TypesOfWork},
	CallbackRacePrefix:         {field: survey.FieldRaceDuration, state: StateRaceDuration, options: survey.RaceDurations},
	CallbackDocsPrefix:         {field: survey.FieldDocsAbroad, state: StateDocsAbroad, options: survey.DocsAbroadOptions, exclusive: survey.NoDocsSentinel},
}

func (h *Handler) handleMultiSelect(ctx context.Context, sess *state.Session, chatID int64, messageID int, prefix, value string) string {
	step, ok := multiSteps[prefix]
	if !ok {
		return ""
	}
	if sess.Machine.Current() != step.state {
		// Tap on a keyboard from an earlier message.
		return ""
	}

	selected, result := Toggle(sess.Draft.Selections[step.field], value, step.options, step.exclusive)
	switch result {
	case ToggleUpdated:
		sess.Draft.Selections[step.field] = selected
		h.promptState(ctx, sess, chatID, messageID)
		return ""
	case ToggleNoSelection:
		return survey.ErrNoSelection
	case ToggleUnknownOption:
		h.Log.Info("unknown multi-select payload",
			zap.Int64("user_id", sess.UserID),
			zap.String("field", step.field),
			zap.String("value", value))
		return ""
	case ToggleSubmitted:
		h.submitMultiSelect(ctx, sess, step, selected, chatID, messageID)
		return survey.MsgSelectionAccepted
	}
	return ""
}

func (h *Handler) submitMultiSelect(ctx context.Context, sess *state.Session, step multiStep, selected []string, chatID int64, messageID int) {
	frozen := append([]string(nil), selected...)

	switch step.field {
	case survey.FieldCategories:
		sess.Draft.Categories = frozen
		sess.Draft.CategoryQueue = append([]string(nil), frozen...)
		h.advance(ctx, sess, EventToExperience, chatID, messageID)
	case survey.FieldSemiTrailers:
		sess.Draft.SemiTrailers = frozen
		if sess.Editing != nil {
			// Semi-trailers are not an editable field of their own, this
			// step is only reachable in edit mode through a categories edit.
			h.saveCategoriesEdit(ctx, sess, chatID, frozen)
			return
		}
		h.advance(ctx, sess, EventToWorkTypes, chatID, messageID)
	case survey.FieldWorkTypes:
		sess.Draft.WorkTypes = frozen
		if sess.Editing != nil {
			h.saveEdit(ctx, sess, chatID, map[string]any{"types_of_work": frozen})
			return
		}
		h.advance(ctx, sess, EventToVehicles, chatID, messageID)
	case survey.FieldRaceDuration:
		sess.Draft.RaceDurations = frozen
		if sess.Editing != nil {
			h.saveEdit(ctx, sess, chatID, map[string]any{"race_duration_preference": frozen})
			return
		}
		h.advance(ctx, sess, EventToSalary, chatID, messageID)
	case survey.FieldDocsAbroad:
		sess.Draft.DocsAbroad = frozen
		if sess.Editing != nil {
			h.saveEdit(ctx, sess, chatID, map[string]any{"docs_for_driving_abroad": frozen})
			return
		}
		h.advance(ctx, sess, EventToMilitary, chatID, messageID)
	}
}

func (h *Handler) handleExperienceInput(ctx context.Context, sess *state.Session, chatID int64, text string) {
	years, ve := survey.ValidateExperience(text)
	if ve != nil {
		h.rejectInput(ctx, sess, chatID, survey.FieldExperience, ve)
		return
	}
	if len(sess.Draft.CategoryQueue) == 0 {
		h.Log.Error("experience answer with empty category queue", zap.Int64("user_id", sess.UserID))
		h.reply(ctx, chatID, survey.MsgInternalError)
		return
	}
	category := sess.Draft.CategoryQueue[0]
	sess.Draft.Experience[category] = years
	sess.Draft.CategoryQueue = sess.Draft.CategoryQueue[1:]

	if len(sess.Draft.CategoryQueue) > 0 {
		h.promptState(ctx, sess, chatID, 0)
		return
	}
	if sess.Editing != nil && sess.Editing.Field == survey.FieldCategories {
		h.finishCategoriesExperience(ctx, sess, chatID)
		return
	}
	if survey.NeedsSemiTrailer(sess.Draft.Categories) {
		h.advance(ctx, sess, EventToSemiTrailers, chatID, 0)
		return
	}
	h.advance(ctx, sess, EventToWorkTypes, chatID, 0)
}

func (h *Handler) handleVehiclesInput(ctx context.Context, sess *state.Session, chatID int64, text string) {
	vehicles, ve := survey.ValidateVehicles(text)
	if ve != nil {
		h.rejectInput(ctx, sess, chatID, survey.FieldVehicles, ve)
		return
	}
	if sess.Editing != nil {
		h.saveEdit(ctx, sess, chatID, map[string]any{"types_of_cars": survey.SplitVehicles(survey.StripEmoji(vehicles))})
		return
	}
	sess.Draft.VehiclesText = vehicles
	h.advance(ctx, sess, EventToADR, chatID, 0)
}

func (h *Handler) handleADRAnswer(ctx context.Context, sess *state.Session, chatID int64, messageID int, value string) string {
	if sess.Machine.Current() != StateADR {
		return ""
	}
	answer, ok := parseYesNo(value)
	if !ok {
		return ""
	}
	if sess.Editing != nil {
		h.saveEdit(ctx, sess, chatID, map[string]any{"is_adr_license": answer})
		return survey.MsgSelectionAccepted
	}
	sess.Draft.ADRLicense = answer
	h.advance(ctx, sess, EventToRaceDuration, chatID, messageID)
	return survey.MsgSelectionAccepted
}

func (h *Handler) handleMilitaryAnswer(ctx context.Context, sess *state.Session, chatID int64, messageID int, value string) string {
	if sess.Machine.Current() != StateMilitary {
		return ""
	}
	answer, ok := parseYesNo(value)
	if !ok {
		return ""
	}
	if sess.Editing != nil {
		h.saveEdit(ctx, sess, chatID, map[string]any{"military_booking": answer})
		return survey.MsgSelectionAccepted
	}
	sess.Draft.MilitaryBooking = answer
	h.advance(ctx, sess, EventToDescription, chatID, messageID)
	return survey.MsgSelectionAccepted
}

func parseYesNo(value string) (bool, bool) {
	switch value {
	case ActionYes:
		return true, true
	case ActionNo:
		return false, true
	default:
		return false, false
	}
}

func (h *Handler) handleSalaryInput(ctx context.Context, sess *state.Session, chatID int64, text string) {
	salary, ve := survey.ValidateSalary(text)
	if ve != nil {
		h.rejectInput(ctx, sess, chatID, survey.FieldSalary, ve)
		return
	}
	if sess.Editing != nil {
		h.saveEdit(ctx, sess, chatID, map[string]any{"desired_salary": salary})
		return
	}
	sess.Draft.DesiredSalary = salary
	h.advance(ctx, sess, EventToDocs, chatID, 0)
}

func (h *Handler) handleDescriptionInput(ctx context.Context, sess *state.Session, chatID int64, text string) {
	desc, ve := survey.ValidateDescription(text)
	if ve != nil {
		h.rejectInput(ctx, sess, chatID, survey.FieldDescription, ve)
		return
	}
	if sess.Editing != nil {
		h.saveEdit(ctx, sess, chatID, map[string]any{"description": survey.StripEmoji(desc)})
		return
	}
	sess.Draft.Description = desc
	h.finalize(ctx, sess, chatID, 0)
}

// handleDescriptionSkip handles the skip button of the last step. The skip is
// attributed to whoever tapped it, which is the session owner since sessions
// are keyed by the tapping user.
func (h *Handler) handleDescriptionSkip(ctx context.Context, sess *state.Session, query *tgbotapi.CallbackQuery, chatID int64, messageID int, value string) string {
	if sess.Machine.Current() != StateDescription || value != ActionSkip {
		return ""
	}
	if query.From != nil && query.From.ID != sess.UserID {
		h.Log.Warn("skip tapped by another user",
			zap.Int64("session_user", sess.UserID),
			zap.Int64("actor", query.From.ID))
		return ""
	}
	if sess.Editing != nil {
		h.saveEdit(ctx, sess, chatID, map[string]any{"description": ""})
		return survey.MsgSelectionAccepted
	}
	sess.Draft.Description = ""
	h.finalize(ctx, sess, chatID, messageID)
	return survey.MsgSelectionAccepted
}
