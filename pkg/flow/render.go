package flow

import (
	"context"
	"strconv"

	"driverprofilebot/pkg/ports/botport"
	"driverprofilebot/pkg/state"
	"driverprofilebot/pkg/survey"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// promptState renders the prompt for the session's current machine state,
// editing the given inline message in place when there is one.
func (h *Handler) promptState(ctx context.Context, sess *state.Session, chatID int64, messageID int) {
	switch sess.Machine.Current() {
	case StateName:
		h.showPrompt(ctx, sess, chatID, 0, survey.MsgAskName, nil)
	case StatePhone:
		// Reply keyboards cannot be attached by editing, the contact button
		// always goes out as a fresh message.
		h.showPrompt(ctx, sess, chatID, 0, survey.MsgAskPhone, contactKeyboard())
	case StateAge:
		// The contact keyboard from the phone step is torn down here. Edits
		// jump straight to this state without one.
		var markup interface{}
		if messageID == 0 {
			markup = tgbotapi.NewRemoveKeyboard(true)
		}
		h.showPrompt(ctx, sess, chatID, messageID, survey.MsgAskAge, markup)
	case StateRegion:
		h.showPrompt(ctx, sess, chatID, messageID, survey.MsgAskRegion, regionKeyboard())
	case StateCity:
		h.showPrompt(ctx, sess, chatID, messageID, survey.MsgAskCity, nil)
	case StateCategories:
		h.showPrompt(ctx, sess, chatID, messageID, survey.MsgAskCategories,
			multiSelectKeyboard(CallbackCategoriesPrefix, survey.DrivingCategories, sess.Draft.Selections[survey.FieldCategories]))
	case StateExperience:
		h.showPrompt(ctx, sess, chatID, messageID, experiencePrompt(sess), nil)
	case StateSemiTrailers:
		h.showPrompt(ctx, sess, chatID, messageID, survey.MsgAskSemiTrailers,
			multiSelectKeyboard(CallbackSemiTrailersPrefix, survey.SemiTrailerTypes, sess.Draft.Selections[survey.FieldSemiTrailers]))
	case StateWorkTypes:
		h.showPrompt(ctx, sess, chatID, messageID, survey.MsgAskWorkTypes,
			multiSelectKeyboard(CallbackWorkTypesPrefix, survey.TypesOfWork, sess.Draft.Selections[survey.FieldWorkTypes]))
	case StateVehicles:
		h.showPrompt(ctx, sess, chatID, messageID, survey.MsgAskVehicles, nil)
	case StateADR:
		h.showPrompt(ctx, sess, chatID, messageID, survey.MsgAskADR, yesNoKeyboard(CallbackADRPrefix))
	case StateRaceDuration:
		h.showPrompt(ctx, sess, chatID, messageID, survey.MsgAskRaceDuration,
			multiSelectKeyboard(CallbackRacePrefix, survey.RaceDurations, sess.Draft.Selections[survey.FieldRaceDuration]))
	case StateSalary:
		h.showPrompt(ctx, sess, chatID, messageID, survey.MsgAskSalary, nil)
	case StateDocsAbroad:
		h.showPrompt(ctx, sess, chatID, messageID, survey.MsgAskDocsAbroad,
			multiSelectKeyboard(CallbackDocsPrefix, survey.DocsAbroadOptions, sess.Draft.Selections[survey.FieldDocsAbroad]))
	case StateMilitary:
		h.showPrompt(ctx, sess, chatID, messageID, survey.MsgAskMilitary, yesNoKeyboard(CallbackMilitaryPrefix))
	case StateDescription:
		h.showPrompt(ctx, sess, chatID, messageID, survey.MsgAskDescription, skipKeyboard())
	}
}

func experiencePrompt(sess *state.Session) string {
	category := ""
	if len(sess.Draft.CategoryQueue) > 0 {
		category = sess.Draft.CategoryQueue[0]
	}
	return survey.MsgAskExperiencePrefix + category + ":"
}

// showPrompt edits the prompt message in place when messageID is set,
// otherwise sends a new one, and records it as the session's last prompt.
func (h *Handler) showPrompt(ctx context.Context, sess *state.Session, chatID int64, messageID int, text string, markup interface{}) {
	var sent botport.BotMessage
	var err error
	if messageID != 0 {
		sent, err = h.Bot.EditMessage(ctx, chatID, messageID, text, markup)
		if botport.IsCode(err, "message_not_modified") {
			sent = botport.BotMessage{ChatID: chatID, MessageID: messageID, Transport: "telegram", Payload: text}
			err = nil
		} else if err != nil {
			h.Log.Warn("edit prompt failed, sending new message",
				zap.Int64("chat_id", chatID),
				zap.Int("message_id", messageID),
				zap.Error(err))
			sent, err = h.Bot.SendMessage(ctx, chatID, text, markup)
		}
	} else {
		sent, err = h.Bot.SendMessage(ctx, chatID, text, markup)
	}
	if err != nil {
		h.Log.Error("sending prompt failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}
	sess.LastMessageID = sent.MessageID
}

// multiSelectKeyboard renders one button per option with a checkmark on the
// selected ones, plus the submit row.
func multiSelectKeyboard(prefix string, options, selected []string) tgbotapi.InlineKeyboardMarkup {
	keyboard := tgbotapi.NewInlineKeyboardMarkup()
	for i, opt := range options {
		label := opt
		if indexOf(selected, opt) >= 0 {
			label = "✅ " + opt
		}
		row := tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, callbackPayload(prefix, i, opt)),
		)
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, row)
	}
	submitRow := tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(survey.ButtonSubmit, prefix+SubmitSentinel),
	)
	keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, submitRow)
	return keyboard
}

// callbackPayload builds "<prefix><index>" for an option button, falling
// back to a truncated label if the index form would not fit the Telegram
// callback-data limit.
func callbackPayload(prefix string, index int, label string) string {
	data := prefix + strconv.Itoa(index)
	if len(data) <= maxCallbackDataBytes {
		return data
	}
	runes := []rune(label)
	if len(runes) > 20 {
		runes = runes[:20]
	}
	data = prefix + string(runes)
	for len(data) > maxCallbackDataBytes && len(runes) > 0 {
		runes = runes[:len(runes)-1]
		data = prefix + string(runes)
	}
	return data
}

func regionKeyboard() tgbotapi.InlineKeyboardMarkup {
	keyboard := tgbotapi.NewInlineKeyboardMarkup()
	var row []tgbotapi.InlineKeyboardButton
	for i, region := range survey.Regions {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(region.Name, callbackPayload(CallbackRegionPrefix, i, region.Key)))
		if len(row) == 2 {
			keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, row)
			row = nil
		}
	}
	if len(row) > 0 {
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, row)
	}
	return keyboard
}

func yesNoKeyboard(prefix string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(survey.ButtonYes, prefix+ActionYes),
			tgbotapi.NewInlineKeyboardButtonData(survey.ButtonNo, prefix+ActionNo),
		),
	)
}

func skipKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(survey.ButtonSkip, CallbackDescPrefix+ActionSkip),
		),
	)
}

func contactKeyboard() tgbotapi.ReplyKeyboardMarkup {
	button := tgbotapi.NewKeyboardButtonContact(survey.ButtonShareContact)
	keyboard := tgbotapi.NewReplyKeyboard(tgbotapi.NewKeyboardButtonRow(button))
	keyboard.OneTimeKeyboard = true
	keyboard.ResizeKeyboard = true
	return keyboard
}

func mainMenuKeyboard(hasProfile bool) tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(survey.ButtonCreateProfile)),
	}
	if hasProfile {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(survey.ButtonMyProfile)))
	}
	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.ResizeKeyboard = true
	return keyboard
}

func profileMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(survey.ButtonEdit, CallbackMenuPrefix+ActionEdit),
			tgbotapi.NewInlineKeyboardButtonData(survey.ButtonDelete, CallbackMenuPrefix+ActionDelete),
		),
	)
}

func confirmDeleteKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(survey.ButtonConfirmDelete, CallbackMenuPrefix+ActionDeleteConfirm),
			tgbotapi.NewInlineKeyboardButtonData(survey.ButtonCancelDelete, CallbackMenuPrefix+ActionDeleteCancel),
		),
	)
}

func editMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	keyboard := tgbotapi.NewInlineKeyboardMarkup()
	var row []tgbotapi.InlineKeyboardButton
	for _, field := range survey.EditFieldOrder {
		label := survey.EditFieldLabels[field]
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, CallbackEditPrefix+field))
		if len(row) == 2 {
			keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, row)
			row = nil
		}
	}
	if len(row) > 0 {
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, row)
	}
	backRow := tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(survey.ButtonBack, CallbackEditPrefix+ActionCancelEdit),
	)
	keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, backRow)
	return keyboard
}

// sendMainMenu shows the persistent reply-keyboard menu.
func (h *Handler) sendMainMenu(ctx context.Context, chatID int64, hasProfile bool) {
	if _, err := h.Bot.SendMessage(ctx, chatID, survey.MsgMainMenu, mainMenuKeyboard(hasProfile)); err != nil {
		h.Log.Warn("sending main menu failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
