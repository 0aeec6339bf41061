package flow

import (
	"context"
	"time"

	"driverprofilebot/pkg/state"
	"driverprofilebot/pkg/survey"

	"go.uber.org/zap"
)

// stateForField maps an editable field to the survey state that collects it.
// Location starts at the region picker, categories re-run the experience
// loop and, when needed, the semi-trailer step.
var stateForField = map[string]string{
	survey.FieldName:         StateName,
	survey.FieldPhone:        StatePhone,
	survey.FieldAge:          StateAge,
	survey.FieldLocation:     StateRegion,
	survey.FieldCategories:   StateCategories,
	survey.FieldWorkTypes:    StateWorkTypes,
	survey.FieldVehicles:     StateVehicles,
	survey.FieldADR:          StateADR,
	survey.FieldRaceDuration: StateRaceDuration,
	survey.FieldSalary:       StateSalary,
	survey.FieldDocsAbroad:   StateDocsAbroad,
	survey.FieldMilitary:     StateMilitary,
	survey.FieldDescription:  StateDescription,
}

func (h *Handler) handleMenuAction(ctx context.Context, sess *state.Session, chatID int64, messageID int, value string) string {
	switch value {
	case ActionEdit:
		return h.showEditMenu(ctx, sess, chatID, messageID)
	case ActionDelete:
		h.showPrompt(ctx, sess, chatID, messageID, survey.MsgConfirmDelete, confirmDeleteKeyboard())
		return ""
	case ActionDeleteConfirm:
		return h.deleteProfile(ctx, sess, chatID, messageID)
	case ActionDeleteCancel:
		return h.renderProfileView(ctx, sess, chatID, messageID)
	default:
		h.Log.Info("unknown menu action",
			zap.Int64("user_id", sess.UserID),
			zap.String("action", value))
		return ""
	}
}

func (h *Handler) showEditMenu(ctx context.Context, sess *state.Session, chatID int64, messageID int) string {
	p, err := h.Profiles.Get(ctx, sess.UserID)
	if err != nil {
		h.Log.Error("profile lookup failed", zap.Int64("user_id", sess.UserID), zap.Error(err))
		return survey.MsgInternalError
	}
	if p == nil {
		return survey.MsgProfileNotFound
	}
	h.showPrompt(ctx, sess, chatID, messageID, survey.MsgEditPrompt, editMenuKeyboard())
	return ""
}

func (h *Handler) deleteProfile(ctx context.Context, sess *state.Session, chatID int64, messageID int) string {
	existed, err := h.Profiles.Delete(ctx, sess.UserID)
	if err != nil {
		h.Log.Error("profile delete failed", zap.Int64("user_id", sess.UserID), zap.Error(err))
		return survey.MsgSaveFailed
	}
	if !existed {
		return survey.MsgProfileNotFound
	}
	h.Log.Info("profile deleted", zap.Int64("user_id", sess.UserID))
	h.showPrompt(ctx, sess, chatID, messageID, survey.MsgProfileDeleted, nil)
	h.sendMainMenu(ctx, chatID, false)
	return ""
}

func (h *Handler) renderProfileView(ctx context.Context, sess *state.Session, chatID int64, messageID int) string {
	p, err := h.Profiles.Get(ctx, sess.UserID)
	if err != nil {
		h.Log.Error("profile lookup failed", zap.Int64("user_id", sess.UserID), zap.Error(err))
		return survey.MsgInternalError
	}
	if p == nil {
		return survey.MsgProfileNotFound
	}
	h.showPrompt(ctx, sess, chatID, messageID, survey.FormatProfile(p), profileMenuKeyboard())
	return ""
}

func (h *Handler) handleEditAction(ctx context.Context, sess *state.Session, chatID int64, messageID int, value string) string {
	if value == ActionCancelEdit {
		return h.renderProfileView(ctx, sess, chatID, messageID)
	}
	if _, ok := survey.EditFieldLabels[value]; !ok {
		h.Log.Info("unknown edit field",
			zap.Int64("user_id", sess.UserID),
			zap.String("field", value))
		return ""
	}
	return h.startEdit(ctx, sess, chatID, messageID, value)
}

// startEdit switches the session into single-field edit mode. The profile
// owner's identity is captured here, once, and every persistence call of
// this edit uses it.
func (h *Handler) startEdit(ctx context.Context, sess *state.Session, chatID int64, messageID int, field string) string {
	p, err := h.Profiles.Get(ctx, sess.UserID)
	if err != nil {
		h.Log.Error("profile lookup failed", zap.Int64("user_id", sess.UserID), zap.Error(err))
		return survey.MsgInternalError
	}
	if p == nil {
		return survey.MsgProfileNotFound
	}

	sess.ResetFlow()
	sess.SurveyStartedAt = time.Now()
	sess.Editing = &state.Editing{
		Field:         field,
		Snapshot:      p,
		OwnerID:       p.UserID,
		OwnerUsername: p.Username,
	}
	if field == survey.FieldCategories {
		for cat, years := range p.Experience {
			sess.Draft.Experience[cat] = years
		}
	}

	// Multi-select edits start from an empty selection, the stored values
	// are not pre-checked.
	sess.Machine.SetState(stateForField[field])
	h.Log.Info("edit started",
		zap.Int64("user_id", sess.UserID),
		zap.String("field", field))
	h.promptState(ctx, sess, chatID, messageID)
	return ""
}

// finishCategoriesExperience concludes a categories edit once every selected
// category has an experience value. The semi-trailer step only re-runs when
// it is needed and the stored profile has nothing to reuse.
func (h *Handler) finishCategoriesExperience(ctx context.Context, sess *state.Session, chatID int64) {
	cats := sess.Draft.Categories
	if !survey.NeedsSemiTrailer(cats) {
		h.saveCategoriesEdit(ctx, sess, chatID, []string{})
		return
	}
	if snapshot := sess.Editing.Snapshot; len(snapshot.SemiTrailers) > 0 {
		h.saveCategoriesEdit(ctx, sess, chatID, snapshot.SemiTrailers)
		return
	}
	h.advance(ctx, sess, EventToSemiTrailers, chatID, 0)
}

// saveCategoriesEdit persists the category edit as one update: the new list,
// the experience map filtered down to it, and the semi-trailer list that
// goes with it.
func (h *Handler) saveCategoriesEdit(ctx context.Context, sess *state.Session, chatID int64, semiTrailers []string) {
	cats := append([]string(nil), sess.Draft.Categories...)
	experience := make(map[string]float64, len(cats))
	for _, cat := range cats {
		if years, ok := sess.Draft.Experience[cat]; ok {
			experience[cat] = years
		}
	}
	h.saveEdit(ctx, sess, chatID, map[string]any{
		"driving_categories": cats,
		"driving_experience": experience,
		"semi_trailer_types": append([]string(nil), semiTrailers...),
	})
}

// saveEdit persists one field edit against the owner captured at edit entry
// and leaves edit mode, whatever the outcome.
func (h *Handler) saveEdit(ctx context.Context, sess *state.Session, chatID int64, fields map[string]any) {
	ownerID := sess.UserID
	if sess.Editing != nil {
		ownerID = sess.Editing.OwnerID
	}

	found, err := h.Profiles.Update(ctx, ownerID, fields)

	sess.Machine.SetState(StateIdle)
	sess.ResetFlow()

	if err != nil {
		h.Log.Error("edit update failed",
			zap.Int64("user_id", ownerID),
			zap.Error(err))
		h.reply(ctx, chatID, survey.MsgSaveFailed)
		return
	}
	if !found {
		h.reply(ctx, chatID, survey.MsgProfileNotFound)
		return
	}

	h.Log.Info("edit saved", zap.Int64("user_id", ownerID))
	h.reply(ctx, chatID, survey.MsgEditSaved)
	h.renderProfileView(ctx, sess, chatID, 0)
}
