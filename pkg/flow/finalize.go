package flow

import (
	"context"

	"driverprofilebot/pkg/state"
	"driverprofilebot/pkg/survey"

	"go.uber.org/zap"
)

// buildProfile assembles the stored document from a completed draft. Identity
// comes from the session, never from the answers.
func buildProfile(sess *state.Session) *survey.Profile {
	d := sess.Draft
	return &survey.Profile{
		UserID:   sess.UserID,
		Username: sess.Username,
		Name:     d.Name,
		Phone:    d.Phone,
		Age:      d.Age,
		PlaceOfLiving: survey.Place{
			RegionKey:  d.RegionKey,
			RegionName: survey.RegionName(d.RegionKey),
			City:       d.City,
		},
		Categories:      append([]string(nil), d.Categories...),
		Experience:      d.Experience,
		SemiTrailers:    append([]string(nil), d.SemiTrailers...),
		WorkTypes:       append([]string(nil), d.WorkTypes...),
		Vehicles:        survey.SplitVehicles(d.VehiclesText),
		ADRLicense:      d.ADRLicense,
		RaceDurations:   append([]string(nil), d.RaceDurations...),
		DesiredSalary:   d.DesiredSalary,
		DocsAbroad:      append([]string(nil), d.DocsAbroad...),
		MilitaryBooking: d.MilitaryBooking,
		Description:     d.Description,
	}
}

// finalize persists the completed survey and closes the flow. A storage
// failure is logged and, unless strict persistence is on, the user still
// sees the completed survey.
func (h *Handler) finalize(ctx context.Context, sess *state.Session, chatID int64, messageID int) {
	profile := buildProfile(sess)
	profile.Sanitize()

	saveErr := h.Profiles.CreateOrReplace(ctx, profile)
	if saveErr != nil {
		h.Log.Error("saving profile failed",
			zap.Int64("user_id", sess.UserID),
			zap.Error(saveErr))
	} else {
		h.Log.Info("profile saved", zap.Int64("user_id", sess.UserID))
	}

	if err := sess.Machine.Event(ctx, EventFinish, h, sess, chatID, messageID); err != nil && !isNoTransitionError(err) {
		h.Log.Warn("finish event refused, forcing idle",
			zap.Int64("user_id", sess.UserID),
			zap.Error(err))
		sess.Machine.SetState(StateIdle)
	}
	sess.ResetFlow()

	if saveErr != nil && h.StrictPersistence {
		h.reply(ctx, chatID, survey.MsgSaveFailed)
		h.sendMainMenu(ctx, chatID, false)
		return
	}

	h.reply(ctx, chatID, survey.FormatProfile(profile))
	h.reply(ctx, chatID, survey.MsgSurveyDone)
	h.sendMainMenu(ctx, chatID, saveErr == nil)
}
