package security

import (
	"time"

	"go.uber.org/zap"
)

// UserStats is the admin-facing snapshot of one user's activity counters.
type UserStats struct {
	UserID                 int64      `json:"user_id"`
	MessageCount           int        `json:"message_count"`
	CallbackCount          int        `json:"callback_count"`
	SuspiciousScore        int        `json:"suspicious_score"`
	Blocked                bool       `json:"is_blocked"`
	BlockedUntil           *time.Time `json:"blocked_until,omitempty"`
	Whitelisted            bool       `json:"is_whitelisted"`
	Blacklisted            bool       `json:"is_blacklisted"`
	LastActivity           time.Time  `json:"last_activity"`
	SurveyActive           bool       `json:"survey_active"`
	StateChangesLastMinute int        `json:"state_changes_last_minute"`
	CallbacksLastSecond    int        `json:"callbacks_last_second"`
}

// Stats returns the snapshot for a user, false if the gate has never seen them.
func (g *Guard) Stats(userID int64) (UserStats, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	a, ok := g.users[userID]
	if !ok {
		return UserStats{}, false
	}
	now := g.now()
	stats := UserStats{
		UserID:                 userID,
		MessageCount:           a.messageCount,
		CallbackCount:          a.callbackCount,
		SuspiciousScore:        a.score,
		Blocked:                g.isBlocked(a, now),
		LastActivity:           a.lastActivity,
		SurveyActive:           !a.surveyStart.IsZero(),
		StateChangesLastMinute: countSince(a.stateChanges, now, time.Minute),
		CallbacksLastSecond:    countSince(a.callbackTimes, now, time.Second),
	}
	if !a.blockedUntil.IsZero() {
		until := a.blockedUntil
		stats.BlockedUntil = &until
	}
	_, stats.Whitelisted = g.whitelist[userID]
	_, stats.Blacklisted = g.blacklist[userID]
	return stats, true
}

// AddToWhitelist exempts a user from every check.
func (g *Guard) AddToWhitelist(userID int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.whitelist[userID] = struct{}{}
	g.log.Info("user whitelisted", zap.Int64("user_id", userID))
}

func (g *Guard) RemoveFromWhitelist(userID int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.whitelist, userID)
	g.log.Info("user removed from whitelist", zap.Int64("user_id", userID))
}

// AddToBlacklist hard-drops every event from a user.
func (g *Guard) AddToBlacklist(userID int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.blacklist[userID] = struct{}{}
	g.log.Warn("user blacklisted", zap.Int64("user_id", userID))
}

func (g *Guard) RemoveFromBlacklist(userID int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.blacklist, userID)
	g.log.Info("user removed from blacklist", zap.Int64("user_id", userID))
}
