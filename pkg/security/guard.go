package security

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event is one inbound update as seen by the gate, before dispatch.
type Event struct {
	UserID       int64
	Text         string
	CallbackData string
	IsCallback   bool
	// SurveyState is the user's current machine state, "" when idle.
	SurveyState string
}

// Verdict is the gate decision. Denied events are dropped silently from the
// user's perspective.
type Verdict struct {
	Allowed bool
	Check   string
	Reason  string
}

func allow() Verdict { return Verdict{Allowed: true} }

func deny(check, reason string) Verdict {
	return Verdict{Check: check, Reason: reason}
}

type timedText struct {
	at   time.Time
	text string
}

// activity is the per-user sliding-window bookkeeping. Never persisted.
type activity struct {
	userID        int64
	messageCount  int
	callbackCount int
	lastActivity  time.Time

	requestTimes      []time.Time
	identicalMessages []timedText
	score             int
	blockedUntil      time.Time

	surveyStart  time.Time
	lastState    string
	stateChanges []time.Time

	lastCommand      time.Time
	callbackTimes    []time.Time
	lastCallbackData string
}

const (
	maxRequestTimes  = 100
	maxIdenticalMsgs = 10
	maxStateChanges  = 100
	maxCallbackTimes = 50
)

// Guard is the abuse-control gate in front of the dispatcher. It is shared
// across users and guards its own state with a mutex.
type Guard struct {
	limits Limits
	log    *zap.Logger
	now    func() time.Time

	mu          sync.Mutex
	users       map[int64]*activity
	whitelist   map[int64]struct{}
	blacklist   map[int64]struct{}
	lastCleanup time.Time
}

func NewGuard(limits Limits, log *zap.Logger) *Guard {
	return &Guard{
		limits:      limits,
		log:         log,
		now:         time.Now,
		users:       make(map[int64]*activity),
		whitelist:   make(map[int64]struct{}),
		blacklist:   make(map[int64]struct{}),
		lastCleanup: time.Now(),
	}
}

func seconds(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}

// Allow evaluates the gate for one inbound event. Checks run in order and the
// first failure short-circuits the rest; every failure bumps the suspicion
// score and may trigger a block.
func (g *Guard) Allow(ev Event) Verdict {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	g.cleanup(now)

	if _, ok := g.blacklist[ev.UserID]; ok {
		g.log.Warn("blacklisted user dropped", zap.Int64("user_id", ev.UserID))
		return deny("blacklist", "user is blacklisted")
	}
	if _, ok := g.whitelist[ev.UserID]; ok {
		return allow()
	}

	a := g.activityFor(ev.UserID)
	if g.isBlocked(a, now) {
		g.log.Warn("blocked user dropped",
			zap.Int64("user_id", ev.UserID),
			zap.Time("blocked_until", a.blockedUntil))
		return deny("blocked", "user is temporarily blocked")
	}

	var prevRequest time.Time
	if len(a.requestTimes) > 0 {
		prevRequest = a.requestTimes[len(a.requestTimes)-1]
	}
	g.updateActivity(a, ev, now)

	checks := []struct {
		name string
		run  func() (bool, string)
	}{
		{"rate_limit", func() (bool, string) { return g.checkRateLimit(a, now) }},
		{"burst", func() (bool, string) { return g.checkBurst(a, now) }},
		{"command_spam", func() (bool, string) { return g.checkCommandSpam(a, ev, now) }},
		{"callback_spam", func() (bool, string) { return g.checkCallbackSpam(a, ev, now) }},
		{"spam", func() (bool, string) { return g.checkSpam(a, ev, now, prevRequest) }},
		{"survey", func() (bool, string) { return g.checkSurvey(a, ev, now) }},
	}
	for _, c := range checks {
		passed, reason := c.run()
		if passed {
			continue
		}
		a.score += 5
		g.log.Warn("security check failed",
			zap.Int64("user_id", ev.UserID),
			zap.String("check", c.name),
			zap.String("reason", reason),
			zap.Int("score", a.score))
		if a.score >= g.limits.BlockScoreThreshold {
			g.block(a)
		}
		return deny(c.name, reason)
	}
	return allow()
}

func (g *Guard) activityFor(userID int64) *activity {
	a, ok := g.users[userID]
	if !ok {
		a = &activity{userID: userID}
		g.users[userID] = a
	}
	return a
}

// isBlocked also handles expiry: an expired block clears and decays the
// score instead of resetting it, so repeat offenders re-block faster.
func (g *Guard) isBlocked(a *activity, now time.Time) bool {
	if a.blockedUntil.IsZero() {
		return false
	}
	if now.Before(a.blockedUntil) {
		return true
	}
	a.blockedUntil = time.Time{}
	a.score -= 10
	if a.score < 0 {
		a.score = 0
	}
	return false
}

func (g *Guard) block(a *activity) {
	var duration time.Duration
	switch {
	case a.score < g.limits.BlockScoreThreshold:
		duration = seconds(g.limits.InitialBlockDuration)
	case a.score < 50:
		duration = 2 * seconds(g.limits.InitialBlockDuration)
	default:
		duration = seconds(g.limits.MaxBlockDuration)
	}
	a.blockedUntil = g.now().Add(duration)
	a.score += 5
	g.log.Warn("user blocked",
		zap.Int64("user_id", a.userID),
		zap.Duration("duration", duration),
		zap.Int("score", a.score))
}

func (g *Guard) updateActivity(a *activity, ev Event, now time.Time) {
	a.lastActivity = now
	a.requestTimes = appendBounded(a.requestTimes, now, maxRequestTimes)
	if ev.IsCallback {
		a.callbackCount++
	} else {
		a.messageCount++
	}
}

func appendBounded(times []time.Time, t time.Time, max int) []time.Time {
	times = append(times, t)
	if len(times) > max {
		times = times[len(times)-max:]
	}
	return times
}

func countSince(times []time.Time, now time.Time, window time.Duration) int {
	n := 0
	for _, t := range times {
		if now.Sub(t) < window {
			n++
		}
	}
	return n
}

func (g *Guard) checkRateLimit(a *activity, now time.Time) (bool, string) {
	perMinute := countSince(a.requestTimes, now, time.Minute)
	perHour := countSince(a.requestTimes, now, time.Hour)
	perDay := countSince(a.requestTimes, now, 24*time.Hour)

	if perMinute > g.limits.MaxRequestsPerMinute {
		return false, fmt.Sprintf("%d requests in the last minute", perMinute)
	}
	if perHour > g.limits.MaxRequestsPerHour {
		return false, fmt.Sprintf("%d requests in the last hour", perHour)
	}
	if perDay > g.limits.MaxRequestsPerDay {
		return false, fmt.Sprintf("%d requests in the last day", perDay)
	}
	return true, ""
}

func (g *Guard) checkBurst(a *activity, now time.Time) (bool, string) {
	recent := countSince(a.requestTimes, now, seconds(g.limits.BurstWindowSec))
	if recent > g.limits.BurstThreshold {
		a.score += 10
		return false, fmt.Sprintf("%d requests in %.0fs", recent, g.limits.BurstWindowSec)
	}
	return true, ""
}

func (g *Guard) checkCommandSpam(a *activity, ev Event, now time.Time) (bool, string) {
	if ev.IsCallback || !strings.HasPrefix(ev.Text, "/") {
		return true, ""
	}
	if !a.lastCommand.IsZero() && now.Sub(a.lastCommand) < seconds(g.limits.CommandCooldown) {
		a.score += 3
		return false, "commands too frequent"
	}
	a.lastCommand = now
	return true, ""
}

// checkCallbackSpam bounds taps per second and identical repeated taps.
// Separate from message-duplicate detection: legitimate rapid toggling must
// not be penalized as duplicate text would be.
func (g *Guard) checkCallbackSpam(a *activity, ev Event, now time.Time) (bool, string) {
	if !ev.IsCallback || ev.CallbackData == "" {
		return true, ""
	}

	for len(a.callbackTimes) > 0 && now.Sub(a.callbackTimes[0]) > time.Second {
		a.callbackTimes = a.callbackTimes[1:]
	}
	if len(a.callbackTimes) >= g.limits.MaxCallbacksPerSecond {
		a.score += 5
		return false, fmt.Sprintf("%d callbacks per second", len(a.callbackTimes))
	}

	if ev.CallbackData == a.lastCallbackData {
		identical := countSince(a.callbackTimes, now, seconds(g.limits.IdenticalCallbackWindow))
		if identical >= g.limits.MaxIdenticalCallbacks {
			a.score += 8
			return false, fmt.Sprintf("%d identical callbacks in %.0fs",
				identical, g.limits.IdenticalCallbackWindow)
		}
	}

	a.callbackTimes = appendBounded(a.callbackTimes, now, maxCallbackTimes)
	a.lastCallbackData = ev.CallbackData
	return true, ""
}

func (g *Guard) checkSpam(a *activity, ev Event, now time.Time, prevRequest time.Time) (bool, string) {
	if ev.IsCallback || ev.Text == "" {
		return true, ""
	}

	window := seconds(g.limits.IdenticalMessageWindow)
	for len(a.identicalMessages) > 0 && now.Sub(a.identicalMessages[0].at) > window {
		a.identicalMessages = a.identicalMessages[1:]
	}
	identical := 0
	for _, m := range a.identicalMessages {
		if m.text == ev.Text {
			identical++
		}
	}
	if identical >= g.limits.MaxIdenticalMessages {
		a.score += 15
		return false, fmt.Sprintf("%d identical messages", identical)
	}
	a.identicalMessages = append(a.identicalMessages, timedText{at: now, text: ev.Text})
	if len(a.identicalMessages) > maxIdenticalMsgs {
		a.identicalMessages = a.identicalMessages[len(a.identicalMessages)-maxIdenticalMsgs:]
	}

	if !prevRequest.IsZero() {
		gap := now.Sub(prevRequest)
		if gap < seconds(g.limits.MinMessageGapSec) {
			a.score += 5
			return false, fmt.Sprintf("%.2fs since previous message", gap.Seconds())
		}
	}
	return true, ""
}

// checkSurvey bounds total survey duration and state-change rate. More
// permissive than the generic limits: a real survey produces many rapid
// transitions during normal use.
func (g *Guard) checkSurvey(a *activity, ev Event, now time.Time) (bool, string) {
	if ev.SurveyState == "" {
		if !a.surveyStart.IsZero() {
			a.surveyStart = time.Time{}
			a.stateChanges = nil
			a.lastState = ""
		}
		return true, ""
	}

	if a.surveyStart.IsZero() {
		a.surveyStart = now
		a.lastState = ev.SurveyState
		a.stateChanges = appendBounded(a.stateChanges, now, maxStateChanges)
		return true, ""
	}

	if elapsed := now.Sub(a.surveyStart); elapsed > seconds(g.limits.MaxSurveyDurationSec) {
		return false, fmt.Sprintf("survey running for %.0fs", elapsed.Seconds())
	}

	if ev.SurveyState != a.lastState {
		a.stateChanges = appendBounded(a.stateChanges, now, maxStateChanges)
		a.lastState = ev.SurveyState

		for len(a.stateChanges) > 0 && now.Sub(a.stateChanges[0]) > time.Minute {
			a.stateChanges = a.stateChanges[1:]
		}
		if len(a.stateChanges) > g.limits.MaxStateChangesPerMinute {
			a.score += 10
			return false, fmt.Sprintf("%d state changes in the last minute", len(a.stateChanges))
		}
	}
	return true, ""
}

// cleanup opportunistically evicts idle, unblocked users so the activity
// table does not grow without bound. Triggered by wall-clock interval.
func (g *Guard) cleanup(now time.Time) {
	if now.Sub(g.lastCleanup) < seconds(g.limits.CleanupIntervalSec) {
		return
	}
	cutoff := now.Add(-seconds(g.limits.IdleCutoffSec))
	for userID, a := range g.users {
		if !a.blockedUntil.IsZero() {
			continue
		}
		if a.lastActivity.After(cutoff) {
			continue
		}
		recent := countSince(a.requestTimes, now, seconds(g.limits.IdleCutoffSec))
		if recent == 0 {
			delete(g.users, userID)
		}
	}
	g.lastCleanup = now
}
