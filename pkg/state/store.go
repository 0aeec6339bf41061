package state

import (
	"sync"

	"go.uber.org/zap"
)

// Store owns all sessions, keyed by user id.
type Store struct {
	sessions map[int64]*Session
	factory  MachineFactory
	log      *zap.Logger
	mu       sync.Mutex
}

func NewStore(factory MachineFactory, log *zap.Logger) *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		factory:  factory,
		log:      log,
	}
}

// GetOrCreate returns the user's session, creating it on first contact.
// Username is refreshed on every call since users can rename themselves.
func (s *Store) GetOrCreate(userID int64, username string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[userID]; ok {
		if sess.Username != username {
			s.log.Info("updating username",
				zap.Int64("user_id", userID),
				zap.String("username", username))
			sess.Username = username
		}
		return sess
	}

	s.log.Info("creating session", zap.Int64("user_id", userID))
	sess := &Session{
		UserID:   userID,
		Username: username,
		Machine:  s.factory.NewSurveyMachine(),
		Draft:    NewDraft(),
	}
	s.sessions[userID] = sess
	return sess
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
