package fakestore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"driverprofilebot/pkg/storage"
	"driverprofilebot/pkg/survey"
)

// Store is an in-memory storage.ProfileStore for tests. Documents go through
// a JSON round trip on every call so merge semantics match the real store.
type Store struct {
	mu       sync.Mutex
	docs     map[int64][]byte
	FailNext map[string]error
}

var _ storage.ProfileStore = (*Store)(nil)

func New() *Store {
	return &Store{docs: make(map[int64][]byte)}
}

// Fail arms the next call of op ("get", "create", "update", "delete") to
// return err.
func (s *Store) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailNext == nil {
		s.FailNext = make(map[string]error)
	}
	s.FailNext[op] = err
}

func (s *Store) maybeFail(op string) error {
	if s.FailNext == nil {
		return nil
	}
	err, ok := s.FailNext[op]
	if !ok {
		return nil
	}
	delete(s.FailNext, op)
	return err
}

func (s *Store) Get(ctx context.Context, userID int64) (*survey.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.maybeFail("get"); err != nil {
		return nil, err
	}
	data, ok := s.docs[userID]
	if !ok {
		return nil, nil
	}
	var p survey.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) CreateOrReplace(ctx context.Context, p *survey.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.maybeFail("create"); err != nil {
		return err
	}
	if p.UserID <= 0 {
		return fmt.Errorf("profile user id must be positive, got %d", p.UserID)
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	s.docs[p.UserID] = data
	return nil
}

func (s *Store) Update(ctx context.Context, userID int64, fields map[string]any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.maybeFail("update"); err != nil {
		return false, err
	}
	data, ok := s.docs[userID]
	if !ok {
		return false, nil
	}
	doc := make(map[string]any)
	if err := json.Unmarshal(data, &doc); err != nil {
		return false, err
	}
	username := doc["username"]
	for k, v := range fields {
		if k == "user_id" || k == "username" {
			continue
		}
		doc[k] = v
	}
	doc["user_id"] = userID
	doc["username"] = username

	merged, err := json.Marshal(doc)
	if err != nil {
		return false, err
	}
	s.docs[userID] = merged
	return true, nil
}

func (s *Store) Delete(ctx context.Context, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.maybeFail("delete"); err != nil {
		return false, err
	}
	if _, ok := s.docs[userID]; !ok {
		return false, nil
	}
	delete(s.docs, userID)
	return true, nil
}

// Len reports the number of stored documents.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}
