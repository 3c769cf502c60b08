package bot

import (
	"sync"

	"babycarebot/internal/model"
)

type flowStep string

const (
	stepNone       flowStep = "none"
	stepFamilyName flowStep = "family_name"
	stepJoinCode   flowStep = "join_code"
	stepCustomTime flowStep = "custom_time"
	stepBirthDate  flowStep = "birth_date"
)

type userState struct {
	Step flowStep
	// PendingEvent is the kind awaiting a custom timestamp.
	PendingEvent model.EventKind
}

type stateStore struct {
	mu sync.Mutex
	m  map[int64]*userState
}

func newStateStore() *stateStore {
	return &stateStore{m: make(map[int64]*userState)}
}

func (s *stateStore) get(userID int64) *userState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.m[userID]
	if st == nil {
		st = &userState{Step: stepNone}
		s.m[userID] = st
	}
	return st
}

func (s *stateStore) reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, userID)
}
