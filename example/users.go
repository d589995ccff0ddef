package main

import (
	"errors"
	"sync"
)

var errNoUser = errors.New("no such user")

type user struct {
	ID   uint
	Name string
}

func (u user) HasAccess() bool  { return true }
func (u user) HomePath() string { return "/" }

// users is an in-memory user store.
type users struct {
	mu  sync.RWMutex
	val map[uint]user
}

func newUsers(us ...user) *users {
	s := &users{val: make(map[uint]user, len(us))}
	for _, u := range us {
		s.val[u.ID] = u
	}

	return s
}

func (s *users) find(id uint) (user, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.val[id]
	if !ok {
		return user{}, errNoUser
	}

	return u, nil
}
