package store

import (
	"context"
	"sync"

	"assent/internal/profile/models"
)

// Memory keeps users and profiles in memory for tests and development.
type Memory struct {
	mu           sync.RWMutex
	users        map[int64]*models.User
	usersByName  map[string]int64
	profiles     map[int64]*models.Profile
	nextUser     int64
	nextProfile  int64
}

// NewMemory constructs an empty in-memory profile store.
func NewMemory() *Memory {
	return &Memory{
		users:       make(map[int64]*models.User),
		usersByName: make(map[string]int64),
		profiles:    make(map[int64]*models.Profile),
	}
}

func (s *Memory) InsertUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.usersByName[user.UserName]; taken {
		return ErrUserNameTaken
	}
	s.nextUser++
	user.ID = s.nextUser
	copyUser := *user
	s.users[user.ID] = &copyUser
	s.usersByName[user.UserName] = user.ID
	return nil
}

func (s *Memory) FindUserByName(_ context.Context, userName string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usersByName[userName]
	if !ok {
		return nil, ErrNotFound
	}
	copyUser := *s.users[id]
	return &copyUser, nil
}

func (s *Memory) InsertProfile(_ context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextProfile++
	profile.ID = s.nextProfile
	copyProfile := *profile
	s.profiles[profile.ID] = &copyProfile
	return nil
}

func (s *Memory) FindProfileByID(_ context.Context, id int64) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	copyProfile := *p
	return &copyProfile, nil
}

func (s *Memory) FindProfileByUserID(_ context.Context, userID int64) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findByUserLocked(userID)
}

func (s *Memory) UpdateProfile(_ context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[profile.ID]; !ok {
		return ErrNotFound
	}
	copyProfile := *profile
	s.profiles[profile.ID] = &copyProfile
	return nil
}

func (s *Memory) DeleteProfile(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[id]; !ok {
		return ErrNotFound
	}
	delete(s.profiles, id)
	return nil
}

func (s *Memory) findByUserLocked(userID int64) (*models.Profile, error) {
	for _, p := range s.profiles {
		if p.UserID == userID {
			copyProfile := *p
			return &copyProfile, nil
		}
	}
	return nil, ErrNotFound
}
