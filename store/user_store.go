package store

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/cppla/postbox/models"
)

// UserMirror receives a copy of every created user for durable storage.
type UserMirror interface {
	MirrorUser(user models.User) error
}

// UserStore keeps registered users in memory and assigns their ids.
type UserStore struct {
	mu      sync.RWMutex
	counter int
	users   map[int]models.User
	order   []int // insertion order

	mirror UserMirror
	log    *zap.Logger
}

// NewUserStore creates an empty store. mirror and logger may be nil.
func NewUserStore(mirror UserMirror, logger *zap.Logger) *UserStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserStore{
		users:  make(map[int]models.User),
		mirror: mirror,
		log:    logger,
	}
}

// Add stores a new user under the next id. Duplicate emails are accepted.
func (s *UserStore) Add(name, email, password string, isActive bool) models.User {
	s.mu.Lock()
	s.counter++
	user := models.User{
		ID:       s.counter,
		Name:     name,
		Email:    email,
		IsActive: isActive,
		Password: password,
	}
	s.users[user.ID] = user
	s.order = append(s.order, user.ID)
	s.mu.Unlock()

	if s.mirror != nil {
		if err := s.mirror.MirrorUser(user); err != nil {
			s.log.Warn("user mirror write failed", zap.Int("user_id", user.ID), zap.Error(err))
		}
	}
	return user
}

// Seed adds the demo accounts the service ships with.
func (s *UserStore) Seed(hash func(string) (string, error)) error {
	demo := []struct {
		name, email, password string
		active                bool
	}{
		{"ShishkaCat", "shiiish@ya.ru", "pizza", false},
		{"PlushkaCat", "pluuush@gmail.com", "cheeze", true},
		{"Venya", "veniamin@yandex.ru", "seliger", false},
	}
	for _, d := range demo {
		pw, err := hash(d.password)
		if err != nil {
			return err
		}
		s.Add(d.name, d.email, pw, d.active)
	}
	return nil
}

// GetByID returns the user with the given id.
func (s *UserStore) GetByID(id int) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	return user, ok
}

// GetByEmail returns the earliest registered user with the given email.
func (s *UserStore) GetByEmail(email string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		if u := s.users[id]; u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

// GetAll returns every user sorted by id.
func (s *UserStore) GetAll() []models.User {
	s.mu.RLock()
	list := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		list = append(list, u)
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// GetActive returns active users in insertion order.
func (s *UserStore) GetActive() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := []models.User{}
	for _, id := range s.order {
		if u := s.users[id]; u.IsActive {
			list = append(list, u)
		}
	}
	return list
}
