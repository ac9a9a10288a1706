package services

import (
	"errors"
	"strings"
	"sync"

	"github.com/adyen/shopcheck/internal/models"
)

// Account errors
var (
	ErrEmailTaken         = errors.New("email address already exist")
	ErrInvalidCredentials = errors.New("your email or password is incorrect")
	ErrAccountNotFound    = errors.New("account not found")
)

// AccountService registers customers and tracks which session is signed in as whom
type AccountService interface {
	Register(account models.Account) error
	Exists(email string) bool
	Authenticate(email, password string) (*models.Account, error)
	SignIn(sessionID, email string) error
	SignOut(sessionID string)
	Current(sessionID string) (*models.Account, bool)
	Delete(email string) error
	Subscribe(email string) error
}

// AccountServiceImpl implements AccountService in memory
type AccountServiceImpl struct {
	mu          sync.RWMutex
	accounts    map[string]models.Account
	sessions    map[string]string
	subscribers map[string]struct{}
}

// NewAccountService creates an account service with the given accounts pre-registered
func NewAccountService(seed ...models.Account) AccountService {
	s := &AccountServiceImpl{
		accounts:    make(map[string]models.Account),
		sessions:    make(map[string]string),
		subscribers: make(map[string]struct{}),
	}
	for _, a := range seed {
		s.accounts[normalizeEmail(a.Email)] = a
	}
	return s
}

// Register stores a new account
func (s *AccountServiceImpl) Register(account models.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeEmail(account.Email)
	if _, ok := s.accounts[key]; ok {
		return ErrEmailTaken
	}
	s.accounts[key] = account
	return nil
}

// Exists reports whether email is registered
func (s *AccountServiceImpl) Exists(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.accounts[normalizeEmail(email)]
	return ok
}

// Authenticate checks a login attempt
func (s *AccountServiceImpl) Authenticate(email, password string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[normalizeEmail(email)]
	if !ok || account.Password != password {
		return nil, ErrInvalidCredentials
	}
	return &account, nil
}

// SignIn binds sessionID to the account registered under email
func (s *AccountServiceImpl) SignIn(sessionID, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeEmail(email)
	if _, ok := s.accounts[key]; !ok {
		return ErrAccountNotFound
	}
	s.sessions[sessionID] = key
	return nil
}

// SignOut forgets who sessionID is signed in as
func (s *AccountServiceImpl) SignOut(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
}

// Current returns the account sessionID is signed in as
func (s *AccountServiceImpl) Current(sessionID string) (*models.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	account, ok := s.accounts[key]
	if !ok {
		return nil, false
	}
	return &account, true
}

// Delete removes the account and signs out every session using it
func (s *AccountServiceImpl) Delete(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeEmail(email)
	if _, ok := s.accounts[key]; !ok {
		return ErrAccountNotFound
	}
	delete(s.accounts, key)
	for session, owner := range s.sessions {
		if owner == key {
			delete(s.sessions, session)
		}
	}
	return nil
}

// Subscribe records a newsletter subscription
func (s *AccountServiceImpl) Subscribe(email string) error {
	if !strings.Contains(email, "@") {
		return models.ErrInvalidEmail
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers[normalizeEmail(email)] = struct{}{}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
