// Package session holds the authenticated identity of the current user and
// persists it through a swappable Persistence port.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/jonathan/hiring-portal/internal/types"
)

// User-visible login failures.
const (
	MsgCredentialMismatch = "Email atau password salah!"
	MsgMissingInput       = "Email dan password harus diisi!"
)

var (
	// ErrUnauthenticated is returned when a view needs a session and there is none.
	ErrUnauthenticated = errors.New("not logged in")
	// ErrForbidden is returned when the session has the wrong role.
	ErrForbidden = errors.New("insufficient role")
)

// Credentials looks up fixture credential records.
type Credentials interface {
	FindUser(email string) (types.UserRecord, bool)
}

// PasswordVerifier checks a password against a bcrypt hash.
// config.PasswordConfig implements it.
type PasswordVerifier interface {
	VerifyPassword(pw, storedHash string) bool
}

// Persistence keeps the session across restarts. Load returns nil when
// nothing is stored.
type Persistence interface {
	Load(ctx context.Context) (*types.Session, error)
	Save(ctx context.Context, s types.Session) error
	Clear(ctx context.Context) error
}

// Result is the outcome of a login attempt.
type Result struct {
	Success  bool           `json:"success"`
	Session  *types.Session `json:"session,omitempty"`
	Reason   string         `json:"message,omitempty"`
	Redirect string         `json:"redirect,omitempty"`
}

// Option configures a Store.
type Option func(*Store)

// WithPasswordVerifier enables bcrypt hashes in the credential fixture.
func WithPasswordVerifier(v PasswordVerifier) Option {
	return func(s *Store) { s.verifier = v }
}

// Store is the explicit session object owned by the composition root.
type Store struct {
	mu       sync.RWMutex
	creds    Credentials
	persist  Persistence
	verifier PasswordVerifier
	current  *types.Session
	subs     map[int]func(*types.Session)
	nextSub  int
}

// NewStore creates a store with no session. Call Init to restore a persisted one.
func NewStore(creds Credentials, persist Persistence, opts ...Option) *Store {
	s := &Store{
		creds:   creds,
		persist: persist,
		subs:    map[int]func(*types.Session){},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init loads the persisted session, if any.
func (s *Store) Init(ctx context.Context) error {
	saved, err := s.persist.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	s.set(saved)
	return nil
}

// Login matches email and password against the credential fixture. A failed
// attempt leaves the current session untouched. The error is reserved for
// persistence failures.
func (s *Store) Login(ctx context.Context, email, password string) (Result, error) {
	res := s.Authenticate(email, password)
	if !res.Success {
		log.Printf("[session] login failed for %q: %s", email, res.Reason)
		return res, nil
	}

	sess := *res.Session
	if err := s.persist.Save(ctx, sess); err != nil {
		return Result{}, fmt.Errorf("failed to save session: %w", err)
	}
	s.set(&sess)
	log.Printf("[session] %s logged in as %s", sess.Email, sess.Role)
	return res, nil
}

// Authenticate checks credentials without touching the current session.
// The HTTP server uses it to mint tokens for many concurrent users.
func (s *Store) Authenticate(email, password string) Result {
	if strings.TrimSpace(email) == "" || password == "" {
		return Result{Reason: MsgMissingInput}
	}
	user, ok := s.creds.FindUser(email)
	if !ok || !s.passwordMatches(user.Password, password) {
		return Result{Reason: MsgCredentialMismatch}
	}
	sess := types.SessionFromUser(user)
	return Result{Success: true, Session: &sess, Redirect: HomePath(sess.Role)}
}

// isBcryptHash reports whether a stored password is a bcrypt hash.
func isBcryptHash(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$")
}

func (s *Store) passwordMatches(stored, given string) bool {
	if s.verifier != nil && isBcryptHash(stored) {
		return s.verifier.VerifyPassword(given, stored)
	}
	return stored == given
}

// Logout clears the session in memory and in persistence.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.persist.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.set(nil)
	return nil
}

// Current returns the session, if any.
func (s *Store) Current() (types.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return types.Session{}, false
	}
	return *s.current, true
}

// Require returns the current session when it may use a view restricted to
// role. An empty role accepts any session.
func (s *Store) Require(role types.Role) (types.Session, error) {
	sess, ok := s.Current()
	if !ok {
		return types.Session{}, ErrUnauthenticated
	}
	if err := Authorize(sess, role); err != nil {
		return types.Session{}, err
	}
	return sess, nil
}

// Authorize checks sess against the role a view requires.
func Authorize(sess types.Session, role types.Role) error {
	if role != "" && sess.Role != role {
		return fmt.Errorf("%w: %s required", ErrForbidden, role)
	}
	return nil
}

// Subscribe registers fn to be called after every change with the new
// session (nil after logout). The returned func unsubscribes.
func (s *Store) Subscribe(fn func(*types.Session)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) set(sess *types.Session) {
	s.mu.Lock()
	if sess != nil {
		cp := *sess
		sess = &cp
	}
	s.current = sess
	subs := make([]func(*types.Session), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		var arg *types.Session
		if sess != nil {
			cp := *sess
			arg = &cp
		}
		fn(arg)
	}
}

// HomePath is where a role lands after login.
func HomePath(role types.Role) string {
	if role == types.RoleAdmin {
		return "/admin/jobs"
	}
	return "/jobs"
}
