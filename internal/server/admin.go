package server

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/playperu/charquest/internal/hunt"
)

const adminCookieName = "admin_session"

var errNoAdminSession = errors.New("no valid admin session")

// adminSession is one logged-in admin. It owns the single undo slot:
// the snapshot taken by the most recent reset, if any, lives here and
// nowhere else.
type adminSession struct {
	ID        string
	CreatedAt time.Time
	undo      *hunt.Snapshot
}

// AdminSessions gates the admin surface behind a shared secret. The
// configured password is bcrypt-hashed once at startup; a successful
// login mints a random session token.
type AdminSessions struct {
	hash []byte

	mu       sync.Mutex
	sessions map[string]*adminSession
}

func NewAdminSessions(password string) (*AdminSessions, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &AdminSessions{
		hash:     hash,
		sessions: make(map[string]*adminSession),
	}, nil
}

// Login checks the shared secret and returns a new session token.
func (a *AdminSessions) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(password)); err != nil {
		return "", errNoAdminSession
	}

	sess := &adminSession{ID: uuid.NewString(), CreatedAt: time.Now()}
	a.mu.Lock()
	a.sessions[sess.ID] = sess
	a.mu.Unlock()
	return sess.ID, nil
}

func (a *AdminSessions) Logout(sessionID string) {
	a.mu.Lock()
	delete(a.sessions, sessionID)
	a.mu.Unlock()
}

// Valid reports whether the token names a live session.
func (a *AdminSessions) Valid(sessionID string) bool {
	a.mu.Lock()
	_, ok := a.sessions[sessionID]
	a.mu.Unlock()
	return ok
}

// SetUndo stores the snapshot in the session's undo slot, replacing any
// previous one. A new reset always overwrites the old undo.
func (a *AdminSessions) SetUndo(sessionID string, sn *hunt.Snapshot) {
	a.mu.Lock()
	if sess, ok := a.sessions[sessionID]; ok {
		sess.undo = sn
	}
	a.mu.Unlock()
}

// TakeUndo removes and returns the session's undo snapshot. Snapshots
// are single-use: once taken, the slot is empty whether or not the
// restore succeeds.
func (a *AdminSessions) TakeUndo(sessionID string) (*hunt.Snapshot, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	sess, ok := a.sessions[sessionID]
	if !ok || sess.undo == nil {
		return nil, false
	}
	sn := sess.undo
	sess.undo = nil
	return sn, true
}
