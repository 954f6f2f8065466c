package services

import (
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/config"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

var ErrNoActiveSession = errors.New("no active register session")

// OrderSession is one operator's register state: the active ticket, the
// checkout quote being composed, and the authorization gate. It is the
// explicit owner of what used to be ambient terminal state.
type OrderSession struct {
	mu           sync.Mutex
	Employee     models.Employee
	Ticket       *Ticket
	Quote        *Quote
	Gate         *AuthorizationGate
	lastActivity time.Time
}

// Touch records operator activity for the inactivity timeout.
func (s *OrderSession) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = time.Now()
}

// IdleSince reports how long the operator has been inactive.
func (s *OrderSession) IdleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActivity)
}

// BeginCheckout snapshots the ticket into a fresh quote. Any discount
// or tip entered for a previous checkout attempt is discarded.
func (s *OrderSession) BeginCheckout() *Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Quote = NewQuote(s.Ticket)
	return s.Quote
}

// CurrentQuote returns the in-progress quote, or a fresh one if
// checkout has not started.
func (s *OrderSession) CurrentQuote() *Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Quote == nil {
		s.Quote = NewQuote(s.Ticket)
	}
	return s.Quote
}

// ResetCheckout drops the quote after completion or cancel.
func (s *OrderSession) ResetCheckout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Quote = nil
}

// SessionManager owns every live register session, one per logged-in
// operator, and expires the idle ones on a sweep interval the way the
// terminal's auto-logout does.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[uint]*OrderSession
	db       *gorm.DB
	cfg      config.POS
	StopChan chan struct{}
}

func NewSessionManager(db *gorm.DB, cfg config.POS) *SessionManager {
	return &SessionManager{
		sessions: make(map[uint]*OrderSession),
		db:       db,
		cfg:      cfg,
		StopChan: make(chan struct{}),
	}
}

// Open creates (or replaces) the session for an employee after PIN
// login. Each operator owns exactly one active ticket.
func (m *SessionManager) Open(employee models.Employee) *OrderSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := &OrderSession{
		Employee:     employee,
		Ticket:       NewTicket(m.cfg.TaxRate),
		Gate:         NewAuthorizationGate(m.db, m.cfg.PINMinLen, m.cfg.PINMaxLen),
		lastActivity: time.Now(),
	}
	m.sessions[employee.ID] = session
	return session
}

// Get returns the employee's live session.
func (m *SessionManager) Get(employeeID uint) (*OrderSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[employeeID]
	if !ok {
		return nil, ErrNoActiveSession
	}
	return session, nil
}

// Close drops the session on logout.
func (m *SessionManager) Close(employeeID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, employeeID)
}

// Config exposes the POS tunables to controllers.
func (m *SessionManager) Config() config.POS {
	return m.cfg
}

// Start launches the idle-session sweeper.
func (m *SessionManager) Start() {
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.sweep(time.Now())
			case <-m.StopChan:
				return
			}
		}
	}()
}

func (m *SessionManager) Stop() {
	close(m.StopChan)
}

func (m *SessionManager) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, session := range m.sessions {
		if session.IdleSince(now) > m.cfg.InactivityTimeout {
			utils.InfoLogger.Printf("session for employee %d expired after inactivity", id)
			delete(m.sessions, id)
		}
	}
}
