package session

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/voiceshop/pkg/logger"
)

const stateKey = "state"

// State is what a conversation remembers between requests. Products are
// kept by id; the shop rehydrates them from the catalog.
type State struct {
	LastShownIDs         []string `json:"last_shown"`
	CustomerName         string   `json:"customer_name,omitempty"`
	CustomerAddress      string   `json:"customer_address,omitempty"`
	DeliveryInstructions string   `json:"delivery_instructions,omitempty"`
}

// Manager reads and writes State through a sessions.Store.
type Manager struct {
	store sessions.Store
	name  string
	log   logger.Logger
}

// NewManager returns a Manager storing state under the cookie name.
func NewManager(store sessions.Store, name string, log logger.Logger) *Manager {
	return &Manager{store: store, name: name, log: log}
}

// Load returns the caller's state. A missing, expired, or unreadable
// session yields an empty State; the shopper simply starts over.
func (m *Manager) Load(r *http.Request) State {
	var st State
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		m.log.WarnContext(r.Context(), "session unreadable, starting fresh", "error", err)
		return st
	}
	raw, ok := sess.Values[stateKey].(string)
	if !ok || raw == "" {
		return st
	}
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		m.log.WarnContext(r.Context(), "session state corrupt, starting fresh", "error", err)
		return State{}
	}
	return st
}

// Save writes st and refreshes the session cookie. Call before writing the
// response body.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, st State) error {
	sess, err := m.store.Get(r, m.name)
	if err != nil && sess == nil {
		return fmt.Errorf("get session: %w", err)
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}
	sess.Values[stateKey] = string(raw)
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear expires the caller's session.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, err := m.store.Get(r, m.name)
	if err != nil && sess == nil {
		return fmt.Errorf("get session: %w", err)
	}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}
