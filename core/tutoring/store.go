package tutoring

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Storage keys. Fixed: documents written by any version of the app live
// under these two keys, last writer wins.
const (
	databaseKey = "oe_tutor_db_v1"
	sessionKey  = "oe_tutor_session_v1"
)

// KV is the persistence backend for the two application documents.
type KV interface {
	// Get returns the value stored under key, and whether it was present.
	Get(key string) ([]byte, bool, error)
	// Set stores value under key, overwriting unconditionally.
	Set(key string, value []byte) error
	Close() error
}

// DocumentStore persists the database and session documents as JSON in a KV
// backend. Parse failures are treated as absence, never surfaced: a corrupt
// document self-heals to defaults on the next save.
type DocumentStore struct {
	kv KV
}

func NewDocumentStore(kv KV) *DocumentStore {
	return &DocumentStore{kv: kv}
}

// LoadDatabase returns the previously saved database, or nil if there is
// none (or it cannot be parsed).
func (s *DocumentStore) LoadDatabase() (*Database, error) {
	raw, ok, err := s.kv.Get(databaseKey)
	if err != nil {
		return nil, errors.Wrap(err, "loading database document")
	}
	if !ok {
		return nil, nil
	}
	var db Database
	if err := json.Unmarshal(raw, &db); err != nil {
		return nil, nil // corrupt == absent
	}
	return &db, nil
}

func (s *DocumentStore) SaveDatabase(db *Database) error {
	raw, err := json.Marshal(db)
	if err != nil {
		return errors.Wrap(err, "marshaling database document")
	}
	return errors.Wrap(s.kv.Set(databaseKey, raw), "saving database document")
}

// LoadSession returns the saved session, or a signed-out session if absent
// or corrupt.
func (s *DocumentStore) LoadSession() (Session, error) {
	raw, ok, err := s.kv.Get(sessionKey)
	if err != nil {
		return Session{}, errors.Wrap(err, "loading session document")
	}
	if !ok {
		return Session{}, nil
	}
	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return Session{}, nil
	}
	return session, nil
}

func (s *DocumentStore) SaveSession(session Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "marshaling session document")
	}
	return errors.Wrap(s.kv.Set(sessionKey, raw), "saving session document")
}

func (s *DocumentStore) Close() error { return s.kv.Close() }
