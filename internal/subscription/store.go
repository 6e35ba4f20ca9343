// Package subscription persists browser push subscriptions in a local
// SQLite database, keyed by endpoint uniqueness.
package subscription

import (
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"volley-schedule-service/internal/push"
)

const schema = `
CREATE TABLE IF NOT EXISTS subscription (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	endpoint TEXT NOT NULL UNIQUE,
	p256dh TEXT NOT NULL,
	auth TEXT NOT NULL
);`

// Operation names what Toggle did with an endpoint.
type Operation string

const (
	// OpSubscribe means the endpoint was unknown and has been stored
	OpSubscribe Operation = "subscribe"
	// OpUnsubscribe means the endpoint was known and has been removed
	OpUnsubscribe Operation = "unsubscribe"
)

// Store keeps push subscriptions in a SQLite database file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the subscription database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening subscription database")
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating subscription table")
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Toggle subscribes an unknown endpoint and unsubscribes a known one,
// so a browser can flip its state with a single call.
func (s *Store) Toggle(sub push.Subscription) (Operation, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM subscription WHERE endpoint = ?`, sub.Endpoint).Scan(&count)
	if err != nil {
		return "", errors.Wrap(err, "looking up subscription")
	}

	if count == 0 {
		_, err := s.db.Exec(`
			INSERT INTO subscription (endpoint, p256dh, auth) VALUES (?, ?, ?)
			ON CONFLICT(endpoint) DO UPDATE SET p256dh = excluded.p256dh, auth = excluded.auth`,
			sub.Endpoint, sub.P256dh, sub.Auth)
		if err != nil {
			return "", errors.Wrap(err, "storing subscription")
		}
		return OpSubscribe, nil
	}

	if _, err := s.db.Exec(`DELETE FROM subscription WHERE endpoint = ?`, sub.Endpoint); err != nil {
		return "", errors.Wrap(err, "removing subscription")
	}
	return OpUnsubscribe, nil
}

// All returns every active subscription.
func (s *Store) All() ([]push.Subscription, error) {
	rows, err := s.db.Query(`SELECT endpoint, p256dh, auth FROM subscription ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "listing subscriptions")
	}
	defer rows.Close()

	var subs []push.Subscription
	for rows.Next() {
		var sub push.Subscription
		if err := rows.Scan(&sub.Endpoint, &sub.P256dh, &sub.Auth); err != nil {
			return nil, errors.Wrap(err, "scanning subscription row")
		}
		subs = append(subs, sub)
	}
	return subs, errors.Wrap(rows.Err(), "iterating subscription rows")
}

// Remove deletes the subscription with the given endpoint. Removing an
// unknown endpoint is not an error.
func (s *Store) Remove(endpoint string) error {
	_, err := s.db.Exec(`DELETE FROM subscription WHERE endpoint = ?`, endpoint)
	return errors.Wrap(err, "deleting subscription")
}
