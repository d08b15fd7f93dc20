package store

import (
	"database/sql"
	"fmt"

	"inkwell/internal/models"
)

// SubscriberStore handles newsletter subscriber persistence.
type SubscriberStore struct {
	db *sql.DB
}

// NewSubscriberStore creates a new SubscriberStore with the given database connection.
func NewSubscriberStore(db *sql.DB) *SubscriberStore {
	return &SubscriberStore{db: db}
}

// Subscribe records an email address. Subscribing twice is a no-op and
// returns the existing row, so the operation is idempotent.
func (s *SubscriberStore) Subscribe(email string) (*models.Subscriber, error) {
	_, err := s.db.Exec(`
		INSERT INTO subscribers (email) VALUES ($1)
		ON CONFLICT (email) DO NOTHING
	`, email)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	sub := &models.Subscriber{}
	err = s.db.QueryRow(`
		SELECT id, email, created_at FROM subscribers WHERE email = $1
	`, email).Scan(&sub.ID, &sub.Email, &sub.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("find subscriber: %w", err)
	}
	return sub, nil
}

// List returns all subscribers ordered by signup date.
func (s *SubscriberStore) List() ([]models.Subscriber, error) {
	rows, err := s.db.Query(`
		SELECT id, email, created_at FROM subscribers ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	var subs []models.Subscriber
	for rows.Next() {
		var sub models.Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
