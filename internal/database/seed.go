package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data.
// It creates a default admin user and a couple of sample posts if the
// database is empty. The admin will be prompted to set up 2FA on first
// login (totp_enabled = false).
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Hash the default admin password.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	// Insert default admin user. 2FA is not enabled — they must set it up
	// on first login.
	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, "admin@inkwell.local", string(hash), "Admin", "admin", false).Scan(&adminID)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// Insert a pair of sample posts so the public API has content in dev.
	samples := []struct {
		title    string
		slug     string
		content  string
		category string
		tags     []string
	}{
		{
			title:    "Welcome to Inkwell",
			slug:     "welcome-to-inkwell",
			content:  "Inkwell is up and running. Sign in to the admin API to start writing posts, moderating comments, and growing your newsletter.",
			category: "Technology",
			tags:     []string{"announcement"},
		},
		{
			title:    "Writing Your First Post",
			slug:     "writing-your-first-post",
			content:  "Posts are written in Markdown. The excerpt, slug, and estimated read time are derived automatically from the title and body, so you can focus on the writing.",
			category: "Education",
			tags:     []string{"guide", "markdown"},
		},
	}

	for _, s := range samples {
		tags, err := json.Marshal(s.tags)
		if err != nil {
			return fmt.Errorf("seed marshal tags: %w", err)
		}
		_, err = db.Exec(`
			INSERT INTO posts (title, content, excerpt, category, status, read_time, slug, tags, author_id)
			VALUES ($1, $2, $3, $4, 'Published', 1, $5, $6, $7)
		`, s.title, s.content, s.content, s.category, s.slug, tags, adminID)
		if err != nil {
			return fmt.Errorf("seed insert post: %w", err)
		}
	}

	slog.Info("database seeded with default admin user and sample posts",
		"email", "admin@inkwell.local",
		"password", "admin",
	)

	return nil
}
