package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danialarif/gigdesk/internal/domain"
)

// Store persists the session in the local client database. It
// implements api.TokenSource so the client reads the token through an
// explicit dependency rather than ambient global state.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store over an open client database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save replaces the stored session.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	expires := ""
	if !sess.ExpiresAt.IsZero() {
		expires = sess.ExpiresAt.UTC().Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO session (id, token, account_id, name, role, expires_at, saved_at)
		 VALUES ('current', ?, ?, ?, ?, ?, ?)`,
		sess.Token, sess.AccountID, sess.Name, string(sess.Role), expires,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Load returns the stored session, or ErrNotLoggedIn when none exists.
func (s *Store) Load(ctx context.Context) (*Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT token, account_id, name, role, expires_at FROM session WHERE id = 'current'`)

	var sess Session
	var role, expires string
	err := row.Scan(&sess.Token, &sess.AccountID, &sess.Name, &role, &expires)
	if err == sql.ErrNoRows {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	sess.Role = domain.Role(role)
	if expires != "" {
		t, err := time.Parse(time.RFC3339, expires)
		if err != nil {
			return nil, fmt.Errorf("parsing session expiry: %w", err)
		}
		sess.ExpiresAt = t
	}
	return &sess, nil
}

// Clear deletes the stored session.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = 'current'`); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Token implements api.TokenSource: it fails fast locally when no
// session is stored or the token is past its exp claim, so no network
// request is issued on a dead session.
func (s *Store) Token(ctx context.Context) (string, error) {
	sess, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	if sess.Expired(time.Now()) {
		return "", ErrExpired
	}
	return sess.Token, nil
}

// RememberProject records a project in the recent-projects list shown
// on the dashboard.
func (s *Store) RememberProject(ctx context.Context, projectID, title string, role domain.Role) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO recent_projects (project_id, title, role, opened_at) VALUES (?, ?, ?, ?)`,
		projectID, title, string(role), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("remembering project: %w", err)
	}
	return nil
}

// RecentProject is one entry of the recent-projects list.
type RecentProject struct {
	ProjectID string
	Title     string
	Role      domain.Role
	OpenedAt  time.Time
}

// RecentProjects lists recently opened projects, newest first.
func (s *Store) RecentProjects(ctx context.Context, limit int) ([]RecentProject, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT project_id, title, role, opened_at FROM recent_projects ORDER BY opened_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent projects: %w", err)
	}
	defer rows.Close()

	var out []RecentProject
	for rows.Next() {
		var rp RecentProject
		var role, opened string
		if err := rows.Scan(&rp.ProjectID, &rp.Title, &role, &opened); err != nil {
			return nil, fmt.Errorf("scanning recent project: %w", err)
		}
		rp.Role = domain.Role(role)
		if t, err := time.Parse(time.RFC3339Nano, opened); err == nil {
			rp.OpenedAt = t
		}
		out = append(out, rp)
	}
	return out, rows.Err()
}
