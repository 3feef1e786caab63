// Package users reads user records for scoring. The engine never writes users.
package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"jobseeker-scoring/internal/models"
)

// ErrNotFound is returned when no user has the requested id.
var ErrNotFound = errors.New("user not found")

type Store interface {
	GetUser(ctx context.Context, id string) (*models.UserRecord, error)
}

// PostgresStore reads the users table. profile and resume are JSONB columns;
// bookmarks live in user_bookmarks.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectUser = `SELECT id, role, first_name, last_name, email, email_verified,
	contact_number, address, birthdate, created_at, updated_at,
	profile, resume, career_path_title
	FROM users WHERE id = $1`

const selectBookmarks = `SELECT resource_id FROM user_bookmarks WHERE user_id = $1 ORDER BY created_at`

func (s *PostgresStore) GetUser(ctx context.Context, id string) (*models.UserRecord, error) {
	var (
		u                               models.UserRecord
		role                            string
		lastName, email                 sql.NullString
		contact, address                sql.NullString
		birthdate, createdAt, updatedAt sql.NullTime
		profile, resume                 []byte
		careerPath                      sql.NullString
	)

	err := s.db.QueryRowContext(ctx, selectUser, id).Scan(
		&u.ID, &role, &u.FirstName, &lastName, &email, &u.EmailVerified,
		&contact, &address, &birthdate, &createdAt, &updatedAt,
		&profile, &resume, &careerPath,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query user %s: %w", id, err)
	}

	u.Role = models.Role(role)
	u.LastName = lastName.String
	u.Email = email.String
	u.ContactNumber = contact.String
	u.Address = address.String
	if birthdate.Valid {
		t := birthdate.Time
		u.Birthdate = &t
	}
	if createdAt.Valid {
		u.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		u.UpdatedAt = updatedAt.Time
	}
	if careerPath.Valid && careerPath.String != "" {
		u.CareerPath = &models.CareerPath{Title: careerPath.String}
	}

	if len(profile) > 0 {
		if err := json.Unmarshal(profile, &u.Profile); err != nil {
			return nil, fmt.Errorf("decode profile of user %s: %w", id, err)
		}
	}
	if len(resume) > 0 && string(resume) != "null" {
		var r models.Resume
		if err := json.Unmarshal(resume, &r); err != nil {
			return nil, fmt.Errorf("decode resume of user %s: %w", id, err)
		}
		u.Resume = &r
	}

	bookmarks, err := s.bookmarks(ctx, id)
	if err != nil {
		return nil, err
	}
	u.BookmarkedResources = bookmarks

	return &u, nil
}

func (s *PostgresStore) bookmarks(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, selectBookmarks, id)
	if err != nil {
		return nil, fmt.Errorf("query bookmarks of user %s: %w", id, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var resourceID string
		if err := rows.Scan(&resourceID); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		out = append(out, resourceID)
	}
	return out, rows.Err()
}

// MemoryStore serves fixed user records. It backs local runs and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*models.UserRecord
}

func NewMemoryStore(records ...*models.UserRecord) *MemoryStore {
	s := &MemoryStore{users: make(map[string]*models.UserRecord, len(records))}
	for _, r := range records {
		s.Put(r)
	}
	return s
}

func (s *MemoryStore) Put(u *models.UserRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *MemoryStore) GetUser(_ context.Context, id string) (*models.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}
