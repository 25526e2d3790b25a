package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when the requested account does not exist.
var ErrNotFound = errors.New("user not found")

// Store persists user accounts in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore constructs a Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const userColumns = `id, email, full_name, COALESCE(profile_pic_url, ''), created_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.ProfilePic, &u.CreatedAt)
	return u, err
}

// Create inserts a new account and returns it with the store-assigned ID.
// A duplicate email surfaces as a unique violation from the driver.
func (s *Store) Create(ctx context.Context, email, fullName, passwordHash string) (User, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (email, full_name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		email, fullName, passwordHash,
	)

	u, err := scanUser(row)
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetByEmail fetches an account by email together with its password hash.
// The hash is returned separately and never attached to the User value.
func (s *Store) GetByEmail(ctx context.Context, email string) (User, string, error) {
	var u User
	var hash string

	err := s.pool.QueryRow(ctx, `
		SELECT `+userColumns+`, password_hash
		FROM users
		WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.FullName, &u.ProfilePic, &u.CreatedAt, &hash)

	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, "", ErrNotFound
	}
	if err != nil {
		return User{}, "", fmt.Errorf("get user by email: %w", err)
	}

	return u, hash, nil
}

// GetByID fetches an account by its identifier.
func (s *Store) GetByID(ctx context.Context, id string) (User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1`,
		id,
	)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("get user by id: %w", err)
	}

	return u, nil
}

// UpdateProfilePic replaces the stored avatar URL and returns the updated account.
func (s *Store) UpdateProfilePic(ctx context.Context, id, url string) (User, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE users
		SET profile_pic_url = $2
		WHERE id = $1
		RETURNING `+userColumns,
		id, url,
	)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("update profile pic: %w", err)
	}

	return u, nil
}

// UpdateLastLogin records the time of a successful authentication.
func (s *Store) UpdateLastLogin(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE users
		SET last_login_at = now()
		WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// ListContactsExcluding returns every account other than the given one, in
// store order. Credential material is never part of the selected columns.
func (s *Store) ListContactsExcluding(ctx context.Context, id string) ([]User, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id <> $1
		ORDER BY created_at, id`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	return contacts, nil
}
