package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/snippetsapp/snippets/internal/model"
	"github.com/snippetsapp/snippets/internal/storage"
	"github.com/snippetsapp/snippets/internal/storage/postgres/migrations"
)

const uniqueViolation = "23505"

// Storage is a PostgreSQL-backed implementation of the storage interface.
// All queries are parameterized.
type Storage struct {
	db *sql.DB
}

// Open connects to the database identified by the connection URL.
func Open(databaseURL string) (*Storage, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Storage{db: db}, nil
}

// NewWithDB creates a Storage with an existing connection (for testing)
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// RunMigrations applies the embedded schema migrations with goose.
func (s *Storage) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, s.db, ".")
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `INSERT INTO users (username, password_hash, created_at)
	          VALUES ($1, $2, $3)
	          RETURNING id`

	stored := *user
	err := s.db.QueryRowContext(ctx, query,
		user.Username, user.PasswordHash, user.CreatedAt).Scan(&stored.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, model.ErrUsernameTaken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &stored, nil
}

func (s *Storage) GetUser(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT id, username, password_hash, created_at FROM users WHERE id = $1`
	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`
	return s.scanUser(s.db.QueryRowContext(ctx, query, username))
}

func (s *Storage) scanUser(row *sql.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &user, nil
}

// Entry operations

func (s *Storage) CreateEntry(ctx context.Context, entry *model.Entry) (*model.Entry, error) {
	query := `INSERT INTO entries (author_id, title, content, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	stored := *entry
	err := s.db.QueryRowContext(ctx, query,
		entry.AuthorID, entry.Title, entry.Content, entry.CreatedAt, entry.UpdatedAt).Scan(&stored.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &stored, nil
}

func (s *Storage) GetEntry(ctx context.Context, id int64) (*model.Entry, error) {
	query := `SELECT id, author_id, title, content, created_at, updated_at
	          FROM entries WHERE id = $1`

	var entry model.Entry
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&entry.ID, &entry.AuthorID, &entry.Title, &entry.Content,
		&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrEntryNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &entry, nil
}

func (s *Storage) UpdateEntry(ctx context.Context, entry *model.Entry) error {
	query := `UPDATE entries SET title = $1, content = $2, updated_at = $3 WHERE id = $4`

	res, err := s.db.ExecContext(ctx, query,
		entry.Title, entry.Content, entry.UpdatedAt, entry.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res, model.ErrEntryNotFound)
}

func (s *Storage) DeleteEntry(ctx context.Context, id int64) error {
	// Comments and favourites cascade via foreign keys.
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res, model.ErrEntryNotFound)
}

func (s *Storage) ListEntriesByAuthor(ctx context.Context, authorID int64) ([]*model.Entry, error) {
	query := `SELECT id, author_id, title, content, created_at, updated_at
	          FROM entries WHERE author_id = $1 ORDER BY id DESC`

	rows, err := s.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanEntries(rows)
}

// Comment operations

func (s *Storage) CreateComment(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	query := `INSERT INTO comments (entry_id, author_id, content, created_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	stored := *comment
	err := s.db.QueryRowContext(ctx, query,
		comment.EntryID, comment.AuthorID, comment.Content, comment.CreatedAt).Scan(&stored.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &stored, nil
}

func (s *Storage) GetComment(ctx context.Context, id int64) (*model.Comment, error) {
	query := `SELECT id, entry_id, author_id, content, created_at
	          FROM comments WHERE id = $1`

	var comment model.Comment
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.EntryID, &comment.AuthorID,
		&comment.Content, &comment.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrCommentNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &comment, nil
}

func (s *Storage) DeleteComment(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res, model.ErrCommentNotFound)
}

func (s *Storage) ListCommentsForEntry(ctx context.Context, entryID int64) ([]*model.Comment, error) {
	query := `SELECT c.id, c.entry_id, c.author_id, u.username, c.content, c.created_at
	          FROM comments c
	          JOIN users u ON u.id = c.author_id
	          WHERE c.entry_id = $1
	          ORDER BY c.id`

	rows, err := s.db.QueryContext(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		var comment model.Comment
		if err := rows.Scan(&comment.ID, &comment.EntryID, &comment.AuthorID,
			&comment.AuthorName, &comment.Content, &comment.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return comments, nil
}

// Favourite operations

func (s *Storage) AddFavourite(ctx context.Context, userID, entryID int64) error {
	// ON CONFLICT DO NOTHING makes the duplicate favourite an idempotent upsert.
	query := `INSERT INTO favourites (user_id, entry_id, created_at)
	          VALUES ($1, $2, now())
	          ON CONFLICT (user_id, entry_id) DO NOTHING`

	if _, err := s.db.ExecContext(ctx, query, userID, entryID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "favourites_entry_id_fkey" {
			return model.ErrEntryNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *Storage) RemoveFavourite(ctx context.Context, userID, entryID int64) error {
	query := `DELETE FROM favourites WHERE user_id = $1 AND entry_id = $2`
	if _, err := s.db.ExecContext(ctx, query, userID, entryID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *Storage) IsFavourite(ctx context.Context, userID, entryID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM favourites WHERE user_id = $1 AND entry_id = $2)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, userID, entryID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (s *Storage) ListFavouriteEntries(ctx context.Context, userID int64) ([]*model.Entry, error) {
	// Single joined read so the listing cannot observe a half-removed favourite.
	query := `SELECT e.id, e.author_id, e.title, e.content, e.created_at, e.updated_at
	          FROM favourites f
	          JOIN entries e ON e.id = f.entry_id
	          WHERE f.user_id = $1
	          ORDER BY e.id DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanEntries(rows)
}

func (s *Storage) CountFavourites(ctx context.Context, userID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM favourites WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func scanEntries(rows *sql.Rows) ([]*model.Entry, error) {
	defer rows.Close()

	var entries []*model.Entry
	for rows.Next() {
		var entry model.Entry
		if err := rows.Scan(&entry.ID, &entry.AuthorID, &entry.Title, &entry.Content,
			&entry.CreatedAt, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entries, nil
}

func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
