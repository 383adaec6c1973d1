// Package sqlite contains a single-file implementation of the persistence layer
// on top of the pure Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"usersvc/internal/domain/entity"
	domainerrors "usersvc/internal/domain/errors"
	"usersvc/internal/domain/repository"
	"usersvc/internal/errors"
	"usersvc/internal/infra/persistence/sqlite/migrations"

	"github.com/google/uuid"
	"modernc.org/sqlite"
)

const (
	timeFormat = time.RFC3339Nano

	// lowerFunc folds case with Go's Unicode tables; the builtin lower() is ASCII only.
	lowerFunc = "usersvc_lower"
)

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(lowerFunc, 1, unicodeLower)
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return nil, errors.Errorf("%s: unsupported argument type %T", lowerFunc, v)
	}
}

// userRepository stores users in one SQLite table; insertion order is rowid order.
type userRepository struct {
	db        *sql.DB
	namespace uuid.UUID
	closeOnce sync.Once
	closeErr  error
}

// Open opens (or creates) the database at path, applies the schema and
// returns the repository. The caller owns the handle through Close.
func Open(ctx context.Context, path string, namespace uuid.UUID) (repository.UserRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o750); err != nil {
		return nil, errors.Wrap(err, "create sqlite directory")
	}

	dsn := "file:" + cleanPath +
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite db")
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()

		return nil, errors.Wrap(err, "ping sqlite db")
	}

	if err := applySchema(ctx, db); err != nil {
		_ = db.Close()

		return nil, err
	}

	return &userRepository{db: db, namespace: namespace}, nil
}

// applySchema runs the embedded migrations newer than the database's
// user_version, each in its own transaction.
func applySchema(ctx context.Context, db *sql.DB) error {
	files, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		return errors.Wrap(err, "list migrations")
	}
	sort.Strings(files)

	var version int
	if err := db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&version); err != nil {
		return errors.Wrap(err, "read schema version")
	}

	for i := version; i < len(files); i++ {
		if err := applyMigration(ctx, db, files[i], i+1); err != nil {
			return err
		}
	}

	return nil
}

func applyMigration(ctx context.Context, db *sql.DB, name string, version int) error {
	content, err := fs.ReadFile(migrations.FS, name)
	if err != nil {
		return errors.Wrapf(err, "read migration %s", name)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrapf(err, "begin migration %s", name)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		return errors.Wrapf(err, "apply migration %s", name)
	}
	// PRAGMA does not take bound parameters.
	if _, err := tx.ExecContext(ctx, "PRAGMA user_version = "+strconv.Itoa(version)); err != nil {
		return errors.Wrapf(err, "record migration %s", name)
	}

	return errors.Wrapf(tx.Commit(), "commit migration %s", name)
}

func (r *userRepository) CreateUser(ctx context.Context, username string) (*entity.User, bool, error) {
	user := entity.NewUser(r.namespace, username)

	// A held username or id inserts nothing and returns no row. The single
	// statement runs under SQLite's write lock, so the check cannot race.
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO users (id, username, created_at)
		 SELECT ?, ?, ? WHERE NOT EXISTS (SELECT 1 FROM users WHERE username = ?)
		 ON CONFLICT DO NOTHING
		 RETURNING id, username`,
		user.ID.String(), user.Username, time.Now().UTC().Format(timeFormat), user.Username,
	)

	return scanOptionalUser(row, "failed to create user")
}

func (r *userRepository) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, bool, error) {
	if user == nil {
		return nil, false, nil
	}

	row := r.db.QueryRowContext(ctx,
		`UPDATE users SET username = ? WHERE id = ? RETURNING id, username`,
		user.Username, user.ID.String(),
	)

	return scanOptionalUser(row, "failed to update user")
}

func (r *userRepository) GetUsers(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, username FROM users ORDER BY rowid`)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list users")
	}

	return collectUsers(rows)
}

func (r *userRepository) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, username FROM users WHERE id = ?`, id.String())

	return scanOptionalUser(row, "failed to find user by id")
}

func (r *userRepository) DeleteUser(ctx context.Context, id uuid.UUID) (*entity.User, bool, error) {
	row := r.db.QueryRowContext(ctx, `DELETE FROM users WHERE id = ? RETURNING id, username`, id.String())

	return scanOptionalUser(row, "failed to delete user")
}

// FindUsersByName matches with instr so the query is never read as a LIKE pattern.
func (r *userRepository) FindUsersByName(ctx context.Context, query string) ([]*entity.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username FROM users WHERE instr(`+lowerFunc+`(username), ?) > 0 ORDER BY rowid`,
		strings.ToLower(query),
	)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find users by name")
	}

	return collectUsers(rows)
}

func (r *userRepository) Close(_ context.Context) error {
	r.closeOnce.Do(func() {
		r.closeErr = r.db.Close()
	})

	return errors.WithStack(r.closeErr)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*entity.User, error) {
	var rawID, username string
	if err := row.Scan(&rawID, &username); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, errors.Wrapf(err, "stored user id %q is not a uuid", rawID)
	}

	return &entity.User{ID: id, Username: username}, nil
}

func scanOptionalUser(row *sql.Row, msg string) (*entity.User, bool, error) {
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, domainerrors.NewDatabaseExecuteError(err, msg)
	}

	return user, true, nil
}

func collectUsers(rows *sql.Rows) ([]*entity.User, error) {
	defer rows.Close()

	users := make([]*entity.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, domainerrors.NewDatabaseExecuteError(err, "failed to scan user")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to iterate users")
	}

	return users, nil
}
