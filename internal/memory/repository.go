package memory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/penguins/internal/store"
)

//go:generate mockgen -source=repository.go -destination=../mocks/memory/mock_repository.go -package=mock_memory

// Repository defines operations for managing memories.
// Lookups of ids that do not exist return nil without an error.
type Repository interface {
	List(ctx context.Context) ([]Memory, error)
	ListByPenguin(ctx context.Context, penguinID string) ([]Memory, error)
	GetByID(ctx context.Context, id string) (*Memory, error)
	Create(ctx context.Context, in Input) (*Memory, error)
	Update(ctx context.Context, id string, p Patch) (*Memory, error)
	Delete(ctx context.Context, id string) error
	Import(ctx context.Context, mem Memory) (bool, error)
}

// DBRepository implements Repository on a Store.
type DBRepository struct {
	store *store.Store
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(s *store.Store) *DBRepository {
	return &DBRepository{store: s}
}

// List returns every memory, newest date first.
func (r *DBRepository) List(ctx context.Context) ([]Memory, error) {
	return r.selectMemories(ctx, fmt.Sprintf("SELECT %s FROM %s ORDER BY date DESC, id", columns, table))
}

// ListByPenguin returns the memories whose penguin ids contain penguinID, newest date first.
func (r *DBRepository) ListByPenguin(ctx context.Context, penguinID string) ([]Memory, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY date DESC, id",
		columns, table, r.store.Dialect().Contains("penguin_ids"))
	return r.selectMemories(ctx, r.store.Rebind(query), penguinID)
}

func (r *DBRepository) selectMemories(ctx context.Context, query string, args ...any) ([]Memory, error) {
	var rows []row
	err := r.store.WithConn(ctx, func(conn *sqlx.Conn) error {
		if err := conn.SelectContext(ctx, &rows, query, args...); err != nil {
			return store.Classify(fmt.Errorf("conn.SelectContext(memories) > %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	memories := make([]Memory, 0, len(rows))
	for _, rw := range rows {
		memories = append(memories, rw.toMemory())
	}
	return memories, nil
}

// GetByID returns the memory with id, or nil.
func (r *DBRepository) GetByID(ctx context.Context, id string) (*Memory, error) {
	id, ok := store.CanonicalID(id)
	if !ok {
		return nil, nil
	}

	var found *Memory
	err := r.store.WithConn(ctx, func(conn *sqlx.Conn) error {
		var err error
		found, err = r.get(ctx, conn, id)
		return err
	})
	return found, err
}

// Create stores a new memory and returns it as stored.
func (r *DBRepository) Create(ctx context.Context, in Input) (*Memory, error) {
	m := Memory{
		ID:          store.NewID(),
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Date:        in.Date,
		ImageURL:    in.ImageURL,
		PenguinIDs:  in.PenguinIDs,
	}

	var created *Memory
	err := r.store.WithConn(ctx, func(conn *sqlx.Conn) error {
		var err error
		created, err = r.insert(ctx, conn, m)
		return err
	})
	return created, err
}

// Update writes the fields set in p and returns the memory as stored, or nil
// when id does not exist. An empty patch reads without writing.
func (r *DBRepository) Update(ctx context.Context, id string, p Patch) (*Memory, error) {
	id, ok := store.CanonicalID(id)
	if !ok {
		return nil, nil
	}
	dialect := r.store.Dialect()
	as, err := assignments(dialect, p)
	if err != nil {
		return nil, err
	}
	if len(as) == 0 {
		return r.GetByID(ctx, id)
	}
	query, args := store.UpdateStatement(table, as, id)

	var updated *Memory
	err = r.store.WithConn(ctx, func(conn *sqlx.Conn) error {
		if dialect.Returning {
			var rw row
			err := conn.GetContext(ctx, &rw, r.store.Rebind(query+" RETURNING "+columns), args...)
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			if err != nil {
				return store.Classify(fmt.Errorf("conn.GetContext(update memories) > %w", err))
			}
			stored := rw.toMemory()
			updated = &stored
			return nil
		}

		if _, err := conn.ExecContext(ctx, r.store.Rebind(query), args...); err != nil {
			return store.Classify(fmt.Errorf("conn.ExecContext(update memories) > %w", err))
		}
		var err error
		updated, err = r.get(ctx, conn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the memory with id. Deleting a missing memory succeeds.
func (r *DBRepository) Delete(ctx context.Context, id string) error {
	id, ok := store.CanonicalID(id)
	if !ok {
		return nil
	}
	return r.store.WithConn(ctx, func(conn *sqlx.Conn) error {
		if _, err := conn.ExecContext(ctx, r.store.Rebind("DELETE FROM memories WHERE id = ?"), id); err != nil {
			return store.Classify(fmt.Errorf("conn.ExecContext(delete memories) > %w", err))
		}
		return nil
	})
}

// Import inserts m with its own id unless a memory with that id exists,
// and reports whether it did.
func (r *DBRepository) Import(ctx context.Context, m Memory) (bool, error) {
	id, ok := store.CanonicalID(m.ID)
	if !ok {
		return false, fmt.Errorf("%w: memory id %q is not a UUID", store.ErrValidation, m.ID)
	}
	m.ID = id

	var created bool
	err := r.store.WithConn(ctx, func(conn *sqlx.Conn) error {
		var count int
		if err := conn.GetContext(ctx, &count, r.store.Rebind("SELECT COUNT(*) FROM memories WHERE id = ?"), id); err != nil {
			return store.Classify(fmt.Errorf("conn.GetContext(count memories) > %w", err))
		}
		if count > 0 {
			return nil
		}
		if _, err := r.insert(ctx, conn, m); err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

func (r *DBRepository) get(ctx context.Context, conn *sqlx.Conn, id string) (*Memory, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", columns, table)

	var rw row
	if err := conn.GetContext(ctx, &rw, r.store.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, store.Classify(fmt.Errorf("conn.GetContext(memories) > %w", err))
	}
	m := rw.toMemory()
	return &m, nil
}

func (r *DBRepository) insert(ctx context.Context, conn *sqlx.Conn, m Memory) (*Memory, error) {
	dialect := r.store.Dialect()
	args, err := insertValues(dialect, m, r.store.Now())
	if err != nil {
		return nil, err
	}
	query := store.InsertStatement(table, columns+", created_at")

	if dialect.Returning {
		var rw row
		if err := conn.GetContext(ctx, &rw, r.store.Rebind(query+" RETURNING "+columns), args...); err != nil {
			return nil, store.Classify(fmt.Errorf("conn.GetContext(insert memories) > %w", err))
		}
		created := rw.toMemory()
		return &created, nil
	}

	if _, err := conn.ExecContext(ctx, r.store.Rebind(query), args...); err != nil {
		return nil, store.Classify(fmt.Errorf("conn.ExecContext(insert memories) > %w", err))
	}
	created, err := r.get(ctx, conn, m.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%w: memory %s not readable after insert", store.ErrMapping, m.ID)
	}
	return created, nil
}
