package penguin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/penguins/internal/store"
)

//go:generate mockgen -source=repository.go -destination=../mocks/penguin/mock_repository.go -package=mock_penguin

// Repository defines operations for managing penguins.
// Lookups of ids that do not exist return nil without an error.
type Repository interface {
	List(ctx context.Context) ([]Penguin, error)
	GetByID(ctx context.Context, id string) (*Penguin, error)
	Create(ctx context.Context, in Input) (*Penguin, error)
	Update(ctx context.Context, id string, p Patch) (*Penguin, error)
	Delete(ctx context.Context, id string) error
	// Import inserts p with its own id unless a penguin with that id exists,
	// and reports whether it did.
	Import(ctx context.Context, p Penguin) (bool, error)
}

// DBRepository implements Repository on a Store.
type DBRepository struct {
	store *store.Store
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(s *store.Store) *DBRepository {
	return &DBRepository{store: s}
}

// List returns every penguin ordered by name, compared byte-wise, then id.
func (r *DBRepository) List(ctx context.Context) ([]Penguin, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s, id", columns, table, r.store.Dialect().OrderByBytes("name"))

	var rows []row
	err := r.store.WithConn(ctx, func(conn *sqlx.Conn) error {
		if err := conn.SelectContext(ctx, &rows, query); err != nil {
			return store.Classify(fmt.Errorf("conn.SelectContext(penguins) > %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	penguins := make([]Penguin, 0, len(rows))
	for _, rw := range rows {
		penguins = append(penguins, rw.toPenguin())
	}
	return penguins, nil
}

// GetByID returns the penguin with id, or nil.
func (r *DBRepository) GetByID(ctx context.Context, id string) (*Penguin, error) {
	id, ok := store.CanonicalID(id)
	if !ok {
		return nil, nil
	}

	var found *Penguin
	err := r.store.WithConn(ctx, func(conn *sqlx.Conn) error {
		var err error
		found, err = r.get(ctx, conn, id)
		return err
	})
	return found, err
}

// Create stores a new penguin and returns it as stored.
func (r *DBRepository) Create(ctx context.Context, in Input) (*Penguin, error) {
	p := Penguin{
		ID:          store.NewID(),
		Name:        in.Name,
		Nickname:    in.Nickname,
		BirthDate:   in.BirthDate,
		BirthPlace:  in.BirthPlace,
		Weight:      in.Weight,
		Height:      in.Height,
		Tag:         in.Tag,
		Group:       in.Group,
		Country:     in.Country,
		Personality: in.Personality,
		Note:        in.Note,
		Images:      in.Images,
		CreatedAt:   r.store.Now(),
	}

	var created *Penguin
	err := r.store.WithConn(ctx, func(conn *sqlx.Conn) error {
		var err error
		created, err = r.insert(ctx, conn, p)
		return err
	})
	return created, err
}

// Update writes the fields set in p and returns the penguin as stored, or nil
// when id does not exist. An empty patch reads without writing.
func (r *DBRepository) Update(ctx context.Context, id string, p Patch) (*Penguin, error) {
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

	var updated *Penguin
	err = r.store.WithConn(ctx, func(conn *sqlx.Conn) error {
		if dialect.Returning {
			var rw row
			err := conn.GetContext(ctx, &rw, r.store.Rebind(query+" RETURNING "+columns), args...)
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			if err != nil {
				return store.Classify(fmt.Errorf("conn.GetContext(update penguins) > %w", err))
			}
			stored := rw.toPenguin()
			updated = &stored
			return nil
		}

		if _, err := conn.ExecContext(ctx, r.store.Rebind(query), args...); err != nil {
			return store.Classify(fmt.Errorf("conn.ExecContext(update penguins) > %w", err))
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

// Delete removes the penguin with id. Deleting a missing penguin succeeds.
// Memories keep referencing the deleted id.
func (r *DBRepository) Delete(ctx context.Context, id string) error {
	id, ok := store.CanonicalID(id)
	if !ok {
		return nil
	}
	return r.store.WithConn(ctx, func(conn *sqlx.Conn) error {
		if _, err := conn.ExecContext(ctx, r.store.Rebind("DELETE FROM penguins WHERE id = ?"), id); err != nil {
			return store.Classify(fmt.Errorf("conn.ExecContext(delete penguins) > %w", err))
		}
		return nil
	})
}

// Import implements Repository.
func (r *DBRepository) Import(ctx context.Context, p Penguin) (bool, error) {
	id, ok := store.CanonicalID(p.ID)
	if !ok {
		return false, fmt.Errorf("%w: penguin id %q is not a UUID", store.ErrValidation, p.ID)
	}
	p.ID = id
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.store.Now()
	} else {
		p.CreatedAt = p.CreatedAt.UTC().Truncate(time.Microsecond)
	}

	var created bool
	err := r.store.WithConn(ctx, func(conn *sqlx.Conn) error {
		var count int
		if err := conn.GetContext(ctx, &count, r.store.Rebind("SELECT COUNT(*) FROM penguins WHERE id = ?"), id); err != nil {
			return store.Classify(fmt.Errorf("conn.GetContext(count penguins) > %w", err))
		}
		if count > 0 {
			return nil
		}
		if _, err := r.insert(ctx, conn, p); err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

func (r *DBRepository) get(ctx context.Context, conn *sqlx.Conn, id string) (*Penguin, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", columns, table)

	var rw row
	if err := conn.GetContext(ctx, &rw, r.store.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, store.Classify(fmt.Errorf("conn.GetContext(penguins) > %w", err))
	}
	p := rw.toPenguin()
	return &p, nil
}

func (r *DBRepository) insert(ctx context.Context, conn *sqlx.Conn, p Penguin) (*Penguin, error) {
	dialect := r.store.Dialect()
	args, err := insertValues(dialect, p)
	if err != nil {
		return nil, err
	}
	query := store.InsertStatement(table, columns)

	if dialect.Returning {
		var rw row
		if err := conn.GetContext(ctx, &rw, r.store.Rebind(query+" RETURNING "+columns), args...); err != nil {
			return nil, store.Classify(fmt.Errorf("conn.GetContext(insert penguins) > %w", err))
		}
		created := rw.toPenguin()
		return &created, nil
	}

	if _, err := conn.ExecContext(ctx, r.store.Rebind(query), args...); err != nil {
		return nil, store.Classify(fmt.Errorf("conn.ExecContext(insert penguins) > %w", err))
	}
	created, err := r.get(ctx, conn, p.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%w: penguin %s not readable after insert", store.ErrMapping, p.ID)
	}
	return created, nil
}
