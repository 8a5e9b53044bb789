package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"global-healthops/nexus/internal/constants"
	"global-healthops/nexus/internal/models/dtos"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateInput is a create payload that knows how to build its row.
type CreateInput[T any] interface {
	ToModel() *T
}

// UpdateInput is a partial update payload. Changes returns only the columns
// that were present in the input.
type UpdateInput interface {
	Changes() map[string]interface{}
}

// Pagination bounds every list query.
type Pagination struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultPagination matches the API defaults.
var DefaultPagination = Pagination{DefaultLimit: 100, MaxLimit: 1000}

// Resolve validates skip/limit. A zero limit means the default; a limit above
// MaxLimit is capped.
func (p Pagination) Resolve(skip, limit int) (int, int, error) {
	if skip < 0 {
		return 0, 0, &dtos.ValidationError{Field: "skip", Message: "must be greater than or equal to 0"}
	}
	if limit < 0 {
		return 0, 0, &dtos.ValidationError{Field: "limit", Message: "must be greater than or equal to 0"}
	}
	if limit == 0 {
		limit = p.DefaultLimit
	}
	if p.MaxLimit > 0 && limit > p.MaxLimit {
		limit = p.MaxLimit
	}
	return skip, limit, nil
}

// Observer receives the duration and outcome of every repository operation.
type Observer func(entity, operation string, seconds float64, err error)

// CascadeFunc deletes the children of the row with the given id. It runs in
// the same transaction as the parent delete.
type CascadeFunc func(tx *gorm.DB, id uint) error

type preload struct {
	association string
	order       string
}

type repoOptions struct {
	pagination Pagination
	preloads   []preload
	order      string
	cascade    CascadeFunc
	observe    Observer
}

type Option func(*repoOptions)

func WithPagination(p Pagination) Option {
	return func(o *repoOptions) { o.pagination = p }
}

// WithPreload eagerly loads the named associations on every read.
func WithPreload(associations ...string) Option {
	return func(o *repoOptions) {
		for _, assoc := range associations {
			o.preloads = append(o.preloads, preload{association: assoc})
		}
	}
}

// WithOrderedPreload eagerly loads association on every read, sorted by order.
func WithOrderedPreload(association, order string) Option {
	return func(o *repoOptions) {
		o.preloads = append(o.preloads, preload{association: association, order: order})
	}
}

func WithOrder(order string) Option {
	return func(o *repoOptions) { o.order = order }
}

func WithCascade(fn CascadeFunc) Option {
	return func(o *repoOptions) { o.cascade = fn }
}

func WithObserver(fn Observer) Option {
	return func(o *repoOptions) { o.observe = fn }
}

// Repository provides create/get/list/update/remove for one GORM model T,
// created from C and partially updated from U.
type Repository[T any, C CreateInput[T], U UpdateInput] struct {
	db     *gorm.DB
	entity string
	opts   repoOptions
}

// NewRepository creates a generic GORM repository for one entity kind
func NewRepository[T any, C CreateInput[T], U UpdateInput](db *gorm.DB, entity string, opts ...Option) *Repository[T, C, U] {
	o := repoOptions{
		pagination: DefaultPagination,
		order:      "id ASC",
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Repository[T, C, U]{db: db, entity: entity, opts: o}
}

// Pagination returns the list policy used by this repository.
func (r *Repository[T, C, U]) Pagination() Pagination {
	return r.opts.pagination
}

func (r *Repository[T, C, U]) read(db *gorm.DB) *gorm.DB {
	for _, p := range r.opts.preloads {
		if p.order == "" {
			db = db.Preload(p.association)
			continue
		}
		order := p.order
		db = db.Preload(p.association, func(tx *gorm.DB) *gorm.DB {
			return tx.Order(order)
		})
	}
	return db
}

// track starts timing an operation; call the returned func with the named
// error result when the operation finishes.
func (r *Repository[T, C, U]) track(operation string) func(*error) {
	start := time.Now()
	return func(err *error) {
		if r.opts.observe != nil {
			r.opts.observe(r.entity, operation, time.Since(start).Seconds(), *err)
		}
	}
}

// Get retrieves a row by id. A missing row returns (nil, nil).
func (r *Repository[T, C, U]) Get(ctx context.Context, id uint) (_ *T, err error) {
	defer r.track("get")(&err)

	var out T
	err = r.read(r.db.WithContext(ctx)).First(&out, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", r.entity, err)
	}

	return &out, nil
}

// GetMulti lists rows in insertion order.
func (r *Repository[T, C, U]) GetMulti(ctx context.Context, skip, limit int) (_ []T, err error) {
	defer r.track("list")(&err)

	skip, limit, err = r.opts.pagination.Resolve(skip, limit)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0)
	err = r.read(r.db.WithContext(ctx)).
		Order(r.opts.order).
		Offset(skip).
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.entity, err)
	}

	return out, nil
}

// Create inserts the row built from in and returns it with its generated id
// and timestamps.
func (r *Repository[T, C, U]) Create(ctx context.Context, in C) (*T, error) {
	return r.Insert(ctx, in.ToModel())
}

// Insert persists an already built model.
func (r *Repository[T, C, U]) Insert(ctx context.Context, model *T) (_ *T, err error) {
	defer r.track("create")(&err)

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
			return translate(err)
		}
		return r.read(tx).First(model).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", r.entity, err)
	}

	return model, nil
}

// Update applies only the fields present in in and returns the refreshed row.
func (r *Repository[T, C, U]) Update(ctx context.Context, existing *T, in U) (_ *T, err error) {
	defer r.track("update")(&err)

	changes := in.Changes()
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(changes) > 0 {
			if err := tx.Model(existing).Omit(clause.Associations).Updates(changes).Error; err != nil {
				return translate(err)
			}
		}
		return r.read(tx).First(existing).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", r.entity, err)
	}

	return existing, nil
}

// Remove deletes a row by id together with its children and returns its last
// known value.
func (r *Repository[T, C, U]) Remove(ctx context.Context, id uint) (_ *T, err error) {
	defer r.track("delete")(&err)

	var out T
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.read(tx).First(&out, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return constants.ErrNotFound
			}
			return err
		}
		if r.opts.cascade != nil {
			if err := r.opts.cascade(tx, id); err != nil {
				return err
			}
		}
		return tx.Delete(&out).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete %s %d: %w", r.entity, id, err)
	}

	return &out, nil
}

// translate maps storage uniqueness violations to constants.ErrConflict.
func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", constants.ErrConflict, err)
	}
	return err
}
