package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/afrispot-api/internal/domain"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
)

var _ repository.ReviewRepository = (*ReviewRepo)(nil)

var reviewColumns = columns{
	"id":         {"r.id", kindUUID},
	"rating":     {"r.rating", kindInt},
	"approved":   {"r.approved", kindBool},
	"featured":   {"r.featured", kindBool},
	"created_at": {"r.created_at", kindTime},
	"updated_at": {"r.updated_at", kindTime},
}

// ReviewRepo tabla reviews sobre PostgreSQL (usable con pool o tx).
type ReviewRepo struct {
	q Querier
}

// NewReviewRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReviewRepository(q Querier) *ReviewRepo {
	return &ReviewRepo{q: q}
}

const reviewFields = `r.id, r.name, r.email, r.rating, r.comment, r.approved, r.featured, r.created_at, r.updated_at`

func scanReview(row pgx.Row) (*entity.Review, error) {
	var rv entity.Review
	if err := row.Scan(
		&rv.ID, &rv.Name, &rv.Email, &rv.Rating, &rv.Comment, &rv.Approved, &rv.Featured,
		&rv.CreatedAt, &rv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rv, nil
}

// Select lista reseñas con filtros y orden de la lista blanca.
func (r *ReviewRepo) Select(ctx context.Context, q repository.Query) ([]*entity.Review, error) {
	where, args, err := buildWhereOrder(reviewColumns, q, nil)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, "SELECT "+reviewFields+" FROM reviews r"+where, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()
	var list []*entity.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		list = append(list, rv)
	}
	return list, rows.Err()
}

// Insert persiste una reseña. Rating fuera de 1..5 → ErrInvalidInput (CHECK).
func (r *ReviewRepo) Insert(ctx context.Context, rv *entity.Review) (*entity.Review, error) {
	if rv.ID == "" {
		rv.ID = uuid.New().String()
	}
	row := r.q.QueryRow(ctx, `
		INSERT INTO reviews AS r (id, name, email, rating, comment, approved, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+reviewFields,
		rv.ID, rv.Name, rv.Email, rv.Rating, rv.Comment, rv.Approved, rv.Featured,
	)
	created, err := scanReview(row)
	if err != nil {
		return nil, mapWriteError("insert review", err)
	}
	return created, nil
}

// Update modera la reseña (approved/featured).
func (r *ReviewRepo) Update(ctx context.Context, id string, p entity.ReviewPatch) (*entity.Review, error) {
	set := newSetList()
	set.add("approved", p.Approved)
	set.add("featured", p.Featured)
	if set.empty() {
		rv, err := r.GetByID(ctx, id)
		if err == nil && rv == nil {
			err = fmt.Errorf("review %s: %w", id, domain.ErrNotFound)
		}
		return rv, err
	}
	sql, args := set.sql("reviews AS r", id, reviewFields, true)
	rv, err := scanReview(r.q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || pgCode(err) == "22P02" {
			return nil, fmt.Errorf("update review %s: %w", id, domain.ErrNotFound)
		}
		return nil, mapWriteError("update review", err)
	}
	return rv, nil
}

// Delete elimina la reseña.
func (r *ReviewRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "reviews", id)
}

// GetByID obtiene una reseña o (nil, nil).
func (r *ReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	rv, err := scanReview(r.q.QueryRow(ctx, "SELECT "+reviewFields+" FROM reviews r WHERE r.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || pgCode(err) == "22P02" {
			return nil, nil
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return rv, nil
}
