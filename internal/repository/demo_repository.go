package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lead-intake/internal/domain"
)

// DemoRepository encapsulates demo booking persistence.
type DemoRepository interface {
	Create(ctx context.Context, demo *domain.Demo) error
	GetByID(ctx context.Context, id string) (*domain.Demo, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Demo, int, error)
	Update(ctx context.Context, id string, update domain.DemoUpdate) (*domain.Demo, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter ListFilter) (int, error)
	GroupByService(ctx context.Context) ([]domain.ServiceBreakdown, error)
}

const demoColumns = `id, name, email, phone, COALESCE(company, ''), service, preferred_date, preferred_time,
               project_description, COALESCE(budget, ''), COALESCE(timeline, ''), status, COALESCE(notes, ''),
               created_at, updated_at`

type demoRepository struct {
	pool *pgxpool.Pool
}

// NewDemoRepository returns a Postgres-backed implementation.
func NewDemoRepository(pool *pgxpool.Pool) DemoRepository {
	return &demoRepository{pool: pool}
}

var _ DemoRepository = (*demoRepository)(nil)

func (r *demoRepository) Create(ctx context.Context, demo *domain.Demo) error {
	const query = `
        INSERT INTO demos (name, email, phone, company, service, preferred_date, preferred_time,
                           project_description, budget, timeline, status, notes)
        VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, NULLIF($9, ''), NULLIF($10, ''), $11, NULLIF($12, ''))
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		demo.Name,
		demo.Email,
		demo.Phone,
		demo.Company,
		demo.Service,
		demo.PreferredDate,
		demo.PreferredTime,
		demo.ProjectDescription,
		demo.Budget,
		demo.Timeline,
		demo.Status,
		demo.Notes,
	).Scan(&demo.ID, &demo.CreatedAt, &demo.UpdatedAt)
	return mapPgError(err)
}

func (r *demoRepository) GetByID(ctx context.Context, id string) (*domain.Demo, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	demo, err := scanDemo(r.pool.QueryRow(ctx, `SELECT `+demoColumns+` FROM demos WHERE id=$1`, id))
	if err != nil {
		return nil, mapPgError(err)
	}
	return demo, nil
}

func (r *demoRepository) List(ctx context.Context, filter ListFilter) ([]domain.Demo, int, error) {
	where := demoWhere(filter)
	total, err := r.count(ctx, where)
	if err != nil {
		return nil, 0, err
	}

	suffix, args := where.page(filter.Pagination)
	query := `SELECT ` + demoColumns + ` FROM demos` + where.sql() +
		` ORDER BY created_at DESC, id DESC` + suffix
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Demo
	for rows.Next() {
		demo, err := scanDemo(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *demo)
	}
	return result, total, rows.Err()
}

func (r *demoRepository) Update(ctx context.Context, id string, update domain.DemoUpdate) (*domain.Demo, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	args := []any{update.Status}
	sets := []string{"status=$1"}
	if update.Notes != nil {
		args = append(args, *update.Notes)
		sets = append(sets, fmt.Sprintf("notes=$%d", len(args)))
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE demos SET %s, updated_at=NOW() WHERE id=$%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), demoColumns)

	demo, err := scanDemo(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapPgError(err)
	}
	return demo, nil
}

func (r *demoRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM demos WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *demoRepository) Count(ctx context.Context, filter ListFilter) (int, error) {
	return r.count(ctx, demoWhere(filter))
}

func (r *demoRepository) count(ctx context.Context, where *whereBuilder) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM demos`+where.sql(), where.args...).Scan(&total)
	return total, err
}

func (r *demoRepository) GroupByService(ctx context.Context) ([]domain.ServiceBreakdown, error) {
	return groupByService(ctx, r.pool, "demos")
}

func demoWhere(filter ListFilter) *whereBuilder {
	w := &whereBuilder{}
	w.eq("status", filter.Status)
	w.eq("service", filter.Service)
	return w
}

func scanDemo(row pgx.Row) (*domain.Demo, error) {
	var demo domain.Demo
	if err := row.Scan(
		&demo.ID,
		&demo.Name,
		&demo.Email,
		&demo.Phone,
		&demo.Company,
		&demo.Service,
		&demo.PreferredDate,
		&demo.PreferredTime,
		&demo.ProjectDescription,
		&demo.Budget,
		&demo.Timeline,
		&demo.Status,
		&demo.Notes,
		&demo.CreatedAt,
		&demo.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &demo, nil
}
