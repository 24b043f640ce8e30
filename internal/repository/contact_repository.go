package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lead-intake/internal/domain"
)

// ContactRepository encapsulates contact persistence.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	GetByID(ctx context.Context, id string) (*domain.Contact, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Contact, int, error)
	Update(ctx context.Context, id string, update domain.ContactUpdate) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter ListFilter) (int, error)
	GroupByService(ctx context.Context) ([]domain.ServiceBreakdown, error)
}

const contactColumns = `id, name, email, COALESCE(phone, ''), COALESCE(company, ''), COALESCE(subject, ''),
               message, service, status, priority, COALESCE(notes, ''), created_at, updated_at`

type contactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository returns a Postgres-backed implementation.
func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

var _ ContactRepository = (*contactRepository)(nil)

func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	const query = `
        INSERT INTO contacts (name, email, phone, company, subject, message, service, status, priority, notes)
        VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9, NULLIF($10, ''))
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Company,
		contact.Subject,
		contact.Message,
		contact.Service,
		contact.Status,
		priorityArg(contact.Priority),
		contact.Notes,
	).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)
	return mapPgError(err)
}

func (r *contactRepository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id=$1`
	contact, err := scanContact(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapPgError(err)
	}
	return contact, nil
}

func (r *contactRepository) List(ctx context.Context, filter ListFilter) ([]domain.Contact, int, error) {
	where := contactWhere(filter)
	total, err := r.count(ctx, where)
	if err != nil {
		return nil, 0, err
	}

	suffix, args := where.page(filter.Pagination)
	query := `SELECT ` + contactColumns + ` FROM contacts` + where.sql() +
		` ORDER BY created_at DESC, id DESC` + suffix
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *contact)
	}
	return result, total, rows.Err()
}

func (r *contactRepository) Update(ctx context.Context, id string, update domain.ContactUpdate) (*domain.Contact, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	args := []any{update.Status}
	sets := []string{"status=$1"}
	if update.Priority != nil {
		args = append(args, string(*update.Priority))
		sets = append(sets, fmt.Sprintf("priority=$%d", len(args)))
	}
	if update.Notes != nil {
		args = append(args, *update.Notes)
		sets = append(sets, fmt.Sprintf("notes=$%d", len(args)))
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE contacts SET %s, updated_at=NOW() WHERE id=$%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), contactColumns)

	contact, err := scanContact(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapPgError(err)
	}
	return contact, nil
}

func (r *contactRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *contactRepository) Count(ctx context.Context, filter ListFilter) (int, error) {
	return r.count(ctx, contactWhere(filter))
}

func (r *contactRepository) count(ctx context.Context, where *whereBuilder) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`+where.sql(), where.args...).Scan(&total)
	return total, err
}

func (r *contactRepository) GroupByService(ctx context.Context) ([]domain.ServiceBreakdown, error) {
	return groupByService(ctx, r.pool, "contacts")
}

func contactWhere(filter ListFilter) *whereBuilder {
	w := &whereBuilder{}
	w.eq("status", filter.Status)
	w.eq("service", filter.Service)
	return w
}

func scanContact(row pgx.Row) (*domain.Contact, error) {
	var (
		contact  domain.Contact
		priority *string
	)
	if err := row.Scan(
		&contact.ID,
		&contact.Name,
		&contact.Email,
		&contact.Phone,
		&contact.Company,
		&contact.Subject,
		&contact.Message,
		&contact.Service,
		&contact.Status,
		&priority,
		&contact.Notes,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if priority != nil {
		p := domain.Priority(*priority)
		contact.Priority = &p
	}
	return &contact, nil
}

func priorityArg(p *domain.Priority) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}

// groupByService aggregates a submissions table by service, collecting the
// raw status values of each group in creation order.
func groupByService(ctx context.Context, pool *pgxpool.Pool, table string) ([]domain.ServiceBreakdown, error) {
	query := fmt.Sprintf(`
        SELECT service, COUNT(*), array_agg(status ORDER BY created_at)
        FROM %s GROUP BY service ORDER BY service`, table)
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ServiceBreakdown
	for rows.Next() {
		var b domain.ServiceBreakdown
		if err := rows.Scan(&b.Service, &b.Count, &b.StatusCounts); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}
