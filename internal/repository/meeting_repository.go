package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lead-intake/internal/domain"
)

// MeetingRepository encapsulates meeting request persistence. Meetings are
// never deleted.
type MeetingRepository interface {
	Create(ctx context.Context, meeting *domain.Meeting) error
	GetByID(ctx context.Context, id string) (*domain.Meeting, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Meeting, int, error)
	Update(ctx context.Context, id string, update domain.MeetingUpdate) (*domain.Meeting, error)
}

const meetingColumns = `id, name, email, COALESCE(message, ''), status, COALESCE(meeting_link, ''), created_at, updated_at`

type meetingRepository struct {
	pool *pgxpool.Pool
}

// NewMeetingRepository returns a Postgres-backed implementation.
func NewMeetingRepository(pool *pgxpool.Pool) MeetingRepository {
	return &meetingRepository{pool: pool}
}

var _ MeetingRepository = (*meetingRepository)(nil)

func (r *meetingRepository) Create(ctx context.Context, meeting *domain.Meeting) error {
	const query = `
        INSERT INTO meetings (name, email, message, status, meeting_link)
        VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''))
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		meeting.Name,
		meeting.Email,
		meeting.Message,
		meeting.Status,
		meeting.MeetingLink,
	).Scan(&meeting.ID, &meeting.CreatedAt, &meeting.UpdatedAt)
	return mapPgError(err)
}

func (r *meetingRepository) GetByID(ctx context.Context, id string) (*domain.Meeting, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	meeting, err := scanMeeting(r.pool.QueryRow(ctx, `SELECT `+meetingColumns+` FROM meetings WHERE id=$1`, id))
	if err != nil {
		return nil, mapPgError(err)
	}
	return meeting, nil
}

func (r *meetingRepository) List(ctx context.Context, filter ListFilter) ([]domain.Meeting, int, error) {
	where := &whereBuilder{}
	where.eq("status", filter.Status)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM meetings`+where.sql(), where.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	suffix, args := where.page(filter.Pagination)
	query := `SELECT ` + meetingColumns + ` FROM meetings` + where.sql() +
		` ORDER BY created_at DESC, id DESC` + suffix
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Meeting
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *meeting)
	}
	return result, total, rows.Err()
}

func (r *meetingRepository) Update(ctx context.Context, id string, update domain.MeetingUpdate) (*domain.Meeting, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	args := []any{update.Status}
	sets := []string{"status=$1"}
	if update.MeetingLink != nil {
		args = append(args, *update.MeetingLink)
		sets = append(sets, fmt.Sprintf("meeting_link=NULLIF($%d, '')", len(args)))
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE meetings SET %s, updated_at=NOW() WHERE id=$%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), meetingColumns)

	meeting, err := scanMeeting(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapPgError(err)
	}
	return meeting, nil
}

func scanMeeting(row pgx.Row) (*domain.Meeting, error) {
	var meeting domain.Meeting
	if err := row.Scan(
		&meeting.ID,
		&meeting.Name,
		&meeting.Email,
		&meeting.Message,
		&meeting.Status,
		&meeting.MeetingLink,
		&meeting.CreatedAt,
		&meeting.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &meeting, nil
}
