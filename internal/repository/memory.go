package repository

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/lead-intake/internal/domain"
)

// table is a mutex-guarded row set ordered by insertion sequence. Values
// cross the lock boundary through clone so callers never share pointer
// fields with a stored row.
type table[T any] struct {
	mu    sync.RWMutex
	rows  map[string]*row[T]
	seq   int64
	clone func(T) T
}

type row[T any] struct {
	seq     int64
	created time.Time
	value   T
}

// newTable builds an empty table. clone may be nil for values without
// pointer fields.
func newTable[T any](clone func(T) T) *table[T] {
	return &table[T]{rows: make(map[string]*row[T]), clone: clone}
}

func (t *table[T]) copy(value T) T {
	if t.clone == nil {
		return value
	}
	return t.clone(value)
}

func (t *table[T]) insert(id string, created time.Time, value T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.rows[id] = &row[T]{seq: t.seq, created: created, value: t.copy(value)}
}

func (t *table[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return t.copy(r.value), true
}

func (t *table[T]) update(id string, fn func(*T)) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	fn(&r.value)
	return t.copy(r.value), true
}

func (t *table[T]) delete(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// newestFirst returns matching rows ordered by creation time descending.
func (t *table[T]) newestFirst(match func(T) bool) []T {
	t.mu.RLock()
	matched := make([]row[T], 0, len(t.rows))
	for _, r := range t.rows {
		if match == nil || match(r.value) {
			matched = append(matched, row[T]{seq: r.seq, created: r.created, value: t.copy(r.value)})
		}
	}
	t.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].created.Equal(matched[j].created) {
			return matched[i].created.After(matched[j].created)
		}
		return matched[i].seq > matched[j].seq
	})
	out := make([]T, len(matched))
	for i, r := range matched {
		out[i] = r.value
	}
	return out
}

func (t *table[T]) page(match func(T) bool, p Pagination) ([]T, int) {
	all := t.newestFirst(match)
	total := len(all)
	n := p.Normalize()
	start := n.Offset()
	if start < 0 || start >= total {
		return nil, total
	}
	end := start + n.Limit
	if end < start || end > total {
		end = total
	}
	return all[start:end], total
}

func memoryNow() time.Time {
	return time.Now().UTC()
}

type memoryContactRepository struct {
	rows *table[domain.Contact]
}

// NewMemoryContactRepository returns an in-process ContactRepository.
func NewMemoryContactRepository() ContactRepository {
	return &memoryContactRepository{rows: newTable(cloneContact)}
}

func (r *memoryContactRepository) Create(_ context.Context, contact *domain.Contact) error {
	if !slices.Contains(domain.ContactStatuses, contact.Status) || !slices.Contains(domain.ContactServices, contact.Service) {
		return ErrConstraint
	}
	now := memoryNow()
	contact.ID = uuid.NewString()
	contact.CreatedAt = now
	contact.UpdatedAt = now
	r.rows.insert(contact.ID, now, *contact)
	return nil
}

func (r *memoryContactRepository) GetByID(_ context.Context, id string) (*domain.Contact, error) {
	contact, ok := r.rows.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &contact, nil
}

func (r *memoryContactRepository) List(_ context.Context, filter ListFilter) ([]domain.Contact, int, error) {
	items, total := r.rows.page(contactMatcher(filter), filter.Pagination)
	return items, total, nil
}

func (r *memoryContactRepository) Update(_ context.Context, id string, update domain.ContactUpdate) (*domain.Contact, error) {
	if !slices.Contains(domain.ContactStatuses, update.Status) {
		return nil, ErrConstraint
	}
	contact, ok := r.rows.update(id, func(c *domain.Contact) {
		update.Apply(c)
		c.UpdatedAt = memoryNow()
	})
	if !ok {
		return nil, ErrNotFound
	}
	return &contact, nil
}

func (r *memoryContactRepository) Delete(_ context.Context, id string) error {
	if !r.rows.delete(id) {
		return ErrNotFound
	}
	return nil
}

func (r *memoryContactRepository) Count(_ context.Context, filter ListFilter) (int, error) {
	return len(r.rows.newestFirst(contactMatcher(filter))), nil
}

func (r *memoryContactRepository) GroupByService(_ context.Context) ([]domain.ServiceBreakdown, error) {
	all := r.rows.newestFirst(nil)
	slices.Reverse(all)
	return groupRows(all, func(c domain.Contact) (string, string) {
		return string(c.Service), string(c.Status)
	}), nil
}

func cloneContact(c domain.Contact) domain.Contact {
	if c.Priority != nil {
		p := *c.Priority
		c.Priority = &p
	}
	return c
}

func contactMatcher(filter ListFilter) func(domain.Contact) bool {
	return func(c domain.Contact) bool {
		return (filter.Status == "" || string(c.Status) == filter.Status) &&
			(filter.Service == "" || string(c.Service) == filter.Service)
	}
}

type memoryDemoRepository struct {
	rows *table[domain.Demo]
}

// NewMemoryDemoRepository returns an in-process DemoRepository.
func NewMemoryDemoRepository() DemoRepository {
	return &memoryDemoRepository{rows: newTable[domain.Demo](nil)}
}

func (r *memoryDemoRepository) Create(_ context.Context, demo *domain.Demo) error {
	if !slices.Contains(domain.BookingStatuses, demo.Status) || !slices.Contains(domain.BookableServices, demo.Service) {
		return ErrConstraint
	}
	now := memoryNow()
	demo.ID = uuid.NewString()
	demo.CreatedAt = now
	demo.UpdatedAt = now
	r.rows.insert(demo.ID, now, *demo)
	return nil
}

func (r *memoryDemoRepository) GetByID(_ context.Context, id string) (*domain.Demo, error) {
	demo, ok := r.rows.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &demo, nil
}

func (r *memoryDemoRepository) List(_ context.Context, filter ListFilter) ([]domain.Demo, int, error) {
	items, total := r.rows.page(demoMatcher(filter), filter.Pagination)
	return items, total, nil
}

func (r *memoryDemoRepository) Update(_ context.Context, id string, update domain.DemoUpdate) (*domain.Demo, error) {
	if !slices.Contains(domain.BookingStatuses, update.Status) {
		return nil, ErrConstraint
	}
	demo, ok := r.rows.update(id, func(d *domain.Demo) {
		update.Apply(d)
		d.UpdatedAt = memoryNow()
	})
	if !ok {
		return nil, ErrNotFound
	}
	return &demo, nil
}

func (r *memoryDemoRepository) Delete(_ context.Context, id string) error {
	if !r.rows.delete(id) {
		return ErrNotFound
	}
	return nil
}

func (r *memoryDemoRepository) Count(_ context.Context, filter ListFilter) (int, error) {
	return len(r.rows.newestFirst(demoMatcher(filter))), nil
}

func (r *memoryDemoRepository) GroupByService(_ context.Context) ([]domain.ServiceBreakdown, error) {
	all := r.rows.newestFirst(nil)
	slices.Reverse(all)
	return groupRows(all, func(d domain.Demo) (string, string) {
		return string(d.Service), string(d.Status)
	}), nil
}

func demoMatcher(filter ListFilter) func(domain.Demo) bool {
	return func(d domain.Demo) bool {
		return (filter.Status == "" || string(d.Status) == filter.Status) &&
			(filter.Service == "" || string(d.Service) == filter.Service)
	}
}

type memoryMeetingRepository struct {
	rows *table[domain.Meeting]
}

// NewMemoryMeetingRepository returns an in-process MeetingRepository.
func NewMemoryMeetingRepository() MeetingRepository {
	return &memoryMeetingRepository{rows: newTable[domain.Meeting](nil)}
}

func (r *memoryMeetingRepository) Create(_ context.Context, meeting *domain.Meeting) error {
	if !slices.Contains(domain.BookingStatuses, meeting.Status) {
		return ErrConstraint
	}
	now := memoryNow()
	meeting.ID = uuid.NewString()
	meeting.CreatedAt = now
	meeting.UpdatedAt = now
	r.rows.insert(meeting.ID, now, *meeting)
	return nil
}

func (r *memoryMeetingRepository) GetByID(_ context.Context, id string) (*domain.Meeting, error) {
	meeting, ok := r.rows.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &meeting, nil
}

func (r *memoryMeetingRepository) List(_ context.Context, filter ListFilter) ([]domain.Meeting, int, error) {
	items, total := r.rows.page(func(m domain.Meeting) bool {
		return filter.Status == "" || string(m.Status) == filter.Status
	}, filter.Pagination)
	return items, total, nil
}

func (r *memoryMeetingRepository) Update(_ context.Context, id string, update domain.MeetingUpdate) (*domain.Meeting, error) {
	if !slices.Contains(domain.BookingStatuses, update.Status) {
		return nil, ErrConstraint
	}
	meeting, ok := r.rows.update(id, func(m *domain.Meeting) {
		update.Apply(m)
		m.UpdatedAt = memoryNow()
	})
	if !ok {
		return nil, ErrNotFound
	}
	return &meeting, nil
}

type memoryUserRepository struct {
	mu   sync.Mutex
	rows *table[domain.User]
}

// NewMemoryUserRepository returns an in-process UserRepository.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{rows: newTable[domain.User](nil)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(user.Email, "") {
		return ErrDuplicate
	}
	now := memoryNow()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.rows.insert(user.ID, now, *user)
	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, id string, update domain.UserUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if update.Email != nil && r.emailTaken(*update.Email, id) {
		return nil, ErrDuplicate
	}
	user, ok := r.rows.update(id, func(u *domain.User) {
		update.Apply(u)
		u.UpdatedAt = memoryNow()
	})
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.rows.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.rows.newestFirst(nil) {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepository) List(_ context.Context, filter UserFilter) ([]domain.User, int, error) {
	items, total := r.rows.page(func(u domain.User) bool {
		return filter.Role == "" || string(u.Role) == filter.Role
	}, filter.Pagination)
	return items, total, nil
}

func (r *memoryUserRepository) Delete(_ context.Context, id string) error {
	if !r.rows.delete(id) {
		return ErrNotFound
	}
	return nil
}

// emailTaken must be called with r.mu held.
func (r *memoryUserRepository) emailTaken(email, exceptID string) bool {
	for _, u := range r.rows.newestFirst(nil) {
		if u.ID != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

// groupRows groups records by key preserving first-seen key order, then sorts by key.
func groupRows[T any](records []T, keyOf func(T) (string, string)) []domain.ServiceBreakdown {
	index := map[string]int{}
	var out []domain.ServiceBreakdown
	for _, rec := range records {
		key, status := keyOf(rec)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, domain.ServiceBreakdown{Service: key})
		}
		out[i].Count++
		out[i].StatusCounts = append(out[i].StatusCounts, status)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Service < out[j].Service })
	return out
}
