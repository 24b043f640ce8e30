package repository

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories bundles the stores the services depend on.
type Repositories struct {
	Contacts ContactRepository
	Demos    DemoRepository
	Meetings MeetingRepository
	Users    UserRepository
}

// NewPostgresRepositories wires every store to the shared pool.
func NewPostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Contacts: NewContactRepository(pool),
		Demos:    NewDemoRepository(pool),
		Meetings: NewMeetingRepository(pool),
		Users:    NewUserRepository(pool),
	}
}

// NewMemoryRepositories returns process-local stores, used when no
// database is configured and in tests.
func NewMemoryRepositories() Repositories {
	return Repositories{
		Contacts: NewMemoryContactRepository(),
		Demos:    NewMemoryDemoRepository(),
		Meetings: NewMemoryMeetingRepository(),
		Users:    NewMemoryUserRepository(),
	}
}
