package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/lead-intake/internal/domain"
	"github.com/spec-kit/lead-intake/internal/repository"
)

func TestStatisticsService_Compute(t *testing.T) {
	ctx := context.Background()
	repos := repository.NewMemoryRepositories()
	contacts := NewContactService(ContactDependencies{ContactRepo: repos.Contacts, Notifier: &fakeNotifier{}})
	demos := NewDemoService(DemoDependencies{DemoRepo: repos.Demos, Notifier: &fakeNotifier{}})
	stats := NewStatisticsService(repos.Contacts, repos.Demos)

	empty, err := stats.Compute(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty.ContactStats)
	assert.NotNil(t, empty.DemoStats)
	assert.Equal(t, Totals{}, empty.Totals)

	for _, service := range []string{"logo-design", "logo-design", ""} {
		in := validContact()
		in.Service = service
		_, err := contacts.Submit(ctx, in)
		require.NoError(t, err)
	}
	page, err := contacts.List(ctx, ListQuery{Service: "logo-design", Limit: 1})
	require.NoError(t, err)
	_, err = contacts.Update(ctx, page.Items[0].ID, ContactUpdateInput{Status: "contacted"})
	require.NoError(t, err)

	booked, err := demos.Book(ctx, validDemoInput())
	require.NoError(t, err)
	_, err = demos.Book(ctx, validDemoInput())
	require.NoError(t, err)
	_, err = demos.Update(ctx, booked.Demo.ID, DemoUpdateInput{Status: "cancelled"})
	require.NoError(t, err)

	got, err := stats.Compute(ctx)
	require.NoError(t, err)
	assert.Equal(t, Totals{Contacts: 3, Demos: 2, PendingContacts: 2, PendingDemos: 1}, got.Totals)

	require.Len(t, got.ContactStats, 2)
	assert.Equal(t, "logo-design", got.ContactStats[0].Service)
	assert.Equal(t, 2, got.ContactStats[0].Count)
	assert.ElementsMatch(t, []string{"new", "contacted"}, got.ContactStats[0].StatusCounts)
	assert.Equal(t, domain.ServiceBreakdown{Service: "other", Count: 1, StatusCounts: []string{"new"}}, got.ContactStats[1])

	require.Len(t, got.DemoStats, 1)
	assert.Equal(t, 2, got.DemoStats[0].Count)
	assert.ElementsMatch(t, []string{"pending", "cancelled"}, got.DemoStats[0].StatusCounts)
}
