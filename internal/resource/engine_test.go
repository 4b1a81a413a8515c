package resource_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/hilthontt/powersite/internal/catalog"
	"github.com/hilthontt/powersite/internal/domain"
	"github.com/hilthontt/powersite/internal/infrastructure/persistence/dbtest"
	"github.com/hilthontt/powersite/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	staff  = domain.Caller{Subject: "admin", Privileged: true}
	public = domain.Anonymous
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	db           *gorm.DB
	clock        *clock
	tenders      *resource.Engine[domain.Tender, *domain.Tender]
	news         *resource.Engine[domain.News, *domain.News]
	careers      *resource.Engine[domain.Career, *domain.Career]
	applications *resource.Engine[domain.JobApplication, *domain.JobApplication]
	contact      *resource.Engine[domain.ContactMessage, *domain.ContactMessage]
}

func setup(t *testing.T, opts ...resource.Option) *fixture {
	t.Helper()

	f := &fixture{db: dbtest.Open(t), clock: newClock()}
	opts = append([]resource.Option{resource.WithClock(f.clock.Now), resource.WithLogger(dbtest.Logger())}, opts...)

	var err error
	f.tenders, err = resource.New[domain.Tender](f.db, catalog.Tenders(), opts...)
	require.NoError(t, err)
	f.news, err = resource.New[domain.News](f.db, catalog.News(), opts...)
	require.NoError(t, err)
	f.careers, err = resource.New[domain.Career](f.db, catalog.Careers(), opts...)
	require.NoError(t, err)
	f.applications, err = resource.New[domain.JobApplication](f.db, catalog.Applications(), opts...)
	require.NoError(t, err)
	f.contact, err = resource.New[domain.ContactMessage](f.db, catalog.ContactMessages(), opts...)
	require.NoError(t, err)

	return f
}

func tenderJSON(ref string, deadline time.Time) []byte {
	return fmt.Appendf(nil, `{
		"title": "Tender %[1]s",
		"description": "Supply of goods",
		"reference_number": %[1]q,
		"deadline": %[2]q,
		"category": "goods"
	}`, ref, deadline.Format(time.RFC3339))
}

func (f *fixture) createTender(t *testing.T, ref string, deadline time.Time) *domain.Tender {
	t.Helper()
	rec, err := f.tenders.Create(context.Background(), staff, tenderJSON(ref, deadline))
	require.NoError(t, err)
	return rec
}

func (f *fixture) createCareer(t *testing.T, title string) *domain.Career {
	t.Helper()
	rec, err := f.careers.Create(context.Background(), staff, fmt.Appendf(nil, `{
		"title": %q,
		"department": "Operations",
		"description": "Run the plant",
		"requirements": "Engineering degree",
		"job_type": "full_time",
		"deadline": "2026-12-31"
	}`, title))
	require.NoError(t, err)
	return rec
}

func applicationJSON(careerID uint) []byte {
	return fmt.Appendf(nil, `{
		"career": %d,
		"name": "Rahim Uddin",
		"email": "rahim@example.com",
		"phone": "+8801700000000",
		"experience_years": 4
	}`, careerID)
}

func ids[T any, PT interface {
	*T
	domain.Record
}](records []T) []uint {
	out := make([]uint, len(records))
	for i := range records {
		out[i] = PT(&records[i]).RecordBase().ID
	}
	return out
}

func requireFieldError(t *testing.T, err error, field, msg string) {
	t.Helper()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields[field], msg, "fields: %v", verr.Fields)
}

func TestPublicListNeverReturnsInactive(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	deadline := f.clock.Now().AddDate(0, 1, 0)

	a := f.createTender(t, "T-001", deadline)
	f.createTender(t, "T-002", deadline)
	f.createTender(t, "T-003", deadline)

	_, err := f.tenders.Update(ctx, staff, a.ID, []byte(`{"is_active": false}`))
	require.NoError(t, err)

	page, err := f.tenders.List(ctx, public, resource.Query{Page: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Count)
	for _, rec := range page.Results {
		assert.True(t, rec.IsActive)
		assert.NotEqual(t, a.ID, rec.ID)
	}

	page, err = f.tenders.List(ctx, staff, resource.Query{Page: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Count)
}

func TestCreateDuplicateUniqueFieldConflicts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	deadline := f.clock.Now().AddDate(0, 1, 0)

	first := f.createTender(t, "T-001", deadline)

	_, err := f.tenders.Create(ctx, staff, tenderJSON("T-001", deadline))
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "reference_number", conflict.Field)
	assert.Equal(t, "tender with this reference number already exists", conflict.Error())

	got, err := f.tenders.Get(ctx, public, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "T-001", got.ReferenceNumber)
}

func TestConcurrentCreatesWithSameUniqueValue(t *testing.T) {
	f := setup(t)
	deadline := f.clock.Now().AddDate(0, 1, 0)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.tenders.Create(context.Background(), staff, tenderJSON("T-RACE", deadline))
		}()
	}
	wg.Wait()

	succeeded, conflicted := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
}

func TestUpdateChangesOnlySuppliedField(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	created := f.clock.Now()

	before := f.createTender(t, "T-001", created.AddDate(0, 1, 0))

	f.clock.Advance(time.Hour)
	after, err := f.tenders.Update(ctx, staff, before.ID, []byte(`{"title": "Renamed"}`))
	require.NoError(t, err)

	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, "Renamed", after.Title)
	assert.Equal(t, before.Description, after.Description)
	assert.Equal(t, before.ReferenceNumber, after.ReferenceNumber)
	assert.Equal(t, before.Category, after.Category)
	assert.True(t, before.Deadline.Equal(after.Deadline))
	assert.True(t, after.CreatedAt.Equal(created), "created_at moved to %s", after.CreatedAt)
	assert.True(t, after.UpdatedAt.Equal(created.Add(time.Hour)), "updated_at is %s", after.UpdatedAt)
}

func TestUpdateRejectsReadOnlyFields(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	rec := f.createTender(t, "T-001", f.clock.Now().AddDate(0, 1, 0))

	for _, body := range []string{`{"id": 99}`, `{"created_at": "2020-01-01T00:00:00Z"}`, `{"updated_at": "2020-01-01T00:00:00Z"}`} {
		_, err := f.tenders.Update(ctx, staff, rec.ID, []byte(body))
		require.Error(t, err, body)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}

	_, err := f.tenders.Update(ctx, staff, rec.ID, []byte(`{"id": 99}`))
	requireFieldError(t, err, "id", "This field is read-only.")

	_, err = f.tenders.Update(ctx, staff, rec.ID, []byte(`{"colour": "red"}`))
	requireFieldError(t, err, "colour", "Unknown field.")

	_, err = f.tenders.Update(ctx, staff, rec.ID, []byte(`{"title": null}`))
	requireFieldError(t, err, "title", "This field may not be null.")
}

func TestUpdateMissingRecord(t *testing.T) {
	f := setup(t)
	_, err := f.tenders.Update(context.Background(), staff, 404, []byte(`{"title": "x"}`))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.tenders.Create(ctx, staff, []byte(`{}`))
	requireFieldError(t, err, "title", "This field is required.")
	requireFieldError(t, err, "reference_number", "This field is required.")

	_, err = f.tenders.Create(ctx, staff, []byte(`{"title": 5}`))
	requireFieldError(t, err, "title", "Not a valid string.")

	_, err = f.tenders.Create(ctx, staff, []byte(`[1, 2]`))
	requireFieldError(t, err, "non_field_errors", "Invalid data. Expected a dictionary, but got array.")

	var count int64
	require.NoError(t, f.db.Model(&domain.Tender{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeletingCareerCascadesToApplications(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	career := f.createCareer(t, "Plant Engineer")
	other := f.createCareer(t, "Chemist")

	app, err := f.applications.Create(ctx, public, applicationJSON(career.ID))
	require.NoError(t, err)
	_, err = f.applications.Create(ctx, public, applicationJSON(other.ID))
	require.NoError(t, err)

	got, err := f.applications.Get(ctx, staff, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plant Engineer", got.CareerTitle)

	require.NoError(t, f.careers.Delete(ctx, staff, career.ID))

	_, err = f.applications.Get(ctx, staff, app.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	remaining, err := f.applications.Count(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, remaining)
}

func TestBulkDeactivateHidesRecordsFromPublicList(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	deadline := f.clock.Now().AddDate(0, 1, 0)

	a := f.createTender(t, "T-001", deadline)
	b := f.createTender(t, "T-002", deadline)
	c := f.createTender(t, "T-003", deadline)

	count, err := f.tenders.BulkAction(ctx, staff, "deactivate", []uint{a.ID, b.ID, c.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	page, err := f.tenders.List(ctx, public, resource.Query{Page: 1})
	require.NoError(t, err)
	assert.Zero(t, page.Count)
	assert.Empty(t, page.Results)

	count, err = f.tenders.BulkAction(ctx, staff, "activate", []uint{a.ID, 9999})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestBulkActionErrors(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	rec := f.createTender(t, "T-001", f.clock.Now().AddDate(0, 1, 0))

	_, err := f.tenders.BulkAction(ctx, staff, "explode", []uint{rec.ID})
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, `Unknown action "explode".`, notFound.Detail)

	_, err = f.tenders.BulkAction(ctx, staff, "deactivate", nil)
	requireFieldError(t, err, "ids", "This list may not be empty.")

	_, err = f.tenders.BulkAction(ctx, public, "deactivate", []uint{rec.ID})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	count, err := f.tenders.BulkAction(ctx, staff, "delete", []uint{rec.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	_, err = f.tenders.Get(ctx, staff, rec.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTenderLifecycle(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	now := f.clock.Now()

	later := f.createTender(t, "T-001", now.AddDate(0, 0, 30))
	sooner := f.createTender(t, "T-000", now.AddDate(0, 0, 10))

	page, err := f.tenders.List(ctx, public, resource.Query{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []uint{later.ID, sooner.ID}, ids(page.Results))

	count, err := f.tenders.BulkAction(ctx, staff, "deactivate", []uint{later.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	page, err = f.tenders.List(ctx, public, resource.Query{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []uint{sooner.ID}, ids(page.Results))

	got, err := f.tenders.Get(ctx, staff, later.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	_, err = f.tenders.Get(ctx, public, later.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplicationForMissingCareerIsRejected(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.applications.Create(ctx, public, applicationJSON(999))
	requireFieldError(t, err, "career", `Invalid pk "999" - object does not exist.`)

	count, err := f.applications.Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPublicCannotSetServerControlledFields(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	body := []byte(`{"name": "Karim", "email": "karim@example.com", "subject": "Hello", "message": "Hi", "is_read": true}`)

	_, err := f.contact.Create(ctx, public, body)
	requireFieldError(t, err, "is_read", "This field is set by the server.")

	rec, err := f.contact.Create(ctx, staff, body)
	require.NoError(t, err)
	assert.True(t, rec.IsRead)

	rec, err = f.contact.Create(ctx, public, []byte(`{"name": "Karim", "email": "karim@example.com", "subject": "Hello", "message": "Hi"}`))
	require.NoError(t, err)
	assert.False(t, rec.IsRead)
	assert.True(t, rec.IsActive)
}

func TestAccessTables(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.tenders.Create(ctx, public, tenderJSON("T-001", f.clock.Now()))
	var perm *domain.PermissionError
	require.ErrorAs(t, err, &perm)
	assert.Equal(t, "create", perm.Operation)

	_, err = f.contact.List(ctx, public, resource.Query{Page: 1})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	_, err = f.contact.Get(ctx, public, 1)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	err = f.tenders.Delete(ctx, public, 1)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	err = f.tenders.Delete(ctx, staff, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	d := f.contact.Descriptor()
	assert.Equal(t, "public", d.Access[resource.OpCreate])
	assert.Equal(t, "staff", d.Access[resource.OpList])
	assert.Contains(t, d.ReadOnly, "created_at")
}

func TestListFiltersSearchAndOrdering(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	now := f.clock.Now()

	goods := f.createTender(t, "T-001", now.AddDate(0, 0, 5))
	works, err := f.tenders.Create(ctx, staff, []byte(fmt.Sprintf(`{
		"title": "Ash Pond Extension",
		"description": "Civil works",
		"reference_number": "T-002",
		"deadline": %q,
		"category": "works"
	}`, now.AddDate(0, 0, 20).Format(time.RFC3339))))
	require.NoError(t, err)

	page, err := f.tenders.List(ctx, public, resource.Query{Page: 1, Filters: map[string]string{"category": "works"}})
	require.NoError(t, err)
	assert.Equal(t, []uint{works.ID}, ids(page.Results))

	page, err = f.tenders.List(ctx, public, resource.Query{Page: 1, Search: "ASH POND"})
	require.NoError(t, err)
	assert.Equal(t, []uint{works.ID}, ids(page.Results))

	page, err = f.tenders.List(ctx, public, resource.Query{Page: 1, Ordering: []string{"deadline"}})
	require.NoError(t, err)
	assert.Equal(t, []uint{goods.ID, works.ID}, ids(page.Results))

	_, err = f.tenders.List(ctx, public, resource.Query{Page: 1, Filters: map[string]string{"description": "x"}})
	requireFieldError(t, err, "description", "Filtering on this field is not supported.")

	_, err = f.tenders.List(ctx, public, resource.Query{Page: 1, Ordering: []string{"-nope"}})
	requireFieldError(t, err, "ordering", `Cannot order by "nope".`)

	_, err = f.tenders.List(ctx, public, resource.Query{Page: 1, Filters: map[string]string{"is_active": "maybe"}})
	requireFieldError(t, err, "is_active", "Enter a valid value.")
}

func TestListPagination(t *testing.T) {
	f := setup(t, resource.WithPageSize(2))
	ctx := context.Background()
	now := f.clock.Now()

	for i := range 3 {
		f.createTender(t, fmt.Sprintf("T-%03d", i), now.AddDate(0, 0, 10-i))
	}

	first, err := f.tenders.List(ctx, public, resource.Query{Page: 1})
	require.NoError(t, err)
	assert.Len(t, first.Results, 2)
	assert.True(t, first.HasNext())
	assert.False(t, first.HasPrevious())

	last, err := f.tenders.List(ctx, public, resource.Query{Page: -1})
	require.NoError(t, err)
	assert.Equal(t, 2, last.Number)
	assert.Len(t, last.Results, 1)
	assert.False(t, last.HasNext())
	assert.True(t, last.HasPrevious())

	_, err = f.tenders.List(ctx, public, resource.Query{Page: 3})
	assert.ErrorIs(t, err, resource.ErrInvalidPage)

	empty := setup(t)
	page, err := empty.tenders.List(ctx, public, resource.Query{Page: 1})
	require.NoError(t, err)
	assert.Zero(t, page.Count)
	assert.NotNil(t, page.Results)
}

func TestFeaturedNamedQuery(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	var newest uint
	for i := range 7 {
		f.clock.Advance(time.Minute)
		rec, err := f.news.Create(ctx, staff, fmt.Appendf(nil, `{
			"title": "Story %d",
			"content": "Body",
			"summary": "Summary",
			"is_featured": %t
		}`, i, i != 0))
		require.NoError(t, err)
		newest = rec.ID
	}
	_, err := f.news.Update(ctx, staff, newest, []byte(`{"is_active": false}`))
	require.NoError(t, err)

	results, err := f.news.NamedQuery(ctx, public, "featured", url.Values{})
	require.NoError(t, err)
	require.Len(t, results, 5)
	for i, rec := range results {
		assert.True(t, rec.IsFeatured)
		assert.True(t, rec.IsActive)
		assert.NotEqual(t, newest, rec.ID)
		if i > 0 {
			assert.False(t, rec.CreatedAt.After(results[i-1].CreatedAt))
		}
	}

	_, err = f.news.NamedQuery(ctx, public, "trending", url.Values{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestByCareerNamedQuery(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	career := f.createCareer(t, "Plant Engineer")
	other := f.createCareer(t, "Chemist")
	for _, id := range []uint{career.ID, career.ID, other.ID} {
		_, err := f.applications.Create(ctx, public, applicationJSON(id))
		require.NoError(t, err)
	}

	params := url.Values{"career_id": {fmt.Sprint(career.ID)}}

	_, err := f.applications.NamedQuery(ctx, public, "by_career", params)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	_, err = f.applications.NamedQuery(ctx, staff, "by_career", url.Values{})
	requireFieldError(t, err, "career_id", "This field is required.")

	results, err := f.applications.NamedQuery(ctx, staff, "by_career", params)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, rec := range results {
		assert.Equal(t, career.ID, rec.CareerID)
		assert.Equal(t, "Plant Engineer", rec.CareerTitle)
	}

	count, err := f.applications.BulkAction(ctx, staff, "mark_reviewed", ids(results))
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	pending, err := f.applications.Count(ctx, map[string]any{"is_reviewed": false})
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending)
}
