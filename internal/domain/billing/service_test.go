package billing

import (
	"context"
	"testing"
	"time"

	"vet-records/internal/platform/apperr"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRepo simula el join: pet_name sale de petNames.
type testRepo struct {
	byID     map[int64]Entry
	nextID   int64
	petNames map[int64]string
}

func (r *testRepo) Create(_ context.Context, e Entry) (Entry, error) {
	r.nextID++
	e.ID = r.nextID
	r.byID[e.ID] = e
	return e, nil
}

func (r *testRepo) GetByID(_ context.Context, id int64) (Entry, error) {
	e, ok := r.byID[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	e.PetName = r.petNames[e.PetID]
	return e, nil
}

func (r *testRepo) ListByUser(_ context.Context, userID int64) ([]Entry, error) {
	out := make([]Entry, 0)
	for id := int64(1); id <= r.nextID; id++ {
		if e, err := r.GetByID(context.Background(), id); err == nil && e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *testRepo) Update(_ context.Context, e Entry) error {
	e.PetName = ""
	r.byID[e.ID] = e
	return nil
}

func (r *testRepo) Delete(_ context.Context, id int64) error {
	delete(r.byID, id)
	return nil
}

type fakeUsers struct{}

func (fakeUsers) Exists(_ context.Context, id int64) error {
	if id != 1 && id != 2 {
		return apperr.NotFound("User not found")
	}
	return nil
}

// petOwners: petID -> userID
type petOwners map[int64]int64

func (p petOwners) CheckOwnedBy(_ context.Context, petID, userID int64) error {
	owner, ok := p[petID]
	if !ok {
		return apperr.NotFound("Pet not found")
	}
	if owner != userID {
		return apperr.Invalid("Pet does not belong to user")
	}
	return nil
}

func newTestService() *Service {
	repo := &testRepo{
		byID:     map[int64]Entry{},
		petNames: map[int64]string{10: "Rex", 11: "Luna", 20: "Other"},
	}
	svc := NewService(repo, fakeUsers{}, petOwners{10: 1, 11: 1, 20: 2})
	svc.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func checkup() Fields {
	return Fields{
		Type:        "Checkup",
		Price:       45.5,
		Description: "Annual",
		Date:        time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreate_IncludesPetName(t *testing.T) {
	svc := newTestService()

	e, err := svc.Create(context.Background(), 1, 10, checkup())
	require.NoError(t, err)
	assert.Equal(t, "Rex", e.PetName)
	assert.Equal(t, 45.5, e.Price)
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	in := checkup()
	in.Price = -1
	_, err := svc.Create(ctx, 1, 10, in)
	assert.Equal(t, ErrNegativePrice, err)

	in = checkup()
	in.Price = 0
	_, err = svc.Create(ctx, 1, 10, in)
	assert.NoError(t, err)

	_, err = svc.Create(ctx, 1, 20, checkup())
	assert.EqualError(t, err, "Pet does not belong to user")

	// usuario inexistente con una mascota existente: 404 como en los listados
	_, err = svc.Create(ctx, 9, 10, checkup())
	assert.EqualError(t, err, "User not found")
	assert.True(t, errors.Is(err, errors.NotFound))
}

func TestUpdate_PetIsOptional(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	e, err := svc.Create(ctx, 1, 10, checkup())
	require.NoError(t, err)

	in := checkup()
	in.Price = 60
	updated, err := svc.Update(ctx, e.ID, nil, in)
	require.NoError(t, err)
	assert.Equal(t, int64(10), updated.PetID)
	assert.Equal(t, "Rex", updated.PetName)
	assert.Equal(t, 60.0, updated.Price)

	luna := int64(11)
	updated, err = svc.Update(ctx, e.ID, &luna, in)
	require.NoError(t, err)
	assert.Equal(t, "Luna", updated.PetName)

	other := int64(20)
	_, err = svc.Update(ctx, e.ID, &other, in)
	assert.EqualError(t, err, "Pet does not belong to user")
}
