package users

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID   map[int64]User
	nextID int64
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]User{}}
}

func (r *testRepo) Create(_ context.Context, u User) (User, error) {
	r.nextID++
	u.ID = r.nextID
	r.byID[u.ID] = u
	return u, nil
}

func (r *testRepo) GetByID(_ context.Context, id int64) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) GetByEmail(_ context.Context, email string) (User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *testRepo) GetByUsername(_ context.Context, username string) (User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *testRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.Password = hash
	r.byID[id] = u
	return nil
}

func newTestService(repo Repository) *Service {
	svc := NewService(repo, Options{
		AllowedEmailDomains: []string{"@uncc.edu", "@charlotte.edu"},
		HashCost:            bcrypt.MinCost,
	})
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestRegister_RejectsEmailOutsideAllowedDomains(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	for _, email := range []string{"ana@gmail.com", "ana@uncc.edu.evil.com", "@uncc.edu"} {
		_, err := svc.Register(context.Background(), RegisterInput{Email: email, Username: "ana", Password: "pw"})
		require.Error(t, err, email)
		assert.ErrorIs(t, err, errors.NotValid)
		assert.Equal(t, "Email must end with @uncc.edu or @charlotte.edu", err.Error())
	}
	assert.Empty(t, repo.byID)
}

func TestRegister_HashesAndNormalizesEmail(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	u, err := svc.Register(context.Background(), RegisterInput{Email: "  Ana@UNCC.edu ", Username: "ana", Password: "s3cret"})
	require.NoError(t, err)

	assert.Equal(t, "ana@uncc.edu", u.Email)
	assert.NotEqual(t, "s3cret", u.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("s3cret")))
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), u.CreatedAt)
}

func TestRegister_Duplicates(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "ana@uncc.edu", Username: "ana", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "ANA@uncc.edu", Username: "other", Password: "pw"})
	assert.Equal(t, ErrEmailTaken, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "bob@charlotte.edu", Username: "ana", Password: "pw"})
	assert.Equal(t, ErrUsernameTaken, err)

	assert.Len(t, repo.byID, 1)
}

func TestRegister_UsernameCannotLookLikeEmail(t *testing.T) {
	svc := newTestService(newTestRepo())
	_, err := svc.Register(context.Background(), RegisterInput{Email: "ana@uncc.edu", Username: "a@b", Password: "pw"})
	assert.Equal(t, ErrUsernameHasAt, err)
}

func TestRegister_PasswordLength(t *testing.T) {
	svc := newTestService(newTestRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "ana@uncc.edu", Username: "ana", Password: strings.Repeat("x", 80)})
	assert.Equal(t, ErrPasswordTooLong, err)
	assert.True(t, errors.Is(err, errors.NotValid))

	_, err = svc.Register(ctx, RegisterInput{Email: "ana@uncc.edu", Username: "ana", Password: strings.Repeat("x", MaxPasswordBytes)})
	require.NoError(t, err)
}

func TestLogin_UniformFailure(t *testing.T) {
	svc := newTestService(newTestRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "ana@uncc.edu", Username: "ana", Password: "pw"})
	require.NoError(t, err)

	_, errWrongPassword := svc.Login(ctx, "ana", "nope")
	_, errUnknownUser := svc.Login(ctx, "ghost", "pw")
	_, errUnknownEmail := svc.Login(ctx, "ghost@uncc.edu", "pw")

	assert.Equal(t, ErrInvalidCredentials, errWrongPassword)
	assert.Equal(t, ErrInvalidCredentials, errUnknownUser)
	assert.Equal(t, ErrInvalidCredentials, errUnknownEmail)
}

func TestLogin_ByEmailOrUsername(t *testing.T) {
	svc := newTestService(newTestRepo())
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{Email: "ana@uncc.edu", Username: "ana", Password: "pw"})
	require.NoError(t, err)

	u, err := svc.Login(ctx, "ANA@uncc.edu", "pw")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, u.ID)

	u, err = svc.Login(ctx, "ana", "pw")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, u.ID)
}

func TestLogin_UpgradesLegacyPlaintextPassword(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	legacy, err := repo.Create(ctx, User{Email: "old@uncc.edu", Username: "old", Password: "plain"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "old", "wrong")
	assert.Equal(t, ErrInvalidCredentials, err)
	assert.Equal(t, "plain", repo.byID[legacy.ID].Password)

	_, err = svc.Login(ctx, "old", "plain")
	require.NoError(t, err)

	stored := repo.byID[legacy.ID].Password
	assert.NotEqual(t, "plain", stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("plain")))

	// segundo login ya va por bcrypt
	_, err = svc.Login(ctx, "old", "plain")
	require.NoError(t, err)
}

func TestExists(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	u, err := repo.Create(ctx, User{Email: "a@uncc.edu", Username: "a"})
	require.NoError(t, err)

	assert.NoError(t, svc.Exists(ctx, u.ID))
	assert.Equal(t, ErrNotFound, svc.Exists(ctx, 99))
	assert.Equal(t, ErrNotFound, svc.Exists(ctx, 0))
}
