package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"satellite/internal/models"
	"satellite/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleCandidate(t *testing.T) {
	assert.Equal(t, "ada", HandleCandidate("ada", 0))
	assert.Equal(t, "ada1", HandleCandidate("ada", 1))
	assert.Equal(t, "ada9", HandleCandidate("ada", 9))
}

func TestBaseHandle(t *testing.T) {
	assert.Equal(t, "ada", BaseHandle("Ada@Example.com"))
	assert.Equal(t, "a2", BaseHandle("a2@x.com"))
	assert.Equal(t, "noat", BaseHandle("noat"))
}

func TestTimestampHandle(t *testing.T) {
	h := TimestampHandle("ada")
	assert.True(t, strings.HasPrefix(h, "ada_"))
	assert.NotEqual(t, h, TimestampHandle("ada"))
}

func TestResolve_ExistingByEmail(t *testing.T) {
	existing := &models.Profile{ID: "old-principal", Email: "a@x.com", Handle: "a"}
	repo := noopProfileRepo()
	repo.getByEmailFn = func(_ context.Context, email string) (*models.Profile, error) {
		require.Equal(t, "a@x.com", email)
		return existing, nil
	}
	created := 0
	repo.createFn = func(_ context.Context, _ *models.Profile) error {
		created++
		return nil
	}

	svc := NewIdentityService(repo)
	// Same email, different principal id: must return the original
	// profile, not create a duplicate.
	profile, err := svc.Resolve(context.Background(), session.Principal{ID: "new-principal", Email: "a@x.com"})
	require.NoError(t, err)
	assert.Same(t, existing, profile)
	assert.Equal(t, 0, created)
}

func TestResolve_ExistingByID(t *testing.T) {
	existing := &models.Profile{ID: "p1", Email: "old@x.com", Handle: "old"}
	repo := noopProfileRepo()
	repo.getByIDFn = func(_ context.Context, id string) (*models.Profile, error) {
		require.Equal(t, "p1", id)
		return existing, nil
	}

	svc := NewIdentityService(repo)
	profile, err := svc.Resolve(context.Background(), session.Principal{ID: "p1", Email: "new@x.com"})
	require.NoError(t, err)
	assert.Same(t, existing, profile)
}

func TestResolve_CreatesWithBaseHandle(t *testing.T) {
	repo := noopProfileRepo()
	var created *models.Profile
	repo.createFn = func(_ context.Context, p *models.Profile) error {
		created = p
		return nil
	}

	svc := NewIdentityService(repo)
	profile, err := svc.Resolve(context.Background(), session.Principal{ID: "p1", Email: "Ada@x.com"})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "p1", profile.ID)
	assert.Equal(t, "Ada@x.com", profile.Email)
	assert.Equal(t, "ada", profile.Handle)
	assert.Equal(t, "Ada", profile.DisplayName)
	assert.Zero(t, profile.PostsCount)
	assert.Zero(t, profile.FollowersCount)
	assert.Zero(t, profile.FollowingCount)
}

func TestResolve_RetriesOnTakenHandle(t *testing.T) {
	taken := map[string]bool{"ada": true, "ada1": true}
	repo := noopProfileRepo()
	repo.getByHandleFn = func(_ context.Context, handle string) (*models.Profile, error) {
		if taken[handle] {
			return &models.Profile{Handle: handle}, nil
		}
		return nil, models.NewNotFoundError("profiles", handle)
	}

	svc := NewIdentityService(repo)
	profile, err := svc.Resolve(context.Background(), session.Principal{ID: "p1", Email: "ada@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "ada2", profile.Handle)
}

func TestResolve_RetriesOnCreateConflict(t *testing.T) {
	// The availability lookup sees every handle free, but the store
	// rejects the first two creates: the race where another session
	// claims the handle between lookup and create.
	conflicts := 2
	repo := noopProfileRepo()
	repo.createFn = func(_ context.Context, p *models.Profile) error {
		if conflicts > 0 {
			conflicts--
			return models.NewConflictError("profiles uniqueness constraint violated", nil)
		}
		return nil
	}

	svc := NewIdentityService(repo)
	profile, err := svc.Resolve(context.Background(), session.Principal{ID: "p1", Email: "ada@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "ada2", profile.Handle)
}

func TestResolve_FallsBackToTimestampHandle(t *testing.T) {
	creates := 0
	repo := noopProfileRepo()
	repo.getByHandleFn = func(_ context.Context, handle string) (*models.Profile, error) {
		// every readable candidate is taken
		return &models.Profile{Handle: handle}, nil
	}
	var created *models.Profile
	repo.createFn = func(_ context.Context, p *models.Profile) error {
		creates++
		created = p
		return nil
	}

	svc := NewIdentityService(repo)
	profile, err := svc.Resolve(context.Background(), session.Principal{ID: "p1", Email: "ada@x.com"})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, strings.HasPrefix(profile.Handle, "ada_"))
	assert.Equal(t, 1, creates, "fallback create must not be retried")
}

func TestResolve_FatalCreateFailurePropagates(t *testing.T) {
	storeErr := models.NewStoreError("profiles store operation failed", errors.New("disk full"))
	repo := noopProfileRepo()
	repo.createFn = func(_ context.Context, _ *models.Profile) error {
		return storeErr
	}

	svc := NewIdentityService(repo)
	_, err := svc.Resolve(context.Background(), session.Principal{ID: "p1", Email: "ada@x.com"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, storeErr))
}

func TestResolve_RejectsEmptyPrincipal(t *testing.T) {
	svc := NewIdentityService(noopProfileRepo())
	_, err := svc.Resolve(context.Background(), session.Principal{})
	assert.Error(t, err)
}

func TestResolve_DistinctPrincipalsGetDistinctHandles(t *testing.T) {
	// N new principals whose emails share the same local part: the store
	// stub enforces handle uniqueness, resolution must yield N distinct
	// handles.
	var mu sync.Mutex
	claimed := map[string]bool{}

	repo := noopProfileRepo()
	repo.getByHandleFn = func(_ context.Context, handle string) (*models.Profile, error) {
		mu.Lock()
		defer mu.Unlock()
		if claimed[handle] {
			return &models.Profile{Handle: handle}, nil
		}
		return nil, models.NewNotFoundError("profiles", handle)
	}
	repo.createFn = func(_ context.Context, p *models.Profile) error {
		mu.Lock()
		defer mu.Unlock()
		if claimed[p.Handle] {
			return models.NewConflictError("profiles uniqueness constraint violated", nil)
		}
		claimed[p.Handle] = true
		return nil
	}

	svc := NewIdentityService(repo)
	const n = 5
	handles := map[string]bool{}
	for i := 0; i < n; i++ {
		profile, err := svc.Resolve(context.Background(), session.Principal{
			ID:    fmt.Sprintf("principal-%d", i),
			Email: fmt.Sprintf("ada@host%d.com", i),
		})
		require.NoError(t, err)
		handles[profile.Handle] = true
	}
	assert.Len(t, handles, n)
}
