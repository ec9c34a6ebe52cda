// Package service implements the client-side synchronization engine:
// identity resolution, feed materialization, and optimistic interactions
// over the record-store repositories.
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"satellite/internal/models"
	"satellite/internal/observability"
	"satellite/internal/repository"
	"satellite/internal/session"
	"satellite/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// handleMaxAttempts caps the numeric-suffix retry loop before falling back
// to a timestamp handle.
const handleMaxAttempts = 10

// IdentityService maps an authenticated principal to exactly one durable
// profile, creating it on first login with a globally unique handle.
type IdentityService struct {
	profiles repository.ProfileRepository
}

func NewIdentityService(profiles repository.ProfileRepository) *IdentityService {
	return &IdentityService{profiles: profiles}
}

// Resolve returns the profile for the principal, creating one if absent.
// Idempotent: repeated calls for the same principal return the same
// profile and never create a duplicate. The email lookup runs before the
// ID lookup so an account whose principal ID changed (same email, new
// identity provider record) still resolves to its original profile.
func (s *IdentityService) Resolve(ctx context.Context, principal session.Principal) (*models.Profile, error) {
	span, ctx := observability.NewSpan(ctx, "identity.resolve")
	defer span.End()
	span.AddAttributes(attribute.String("principal.id", principal.ID))

	if principal.ID == "" || principal.Email == "" {
		return nil, models.NewValidationError("principal must carry an id and an email")
	}

	profile, err := s.profiles.GetByEmail(ctx, principal.Email)
	if err == nil {
		return profile, nil
	}
	if !models.IsNotFound(err) {
		span.SetError(err)
		return nil, fmt.Errorf("resolving profile by email: %w", err)
	}

	profile, err = s.profiles.GetByID(ctx, principal.ID)
	if err == nil {
		return profile, nil
	}
	if !models.IsNotFound(err) {
		span.SetError(err)
		return nil, fmt.Errorf("resolving profile by id: %w", err)
	}

	profile, err = s.createWithUniqueHandle(ctx, principal)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	return profile, nil
}

// createWithUniqueHandle runs the bounded handle-candidate loop. The store's
// uniqueness constraint is the only arbiter under concurrent creation: the
// availability lookup just keeps handles human-readable, the create is what
// actually claims the handle.
func (s *IdentityService) createWithUniqueHandle(ctx context.Context, principal session.Principal) (*models.Profile, error) {
	base := BaseHandle(principal.Email)
	display := displayName(principal.Email)

	for attempt := 0; attempt < handleMaxAttempts; attempt++ {
		candidate := HandleCandidate(base, attempt)
		if validation.ValidateHandle(candidate) != nil {
			continue // reserved or malformed, next candidate
		}

		_, err := s.profiles.GetByHandle(ctx, candidate)
		if err == nil {
			continue // taken, next candidate
		}
		if !models.IsNotFound(err) {
			return nil, fmt.Errorf("checking handle availability: %w", err)
		}

		profile := newProfile(principal, display, candidate)
		err = s.profiles.Create(ctx, profile)
		if err == nil {
			return profile, nil
		}
		if models.IsConflict(err) {
			// concurrently claimed between the lookup and the create
			observability.GlobalLogger.WarnContext(ctx, "handle claimed concurrently, retrying",
				"handle", candidate, "attempt", attempt)
			continue
		}
		return nil, fmt.Errorf("creating profile: %w", err)
	}

	// Sustained contention on every readable candidate: fall back to a
	// timestamp handle and create once, unretried.
	profile := newProfile(principal, display, TimestampHandle(base))
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("creating profile with fallback handle: %w", err)
	}
	return profile, nil
}

func newProfile(principal session.Principal, display, handle string) *models.Profile {
	return &models.Profile{
		ID:          principal.ID,
		Email:       principal.Email,
		DisplayName: display,
		Handle:      handle,
	}
}

// BaseHandle derives the base handle candidate from the lower-cased local
// part of the email, stripped of characters a handle cannot carry.
func BaseHandle(email string) string {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}
	base := validation.NormalizeHandle(local)
	if base == "" {
		return "user"
	}
	// leave room for the numeric and timestamp suffixes
	if len(base) > 40 {
		base = base[:40]
	}
	return base
}

// HandleCandidate is the pure conflict-resolution strategy: attempt 0 is
// the base itself, attempt n appends n.
func HandleCandidate(base string, attempt int) string {
	if attempt == 0 {
		return base
	}
	return base + strconv.Itoa(attempt)
}

// TimestampHandle builds the fallback candidate used after the retry loop
// exhausts. Nanosecond resolution makes collisions implausible in practice.
func TimestampHandle(base string) string {
	return base + "_" + strconv.FormatInt(time.Now().UnixNano(), 10)
}

func displayName(email string) string {
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}
