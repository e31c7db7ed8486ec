package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/commercekit/account/internal"
	"github.com/commercekit/account/internal/config"
	"github.com/commercekit/account/user/account"
	"github.com/commercekit/account/user/apikey"
	"github.com/commercekit/account/user/credential"
	"github.com/gofrs/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// conflictRetries bounds how often a read-modify-write loop is replayed
// when the record changed underneath it before the conflict is surfaced
const conflictRetries = 3

type service struct {
	cfg    config.Account
	r      account.Repository
	cs     credential.Service
	rot    apikey.Rotator
	clock  clockwork.Clock
	logger *zap.Logger
}

func NewAccountService(cfg config.Account, r account.Repository, cs credential.Service, rot apikey.Rotator, clock clockwork.Clock, logger *zap.Logger) account.Service {
	return &service{
		cfg:    cfg,
		r:      r,
		cs:     cs,
		rot:    rot,
		clock:  clock,
		logger: logger,
	}
}

func (s *service) ValidateIdentity(ctx context.Context, candidate account.Account) error {
	errs := account.CheckIdentity(candidate)

	// Uniqueness only applies among active accounts; both lookups run
	// concurrently
	var byEmail, byPhone *account.Account
	g, gctx := errgroup.WithContext(ctx)
	if candidate.Email != "" && !errs.Has(account.ErrInvalidEmailFormat) {
		g.Go(func() error {
			found, err := s.r.GetByEmailOrPhone(gctx, candidate.Email)
			if err != nil && !errors.Is(err, account.ErrNotFound) {
				return internal.WrapErrorf(err, internal.ErrorCodeInternal, "Failed to check email uniqueness")
			}
			byEmail = found
			return nil
		})
	}
	if candidate.PhoneNumber != "" {
		g.Go(func() error {
			found, err := s.r.GetByEmailOrPhone(gctx, candidate.PhoneNumber)
			if err != nil && !errors.Is(err, account.ErrNotFound) {
				return internal.WrapErrorf(err, internal.ErrorCodeInternal, "Failed to check phone number uniqueness")
			}
			byPhone = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if byEmail != nil && byEmail.ID != candidate.ID {
		errs = append(errs, account.ErrDuplicateEmail)
	}
	if byPhone != nil && byPhone.ID != candidate.ID {
		errs = append(errs, account.ErrDuplicatePhoneNumber)
	}
	return errs.ErrOrNil()
}

func (s *service) Create(ctx context.Context, candidate account.Account, password string) (*account.Account, error) {
	if err := s.ValidateIdentity(ctx, candidate); err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "Invalid identity provided")
	}
	// Complexity rules are creation-scoped; later credential changes go
	// through SetCredential without them
	if err := s.cs.ValidateNew(password); err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "Invalid password provided")
	}
	hash, err := s.cs.Hash(password)
	if err != nil {
		return nil, err
	}
	candidate.PasswordHash = hash
	candidate.SyncLogin()
	created, err := s.r.Create(ctx, candidate)
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeInternal, "Failed to create new account")
	}
	return created, nil
}

func (s *service) Find(ctx context.Context, identifier string) (*account.Account, error) {
	if id, err := uuid.FromString(identifier); err == nil && id != uuid.Nil {
		found, err := s.r.Get(ctx, id)
		if err != nil {
			return nil, internal.WrapErrorf(err, internal.ErrorCodeNotFound, "%v", account.ErrNotFound)
		}
		return found, nil
	}
	found, err := s.r.GetByEmailOrPhone(ctx, identifier)
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeNotFound, "%v", account.ErrNotFound)
	}
	return found, nil
}

func (s *service) Authenticate(ctx context.Context, identifier string, password string) (*account.Account, error) {
	found, err := s.r.GetByEmailOrPhone(ctx, identifier)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, internal.WrapErrorf(account.ErrNotFound, internal.ErrorCodeNotFound, "Email not exist in database")
		}
		return nil, internal.WrapErrorf(err, internal.ErrorCodeInternal, "Failed to retrieve account")
	}
	// Lockout is a precondition; refuse before touching the credential
	if found.LockedOut(s.clock.Now()) {
		s.logger.Warn("authentication refused",
			zap.String("account_id", found.ID.String()),
			zap.Int("failed_attempts", found.FailedLoginAttempts))
		return nil, internal.WrapErrorf(account.ErrLockedOut, internal.ErrorCodeForbidden, "Too many failed login attempts")
	}
	if err := s.cs.Compare(password, found.PasswordHash); err != nil {
		if _, recordErr := s.RecordLoginAttempt(ctx, found.ID, false); recordErr != nil {
			return nil, recordErr
		}
		return nil, internal.WrapErrorf(account.ErrInvalidPassword, internal.ErrorCodeInvalidArgument, "%v", account.ErrInvalidPassword)
	}
	return s.RecordLoginAttempt(ctx, found.ID, true)
}

func (s *service) RecordLoginAttempt(ctx context.Context, id uuid.UUID, succeeded bool) (*account.Account, error) {
	return s.update(ctx, id, func(a *account.Account) error {
		if succeeded {
			a.FailedLoginAttempts = 0
			return nil
		}
		a.FailedLoginAttempts++
		now := s.clock.Now()
		a.LastLoginAttemptAt = &now
		return nil
	})
}

func (s *service) SetCredential(ctx context.Context, id uuid.UUID, newPassword string) (*account.Account, error) {
	return s.update(ctx, id, func(a *account.Account) error {
		return s.applyCredential(a, newPassword)
	})
}

func (s *service) Confirm(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return s.update(ctx, id, func(a *account.Account) error {
		if a.Confirmed() {
			return nil
		}
		now := s.clock.Now()
		a.ConfirmedAt = &now
		return nil
	})
}

func (s *service) GrantRole(ctx context.Context, id uuid.UUID, role string) (*account.Account, error) {
	return s.update(ctx, id, func(a *account.Account) error {
		if a.HasRole(role) {
			return nil
		}
		a.Roles = append(a.Roles, role)
		return nil
	})
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, permanent bool) error {
	found, err := s.r.Get(ctx, id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			// Already destroyed; nothing left to scramble
			return nil
		}
		return internal.WrapErrorf(err, internal.ErrorCodeInternal, "Failed to retrieve account %s", id)
	}
	if !found.Active() {
		// Already discarded and scrambled; repeating must not scramble again
		if permanent {
			return s.destroy(ctx, id)
		}
		return nil
	}
	// DeletedAt and the scrambled fields land in one write so no window
	// exists where the record is deleted but still carries its email
	if _, err := s.update(ctx, id, func(a *account.Account) error {
		now := s.clock.Now()
		a.DeletedAt = &now
		return s.scramble(a)
	}); err != nil {
		return internal.WrapErrorf(err, internal.CodeOf(err), "Failed to scramble account %s", id)
	}
	s.logger.Info("account scrambled",
		zap.String("account_id", id.String()),
		zap.String("strategy", string(s.cfg.SoftDelete)),
		zap.Bool("permanent", permanent))
	if permanent {
		return s.destroy(ctx, id)
	}
	return nil
}

func (s *service) LinkExternalIdentity(ctx context.Context, email string, provider string, uid string) (*account.Account, error) {
	for attempt := 0; attempt < conflictRetries; attempt++ {
		found, err := s.r.GetByEmailOrPhone(ctx, email)
		if err == nil {
			// Overwrites any prior link; an account carries at most one
			updated, updateErr := s.update(ctx, found.ID, func(a *account.Account) error {
				a.Provider = provider
				a.ExternalUID = uid
				return nil
			})
			if updateErr != nil {
				if errors.Is(updateErr, account.ErrPersistenceConflict) {
					continue
				}
				return nil, updateErr
			}
			return updated, nil
		}
		if !errors.Is(err, account.ErrNotFound) {
			return nil, internal.WrapErrorf(err, internal.ErrorCodeInternal, "Failed to retrieve account")
		}

		candidate, err := s.newExternalAccount(email, provider, uid)
		if err != nil {
			return nil, err
		}
		created, _, err := s.r.FirstOrCreateExternal(ctx, *candidate)
		if err != nil {
			if errors.Is(err, account.ErrPersistenceConflict) || errors.Is(err, account.ErrExternalLinkRaceLost) {
				continue
			}
			return nil, internal.WrapErrorf(err, internal.ErrorCodeInternal, "Failed to create account for %s %s", provider, uid)
		}
		return created, nil
	}
	return nil, internal.WrapErrorf(account.ErrExternalLinkRaceLost, internal.ErrorCodeConflict, "Gave up linking %s %s after %d attempts", provider, uid, conflictRetries)
}

func (s *service) AdminExists(ctx context.Context) (bool, error) {
	count, err := s.r.CountActiveWithRole(ctx, account.RoleAdmin)
	if err != nil {
		return false, internal.WrapErrorf(err, internal.ErrorCodeInternal, "Failed to count admin accounts")
	}
	return count > 0, nil
}

// newExternalAccount builds a pre-confirmed account for a first-time
// external-identity login. The generated password satisfies the creation
// policy by construction and is never shown to anyone.
func (s *service) newExternalAccount(email string, provider string, uid string) (*account.Account, error) {
	candidate := account.Account{
		Email:       email,
		Provider:    provider,
		ExternalUID: uid,
	}
	if errs := account.CheckIdentity(candidate); len(errs) > 0 {
		return nil, internal.WrapErrorf(errs, internal.ErrorCodeInvalidArgument, "Invalid email provided")
	}
	generated, err := s.cs.Generate()
	if err != nil {
		return nil, err
	}
	hash, err := s.cs.Hash(generated)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	candidate.PasswordHash = hash
	candidate.ConfirmedAt = &now
	candidate.SyncLogin()
	return &candidate, nil
}

// scramble irreversibly replaces the identifying email and credential.
// Repeated calls produce a fresh placeholder each time; every
// post-scramble state is equally unrecoverable under the original
// identity.
func (s *service) scramble(a *account.Account) error {
	placeholder, err := uuid.NewV4()
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeInternal, "Failed to generate placeholder email")
	}
	generated, err := s.cs.Generate()
	if err != nil {
		return err
	}
	a.Email = fmt.Sprintf("%s@%s", placeholder, s.cfg.ScrambleDomain)
	if err := s.applyCredential(a, generated); err != nil {
		return err
	}
	a.SyncLogin()
	return nil
}

// applyCredential is the single path through which a password is ever
// replaced. Rotates the api key whenever the password changes while a
// key is present, so the two factors never go stale together.
func (s *service) applyCredential(a *account.Account, plaintext string) error {
	hash, err := s.cs.Hash(plaintext)
	if err != nil {
		return err
	}
	if a.APIKey != "" && plaintext != "" {
		key, err := s.rot.Regenerate()
		if err != nil {
			return err
		}
		a.APIKey = key
	}
	a.PasswordHash = hash
	return nil
}

// update is the optimistic read-modify-write loop every single-record
// transition goes through: read, transform, compare-and-swap on version,
// retry on conflict with a freshly read record.
func (s *service) update(ctx context.Context, id uuid.UUID, mutate func(*account.Account) error) (*account.Account, error) {
	for attempt := 0; attempt < conflictRetries; attempt++ {
		found, err := s.r.Get(ctx, id)
		if err != nil {
			if errors.Is(err, account.ErrNotFound) {
				return nil, internal.WrapErrorf(err, internal.ErrorCodeNotFound, "Account with id %s does not exist", id)
			}
			return nil, internal.WrapErrorf(err, internal.ErrorCodeInternal, "Failed to retrieve account %s", id)
		}
		if err := mutate(found); err != nil {
			return nil, err
		}
		updated, err := s.r.Update(ctx, *found, found.Version)
		if err != nil {
			if errors.Is(err, account.ErrPersistenceConflict) {
				continue
			}
			return nil, internal.WrapErrorf(err, internal.ErrorCodeInternal, "Failed to update account %s", id)
		}
		return updated, nil
	}
	return nil, internal.WrapErrorf(account.ErrPersistenceConflict, internal.ErrorCodeConflict, "Gave up updating account %s after %d attempts", id, conflictRetries)
}

func (s *service) destroy(ctx context.Context, id uuid.UUID) error {
	if err := s.r.Delete(ctx, id); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeInternal, "Failed to delete account %s", id)
	}
	return nil
}
