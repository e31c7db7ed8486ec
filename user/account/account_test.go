package account

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLockedOut(t *testing.T) {
	now := time.Date(2021, time.August, 1, 12, 0, 0, 0, time.UTC)
	ago := func(d time.Duration) *time.Time {
		at := now.Add(-d)
		return &at
	}

	for _, test := range []struct {
		name     string
		lockable Lockable
		expect   bool
	}{
		{
			name:     "at threshold within window",
			lockable: Lockable{FailedLoginAttempts: 5, LastLoginAttemptAt: ago(30 * time.Minute)},
			expect:   true,
		},
		{
			name:     "at threshold but window elapsed",
			lockable: Lockable{FailedLoginAttempts: 5, LastLoginAttemptAt: ago(90 * time.Minute)},
			expect:   false,
		},
		{
			name:     "below threshold even when recent",
			lockable: Lockable{FailedLoginAttempts: 4, LastLoginAttemptAt: ago(time.Minute)},
			expect:   false,
		},
		{
			name:     "above threshold within window",
			lockable: Lockable{FailedLoginAttempts: 7, LastLoginAttemptAt: ago(59 * time.Minute)},
			expect:   true,
		},
		{
			name:     "window boundary is exclusive",
			lockable: Lockable{FailedLoginAttempts: 5, LastLoginAttemptAt: ago(time.Hour)},
			expect:   false,
		},
		{
			name:     "never attempted",
			lockable: Lockable{FailedLoginAttempts: 5},
			expect:   false,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expect, test.lockable.LockedOut(now))
		})
	}
}

func TestCheckIdentity(t *testing.T) {
	for _, test := range []struct {
		name      string
		candidate Account
		expect    []error
	}{
		{
			name:      "email and phone both missing",
			candidate: Account{},
			expect:    []error{ErrIdentityMissing},
		},
		{
			name:      "valid email",
			candidate: Account{Email: "a@b.com"},
			expect:    nil,
		},
		{
			name:      "phone only",
			candidate: Account{PhoneNumber: "5551234567"},
			expect:    nil,
		},
		{
			name:      "missing @",
			candidate: Account{Email: "missing-at.com"},
			expect:    []error{ErrInvalidEmailFormat},
		},
		{
			name:      "missing tld",
			candidate: Account{Email: "user@domain"},
			expect:    []error{ErrInvalidEmailFormat},
		},
		{
			name:      "tld too short",
			candidate: Account{Email: "user@domain.c"},
			expect:    []error{ErrInvalidEmailFormat},
		},
		{
			name:      "tld too long",
			candidate: Account{Email: "user@domain.house"},
			expect:    []error{ErrInvalidEmailFormat},
		},
		{
			name:      "four letter tld",
			candidate: Account{Email: "user.name_1%@domain-x.info"},
			expect:    nil,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			errs := CheckIdentity(test.candidate)
			assert.Len(t, errs, len(test.expect))
			for _, expect := range test.expect {
				assert.True(t, errs.Has(expect), "expected %v in %v", expect, errs)
			}
		})
	}
}

func TestRoles(t *testing.T) {
	admin := Account{Roles: Roles{RoleAdmin}}
	guest := Account{Roles: Roles{RoleGuest}}

	assert.True(t, admin.Admin())
	assert.False(t, admin.Guest())
	assert.True(t, guest.Guest())
	assert.False(t, guest.Admin())
	assert.False(t, Account{}.HasRole(RoleAdmin))
	// Membership is by exact name
	assert.False(t, Account{Roles: Roles{"Admin"}}.Admin())
}

func TestConfirmed(t *testing.T) {
	assert.False(t, Account{}.Confirmed())
	at := time.Now()
	assert.True(t, Account{Confirmable: Confirmable{ConfirmedAt: &at}}.Confirmed())
}

func TestSyncLogin(t *testing.T) {
	a := Account{Email: "a@b.com", PhoneNumber: "5551234567"}
	a.SyncLogin()
	assert.Equal(t, "a@b.com", a.Login)

	a.Email = ""
	a.SyncLogin()
	assert.Equal(t, "5551234567", a.Login)
}

func TestActive(t *testing.T) {
	a := Account{}
	assert.True(t, a.Active())
	at := time.Now()
	a.DeletedAt = &at
	assert.False(t, a.Active())
}
