package account

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/commercekit/account/internal"
	"github.com/commercekit/account/validate"
	"github.com/gofrs/uuid"
)

const (
	// MaxFailedAttempts is the number of failed logins after which an
	// account is refused authentication.
	MaxFailedAttempts = 5
	// LockoutWindow is the trailing period after the last failed attempt
	// during which the refusal applies. It expires purely by time passing;
	// the counter itself only resets on a successful login.
	LockoutWindow = time.Hour
)

const (
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

var (
	ErrNotFound             = errors.New("Account does not exist")
	ErrIdentityMissing      = errors.New("Email or Phone Number must exist")
	ErrInvalidEmailFormat   = errors.New("Invalid email provided")
	ErrDuplicateEmail       = errors.New("Email is already taken")
	ErrDuplicatePhoneNumber = errors.New("Phone Number is already taken")
	ErrInvalidPassword      = errors.New("Invalid Password")
	ErrLockedOut            = errors.New("Account is locked due to repeated failed logins")
	// ErrPersistenceConflict is transient: the record changed between read
	// and write. Callers should re-read and retry a bounded number of times.
	ErrPersistenceConflict = errors.New("Account was modified concurrently")
	// ErrExternalLinkRaceLost is transient: a concurrent call created the
	// record for the same external identity first.
	ErrExternalLinkRaceLost = errors.New("External identity was linked concurrently")
)

// local part: letters/digits/._%, domain: letters/digits/.-, TLD 2-4 letters
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,4}$`)

// Confirmable tracks whether the account's primary contact was verified
type Confirmable struct {
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty" gorm:"index;default:null"`
}

func (c Confirmable) Confirmed() bool {
	return c.ConfirmedAt != nil
}

// Lockable tracks the failed-login counter that drives the lockout rule
type Lockable struct {
	FailedLoginAttempts int        `json:"-" gorm:"not null;default:0"`
	LastLoginAttemptAt  *time.Time `json:"-" gorm:"default:null"`
}

// LockedOut reports whether authentication must be refused at the given
// instant. This is a caller precondition, checked before any credential
// comparison.
func (l Lockable) LockedOut(now time.Time) bool {
	if l.FailedLoginAttempts < MaxFailedAttempts || l.LastLoginAttemptAt == nil {
		return false
	}
	return now.Sub(*l.LastLoginAttemptAt) < LockoutWindow
}

// Roles is the set of role names granted to an account, stored as a JSON
// array column
type Roles []string

func (r Roles) Value() (driver.Value, error) {
	if r == nil {
		r = Roles{}
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (r *Roles) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*r = nil
		return nil
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("unsupported roles column type %T", src)
	}
}

// Account is the user identity record: who can authenticate, under what
// identifier, and where in the active/locked/deleted/scrambled lifecycle
// the record currently sits.
type Account struct {
	internal.BaseSoftDelete
	Confirmable
	Lockable

	// Email is optional as long as PhoneNumber is set. Unique among
	// active accounts, compared case-insensitively.
	Email string `json:"email" gorm:"index;size:255;default:null"`
	// PhoneNumber is optional as long as Email is set. Unique among
	// active accounts.
	PhoneNumber string `json:"phone_number" gorm:"index;size:32;default:null"`
	// Login mirrors whichever identifier the account goes by. Re-derived
	// after every email change, including scrambles.
	Login string `json:"login" gorm:"size:255"`

	// PasswordHash is the PHC-encoded argon2id credential (parameters,
	// salt, and hash in one opaque string). Set only through the
	// credential-change path; plaintext is never stored.
	PasswordHash string `json:"-" gorm:"size:255"`

	// Provider and ExternalUID identify the single external identity this
	// account may be linked to.
	Provider    string `json:"provider,omitempty" gorm:"size:64;uniqueIndex:idx_accounts_external,where:provider <> ''"`
	ExternalUID string `json:"external_uid,omitempty" gorm:"column:external_uid;size:255;uniqueIndex:idx_accounts_external,where:provider <> ''"`

	// APIKey authenticates programmatic clients. Rotated whenever the
	// password changes while a key is present.
	APIKey string `json:"-" gorm:"column:api_key;size:64"`

	Roles Roles `json:"roles" gorm:"type:jsonb"`

	// Version guards every write: updates are compare-and-swap on this
	// value, so concurrent transitions on the same record never interleave.
	Version uint `json:"-" gorm:"not null;default:0"`
}

// Active reports whether the account participates in uniqueness checks
// and authentication
func (a Account) Active() bool {
	return a.DeletedAt == nil
}

func (a Account) HasRole(name string) bool {
	for _, r := range a.Roles {
		if r == name {
			return true
		}
	}
	return false
}

func (a Account) Admin() bool {
	return a.HasRole(RoleAdmin)
}

func (a Account) Guest() bool {
	return a.HasRole(RoleGuest)
}

// SyncLogin re-derives the display identifier from email, falling back
// to phone number
func (a *Account) SyncLogin() {
	if a.Email != "" {
		a.Login = a.Email
		return
	}
	a.Login = a.PhoneNumber
}

// CheckIdentity runs the pure presence and format rules. It takes no
// collaborators and accumulates every violation; uniqueness is layered
// on top by the service, which needs the Repository.
func CheckIdentity(candidate Account) validate.Errors {
	var errs validate.Errors
	if candidate.Email == "" && candidate.PhoneNumber == "" {
		errs = append(errs, ErrIdentityMissing)
	}
	if candidate.Email != "" && !emailPattern.MatchString(candidate.Email) {
		errs = append(errs, ErrInvalidEmailFormat)
	}
	return errs
}

// Repository defines an interface that allows Account domain data to be
// persisted through different dbs.
//
// Implementations must report a missing row as ErrNotFound and a failed
// version check as ErrPersistenceConflict (wrapped or bare).
type Repository interface {
	Create(ctx context.Context, newAccount Account) (*Account, error)
	Get(ctx context.Context, id uuid.UUID) (*Account, error)
	// GetByEmailOrPhone looks an active account up by either identifier.
	// Email comparison is case-insensitive; phone comparison is exact.
	GetByEmailOrPhone(ctx context.Context, identifier string) (*Account, error)
	// GetByExternalIdentity looks an active account up by its provider link
	GetByExternalIdentity(ctx context.Context, provider string, uid string) (*Account, error)
	// FirstOrCreateExternal atomically creates newAccount unless an
	// account with the same (provider, uid) already exists, in which case
	// the existing one is returned with existed = true.
	FirstOrCreateExternal(ctx context.Context, newAccount Account) (found *Account, existed bool, err error)
	// Update writes the record back conditioned on its version still being
	// expectedVersion, and bumps the version on success
	Update(ctx context.Context, updateAccount Account, expectedVersion uint) (*Account, error)
	// Delete removes the row permanently
	Delete(ctx context.Context, id uuid.UUID) error
	// CountActiveWithRole counts active accounts carrying the given role
	CountActiveWithRole(ctx context.Context, role string) (int64, error)
}

type Service interface {
	// ValidateIdentity runs presence, format, and active-uniqueness rules
	// against a candidate record, accumulating every failure
	ValidateIdentity(ctx context.Context, candidate Account) error
	// Create registers a new account after identity and password validation
	Create(ctx context.Context, candidate Account, password string) (*Account, error)
	// Find looks an account up by id or by email/phone identifier
	Find(ctx context.Context, identifier string) (*Account, error)
	// Authenticate checks the lockout precondition, compares credentials,
	// and records the attempt outcome
	Authenticate(ctx context.Context, identifier string, password string) (*Account, error)
	// RecordLoginAttempt bumps or resets the failed-login counter
	RecordLoginAttempt(ctx context.Context, id uuid.UUID, succeeded bool) (*Account, error)
	// SetCredential replaces the account's password, rotating its API key
	// when one is present
	SetCredential(ctx context.Context, id uuid.UUID, newPassword string) (*Account, error)
	// Confirm marks the account's contact verified
	Confirm(ctx context.Context, id uuid.UUID) (*Account, error)
	// GrantRole adds a role to the account's set
	GrantRole(ctx context.Context, id uuid.UUID, role string) (*Account, error)
	// Delete soft deletes (or, with permanent, destroys) the account,
	// scrambling it synchronously within the same operation
	Delete(ctx context.Context, id uuid.UUID, permanent bool) error
	// LinkExternalIdentity finds the active account for email and points
	// its external link at (provider, uid), or creates a pre-confirmed
	// account when none exists
	LinkExternalIdentity(ctx context.Context, email string, provider string, uid string) (*Account, error)
	// AdminExists reports whether any active account holds the admin role
	AdminExists(ctx context.Context) (bool, error)
}
