package config

// SoftDeleteStrategy selects how account deletion behaves. The choice is
// made once at startup, never detected at runtime.
type SoftDeleteStrategy string

const (
	// SoftDeleteParanoid hides deleted accounts but keeps their rows forever.
	SoftDeleteParanoid SoftDeleteStrategy = "paranoid"
	// SoftDeleteDiscard marks accounts discarded; rows may be reaped later
	// by an external janitor.
	SoftDeleteDiscard SoftDeleteStrategy = "discard"
)

type Account struct {
	// SoftDelete strategy for account deletion.
	//
	// Default: paranoid
	SoftDelete SoftDeleteStrategy `validate:"required,oneof='paranoid' 'discard'"`
	// ScrambleDomain is the sentinel domain used for placeholder
	// emails on scrambled accounts.
	//
	// Default: example.net
	ScrambleDomain string `validate:"required,fqdn"`
}
