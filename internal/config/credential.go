package config

type Argon struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

type Credential struct {
	// MinLength is the minimum accepted password length.
	//
	// Default: 8
	MinLength int `validate:"min=1"`
	// MinimumScore is the minimum zxcvbn score a new password must reach
	// on top of the character class rules. 0 disables strength scoring.
	MinimumScore int `validate:"min=0,max=4"`
	Argon        Argon
}
