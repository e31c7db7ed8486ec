package service

import (
	"strings"
	"unicode"

	"github.com/commercekit/account/internal"
	"github.com/commercekit/account/internal/config"
	"github.com/commercekit/account/user/credential"
	"github.com/commercekit/account/validate"
	"github.com/nbutton23/zxcvbn-go"
)

type service struct {
	cfg config.Credential
}

func NewCredentialService(cfg config.Credential) credential.Service {
	return &service{
		cfg: cfg,
	}
}

func (s *service) ValidateNew(password string) error {
	var errs validate.Errors
	if len(password) < s.cfg.MinLength {
		errs = append(errs, credential.ErrPasswordTooShort)
	}
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(credential.SpecialCharacters, r):
			special = true
		}
	}
	if !lower || !upper || !digit || !special {
		errs = append(errs, credential.ErrPasswordTooWeak)
	}
	if len(errs) == 0 && s.cfg.MinimumScore > 0 {
		if zxcvbn.PasswordStrength(password, nil).Score < s.cfg.MinimumScore {
			errs = append(errs, credential.ErrPasswordTooWeak)
		}
	}
	return errs.ErrOrNil()
}

func (s *service) Hash(password string) (string, error) {
	encoded, err := generateFromPassword(password, s.cfg.Argon)
	if err != nil {
		return "", internal.WrapErrorf(err, internal.ErrorCodeInternal, "Failed to generate a hashed password")
	}
	return encoded, nil
}

func (s *service) Compare(password string, encoded string) error {
	match, err := comparePasswordAndHash(password, encoded)
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeInternal, "Failed to decode password credential")
	}
	if !match {
		return internal.NewErrorf(internal.ErrorCodeInvalidArgument, "Invalid Password")
	}
	return nil
}

func (s *service) Generate() (string, error) {
	password, err := generatePassword(credential.GeneratedLength)
	if err != nil {
		return "", internal.WrapErrorf(err, internal.ErrorCodeInternal, "Failed to generate a random password")
	}
	return password, nil
}
