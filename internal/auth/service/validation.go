package service

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/fairwaylabs/launchpoint/internal/common/constants"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)
	validate      = validator.New()
)

func validateRegistration(username, email, password string) error {
	if err := validateCredentials(username, password); err != nil {
		return err
	}

	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: email is not valid", ErrValidation)
	}

	return nil
}

func validateCredentials(username, password string) error {
	if len(username) < constants.UsernameMinLength || len(username) > constants.UsernameMaxLength {
		return fmt.Errorf("%w: username must be between %d and %d characters",
			ErrValidation, constants.UsernameMinLength, constants.UsernameMaxLength)
	}

	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("%w: username may contain only letters, digits, '-' and '_'", ErrValidation)
	}

	if len(password) < constants.PasswordMinLength || len(password) > constants.PasswordMaxLength {
		return fmt.Errorf("%w: password must be between %d and %d characters",
			ErrValidation, constants.PasswordMinLength, constants.PasswordMaxLength)
	}

	return nil
}
