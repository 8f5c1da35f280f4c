package model

import (
	"strings"

	"github.com/ccbj/ccbj-forms/internal/validate"
)

// Messages shown by the profile screen
const (
	MsgPasswordMismatch = "As senhas não coincidem."
	MsgPasswordShort    = "A senha deve ter pelo menos 8 caracteres."
	MsgPasswordCurrent  = "Informe a senha atual."
)

// MinPasswordLength is the shortest new password accepted
const MinPasswordLength = 8

// ProfileUpdate is the PATCH body of the user's own account
type ProfileUpdate struct {
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Email     string        `json:"email"`
	Perfil    ProfileFields `json:"perfil"`
}

// ProfileFields are the editable profile attributes
type ProfileFields struct {
	Telefone string `json:"telefone"`
}

// Validate checks the email format; every field may be left empty
func (p ProfileUpdate) Validate() FieldErrors {
	errs := FieldErrors{}
	if !validate.IsValidEmail(strings.TrimSpace(p.Email)) {
		errs.Set("email", MsgEmailInvalid)
	}
	return errs
}

// PasswordChange is the change-password form. Confirm never leaves the client.
type PasswordChange struct {
	Old     string `json:"old_password"`
	New     string `json:"new_password"`
	Confirm string `json:"-"`
}

// Validate checks the confirmation and the minimum length
func (p PasswordChange) Validate() error {
	errs := FieldErrors{}
	if p.Old == "" {
		errs.Set("old_password", MsgPasswordCurrent)
	}
	if p.New != p.Confirm {
		errs.Set("new_password", MsgPasswordMismatch)
	} else if len([]rune(p.New)) < MinPasswordLength {
		errs.Set("new_password", MsgPasswordShort)
	}
	return errs.Err()
}
