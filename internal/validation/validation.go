// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/canonical/squad-service/internal/invitecode"
)

var mailboxRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Violation is the first rule a value broke
type Violation struct {
	Field string
	Tag   string
	Param string
}

func (v *Violation) Reason() string {
	switch v.Tag {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", v.Param)
	case "max":
		return fmt.Sprintf("must be at most %s characters", v.Param)
	case "mailbox":
		return "must be a valid email address"
	case "invitecode":
		return fmt.Sprintf("must be %d characters of A-Z and 0-9", invitecode.Length)
	case "oneof":
		return fmt.Sprintf("must be one of %s", v.Param)
	case "latitude", "longitude":
		return fmt.Sprintf("must be a valid %s", v.Tag)
	default:
		return fmt.Sprintf("failed the %s rule", v.Tag)
	}
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s %s", v.Field, v.Reason())
}

// Validator wraps the go-playground validator with the rules used across
// the service
type Validator struct {
	v *validator.Validate
}

// Struct validates s and returns a *Violation for the first failing field
func (val *Validator) Struct(s any) error {
	return val.first(val.v.Struct(s))
}

// Var validates a single value, the violation is reported against field
func (val *Validator) Var(field string, value any, tag string) error {
	err := val.first(val.v.Var(value, tag))

	var violation *Violation
	if errors.As(err, &violation) {
		violation.Field = field
	}

	return err
}

func (val *Validator) first(err error) error {
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return fmt.Errorf("failed to validate: %w", err)
	}

	fe := errs[0]

	return &Violation{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()}
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return strings.ToLower(f.Name)
	default:
		return name
	}
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(jsonFieldName)

	// registering a well-formed tag never fails
	_ = v.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
		return mailboxRegex.MatchString(fl.Field().String())
	})

	_ = v.RegisterValidation("invitecode", func(fl validator.FieldLevel) bool {
		return invitecode.Valid(fl.Field().String())
	})

	return &Validator{v: v}
}
