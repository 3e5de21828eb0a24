// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package validation

import (
	"errors"
	"testing"
)

type signUp struct {
	Email       string `json:"email" validate:"required,mailbox"`
	Password    string `json:"password" validate:"min=6"`
	DisplayName string `json:"display_name" validate:"required"`
}

func TestStruct(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name  string
		input signUp
		field string
		tag   string
	}{
		{name: "valid", input: signUp{Email: "a@x.com", Password: "secret1", DisplayName: "Alice"}},
		{name: "missing tld", input: signUp{Email: "a@x", Password: "secret1", DisplayName: "Alice"}, field: "email", tag: "mailbox"},
		{name: "space in email", input: signUp{Email: "a b@x.com", Password: "secret1", DisplayName: "Alice"}, field: "email", tag: "mailbox"},
		{name: "short password", input: signUp{Email: "a@x.com", Password: "12345", DisplayName: "Alice"}, field: "password", tag: "min"},
		{name: "empty name", input: signUp{Email: "a@x.com", Password: "secret1"}, field: "display_name", tag: "required"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := v.Struct(test.input)

			if test.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var violation *Violation
			if !errors.As(err, &violation) {
				t.Fatalf("expected a violation, got %v", err)
			}

			if violation.Field != test.field || violation.Tag != test.tag {
				t.Fatalf("expected %s/%s, got %s/%s", test.field, test.tag, violation.Field, violation.Tag)
			}

			if violation.Reason() == "" {
				t.Fatal("expected a reason")
			}
		})
	}
}

func TestVar(t *testing.T) {
	v := NewValidator()

	if err := v.Var("code", "7K2M9P", "invitecode"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := v.Var("code", "ABCDE", "invitecode")

	var violation *Violation
	if !errors.As(err, &violation) || violation.Field != "code" {
		t.Fatalf("expected a violation on code, got %v", err)
	}
}
