// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/squad-service/internal/logging"
)

type fakeClient struct {
	calls int
	err   error
}

func (f *fakeClient) Statement(context.Context) sq.StatementBuilderType {
	return sq.StatementBuilder
}

func (f *fakeClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	f.calls++
	f.err = fn(ctx)
	return f.err
}

func (f *fakeClient) Ping(context.Context) error { return nil }

func (f *fakeClient) Close() {}

func TestTransactionMiddleware(t *testing.T) {
	tests := []struct {
		name          string
		method        string
		status        int
		expectedCalls int
		expectErr     bool
	}{
		{name: "GET skips the transaction", method: http.MethodGet, status: http.StatusOK, expectedCalls: 0},
		{name: "POST commits", method: http.MethodPost, status: http.StatusCreated, expectedCalls: 1},
		{name: "POST failure rolls back", method: http.MethodPost, status: http.StatusConflict, expectedCalls: 1, expectErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			client := new(fakeClient)

			handler := TransactionMiddleware(client, logging.NewNoopLogger())(
				http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(test.status)
				}),
			)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(test.method, "/", nil))

			if rec.Code != test.status {
				t.Fatalf("expected status %d, got %d", test.status, rec.Code)
			}

			if client.calls != test.expectedCalls {
				t.Fatalf("expected %d transactions, got %d", test.expectedCalls, client.calls)
			}

			if (client.err != nil) != test.expectErr {
				t.Fatalf("unexpected transaction error %v", client.err)
			}
		})
	}
}

func TestPagination(t *testing.T) {
	if got := PageSize(0); got != defaultPageSize {
		t.Fatalf("expected default page size, got %d", got)
	}
	if got := PageSize(10_000); got != maxPageSize {
		t.Fatalf("expected clamped page size, got %d", got)
	}
	if got := Offset(3, 20); got != 40 {
		t.Fatalf("expected offset 40, got %d", got)
	}
	if got := Offset(-1, 20); got != 0 {
		t.Fatalf("expected offset 0, got %d", got)
	}
}
