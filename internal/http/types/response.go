// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// MaxBodySize caps every decoded request body
const MaxBodySize = 1 << 20

// ErrorResponse is the body of every non 2xx reply
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Kind    string `json:"kind"`
	// Code is set on retryable partial failures
	Code string `json:"code,omitempty"`
}

type Response struct {
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
	Status  int    `json:"status"`
	Meta    *Meta  `json:"_meta,omitempty"`
}

type Meta struct {
	Page int64 `json:"page"`
	Size int64 `json:"size"`
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}

// WriteData wraps data in a Response envelope
func WriteData(w http.ResponseWriter, status int, data any, meta *Meta) {
	WriteJSON(w, status, Response{Data: data, Status: status, Meta: meta})
}

func WriteError(w http.ResponseWriter, status int, kind, message string) {
	WriteJSON(w, status, ErrorResponse{Status: status, Message: message, Kind: kind})
}

// DecodeJSON reads a single JSON document from the request body, an empty
// body leaves v untouched
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodySize))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("malformed request body: %w", err)
	}

	return nil
}

// ParsePage reads the page and size query parameters, missing or malformed
// values are returned as 0 and left to the store defaults
func ParsePage(r *http.Request) *Meta {
	q := r.URL.Query()

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	size, _ := strconv.ParseInt(q.Get("size"), 10, 64)

	return &Meta{Page: page, Size: size}
}
