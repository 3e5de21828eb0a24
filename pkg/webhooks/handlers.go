// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ory/hydra/v2/oauth2"

	"github.com/canonical/squad-service/internal/http/types"
	"github.com/canonical/squad-service/internal/logging"
)

// APIKeyHeader carries the key configured as api_key auth on the Kratos and
// Hydra web hooks
const APIKeyHeader = "Authorization"

type API struct {
	service ServiceInterface
	apiKey  string
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, apiKey string, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		apiKey:  apiKey,
		logger:  logger,
	}
}

// RegisterEndpoints mounts the hooks behind the API key, without a key the
// hooks are not served at all
func (a *API) RegisterEndpoints(mux chi.Router) {
	if a.apiKey == "" {
		a.logger.Warnf("webhook API key is not set, identity hooks are disabled")
		return
	}

	mux.Group(func(r chi.Router) {
		r.Use(a.authenticate)

		r.Post("/api/v0/webhooks/registration", a.registration)
		r.Post("/api/v0/webhooks/token", a.tokenHook)
	})
}

func (a *API) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(strings.TrimPrefix(r.Header.Get(APIKeyHeader), "Bearer "))

		if subtle.ConstantTimeCompare([]byte(key), []byte(a.apiKey)) != 1 {
			a.logger.Security().AuthzFailure("webhook", r.URL.Path)
			types.WriteError(w, http.StatusUnauthorized, "unauthenticated", "invalid webhook key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (a *API) registration(w http.ResponseWriter, r *http.Request) {
	var identity KratosIdentity
	if err := json.NewDecoder(r.Body).Decode(&identity); err != nil {
		a.logger.Errorf("failed to decode registration hook: %v", err)
		types.WriteError(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}

	err := a.service.HandleRegistration(r.Context(), identity.ID, identity.Traits.Email, identity.Traits.Name)

	if errors.Is(err, ErrEmailTaken) {
		a.logger.Security().AuthzFailure(identity.ID, "registration")
		types.WriteError(w, http.StatusConflict, "identity_conflict", err.Error())
		return
	}

	if err != nil {
		a.logger.Errorf("registration hook failed: %v", err)
		types.WriteError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (a *API) tokenHook(w http.ResponseWriter, r *http.Request) {
	req := new(oauth2.TokenHookRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		a.logger.Errorf("failed to decode token hook: %v", err)
		types.WriteError(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}

	resp, err := a.service.HandleTokenHook(r.Context(), req)
	if err != nil {
		a.logger.Errorf("token hook failed: %v", err)
		types.WriteError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	types.WriteJSON(w, http.StatusOK, resp)
}
