// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/MKhiriev/campus-ride/internal/apperr"
	"github.com/MKhiriev/campus-ride/internal/logger"
	"github.com/MKhiriev/campus-ride/internal/utils"
	"github.com/rs/zerolog"
)

// ErrUnauthenticated is the single failure reported for protected routes,
// whichever authentication gate rejected the request.
var ErrUnauthenticated = apperr.Unauthenticated("invalid or expired token")

var errRouteNotFound = apperr.NotFound("route not found")

// Authenticator turns a raw token into the id of the authenticated user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (int64, error)
}

// TokenExtractor discovers the raw token carried by a request. It returns ""
// when the request carries none.
type TokenExtractor func(r *http.Request) string

// Dispatcher resolves, authenticates and invokes routes of a [Table].
type Dispatcher struct {
	table   *Table
	auth    Authenticator
	extract TokenExtractor
	logger  *logger.Logger
}

// NewDispatcher returns a Dispatcher serving table.
func NewDispatcher(table *Table, auth Authenticator, extract TokenExtractor, logger *logger.Logger) *Dispatcher {
	return &Dispatcher{
		table:   table,
		auth:    auth,
		extract: extract,
		logger:  logger,
	}
}

func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.Dispatch(w, r.Method, r.URL.Path, r)
}

// Dispatch handles a single request for (method, path) and writes the
// response envelope to w. It never panics.
func (d *Dispatcher) Dispatch(w http.ResponseWriter, method, path string, r *http.Request) {
	log := d.requestLogger(r)

	match, err := d.table.Resolve(method, path)
	if err != nil {
		d.writeError(w, log, errRouteNotFound)
		return
	}

	call := &Call{Request: r, Params: match.Params}
	ctx := r.Context()

	if match.Route.Protected {
		userID, authErr := d.authenticate(ctx, r)
		if authErr != nil {
			d.writeError(w, log, authErr)
			return
		}

		call.UserID = userID
		call.Authenticated = true
		ctx = utils.WithUserID(ctx, userID)

		child := log.GetChildLogger()
		child.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Int64("user_id", userID)
		})
		log = child
		ctx = log.WithContext(ctx)
		call.Request = r.WithContext(ctx)
	}

	result, err := d.invoke(ctx, match.Route, call)
	if err != nil {
		d.writeError(w, log, err)
		return
	}

	if err = WriteSuccess(w, result); err != nil {
		log.Err(err).Str("func", "*Dispatcher.Dispatch").Msg("error writing success envelope")
	}
}

// authenticate runs the authenticator for a protected route. Every failure
// collapses into ErrUnauthenticated except internal errors of the
// authenticator's own collaborators.
func (d *Dispatcher) authenticate(ctx context.Context, r *http.Request) (int64, error) {
	if d.auth == nil {
		return 0, apperr.Internal("no authenticator configured", nil)
	}

	token := ""
	if d.extract != nil {
		token = d.extract(r)
	}
	if token == "" {
		return 0, ErrUnauthenticated
	}

	userID, err := d.auth.Authenticate(ctx, token)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindUnauthenticated {
			return 0, ErrUnauthenticated.Wrap(err)
		}
		return 0, err
	}
	return userID, nil
}

// invoke calls the route handler and converts a panic into an internal
// error.
func (d *Dispatcher) invoke(ctx context.Context, route *Route, call *Call) (result Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = apperr.Internal("handler panicked", fmt.Errorf("panic in %s %s: %v\n%s", route.Method, route.Pattern, rec, debug.Stack()))
		}
	}()

	if route.Handler == nil {
		return Result{}, apperr.Internal("handler not invocable", fmt.Errorf("%s %s has no handler", route.Method, route.Pattern))
	}

	return route.Handler(ctx, call)
}

func (d *Dispatcher) writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	appErr, ok := apperr.As(err)
	switch {
	case !ok || appErr.Kind == apperr.KindInternal:
		log.Err(err).Str("func", "*Dispatcher.writeError").Msg("internal error while dispatching request")
	case errors.Is(err, ErrUnauthenticated):
		log.Debug().Err(err).Str("func", "*Dispatcher.writeError").Msg("request rejected by authenticator")
	}

	if writeErr := WriteAppError(w, err); writeErr != nil {
		log.Err(writeErr).Str("func", "*Dispatcher.writeError").Msg("error writing error envelope")
	}
}

func (d *Dispatcher) requestLogger(r *http.Request) *logger.Logger {
	if zerolog.Ctx(r.Context()).GetLevel() != zerolog.Disabled {
		return logger.FromRequest(r)
	}
	if d.logger != nil {
		return d.logger
	}
	return logger.Nop()
}
