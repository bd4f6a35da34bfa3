// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/campus-ride/internal/apperr"
)

// maxBodyBytes bounds the JSON bodies accepted by [Call.Decode].
const maxBodyBytes = 1 << 20

// ErrInvalidJSON is returned by [Call.Decode] when the request body is not a
// JSON document of the expected shape.
var ErrInvalidJSON = apperr.Validation("invalid JSON body", nil)

// HandlerFunc is a domain handler. It receives the parameters extracted
// from the path and, on protected routes, the authenticated user id.
//
// A handler reports failures by returning an error; *apperr.Error values
// select the response status, any other error is answered with a generic
// 500 envelope.
type HandlerFunc func(ctx context.Context, call *Call) (Result, error)

// Route is a registered (method, pattern) association.
type Route struct {
	Method    string
	Pattern   string
	Handler   HandlerFunc
	Protected bool
}

// RouteOption configures a route at registration time.
type RouteOption func(*Route)

// Protected marks a route as requiring an authenticated caller.
func Protected() RouteOption {
	return func(r *Route) {
		r.Protected = true
	}
}

// Call is the input of a single handler invocation.
type Call struct {
	// Request is the inbound HTTP request.
	Request *http.Request

	// Params holds the placeholder values of the matched pattern, left to
	// right.
	Params []string

	// UserID is the authenticated caller. Zero on unprotected routes.
	UserID int64

	// Authenticated reports whether UserID was set by the authenticator.
	Authenticated bool
}

// Param returns the i-th path parameter or "" when out of range.
func (c *Call) Param(i int) string {
	if i < 0 || i >= len(c.Params) {
		return ""
	}
	return c.Params[i]
}

// Args returns the handler arguments in invocation order: the authenticated
// user id first (protected routes only), then the path parameters.
func (c *Call) Args() []any {
	args := make([]any, 0, len(c.Params)+1)
	if c.Authenticated {
		args = append(args, c.UserID)
	}
	for _, p := range c.Params {
		args = append(args, p)
	}
	return args
}

// Decode reads the JSON request body into dst. An empty body leaves dst
// untouched so that required-field validation reports the missing fields.
func (c *Call) Decode(dst any) error {
	if c.Request == nil || c.Request.Body == nil {
		return nil
	}

	dec := json.NewDecoder(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return ErrInvalidJSON.Wrap(err)
	}
	return nil
}

// Result is the successful outcome of a handler.
type Result struct {
	Data    any
	Message string
	// Status defaults to 200 when zero.
	Status int
	// Cookies are set on the response before the body is written.
	Cookies []*http.Cookie
}

// OK returns a 200 result.
func OK(data any, message string) Result {
	return Result{Data: data, Message: message, Status: http.StatusOK}
}

// Created returns a 201 result.
func Created(data any, message string) Result {
	return Result{Data: data, Message: message, Status: http.StatusCreated}
}
