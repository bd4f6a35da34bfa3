// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package router

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// placeholderSegment matches a path segment that is wholly a placeholder.
var placeholderSegment = regexp.MustCompile(`^\{[A-Za-z0-9_]+\}$`)

// paramRoute is a parameterized route with its compiled matcher.
type paramRoute struct {
	*Route
	matcher *regexp.Regexp
}

// Match is a resolved route together with its extracted parameters.
type Match struct {
	Route  *Route
	Params []string
}

// Table stores the registered routes.
//
// Registration is expected to happen once during startup. After that the
// table is only read and is safe for concurrent use by any number of
// goroutines.
type Table struct {
	literal map[string]map[string]*Route
	params  map[string][]*paramRoute
}

// NewTable returns an empty route table.
func NewTable() *Table {
	return &Table{
		literal: make(map[string]map[string]*Route),
		params:  make(map[string][]*paramRoute),
	}
}

// Register stores handler under (method, pattern).
//
// Duplicate policy: registering the same literal path twice for a method
// replaces the earlier handler, so the last registration wins. Registering
// the same parameterized pattern twice replaces the handler but keeps the
// position of the first registration.
func (t *Table) Register(method, pattern string, handler HandlerFunc, opts ...RouteOption) error {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		return fmt.Errorf("%w: empty method", ErrInvalidRoute)
	}
	if handler == nil {
		return fmt.Errorf("%w: nil handler for %s %s", ErrInvalidRoute, method, pattern)
	}
	if !strings.HasPrefix(pattern, "/") {
		return fmt.Errorf("%w: pattern %q must start with '/'", ErrInvalidRoute, pattern)
	}

	pattern = normalizePath(pattern)
	route := &Route{Method: method, Pattern: pattern, Handler: handler}
	for _, opt := range opts {
		opt(route)
	}

	matcher, hasPlaceholders, err := compilePattern(pattern)
	if err != nil {
		return err
	}

	if !hasPlaceholders {
		if t.literal[method] == nil {
			t.literal[method] = make(map[string]*Route)
		}
		t.literal[method][pattern] = route
		return nil
	}

	for i, existing := range t.params[method] {
		if existing.Pattern == pattern {
			t.params[method][i] = &paramRoute{Route: route, matcher: matcher}
			return nil
		}
	}
	t.params[method] = append(t.params[method], &paramRoute{Route: route, matcher: matcher})

	return nil
}

// MustRegister is like Register but panics on error. It is meant for route
// wiring at startup where a bad route is a programming error.
func (t *Table) MustRegister(method, pattern string, handler HandlerFunc, opts ...RouteOption) {
	if err := t.Register(method, pattern, handler, opts...); err != nil {
		panic(err)
	}
}

func (t *Table) Get(pattern string, handler HandlerFunc, opts ...RouteOption) {
	t.MustRegister(http.MethodGet, pattern, handler, opts...)
}

func (t *Table) Post(pattern string, handler HandlerFunc, opts ...RouteOption) {
	t.MustRegister(http.MethodPost, pattern, handler, opts...)
}

func (t *Table) Put(pattern string, handler HandlerFunc, opts ...RouteOption) {
	t.MustRegister(http.MethodPut, pattern, handler, opts...)
}

func (t *Table) Delete(pattern string, handler HandlerFunc, opts ...RouteOption) {
	t.MustRegister(http.MethodDelete, pattern, handler, opts...)
}

// Resolve finds the route for method and path.
//
// The path is normalized first. An exact literal match wins over any
// parameterized pattern. Otherwise the parameterized patterns registered for
// method are tried in registration order and the first one accepting the
// path wins. Returns [ErrRouteNotFound] when nothing matches.
func (t *Table) Resolve(method, path string) (*Match, error) {
	method = strings.ToUpper(method)
	path = normalizePath(path)

	if route, ok := t.literal[method][path]; ok {
		return &Match{Route: route, Params: []string{}}, nil
	}

	for _, pr := range t.params[method] {
		groups := pr.matcher.FindStringSubmatch(path)
		if groups == nil {
			continue
		}
		return &Match{Route: pr.Route, Params: groups[1:]}, nil
	}

	return nil, ErrRouteNotFound
}

// Routes returns every registered route: literal routes first, then the
// parameterized ones in registration order.
func (t *Table) Routes() []Route {
	routes := make([]Route, 0)
	for _, byPath := range t.literal {
		for _, r := range byPath {
			routes = append(routes, *r)
		}
	}
	for _, byMethod := range t.params {
		for _, pr := range byMethod {
			routes = append(routes, *pr.Route)
		}
	}
	return routes
}

// normalizePath strips trailing slashes and maps the empty path to "/".
func normalizePath(path string) string {
	path = strings.TrimRight(path, "/")
	if path == "" {
		return "/"
	}
	return path
}

// compilePattern turns pattern into an anchored matcher where every
// placeholder segment captures one or more non-slash characters.
func compilePattern(pattern string) (*regexp.Regexp, bool, error) {
	segments := strings.Split(pattern, "/")
	hasPlaceholders := false

	var b strings.Builder
	b.WriteString("^")
	for i, segment := range segments {
		if i > 0 {
			b.WriteString("/")
		}

		switch {
		case placeholderSegment.MatchString(segment):
			hasPlaceholders = true
			b.WriteString("([^/]+)")
		case strings.ContainsAny(segment, "{}"):
			return nil, false, fmt.Errorf("%w: segment %q of %q must be a literal or a single {placeholder}", ErrInvalidRoute, segment, pattern)
		default:
			b.WriteString(regexp.QuoteMeta(segment))
		}
	}
	b.WriteString("$")

	if !hasPlaceholders {
		return nil, false, nil
	}

	matcher, err := regexp.Compile(b.String())
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrInvalidRoute, err)
	}
	return matcher, true, nil
}
