// Package router implements the route table and the dispatcher of the JSON
// API.
//
// A [Table] associates (method, path pattern) pairs with [HandlerFunc]
// values. Patterns are either literal paths or paths whose segments may be
// placeholders written as {identifier}. Resolution prefers an exact literal
// match and otherwise tries the parameterized patterns of the method in
// registration order.
//
// A [Dispatcher] resolves the route of an inbound request, authenticates
// protected routes, invokes the handler and writes the result as a JSON
// envelope. Every outcome, including unresolved routes and handler panics,
// is answered with an envelope.
package router
