// Package client contains the client-side building blocks for talking to
// the StudyBuddy backend and for bootstrapping local storage.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): auth,
//     profile creation, course/major creation and listing, the profile
//     listing used by the candidate feed, and swipe recording.
//  2. A JSON-over-HTTP implementation (see HTTPClient) against a single base
//     URL. Request and response bodies use the backend's snake_case keys.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Failures fall into three kinds that callers match with errors.Is/As:
//   - ErrTransport: the request never produced an HTTP response
//     (network, DNS, timeout). Concrete type *TransportError.
//   - *StatusError: the backend answered with an unexpected status; the
//     message comes from the body's "error", "message" or "detail" field.
//   - ErrDecoding: the body was received but could not be parsed.
//
// HumanMessage turns any of them into a string fit for direct display.
//
// # Response shapes
//
// Auth responses carry the user id either at the top level ("userId",
// "user_id" or "id") or nested under "user". DecodeUserID tries the
// top-level shape first, then the nested one. Listings accept either a bare
// JSON array or an object wrapping it.
package client
