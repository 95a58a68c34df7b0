// Package client is the HTTP layer between the PlanA CLI and the PlanA REST API.
//
// # Overview
//
// The package provides:
//  1. The Requester contract used by services and stores, with two
//     implementations bundled in API: Public (never sends credentials) and
//     Authenticated (sends "Authorization: Bearer <access>").
//  2. Token handling: tokens live in a TokenStore (the local metadata table).
//     An expired access token is refreshed before sending; a 401 answer
//     triggers one refresh through POST /users/auth/token/refresh/ and a single
//     retry. A failed refresh clears the stored tokens.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses become *HTTPError, which unwraps to ErrUnauthorized
// (401/403), ErrNotFound (404) or ErrUnavailable (5xx). Transport failures
// wrap ErrUnavailable. Match them with errors.Is.
//
// Requests are logged at debug level with a per-request X-Request-ID.
package client
