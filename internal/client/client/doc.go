// Package client is the fisikaap API client: the single place where the app
// talks to the backend.
//
// # Overview
//
// Every call goes through (*HTTPClient).Request, which
//  1. resolves the endpoint against the configured base URL,
//  2. sends Content-Type/Accept JSON headers and, when the TokenStore holds a
//     credential, "Authorization: Bearer <token>",
//  3. interprets the response into an Envelope or one of the typed errors
//     below.
//
// The endpoint methods (Login, Profile, Topics, SubmitAnswer, ...) are thin
// wrappers that fix method, path and payload type and decode envelope data
// with Do.
//
// # Error Handling
//
//   - *NetworkError: transport failure or timeout. errors.Is(err, ErrUnavailable);
//     timeouts also match ErrTimeout.
//   - *SessionExpiredError: HTTP 401. If the TokenStore still holds the token
//     that was sent, it is purged before the error is returned, whatever the
//     body contains. errors.Is(err, ErrUnauthorized).
//   - *HTTPError: any other non-2xx status, with the server message when the
//     body is a JSON envelope.
//   - *MalformedResponseError: a 2xx response whose body is not JSON.
//
// A 2xx response with {"status":"error"} is not an error here: callers
// inspect Envelope.OK and Envelope.Errors for server-side validation
// failures. Logout is the one method that never fails.
//
// # Local database
//
// InitDatabase opens the client's SQLite file and applies the embedded goose
// migrations (metadata key-value table and response cache).
package client
