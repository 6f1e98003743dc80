// Package models defines the client-side wire records exchanged with the
// fisikaap backend: the identity record, catalog entries, gamification
// records and the request payloads of the auth endpoints.
package models
