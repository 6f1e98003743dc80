// Package services holds the backend's use cases: accounts and tokens,
// the public catalog, and answer submission with its XP, streak and
// achievement bookkeeping. Services own transactions; repositories are
// obtained from a repomanager.RepositoryManager per call.
package services
