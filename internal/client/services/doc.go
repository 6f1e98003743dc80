// Package services contains the application services the CLI drives on top
// of the API client: the catalog service with its offline fallback and the
// connectivity watcher.
package services
