// Package repotest provides in-memory repository implementations for service
// and HTTP tests. Misses return pgx.ErrNoRows like the Postgres versions.
package repotest

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/lawfirm-api/internal/repository"
)

// Clock is overridable so tests can pin timestamps.
var Clock = time.Now

func newID() string { return uuid.NewString() }

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint, Message: "duplicate key value violates unique constraint"}
}

func paginate[T any](items []T, page repository.Page) []T {
	limit, offset := page.Bounds()
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func sortBy[T any](items []T, less func(a, b T) bool) {
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}
