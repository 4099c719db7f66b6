package repo

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound reports a lookup that matched no rows. Services translate it
// into the 404 wire error.
var ErrNotFound = errors.New("not found")

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
