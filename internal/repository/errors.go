package repository

import "github.com/pkg/errors"

// ErrNoRowsAffected is returned when a conditional write matched nothing,
// typically because the row changed or disappeared since it was read.
var ErrNoRowsAffected = errors.New("no rows affected")
