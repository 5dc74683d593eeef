package source

import "errors"

// ErrNoHeader is returned when an input table has no header row.
var ErrNoHeader = errors.New("input table has no header row")
