// Package repository contains the data access layer: the tabular query
// used to load the directory, the activity log insert, the query result
// cache and the retry policy used for stale connections.
package repository

import "errors"

// ErrNoPool is returned when the service started without a database
// pool.  Handlers translate it into an empty directory and a notice.
var ErrNoPool = errors.New("no database connection available")
