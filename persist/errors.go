package persist

import "errors"

// ErrNoSnapshot is returned by Load when the store has never been saved to.
var ErrNoSnapshot = errors.New("persist: no snapshot stored")
