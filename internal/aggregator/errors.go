package aggregator

import "errors"

// ErrEmptyQuery is returned for blank search input; the check is local
// and never reaches the network.
var ErrEmptyQuery = errors.New("empty search query")
