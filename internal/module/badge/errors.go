package badge

import "errors"

// ErrUnknownBadge is returned when awarding a type outside the catalog.
var ErrUnknownBadge = errors.New("unknown badge type")
