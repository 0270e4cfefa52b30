// Package lifecycle holds shared application lifecycle settings.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown hooks so a stuck dependency
// cannot hang the process forever.
const DefaultTimeout = 10 * time.Second
