// Package lifecycle holds values shared by the fx start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds a single start or stop hook (ping, shutdown, close).
const DefaultTimeout = 10 * time.Second
