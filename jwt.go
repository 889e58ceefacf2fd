package jwt

import (
	"time"
)

// Clock is the time source of a Policy without a Now function.
// It can be overridden to use any other time value, useful for testing.
//
// Usage: now := Clock()
var Clock = time.Now
