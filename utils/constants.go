// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = time.Hour

// RoleCachePrefix is the prefix used for Redis profile-role cache keys.
const RoleCachePrefix = "role:"

// RoleCacheTTL is kept short so role changes propagate quickly.
const RoleCacheTTL = 5 * time.Minute
