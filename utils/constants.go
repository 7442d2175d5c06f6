// File: utils/constants.go
package utils

// PolicyCachePrefix is the prefix used for Redis keys holding category settings.
const PolicyCachePrefix = "policy:"

// DateLayout is the civil date format used on the wire and in storage.
const DateLayout = "2006-01-02"
