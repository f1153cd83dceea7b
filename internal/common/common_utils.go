package common

import (
	"fmt"
	"strings"
	"time"
)

func GetResponseTime(init time.Time) string {
	timeDiff := time.Since(init).Milliseconds()
	return fmt.Sprintf("%dms", timeDiff)
}

// SuggestCacheKey builds the cache key for a suggest query against one dataset version.
func SuggestCacheKey(prefix, version, query string) string {
	return prefix + version + ":" + strings.ToLower(query)
}
