// Package humanize formats byte counts for display.
package humanize

import "fmt"

var suffixes = [...]string{"B", "KB", "MB", "GB", "TB"}

// Size renders n with the largest unit not exceeding it, e.g. 4096 -> "4 KB".
// Division truncates, so 1536 renders as "1 KB".
func Size(n uint64) string {
	i := 0
	for n >= 1024 && i < len(suffixes)-1 {
		n /= 1024
		i++
	}
	return fmt.Sprintf("%d %s", n, suffixes[i])
}
