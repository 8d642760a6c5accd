package utils

import (
	"crypto/md5"
	"encoding/hex"
	"log"
	"strings"
)

// HashText returns a stable hex identifier for a piece of article text.
func HashText(text string) string {
	sum := md5.Sum([]byte(strings.TrimSpace(text)))
	return hex.EncodeToString(sum[:])
}

// GoSafe runs fn in a new goroutine and recovers from panics so a single
// failure cannot take down the process.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("recovered from panic: %v", r)
			}
		}()
		fn()
	}()
}
