package hashutils

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

func generateHash(data string) string {
	hash := sha256.New()
	hash.Write([]byte(data))
	return fmt.Sprintf("%x", hash.Sum(nil))
}

// GetCacheKey builds a key store friendly name: the readable prefix is kept so a whole
// content type can be purged, the parameters are hashed.
func GetCacheKey(prefix string, params ...string) string {
	return prefix + "." + generateHash(strings.Join(params, "\x1f"))
}
