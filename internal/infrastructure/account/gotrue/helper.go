package gotrue

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/role"
	crerr "github.com/cockroachdb/errors"
)

func isCircuitFailure(err error) bool {
	return err != nil && crerr.Is(err, errGoTrueTransient)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "auth:token:" + hex.EncodeToString(sum[:])
}

// roleFromMetadata reads the application role. app_metadata is only writable
// server-side, so it wins over user_metadata.
func roleFromMetadata(appMetadata, userMetadata map[string]any) string {
	for _, metadata := range []map[string]any{appMetadata, userMetadata} {
		value, _ := metadata["role"].(string)
		value = strings.TrimSpace(value)
		if _, ok := role.Lookup(value); ok {
			return value
		}
	}
	return ""
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return baseURL + path
}
