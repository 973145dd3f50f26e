package validators

import "strings"

// BearerToken extracts the token from an Authorization header value. The
// scheme prefix is optional and case-insensitive.
func BearerToken(raw string) string {
	token := strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}
