package auth

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// GravatarURL derives the default avatar for an email-registered account.
// Gravatar addresses images by the md5 hex of the trimmed, lowercased email;
// d=mm falls back to the "mystery man" placeholder for addresses with no
// gravatar, r=pg keeps the image rating safe for listing pages.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", hash)
}
