package user

import (
	"os"
	"os/user"
	"strings"

	"github.com/thenoetrevino/lanes/internal/types"
)

// GetCurrentUsername returns the current system username.
// It tries multiple methods with fallbacks:
// 1. user.Current() - most reliable, gets username from OS
// 2. USER environment variable - fallback for restricted environments
// 3. "unknown" - final fallback to ensure a non-empty value
func GetCurrentUsername() string {
	currentUser, err := user.Current()
	if err != nil {
		username := os.Getenv("USER")
		if username == "" {
			return "unknown"
		}
		return username
	}
	return currentUser.Username
}

// ResolveViewer picks the identity used for "mine" and permission checks:
// the configured viewer if set, else the OS user name.
func ResolveViewer(configured string) types.UserID {
	if v := strings.TrimSpace(configured); v != "" {
		return types.UserID(v)
	}
	return types.UserID(GetCurrentUsername())
}
