package group

import (
	"strings"

	"github.com/google/uuid"
)

const inviteCodeLength = 8

// GenerateInviteCode produces a short uppercase join code
func GenerateInviteCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:inviteCodeLength])
}

// NormalizeInviteCode canonicalizes user-supplied codes before lookup
func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
