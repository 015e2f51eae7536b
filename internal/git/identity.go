package git

import (
	"context"
	"strings"
)

// Identity is the locally configured commit author.
type Identity struct {
	Name  string
	Email string
}

func (i Identity) String() string {
	return i.Name + " <" + i.Email + ">"
}

// EnsureIdentity returns the configured user identity, failing with a
// *ConfigError when user.name or user.email is unset.
func EnsureIdentity(ctx context.Context, repoPath string) (Identity, error) {
	name, nameErr := outputGit(ctx, repoPath, "config", "user.name")
	email, emailErr := outputGit(ctx, repoPath, "config", "user.email")

	id := Identity{
		Name:  strings.TrimSpace(string(name)),
		Email: strings.TrimSpace(string(email)),
	}
	if nameErr != nil || emailErr != nil || id.Name == "" || id.Email == "" {
		return Identity{}, &ConfigError{Reason: "git user not configured: set user.name and user.email first"}
	}
	return id, nil
}
