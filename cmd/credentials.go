package cmd

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/s0up4200/roosterteeth/config"
	"github.com/s0up4200/roosterteeth/roosterteeth"
)

// keyringService is the service name passwords are stored under.
const keyringService = "roosterteeth"

// errNoPassword is returned when a login is requested but no password can be found.
var errNoPassword = errors.New("no password configured")

// savePassword stores the password for username in the system keyring.
func savePassword(username, password string) error {
	return keyring.Set(keyringService, username, password)
}

// loadPassword retrieves the password for username from the system keyring.
func loadPassword(username string) (string, error) {
	return keyring.Get(keyringService, username)
}

// deletePassword removes the password for username from the system keyring.
func deletePassword(username string) error {
	return keyring.Delete(keyringService, username)
}

// resolveCredential picks the credential for the API client. A configured
// username, or the --login flag, selects a Login; everything else is
// anonymous. The password comes from the config (or RT_AUTH_PASSWORD) and
// falls back to the keyring.
func resolveCredential(auth config.AuthConfig, forceLogin bool) (roosterteeth.Credential, error) {
	if !auth.HasLogin() {
		if forceLogin {
			return nil, fmt.Errorf("--login requires auth.username to be set")
		}
		return roosterteeth.Anonymous, nil
	}

	password := auth.Password
	if password == "" && auth.UseKeyring {
		stored, err := loadPassword(auth.Username)
		switch {
		case err == nil:
			password = stored
		case errors.Is(err, keyring.ErrNotFound):
		default:
			return nil, fmt.Errorf("failed to read password from keyring: %w", err)
		}
	}

	if password == "" {
		if forceLogin {
			return nil, fmt.Errorf("%w for %s; run 'roosterteeth login' or set RT_AUTH_PASSWORD", errNoPassword, auth.Username)
		}
		logger.Warn().Str("username", auth.Username).Msg("No password found, continuing anonymously")
		return roosterteeth.Anonymous, nil
	}

	return roosterteeth.Login{Username: auth.Username, Password: password}, nil
}
