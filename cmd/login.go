package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"
	"golang.org/x/term"

	"github.com/s0up4200/roosterteeth/roosterteeth"
)

var logoutFlag bool

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Verify a password and store it in the system keyring",
	Long: `Prompt for the password of a Rooster Teeth account, check it against the
auth server and store it in the system keyring. Later commands find it there
when auth.username is configured or --login is given.

With --logout the stored password is removed instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := cfg.Auth.Username
		if len(args) == 1 {
			username = args[0]
		}
		if username == "" {
			return fmt.Errorf("no username given and auth.username is not set")
		}

		if logoutFlag {
			if err := deletePassword(username); err != nil && !errors.Is(err, keyring.ErrNotFound) {
				return fmt.Errorf("failed to remove password from keyring: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed stored password for %s\n", username)
			return nil
		}

		password, err := readPassword(cmd, username)
		if err != nil {
			return err
		}

		// NewClient performs the token exchange, so a client means the password works.
		_, err = roosterteeth.NewClient(cmd.Context(),
			roosterteeth.Login{Username: username, Password: password},
			logger,
			roosterteeth.WithAuthURL(cfg.API.AuthURL),
			roosterteeth.WithClientID(cfg.API.ClientID),
			roosterteeth.WithTimeout(cfg.API.Timeout),
			roosterteeth.WithUserAgent(cfg.API.UserAgent),
		)
		if err != nil {
			return err
		}

		if err := savePassword(username, password); err != nil {
			return fmt.Errorf("failed to store password in keyring: %w", err)
		}

		logger.Info().Str("username", username).Msg("Login verified")
		fmt.Fprintf(cmd.OutOrStdout(), "Password for %s stored in the system keyring\n", username)
		return nil
	},
}

// readPassword prompts without echo on a terminal and reads a single line
// from stdin otherwise.
func readPassword(cmd *cobra.Command, username string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Password for %s: ", username)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("%w: empty input", errNoPassword)
	}
	return password, nil
}

func init() {
	loginCmd.Flags().BoolVar(&logoutFlag, "logout", false, "remove the stored password")
	rootCmd.AddCommand(loginCmd)
}
