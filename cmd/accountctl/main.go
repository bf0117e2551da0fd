// accountctl is a command-line client for the account service. It keeps a
// single session (token + account snapshot) in the user config dir and
// presents it on every authenticated call.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Anurag-Zel/User-Registration/internal/session"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "accountctl",
	Short: "Client for the recruitment platform account service",
}

func main() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("ACCOUNT_API_URL", "http://localhost:8080"), "account service base URL")

	rootCmd.AddCommand(
		registerCmd(),
		loginCmd(),
		whoamiCmd(),
		updateCmd(),
		deleteCmd(),
		logoutCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newClient() (*session.Client, error) {
	path, err := session.DefaultPath()
	if err != nil {
		return nil, err
	}
	return session.NewClient(serverURL, session.NewStore(path)), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
