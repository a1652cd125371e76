// Package cmd contains the wallet app.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/signature"
	"github.com/btcsuite/btcutil/base58"
	"github.com/spf13/cobra"
)

var (
	accountName string
	accountPath string
)

const keyExtension = ".ed25519"

func init() {
	rootCmd.PersistentFlags().StringVarP(&accountName, "account", "a", "private.ed25519", "Name of the key file.")
	rootCmd.PersistentFlags().StringVarP(&accountPath, "account-path", "p", "zblock/accounts/", "Path to the directory with key files.")
}

var rootCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Your simple jellyfish wallet",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getKeyPath() string {
	if !strings.HasSuffix(accountName, keyExtension) {
		accountName += keyExtension
	}

	return filepath.Join(accountPath, accountName)
}

// loadAccount reads and decodes the base58 key file for the configured
// account.
func loadAccount() (*signature.SecretAccount, error) {
	data, err := os.ReadFile(getKeyPath())
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}

	sa, err := signature.Restore(base58.Decode(strings.TrimSpace(string(data))))
	if err != nil {
		return nil, fmt.Errorf("restoring account: %w", err)
	}

	return sa, nil
}

// saveAccount writes the account's backup to the key file, base58
// encoded, readable by the owner only.
func saveAccount(sa *signature.SecretAccount) error {
	if err := os.MkdirAll(filepath.Dir(getKeyPath()), 0700); err != nil {
		return fmt.Errorf("creating key directory: %w", err)
	}

	encoded := base58.Encode(sa.Backup())
	if err := os.WriteFile(getKeyPath(), []byte(encoded+"\n"), 0600); err != nil {
		return fmt.Errorf("writing key file: %w", err)
	}

	return nil
}
