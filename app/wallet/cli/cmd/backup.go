package cmd

import (
	"fmt"
	"log"

	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/signature"
	"github.com/btcsuite/btcutil/base58"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Print the base58 backup of the wallet's secret key",
	Long: `Print the base58 backup of the wallet's secret key.
Anyone holding this string owns the account; keep it offline.`,
	Run: backupRun,
}

var restoreCmd = &cobra.Command{
	Use:   "restore [backup]",
	Short: "Recreate a key file from a base58 backup",
	Args:  cobra.ExactArgs(1),
	Run:   restoreRun,
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}

func backupRun(cmd *cobra.Command, args []string) {
	sa, err := loadAccount()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(base58.Encode(sa.Backup()))
}

func restoreRun(cmd *cobra.Command, args []string) {
	sa, err := signature.Restore(base58.Decode(args[0]))
	if err != nil {
		log.Fatal(err)
	}

	if err := saveAccount(sa); err != nil {
		log.Fatal(err)
	}

	fmt.Println(sa.Public())
}
