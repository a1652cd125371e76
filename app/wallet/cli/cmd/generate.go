package cmd

import (
	"crypto/rand"
	"fmt"
	"log"

	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/signature"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new key pair",
	Run:   generateRun,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func generateRun(cmd *cobra.Command, args []string) {
	sa, err := signature.Generate(rand.Reader)
	if err != nil {
		log.Fatal(err)
	}

	if err := saveAccount(sa); err != nil {
		log.Fatal(err)
	}

	fmt.Println(sa.Public())
}
