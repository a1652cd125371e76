package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Print the public account for the specific wallet",
	Run:   accountRun,
}

func init() {
	rootCmd.AddCommand(accountCmd)
}

func accountRun(cmd *cobra.Command, args []string) {
	sa, err := loadAccount()
	if err != nil {
		log.Fatal(err)
	}

	data, err := json.Marshal(sa.Public())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(string(data))
}
