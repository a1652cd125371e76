package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/chain"
	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/record"
	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/signature"
	"github.com/spf13/cobra"
)

var (
	method       string
	recordText   string
	targetHeight uint64
	targetSign   string
)

// signCmd produces a signed jellyfish transaction on stdout, ready to be
// submitted to a node.
var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a record transaction",
	Run:   signRun,
}

func init() {
	rootCmd.AddCommand(signCmd)
	signCmd.Flags().StringVarP(&method, "method", "m", "insert", "Operation: insert, modify or remove.")
	signCmd.Flags().StringVarP(&recordText, "record", "r", "", "Record payload for insert and modify.")
	signCmd.Flags().Uint64Var(&targetHeight, "target-height", 0, "Block height of the target transaction.")
	signCmd.Flags().StringVar(&targetSign, "target-sign", "", "Signature of the target transaction, 128 hex characters.")
}

func signRun(cmd *cobra.Command, args []string) {
	sa, err := loadAccount()
	if err != nil {
		log.Fatal(err)
	}

	entry, err := buildEntry()
	if err != nil {
		log.Fatal(err)
	}

	tx := chain.Sign(sa, chain.Now(), entry)

	data, err := json.Marshal(tx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(string(data))
}

func buildEntry() (record.Entry, error) {
	switch method {
	case "insert":
		return record.NewInsert(recordText), nil

	case "modify":
		target, err := buildTarget()
		if err != nil {
			return record.Entry{}, err
		}
		return record.NewModify(recordText, target), nil

	case "remove":
		target, err := buildTarget()
		if err != nil {
			return record.Entry{}, err
		}
		return record.NewRemove(target), nil
	}

	return record.Entry{}, fmt.Errorf("unknown method %q", method)
}

func buildTarget() (record.TransactionID, error) {
	var sign signature.Signature
	if err := sign.UnmarshalText([]byte(targetSign)); err != nil {
		return record.TransactionID{}, fmt.Errorf("parsing target sign: %w", err)
	}

	return record.TransactionID{
		Height: targetHeight,
		Sign:   sign,
	}, nil
}
