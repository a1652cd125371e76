package main

import "github.com/Amelia10007/jellyfish-chain/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
