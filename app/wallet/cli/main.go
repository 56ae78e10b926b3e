package main

import "github.com/shub-dab/blockchain/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
