package main

import "order-ledger/cmd"

func main() {
	cmd.Execute()
}
