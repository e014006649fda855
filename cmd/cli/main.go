package main

import (
	"github.com/dmitrijs2005/coinkeeper/internal/client/cli"
)

func main() {
	cli.Execute()
}
