// Package main is the entry point for the avbridge application.
package main

import (
	"github.com/anisan-cli/avbridge/cmd"
	"github.com/anisan-cli/avbridge/config"
	"github.com/anisan-cli/avbridge/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
