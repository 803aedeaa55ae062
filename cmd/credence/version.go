package main

import (
	"fmt"

	"github.com/ternarybob/credence/internal/common"
	"github.com/urfave/cli/v2"
)

var versionCommand = &cli.Command{
	Name:  "version",
	Usage: "Print version information",
	Action: func(c *cli.Context) error {
		fmt.Printf("Credence version %s\n", common.GetFullVersion())
		return nil
	},
}
