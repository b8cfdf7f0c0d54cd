package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/Zeegaths/keth/ct/diff"
	cliUtils "github.com/Zeegaths/keth/ct/driver/cli"
)

var ListCmd = cli.Command{
	Action: doList,
	Name:   "list",
	Usage:  "List all operations by name",
	Flags: []cli.Flag{
		cliUtils.FilterFlag,
	},
}

func doList(context *cli.Context) error {
	filter, err := cliUtils.FilterFlag.Fetch(context)
	if err != nil {
		return err
	}

	for _, op := range filterOps(diff.StateOps(), filter) {
		fmt.Println(op)
	}
	for _, op := range filterOps(diff.TransientOps(), filter) {
		fmt.Println(op)
	}
	return nil
}
