package main

import (
	"github.com/npillmayer/pavl"
	"github.com/npillmayer/pavl/workload"
	"github.com/urfave/cli/v2"
)

func dot(c *cli.Context) error {
	s, err := loadScript(c)
	if err != nil {
		return err
	}
	b, err := backendFor(c, s)
	if err != nil {
		return err
	}
	res, err := workload.Run(s, b)
	if err != nil {
		return err
	}
	at := pavl.Timestamp(c.Uint64("at"))
	if !c.IsSet("at") {
		at, _ = res.Tree.Latest()
	}
	return res.Tree.Dot(at, c.App.Writer)
}

func init() {
	commands = append(commands, &cli.Command{
		Name:      "dot",
		Usage:     "print a version of the replayed tree in Graphviz DOT format",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			backendFlag,
			&cli.Uint64Flag{
				Name:  "at",
				Usage: "timestamp of the version (default: latest)",
			},
		},
		Action: dot,
	})
}
