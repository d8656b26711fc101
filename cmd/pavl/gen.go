package main

import (
	"github.com/npillmayer/pavl/workload"
	"github.com/urfave/cli/v2"
)

func gen(c *cli.Context) error {
	s := workload.Random(c.Int64("seed"), c.Int("ops"), c.Int64("span"))
	s.Backend = c.String("backend")
	if err := s.Validate(); err != nil {
		return err
	}
	return s.Encode(c.App.Writer)
}

func init() {
	commands = append(commands, &cli.Command{
		Name:  "gen",
		Usage: "generate a random workload script",
		Flags: []cli.Flag{
			backendFlag,
			&cli.Int64Flag{Name: "seed", Value: 1, Usage: "random seed"},
			&cli.IntFlag{Name: "ops", Value: 100, Usage: "number of operations"},
			&cli.Int64Flag{Name: "span", Value: 1000, Usage: "items are drawn from [0, span)"},
		},
		Action: gen,
	})
}
