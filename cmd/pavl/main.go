// Command pavl replays workload scripts against partially persistent AVL
// trees, compares the persistence backends and dumps versions for
// inspection.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/npillmayer/pavl/workload"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/urfave/cli/v2"
)

const (
	AppName    = "pavl"
	AppVersion = "0.1.0"
)

var commands = []*cli.Command{}

func newApp() *cli.App {
	return &cli.App{
		Name:    AppName,
		Usage:   "replay and inspect partially persistent AVL trees",
		Version: AppVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "trace",
				Value:   "error",
				Usage:   "trace level: debug, info or error",
				EnvVars: []string{"PAVL_TRACE"},
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colored output",
			},
		},
		Before:   setup,
		Commands: commands,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setup(c *cli.Context) error {
	var level tracing.TraceLevel
	switch c.String("trace") {
	case "debug":
		level = tracing.LevelDebug
	case "info":
		level = tracing.LevelInfo
	case "error":
		level = tracing.LevelError
	default:
		return fmt.Errorf("unknown trace level %q", c.String("trace"))
	}
	gtrace.CoreTracer = gologadapter.New()
	gtrace.CoreTracer.SetTraceLevel(level)
	tracing.Select("pavl").SetTraceLevel(level)
	setColor(c.Bool("no-color"))
	return nil
}

// loadScript reads the workload named by the first argument, "-" for stdin.
func loadScript(c *cli.Context) (*workload.Script, error) {
	name := c.Args().First()
	if name == "" {
		return nil, fmt.Errorf("missing workload file")
	}
	if name == "-" {
		return workload.Parse(c.App.Reader)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return workload.Parse(f)
}
