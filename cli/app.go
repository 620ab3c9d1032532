// Package cli contains the assembly command line tool.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	flagConfig = "config"
	flagDebug  = "debug"
	flagFormat = "format"
	flagTrace  = "trace"

	formatTable = "table"
	formatJSON  = "json"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  flagFormat,
		Value: formatTable,
		Usage: "output format: table or json",
	}
}

func configFlag() cli.Flag {
	return &cli.PathFlag{
		Name:     flagConfig,
		Aliases:  []string{"c"},
		Required: true,
		Usage:    "load the scene from `FILE` (json or yaml)",
	}
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut. Logs go to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "assembly",
		Usage:           "place the bodies of a jointed assembly",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  flagTrace,
				Usage: "log every connection attempt with its socket and plug",
			},
		},
		Before: setDebugLevel,
		Commands: []*cli.Command{
			{
				Name:      "connect",
				Usage:     "run the connections of a scene and print every body placement",
				UsageText: "assembly connect --config <FILE> [--format table|json]",
				Flags:     []cli.Flag{configFlag(), formatFlag()},
				Action:    ConnectAction,
			},
			{
				Name:      "joints",
				Usage:     "run the connections of a scene and print the state of every joint",
				UsageText: "assembly joints --config <FILE>",
				Flags:     []cli.Flag{configFlag()},
				Action:    JointsAction,
			},
			{
				Name:   "demo",
				Usage:  "run the built in demo scene and print every body placement",
				Flags:  []cli.Flag{formatFlag()},
				Action: DemoAction,
			},
		},
	}
}
