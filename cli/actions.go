package cli

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/partkit/assembly/assembly"
	"github.com/partkit/assembly/config"
	"github.com/partkit/assembly/logging"
)

func setDebugLevel(c *cli.Context) error {
	if c.Bool(flagDebug) {
		logging.GlobalLogLevel.SetLevel(zap.DebugLevel)
	}
	return nil
}

func newLogger(c *cli.Context) logging.Logger {
	logger := logging.NewBlankLogger("assembly")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	logger.SetLevel(logging.INFO)
	if c.Bool(flagDebug) {
		logger.SetLevel(logging.DEBUG)
	}
	return logger
}

// ConnectAction reads a scene, runs its connections and prints the placements.
func ConnectAction(c *cli.Context) error {
	cfg, err := config.Read(c.Path(flagConfig))
	if err != nil {
		return err
	}
	a, err := connectScene(c, cfg)
	if err != nil {
		return err
	}
	return printPlacements(c.App.Writer, c.String(flagFormat), a.Placements())
}

// JointsAction reads a scene, runs its connections and prints every joint.
func JointsAction(c *cli.Context) error {
	cfg, err := config.Read(c.Path(flagConfig))
	if err != nil {
		return err
	}
	a, err := connectScene(c, cfg)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", jointsTable(a.JointStates()))
	return nil
}

// DemoAction runs the built in demo scene.
func DemoAction(c *cli.Context) error {
	cfg, err := assembly.DemoConfig()
	if err != nil {
		return errors.Wrap(err, "failed to load demo scene")
	}
	a, err := connectScene(c, cfg)
	if err != nil {
		return err
	}
	return printPlacements(c.App.Writer, c.String(flagFormat), a.Placements())
}

func connectScene(c *cli.Context, cfg *config.Config) (*assembly.Assembly, error) {
	logger := newLogger(c)
	a, err := assembly.NewFromConfig(cfg, logger)
	if err != nil {
		return nil, err
	}
	ctx := c.Context
	if c.Bool(flagTrace) {
		ctx = logging.TraceConnections(ctx)
	}
	if err := a.ConnectAll(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func printPlacements(w io.Writer, format string, placements []assembly.Placement) error {
	switch format {
	case formatTable:
		printf(w, "%s", placementsTable(placements))
		return nil
	case formatJSON:
		out, err := placementsJSON(placements)
		if err != nil {
			return err
		}
		printf(w, "%s", out)
		return nil
	default:
		return errors.Errorf("unknown format %q, must be %s or %s", format, formatTable, formatJSON)
	}
}

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}
