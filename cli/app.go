// Package cli contains all business logic needed by the quaternion CLI.
package cli

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/spatial/logging"
)

const (
	// Flags.
	generalFlagDebug     = "debug"
	generalFlagLogFile   = "log-file"
	generalFlagNormalize = "normalize"

	slerpFlagFrom = "from"
	slerpFlagTo   = "to"
	slerpFlagT    = "t"

	pathFlagFile  = "file"
	pathFlagSteps = "steps"

	rotateFlagBy    = "by"
	rotateFlagPoint = "point"

	angleFlagRadians = "radians"

	loggerMetadataKey = "logger"
)

func normalizeFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  generalFlagNormalize,
		Value: true,
		Usage: "normalize input quaternions before using them as orientations",
	}
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "quat",
		Usage:           "normalize and interpolate quaternion orientations",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  generalFlagLogFile,
				Usage: "also write logs to `FILE`, rotated by size",
			},
		},
		Before: setupLogger,
		After: func(c *cli.Context) error {
			return loggerFromContext(c).Sync()
		},
		Commands: []*cli.Command{
			{
				Name:      "normalize",
				Usage:     "scale a quaternion to unit norm",
				ArgsUsage: "<w,x,y,z>",
				Action:    NormalizeAction,
			},
			{
				Name:      "dot",
				Usage:     "print the four dimensional dot product of two quaternions",
				ArgsUsage: "<w,x,y,z> <w,x,y,z>",
				Action:    DotAction,
			},
			{
				Name:  "slerp",
				Usage: "spherically interpolate between two orientations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     slerpFlagFrom,
						Required: true,
						Usage:    "start orientation as `w,x,y,z`",
					},
					&cli.StringFlag{
						Name:     slerpFlagTo,
						Required: true,
						Usage:    "end orientation as `w,x,y,z`",
					},
					&cli.Float64Flag{
						Name:  slerpFlagT,
						Value: 0.5,
						Usage: "interpolation parameter, values outside [0, 1] extrapolate",
					},
					normalizeFlag(),
				},
				Action: SlerpAction,
			},
			{
				Name:  "path",
				Usage: "sample slerp along a sequence of keyframe orientations",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:     pathFlagFile,
						Required: true,
						Usage:    "json `FILE` holding an array of {\"w\",\"x\",\"y\",\"z\"} keyframes",
					},
					&cli.IntFlag{
						Name:  pathFlagSteps,
						Value: 10,
						Usage: "samples per keyframe segment",
					},
					normalizeFlag(),
				},
				Action: PathAction,
			},
			{
				Name:  "rotate",
				Usage: "rotate a 3D point by an orientation",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     rotateFlagBy,
						Required: true,
						Usage:    "orientation as `w,x,y,z`",
					},
					&cli.StringFlag{
						Name:     rotateFlagPoint,
						Required: true,
						Usage:    "point as `x,y,z`",
					},
					normalizeFlag(),
				},
				Action: RotateAction,
			},
		},
	}
}

func setupLogger(c *cli.Context) error {
	logger := logging.NewBlankLogger("quat")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	logger.SetLevel(logging.INFO)
	if c.Bool(generalFlagDebug) {
		logger.SetLevel(logging.DEBUG)
	}
	if filename := c.String(generalFlagLogFile); filename != "" {
		logger.AddAppender(logging.NewFileAppender(logging.FileAppenderConfig{
			Filename:   filename,
			MaxSizeMB:  10,
			MaxBackups: 3,
		}))
	}
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[loggerMetadataKey] = logger
	return nil
}

func loggerFromContext(c *cli.Context) logging.Logger {
	if logger, ok := c.App.Metadata[loggerMetadataKey].(logging.Logger); ok {
		return logger
	}
	return logging.Global()
}

// printf prints a message with a newline to the given writer.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

func checkArgCount(c *cli.Context, want int) error {
	if c.Args().Len() != want {
		return errors.Errorf("%s expects %d argument(s), got %d", c.Command.Name, want, c.Args().Len())
	}
	return nil
}
