package cli

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/spatial/spatialmath"
	"go.viam.com/spatial/utils"
)

// NormalizeAction prints the unit quaternion pointing the same way as its argument.
func NormalizeAction(c *cli.Context) error {
	logger := loggerFromContext(c)
	if err := checkArgCount(c, 1); err != nil {
		return err
	}
	q, err := parseQuaternion(c.Args().First())
	if err != nil {
		return err
	}
	unit, err := spatialmath.Normalize(q)
	if err != nil {
		return err
	}
	logger.Debugw("normalized", "input", q.String(), "norm", spatialmath.Norm(q))
	printf(c.App.Writer, "%s", unit)
	return nil
}

// DotAction prints the dot product of its two arguments.
func DotAction(c *cli.Context) error {
	if err := checkArgCount(c, 2); err != nil {
		return err
	}
	q0, err := parseQuaternion(c.Args().Get(0))
	if err != nil {
		return err
	}
	q1, err := parseQuaternion(c.Args().Get(1))
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%g", spatialmath.Dot(q0, q1))
	return nil
}

// AngleAction prints the angle of the rotation taking the first orientation to the second.
func AngleAction(c *cli.Context) error {
	if err := checkArgCount(c, 2); err != nil {
		return err
	}
	normalize := c.Bool(generalFlagNormalize)
	q0, err := orientationArg(c.Args().Get(0), normalize)
	if err != nil {
		return err
	}
	q1, err := orientationArg(c.Args().Get(1), normalize)
	if err != nil {
		return err
	}
	angle := spatialmath.AngleBetween(q0, q1)
	if !c.Bool(angleFlagRadians) {
		angle = utils.RadToDeg(angle)
	}
	printf(c.App.Writer, "%g", angle)
	return nil
}

// SlerpAction prints the orientation a fraction t of the way from --from to --to.
func SlerpAction(c *cli.Context) error {
	logger := loggerFromContext(c)
	normalize := c.Bool(generalFlagNormalize)
	from, err := orientationArg(c.String(slerpFlagFrom), normalize)
	if err != nil {
		return err
	}
	to, err := orientationArg(c.String(slerpFlagTo), normalize)
	if err != nil {
		return err
	}
	t := c.Float64(slerpFlagT)
	if t < 0 || t > 1 {
		logger.Debugw("extrapolating past the endpoints", "t", t)
	}

	q := spatialmath.Slerp(from, to, t)
	logger.Debugw("slerp", "from", from.String(), "to", to.String(), "t", t, "dot", spatialmath.Dot(from, to))
	printf(c.App.Writer, "%s", q)
	return nil
}

// PathAction prints samples along the keyframes read from --file, one per line.
func PathAction(c *cli.Context) error {
	logger := loggerFromContext(c)
	keyframes, err := readKeyframes(c.Path(pathFlagFile))
	if err != nil {
		return err
	}
	if c.Bool(generalFlagNormalize) {
		for i, k := range keyframes {
			unit, err := spatialmath.Normalize(k)
			if err != nil {
				return errors.Wrapf(err, "keyframe %d", i)
			}
			keyframes[i] = unit
		}
	}

	path, err := spatialmath.SlerpPath(keyframes, c.Int(pathFlagSteps))
	if err != nil {
		return err
	}
	logger.Debugw("sampled path", "keyframes", len(keyframes), "samples", len(path))
	for _, q := range path {
		printf(c.App.Writer, "%s", q)
	}
	return nil
}

// RotateAction prints --point rotated by the orientation --by.
func RotateAction(c *cli.Context) error {
	by, err := orientationArg(c.String(rotateFlagBy), c.Bool(generalFlagNormalize))
	if err != nil {
		return err
	}
	p, err := parsePoint(c.String(rotateFlagPoint))
	if err != nil {
		return err
	}
	rotated := spatialmath.RotatePoint(by, p)
	printf(c.App.Writer, "%g,%g,%g", rotated.X, rotated.Y, rotated.Z)
	return nil
}

func readKeyframes(filename string) ([]spatialmath.Quaternion, error) {
	//nolint:gosec
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read keyframes")
	}
	var keyframes []spatialmath.Quaternion
	if err := json.Unmarshal(data, &keyframes); err != nil {
		return nil, errors.Wrapf(err, "cannot parse keyframes in %q", filename)
	}
	return keyframes, nil
}
