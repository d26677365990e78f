package cli

import (
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/spatial/spatialmath"
)

// parseQuaternion accepts either "w,x,y,z" or the "(w+xi+yj+zk)" form printed by the CLI.
func parseQuaternion(raw string) (spatialmath.Quaternion, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "(") {
		return spatialmath.ParseQuaternion(raw)
	}
	parts, err := parseFloats(raw, 4)
	if err != nil {
		return spatialmath.Quaternion{}, errors.Wrapf(err, "invalid quaternion %q", raw)
	}
	return spatialmath.NewQuaternion(parts[0], parts[1], parts[2], parts[3]), nil
}

func parsePoint(raw string) (r3.Vector, error) {
	parts, err := parseFloats(strings.TrimSpace(raw), 3)
	if err != nil {
		return r3.Vector{}, errors.Wrapf(err, "invalid point %q", raw)
	}
	return r3.Vector{X: parts[0], Y: parts[1], Z: parts[2]}, nil
}

func parseFloats(raw string, count int) ([]float64, error) {
	fields := strings.Split(raw, ",")
	if len(fields) != count {
		return nil, errors.Errorf("expected %d comma separated values, got %d", count, len(fields))
	}
	values := make([]float64, 0, count)
	for _, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// orientationArg parses an orientation and, when normalize is set, scales it to unit norm.
func orientationArg(raw string, normalize bool) (spatialmath.Quaternion, error) {
	q, err := parseQuaternion(raw)
	if err != nil {
		return spatialmath.Quaternion{}, err
	}
	if !normalize {
		return q, nil
	}
	unit, err := spatialmath.Normalize(q)
	if err != nil {
		return spatialmath.Quaternion{}, errors.Wrapf(err, "orientation %q", raw)
	}
	return unit, nil
}
