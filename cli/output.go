package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/partkit/assembly/assembly"
	"github.com/partkit/assembly/joint"
	"github.com/partkit/assembly/referenceframe"
	spatial "github.com/partkit/assembly/spatialmath"
)

// placementsTable renders one row per body with its translation and orientation vector in degrees.
func placementsTable(placements []assembly.Placement) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Body", "Translation", "Orientation"})
	for i, p := range placements {
		pt := p.Pose.Point()
		ov := p.Pose.Orientation().OrientationVectorDegrees()
		t.AppendRow(table.Row{
			fmt.Sprintf("%d", i+1),
			p.Body,
			fmt.Sprintf("X:%.3f, Y:%.3f, Z:%.3f", pt.X, pt.Y, pt.Z),
			fmt.Sprintf("OX:%.3f, OY:%.3f, OZ:%.3f, Theta:%.3f", ov.OX, ov.OY, ov.OZ, ov.Theta),
		})
	}
	return t.Render()
}

// placementsJSON renders the placements as an object keyed by body name, each pose in the common
// protobuf form.
func placementsJSON(placements []assembly.Placement) (string, error) {
	out := make(map[string]json.RawMessage, len(placements))
	for _, p := range placements {
		b, err := protojson.Marshal(spatial.PoseToProtobuf(p.Pose))
		if err != nil {
			return "", errors.Wrapf(err, "failed to marshal placement of %q", p.Body)
		}
		out[p.Body] = b
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func jointsTable(states []joint.State) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Joint", "Kind", "Connected To", "Limits", "Values"})
	for _, s := range states {
		t.AppendRow(table.Row{
			s.Body + ":" + s.Label,
			s.Kind.String(),
			s.ConnectedTo,
			strings.Join(lo.Map(s.Limits, func(l referenceframe.Limit, _ int) string { return l.String() }), " "),
			stateValues(s),
		})
	}
	return t.Render()
}

func stateValues(s joint.State) string {
	var values []string
	if s.Position != nil {
		values = append(values, fmt.Sprintf("position=%g", *s.Position))
	}
	if s.Angle != nil {
		values = append(values, fmt.Sprintf("angle=%g", *s.Angle))
	}
	if s.Angles != nil {
		values = append(values, fmt.Sprintf("angles=(%g, %g, %g)", s.Angles.X, s.Angles.Y, s.Angles.Z))
	}
	return strings.Join(values, " ")
}
