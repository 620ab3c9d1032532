package spatialmath

import (
	"github.com/golang/geo/r3"
	commonpb "go.viam.com/api/common/v1"
)

// NewPoseFromProtobuf creates a new pose from a protobuf pose.
func NewPoseFromProtobuf(pos *commonpb.Pose) Pose {
	if pos == nil {
		return NewZeroPose()
	}
	return NewPose(
		r3.Vector{X: pos.X, Y: pos.Y, Z: pos.Z},
		&OrientationVectorDegrees{Theta: pos.Theta, OX: pos.OX, OY: pos.OY, OZ: pos.OZ},
	)
}

// PoseToProtobuf converts a pose to the pose format protobuf expects (which is as OrientationVectorDegrees).
func PoseToProtobuf(p Pose) *commonpb.Pose {
	final := &commonpb.Pose{}
	pt := p.Point()
	final.X = pt.X
	final.Y = pt.Y
	final.Z = pt.Z
	poseOV := p.Orientation().OrientationVectorDegrees()
	final.Theta = poseOV.Theta
	final.OX = poseOV.OX
	final.OY = poseOV.OY
	final.OZ = poseOV.OZ
	return final
}
