// Package config defines the scene file an assembly is built from: bodies, the joints attached to
// them, and the ordered connections between joints.
package config

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/partkit/assembly/joint"
	"github.com/partkit/assembly/referenceframe"
	"github.com/partkit/assembly/utils"
)

// Config describes a complete scene.
type Config struct {
	Bodies      []BodyConfig       `json:"bodies"`
	Joints      []JointConfig      `json:"joints"`
	Connections []ConnectionConfig `json:"connections,omitempty"`

	ConfigFilePath string `json:"-"`
}

// BodyConfig places a named body. A missing placement is the origin.
type BodyConfig struct {
	Name      string                     `json:"name"`
	Placement *referenceframe.LinkConfig `json:"placement,omitempty"`
}

// JointConfig attaches a joint to a body. Its geometry is given in the body's own frame, in the
// type specific attributes.
type JointConfig struct {
	Name       string       `json:"name"`
	Body       string       `json:"body"`
	Type       string       `json:"type"`
	Attributes AttributeMap `json:"attributes,omitempty"`
}

// ConnectionConfig connects a socket joint to a plug joint, moving the plug's body. Joints are
// referenced as "body:joint". Unset parameters take the socket's defaults.
type ConnectionConfig struct {
	Socket   string     `json:"socket"`
	Plug     string     `json:"plug"`
	Angle    *float64   `json:"angle,omitempty"`
	Position *float64   `json:"position,omitempty"`
	Angles   *r3.Vector `json:"angles,omitempty"`
}

// Params converts the connection parameters for joint.Connect.
func (c ConnectionConfig) Params() joint.Params {
	return joint.Params{Angle: c.Angle, Position: c.Position, Angles: c.Angles}
}

func (c ConnectionConfig) String() string {
	return fmt.Sprintf("%s -> %s", c.Socket, c.Plug)
}

// QualifiedName returns the "body:joint" reference of the joint.
func (c JointConfig) QualifiedName() string {
	return c.Body + utils.QualifiedNameSeparator + c.Name
}

// Kind parses the joint type.
func (c JointConfig) Kind() (joint.Kind, error) {
	return joint.ParseKind(c.Type)
}

// Validate ensures the body config is valid.
func (c *BodyConfig) Validate(path string) error {
	if c.Name == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "name")
	}
	if err := utils.ValidateName(c.Name); err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	if _, err := c.Placement.Pose(); err != nil {
		return utils.NewConfigValidationError(path+".placement", err)
	}
	return nil
}

// Validate ensures the joint config is valid, including its attributes.
func (c *JointConfig) Validate(path string) error {
	if c.Name == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "name")
	}
	if err := utils.ValidateName(c.Name); err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	if c.Body == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "body")
	}
	if c.Type == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "type")
	}
	kind, err := c.Kind()
	if err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	attrs, err := c.DecodeAttributes(kind)
	if err != nil {
		return utils.NewConfigValidationError(path+".attributes", err)
	}
	if err := attrs.Validate(); err != nil {
		return utils.NewConfigValidationError(path+".attributes", err)
	}
	return nil
}

// Validate ensures the connection names a socket and a plug in "body:joint" form.
func (c *ConnectionConfig) Validate(path string) error {
	if c.Socket == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "socket")
	}
	if c.Plug == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "plug")
	}
	socketBody, _, err := utils.SplitQualifiedName(c.Socket)
	if err != nil {
		return utils.NewConfigValidationError(path+".socket", err)
	}
	plugBody, _, err := utils.SplitQualifiedName(c.Plug)
	if err != nil {
		return utils.NewConfigValidationError(path+".plug", err)
	}
	if socketBody == plugBody {
		return utils.NewConfigValidationError(path, errors.Errorf("socket and plug are both on body %q", socketBody))
	}
	return nil
}

// Validate checks every part of the scene and returns all problems found.
func (c *Config) Validate() error {
	var errs error
	bodies := map[string]bool{}
	for idx := range c.Bodies {
		body := &c.Bodies[idx]
		path := fmt.Sprintf("bodies.%d", idx)
		if err := body.Validate(path); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if bodies[body.Name] {
			errs = multierr.Append(errs, utils.NewConfigValidationError(path,
				errors.Errorf("duplicate body name %q", body.Name)))
		}
		bodies[body.Name] = true
	}

	joints := map[string]bool{}
	for idx := range c.Joints {
		j := &c.Joints[idx]
		path := fmt.Sprintf("joints.%d", idx)
		if err := j.Validate(path); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if !bodies[j.Body] {
			errs = multierr.Append(errs, utils.NewConfigValidationError(path,
				errors.Errorf("unknown body %q", j.Body)))
			continue
		}
		if joints[j.QualifiedName()] {
			errs = multierr.Append(errs, utils.NewConfigValidationError(path,
				errors.Errorf("duplicate joint %q", j.QualifiedName())))
		}
		joints[j.QualifiedName()] = true
	}

	for idx := range c.Connections {
		conn := &c.Connections[idx]
		path := fmt.Sprintf("connections.%d", idx)
		if err := conn.Validate(path); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		for _, ref := range []struct{ field, name string }{{"socket", conn.Socket}, {"plug", conn.Plug}} {
			if !joints[ref.name] {
				errs = multierr.Append(errs, utils.NewConfigValidationError(path+"."+ref.field,
					errors.Errorf("unknown joint %q", ref.name)))
			}
		}
	}
	return errs
}
