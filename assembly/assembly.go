// Package assembly builds a set of bodies and joints from a scene config and runs its connections in
// order, placing each plug body from its socket.
package assembly

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"github.com/partkit/assembly/config"
	"github.com/partkit/assembly/joint"
	"github.com/partkit/assembly/logging"
	spatial "github.com/partkit/assembly/spatialmath"
	"github.com/partkit/assembly/utils"
)

// Assembly is a named collection of bodies. It is safe for concurrent use; connects are serialized.
type Assembly struct {
	mu          sync.Mutex
	logger      logging.Logger
	bodies      map[string]*joint.Body
	connections []config.ConnectionConfig
}

// Placement is the global placement of one body.
type Placement struct {
	Body string
	Pose spatial.Pose
}

// New returns an empty assembly. A nil logger discards every entry.
func New(logger logging.Logger) *Assembly {
	if logger == nil {
		logger = logging.NewBlankLogger("assembly")
	}
	return &Assembly{
		logger: logger,
		bodies: map[string]*joint.Body{},
	}
}

// NewFromConfig builds the bodies and joints of the scene and remembers its connections for ConnectAll.
// Every joint that cannot be built is reported.
func NewFromConfig(cfg *config.Config, logger logging.Logger) (*Assembly, error) {
	if cfg == nil {
		return nil, errors.New("a config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger != nil && cfg.ConfigFilePath != "" {
		logger = logger.With("scene", cfg.ConfigFilePath)
	}
	a := New(logger)
	for _, bc := range cfg.Bodies {
		placement, err := bc.Placement.Pose()
		if err != nil {
			return nil, errors.Wrapf(err, "body %q", bc.Name)
		}
		if _, err := a.AddBody(bc.Name, placement); err != nil {
			return nil, err
		}
	}
	var errs error
	for _, jc := range cfg.Joints {
		if _, err := a.AddJoint(jc); err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "joint %q", jc.QualifiedName()))
		}
	}
	if errs != nil {
		return nil, errs
	}
	a.connections = append(a.connections, cfg.Connections...)
	a.logger.Debugw("assembly built", "bodies", len(cfg.Bodies), "joints", len(cfg.Joints),
		"connections", len(cfg.Connections))
	return a, nil
}

// AddBody adds a body at the given placement.
func (a *Assembly) AddBody(name string, placement spatial.Pose) (*joint.Body, error) {
	if err := utils.ValidateName(name); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.bodies[name]; ok {
		return nil, errors.Errorf("body %q already exists", name)
	}
	body := joint.NewBody(name, placement)
	a.bodies[name] = body
	return body, nil
}

// Body returns the body with the given name.
func (a *Assembly) Body(name string) (*joint.Body, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	body, ok := a.bodies[name]
	return body, ok
}

// BodyNames returns the sorted names of every body.
func (a *Assembly) BodyNames() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bodyNames()
}

func (a *Assembly) bodyNames() []string {
	names := lo.Keys(a.bodies)
	sort.Strings(names)
	return names
}

// Joint returns the joint for a "body:joint" reference.
func (a *Assembly) Joint(ref string) (joint.Joint, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lookup(ref)
}

// JointAs returns the joint for a "body:joint" reference as a specific variant.
func JointAs[T joint.Joint](a *Assembly, ref string) (T, error) {
	var zero T
	j, err := a.Joint(ref)
	if err != nil {
		return zero, err
	}
	typed, err := utils.Cast[T](j)
	if err != nil {
		return zero, errors.Wrapf(err, "joint %q", ref)
	}
	return typed, nil
}

func (a *Assembly) lookup(ref string) (joint.Joint, error) {
	bodyName, label, err := utils.SplitQualifiedName(ref)
	if err != nil {
		return nil, err
	}
	body, ok := a.bodies[bodyName]
	if !ok {
		return nil, errors.Errorf("no body named %q", bodyName)
	}
	j, ok := body.Joint(label)
	if !ok {
		return nil, errors.Errorf("body %q has no joint %q", bodyName, label)
	}
	return j, nil
}

// Connect runs one connection. On failure nothing moves.
func (a *Assembly) Connect(ctx context.Context, conn config.ConnectionConfig) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.connect(ctx, conn)
}

func (a *Assembly) connect(ctx context.Context, conn config.ConnectionConfig) error {
	socket, err := a.lookup(conn.Socket)
	if err != nil {
		return errors.Wrap(err, "socket")
	}
	plug, err := a.lookup(conn.Plug)
	if err != nil {
		return errors.Wrap(err, "plug")
	}
	ctx = logging.WithConnection(ctx, conn.Socket, conn.Plug)
	a.logger.CDebugw(ctx, "connecting", "socket_kind", socket.Kind().String(), "plug_kind", plug.Kind().String())
	if err := joint.Connect(socket, plug, conn.Params()); err != nil {
		return errors.Wrapf(err, "cannot connect %v", conn)
	}
	a.logger.CDebugw(ctx, "connected", "placement", spatial.PrettyPrint(plug.Body().Placement()))
	return nil
}

// ConnectAll runs the configured connections in order. The first failure stops the run; connections
// already made stay in place. The context is checked before each connection.
func (a *Assembly) ConnectAll(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for idx, conn := range a.connections {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.connect(ctx, conn); err != nil {
			a.logger.Errorw("connection failed", "index", idx, "connection", conn.String(), "error", err)
			return err
		}
	}
	a.logger.Infow("assembly connected", "connections", len(a.connections))
	return nil
}

// Placements returns the global placement of every body, ordered by body name.
func (a *Assembly) Placements() []Placement {
	a.mu.Lock()
	defer a.mu.Unlock()
	return lo.Map(a.bodyNames(), func(name string, _ int) Placement {
		return Placement{Body: name, Pose: a.bodies[name].Placement()}
	})
}

// JointStates returns a snapshot of every joint, ordered by body name then label.
func (a *Assembly) JointStates() []joint.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	var states []joint.State
	for _, name := range a.bodyNames() {
		for _, j := range a.bodies[name].Joints() {
			states = append(states, joint.StateOf(j))
		}
	}
	return states
}
