package assembly

import (
	"bytes"
	_ "embed"

	"github.com/partkit/assembly/config"
)

//go:embed data/demo.yaml
var demoScene []byte

// DemoConfig returns a scene with a tilted base box carrying one joint of each kind, each connected to
// its own arm.
func DemoConfig() (*config.Config, error) {
	return config.FromReader("demo.yaml", bytes.NewReader(demoScene))
}
