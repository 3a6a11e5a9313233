package harness

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaCUE string

// A cue.Context is not safe for concurrent use, so the compiled schema and
// its context are guarded together.
var schema struct {
	once sync.Once
	mu   sync.Mutex
	ctx  *cue.Context
	def  cue.Value
	err  error
}

func loadSchema() error {
	schema.once.Do(func() {
		schema.ctx = cuecontext.New()
		v := schema.ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
		if err := v.Err(); err != nil {
			schema.err = fmt.Errorf("compile scenario schema: %w", err)
			return
		}
		schema.def = v.LookupPath(cue.ParsePath("#Scenario"))
		if err := schema.def.Err(); err != nil {
			schema.err = fmt.Errorf("lookup #Scenario: %w", err)
		}
	})
	return schema.err
}

// ValidateSchema checks raw scenario YAML against the embedded CUE schema.
// filename is used only for error positions.
func ValidateSchema(filename string, data []byte) error {
	if err := loadSchema(); err != nil {
		return err
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	schema.mu.Lock()
	defer schema.mu.Unlock()

	v := schema.ctx.BuildFile(file)
	if err := v.Err(); err != nil {
		return fmt.Errorf("failed to build scenario value: %w", err)
	}
	if err := schema.def.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema violation: %s", cueerrors.Details(err, nil))
	}
	return nil
}
