package toolcall

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
	jsonvalidator "github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchema is a resolved validator for one definition's parameter
// schema, built lazily and cached by the executor.
type compiledSchema struct {
	schema *jsonvalidator.Schema
	err    error
}

// Compile resolves the tool's parameter schema into a validator. The same
// schema sent to the provider is the one arguments are checked against.
func (s *ToolSchema) Compile() (*jsonvalidator.Schema, error) {
	data, err := json.Marshal(s.Parameters)
	if err != nil {
		return nil, errors.Wrapf(err, "tool %q: marshal parameter schema", s.Name)
	}
	doc, err := jsonvalidator.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "tool %q: decode parameter schema", s.Name)
	}
	compiler := jsonvalidator.NewCompiler()
	url := "tool://" + s.Name + "/parameters.json"
	if err := compiler.AddResource(url, doc); err != nil {
		return nil, errors.Wrapf(err, "tool %q: add schema resource", s.Name)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, errors.Wrapf(err, "tool %q: compile parameter schema", s.Name)
	}
	return compiled, nil
}

// validateStrict checks raw arguments against the definition's compiled
// parameter schema. Only active under WithStrictValidation.
func (x *Executor) validateStrict(def *ToolDefinition, args map[string]any) error {
	cs := x.compiled(def)
	if cs.err != nil {
		return &FaultError{Err: cs.err}
	}
	// Round-trip through JSON so argument values use the decoded forms the
	// validator expects (float64 numbers, []any, map[string]any).
	data, err := json.Marshal(args)
	if err != nil {
		return &FaultError{Err: err}
	}
	doc, err := jsonvalidator.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return &FaultError{Err: err}
	}
	if err := cs.schema.Validate(doc); err != nil {
		return errors.WithMessage(ErrValidation, err.Error())
	}
	return nil
}

func (x *Executor) compiled(def *ToolDefinition) *compiledSchema {
	x.schemaMu.Lock()
	defer x.schemaMu.Unlock()
	if cs, ok := x.schemas[def]; ok {
		return cs
	}
	cs := &compiledSchema{}
	cs.schema, cs.err = SchemaFor(def).Compile()
	x.schemas[def] = cs
	return cs
}
