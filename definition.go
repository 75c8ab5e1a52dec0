package toolcall

import (
	"context"

	"github.com/cockroachdb/errors"
)

// ParamType is the declared type of one tool parameter.
type ParamType string

// Parameter types understood by the schema converter and the argument
// coercion layer. Unrecognized types degrade to string in schemas and pass
// values through untouched during coercion.
const (
	TypeString  ParamType = "string"
	TypeInteger ParamType = "integer"
	TypeFloat   ParamType = "float"
	TypeBoolean ParamType = "boolean"
	TypeUUID    ParamType = "uuid"
	TypeMap     ParamType = "map"
	TypeAtom    ParamType = "atom"
	TypeArray   ParamType = "array"
)

// ParameterSpec declares name/type/required/description for one tool
// argument. Names must be unique within a definition (NewDefinition enforces this).
type ParameterSpec struct {
	Name string
	Type ParamType
	// Elem is the element type when Type == TypeArray. Empty means
	// untyped array items.
	Elem        ParamType
	Required    bool
	Description string
}

// ToolFunc is the callable behind a function-backed tool. It receives the
// normalized (coerced) arguments plus any extra args from the target.
type ToolFunc func(ctx context.Context, args map[string]any) (any, error)

// ExecutionTarget is the tagged variant behind a definition: exactly one of
// ActionTarget or FuncTarget. Keeping it a closed sum eliminates
// "both/neither set" checks at dispatch sites.
type ExecutionTarget interface {
	isTarget()
}

// ActionKind classifies a resource action for dispatch purposes.
// Update and destroy actions must locate a target record before running.
type ActionKind string

const (
	ActionCreate  ActionKind = "create"
	ActionRead    ActionKind = "read"
	ActionUpdate  ActionKind = "update"
	ActionDestroy ActionKind = "destroy"
)

// ActionTarget routes a tool to a resource action run by the external
// ActionEngine. Kind defaults to read when empty.
type ActionTarget struct {
	Resource string
	Action   string
	Kind     ActionKind
}

func (ActionTarget) isTarget() {}

// FuncTarget routes a tool to an in-process callable. ExtraArgs, when set,
// are merged over the normalized call arguments before invocation.
type FuncTarget struct {
	Fn        ToolFunc
	ExtraArgs map[string]any
}

func (FuncTarget) isTarget() {}

// ToolDefinition is a named, schema-described capability the model can
// invoke. Built once at configuration time via NewDefinition and immutable
// afterwards; definitions live in the registry for the process lifetime.
type ToolDefinition struct {
	name        string
	description string
	target      ExecutionTarget
	params      []ParameterSpec
}

// NewDefinition validates and builds an immutable ToolDefinition.
// The target must be a well-formed ActionTarget or FuncTarget; a nil or
// malformed target is rejected with ErrInvalidToolConfiguration so that
// no call can ever reference a misconfigured tool.
func NewDefinition(name, description string, target ExecutionTarget, params ...ParameterSpec) (*ToolDefinition, error) {
	if name == "" {
		return nil, errors.New("tool name must not be empty")
	}
	switch t := target.(type) {
	case nil:
		return nil, errors.WithMessage(ErrInvalidToolConfiguration, "execution target must be set")
	case ActionTarget:
		if t.Resource == "" || t.Action == "" {
			return nil, errors.WithMessage(ErrInvalidToolConfiguration, "action target requires resource and action names")
		}
	case FuncTarget:
		if t.Fn == nil {
			return nil, errors.WithMessage(ErrInvalidToolConfiguration, "function target requires a callable")
		}
	default:
		return nil, errors.WithMessagef(ErrInvalidToolConfiguration, "unknown execution target %T", target)
	}
	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if p.Name == "" {
			return nil, errors.Newf("tool %q: parameter name must not be empty", name)
		}
		if _, dup := seen[p.Name]; dup {
			return nil, errors.Newf("tool %q: duplicate parameter %q", name, p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	def := &ToolDefinition{
		name:        name,
		description: description,
		target:      target,
		params:      append([]ParameterSpec(nil), params...),
	}
	return def, nil
}

// MustDefinition is NewDefinition that panics on error. Intended for
// static tool tables built at program init.
func MustDefinition(name, description string, target ExecutionTarget, params ...ParameterSpec) *ToolDefinition {
	def, err := NewDefinition(name, description, target, params...)
	if err != nil {
		panic(err)
	}
	return def
}

// Name returns the tool name.
func (d *ToolDefinition) Name() string { return d.name }

// Description returns the tool description, to be used in the prompt.
func (d *ToolDefinition) Description() string { return d.description }

// Target returns the execution target variant.
func (d *ToolDefinition) Target() ExecutionTarget { return d.target }

// Parameters returns a copy of the ordered parameter specs.
func (d *ToolDefinition) Parameters() []ParameterSpec {
	return append([]ParameterSpec(nil), d.params...)
}

func (d *ToolDefinition) param(name string) (ParameterSpec, bool) {
	for _, p := range d.params {
		if p.Name == name {
			return p, true
		}
	}
	return ParameterSpec{}, false
}
