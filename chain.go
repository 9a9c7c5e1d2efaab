package naval

import (
	"fmt"
	"reflect"
)

// Decl is one chain declaration: an ordered, heterogeneous instruction list.
// A string in first position binds the chain to that field; otherwise the
// chain operates on the whole document. Field chains then take, in fixed
// order, an optional Discard set, the Optional marker, a Default, the filter
// sequence, and a final storage instruction.
type Decl = []any

// Chain is the parsed pipeline for one declaration. Chains are built once,
// at schema-definition time, and never mutated afterwards.
type Chain struct {
	field    string
	hasField bool
	discard  DiscardSet
	optional bool
	def      *DefaultPolicy
	filters  []Filter
	storage  StorageInstruction
}

// NewChain parses an instruction list into a Chain. Malformed declarations
// (a misplaced storage instruction, Delete/MoveTo on a fieldless chain, a
// field marker without a field, an uncoercible filter value) fail here, not
// at validation time.
func NewChain(instructions ...any) (*Chain, error) {
	c := &Chain{}
	if len(instructions) == 0 {
		return c, nil
	}
	if name, ok := instructions[0].(string); ok {
		c.field = name
		c.hasField = true
		return c, c.parseFieldOptions(instructions[1:])
	}
	return c, c.parseFilters(instructions)
}

func (c *Chain) parseFieldOptions(instructions []any) error {
	i := 0
	if i < len(instructions) {
		if d, ok := instructions[i].(DiscardSet); ok {
			c.discard = d
			i++
		}
	}
	if i < len(instructions) {
		if _, ok := instructions[i].(OptionalMarker); ok {
			c.optional = true
			i++
		}
	}
	if i < len(instructions) {
		if d, ok := instructions[i].(DefaultPolicy); ok {
			c.def = &d
			i++
		}
	}
	return c.parseFilters(instructions[i:])
}

func (c *Chain) parseFilters(instructions []any) error {
	for i, instr := range instructions {
		if s, ok := instr.(StorageInstruction); ok {
			return c.parseStorage(s, len(instructions)-i-1)
		}
		switch instr.(type) {
		case DiscardSet, OptionalMarker, DefaultPolicy:
			return fmt.Errorf("naval: %T is only allowed right after a field name", instr)
		}
		f, err := toFilter(instr)
		if err != nil {
			return err
		}
		c.filters = append(c.filters, f)
	}
	return nil
}

func (c *Chain) parseStorage(instr StorageInstruction, trailing int) error {
	if !c.hasField {
		switch instr.(type) {
		case deleteInstruction:
			return fmt.Errorf("naval: can't use Delete without a field name at the start of the chain")
		case moveToInstruction:
			return fmt.Errorf("naval: can't use MoveTo without a field name at the start of the chain")
		}
	}
	if trailing > 0 {
		return fmt.Errorf("naval: can't add instructions after %s", instructionName(instr))
	}
	c.storage = instr
	return nil
}

// toFilter coerces a raw chain instruction into a Filter: filters (Schemas
// included) pass through, functions become Apply, membership-capable
// containers become In.
func toFilter(instr any) (Filter, error) {
	switch v := instr.(type) {
	case Filter:
		return v, nil
	case func(any) (any, error):
		return Apply(v), nil
	case func(any) any:
		return Apply(v), nil
	}
	rv := reflect.ValueOf(instr)
	switch rv.Kind() {
	case reflect.Func:
		rt := rv.Type()
		usable := rt.NumIn() == 1 && rt.NumOut() >= 1 && rt.NumOut() <= 2
		if usable && rt.NumOut() == 2 && !rt.Out(1).Implements(reflect.TypeOf((*error)(nil)).Elem()) {
			usable = false
		}
		if usable {
			return Apply(instr), nil
		}
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return In(instr), nil
	}
	return nil, fmt.Errorf("naval: %v is not a valid filter", instr)
}
