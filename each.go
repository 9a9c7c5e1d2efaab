package naval

import (
	"fmt"
	"reflect"
)

const msgItemPrefix = "Item #{n}: "

// EachFilter applies one filter to every element of a slice or array. The
// first failing element aborts with the inner payload prefixed by its item
// number.
type EachFilter struct {
	filter Filter
	start  int
}

// Each applies the filter (or coercible raw value, as in Do) to every
// element, numbering items from 1 in error messages.
func Each(filter any) *EachFilter { return eachFrom(filter, 1) }

// Each0 is Each with items numbered from 0.
func Each0(filter any) *EachFilter { return eachFrom(filter, 0) }

// Each1 is an alias of Each.
func Each1(filter any) *EachFilter { return Each(filter) }

func eachFrom(filter any, start int) *EachFilter {
	f, err := toFilter(filter)
	if err != nil {
		panic(err.Error())
	}
	return &EachFilter{filter: f, start: start}
}

func (f *EachFilter) Run(value any) (any, error) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("naval: Each expects a slice or array, got %T", value)
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		res, err := f.filter.Run(rv.Index(i).Interface())
		if err != nil {
			verr, ok := AsValidationError(err)
			if !ok {
				return nil, err
			}
			prefix := Msgf(msgItemPrefix, map[string]any{"n": i + f.start})
			return nil, &ValidationError{Details: verr.Details.prefix(prefix)}
		}
		out[i] = res
	}
	return rebuildSlice(rv, out), nil
}

// rebuildSlice keeps the input's concrete slice type when every produced
// element still fits it; otherwise the result is a plain []any.
func rebuildSlice(src reflect.Value, elems []any) any {
	t := src.Type()
	if t.Kind() == reflect.Array {
		t = reflect.SliceOf(t.Elem())
	}
	if t.Elem().Kind() != reflect.Interface {
		for _, e := range elems {
			if e == nil || !reflect.TypeOf(e).AssignableTo(t.Elem()) {
				return elems
			}
		}
		out := reflect.MakeSlice(t, len(elems), len(elems))
		for i, e := range elems {
			out.Index(i).Set(reflect.ValueOf(e))
		}
		return out.Interface()
	}
	return elems
}
