package naval

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Source-language message templates. These double as the catalog keys for
// translation, so the exact wording matters.
const (
	msgIncorrectValue = "Incorrect value."
	msgWrongType      = "Wrong type. Expected {type}. Got {wrong_type} instead."
	msgWrongTypeOneOf = "Wrong type. Expected one of {types}. Got {wrong_type} instead."
	msgEmpty          = "This value shouldn't be empty."
	msgTooShort       = "The value is too short. Min length is {min_length}."
	msgTooLong        = "The value is too long. Max length is {max_length}."
	msgExactLength    = "The length should be {length}."
	msgMin            = "The minimum is {min}."
	msgMax            = "The maximum is {max}."
	msgShouldBeInt    = "This should be an integer."
	msgShouldBeNumber = "This should be a number."
)

// ---- Type ----

// TypeFilter checks a value's dynamic type against an allowed set. By default
// the type must match exactly; AllowSubtypes switches to assignability, which
// is how a Go value relates to an interface type.
type TypeFilter struct {
	types    []reflect.Type
	subtypes bool
}

// Type builds a TypeFilter from explicit reflect types. It panics when called
// with no types; that is a schema-construction bug, not a runtime condition.
func Type(types ...reflect.Type) *TypeFilter {
	if len(types) == 0 {
		panic("naval: Type requires at least one type")
	}
	return &TypeFilter{types: types}
}

// TypeIs is generic sugar for Type(reflect.TypeOf((*T)(nil)).Elem()).
func TypeIs[T any]() *TypeFilter { return Type(reflect.TypeOf((*T)(nil)).Elem()) }

// SubtypeOf accepts any value assignable to T. With an interface T this is
// the "allow subtypes" mode: every implementation passes.
func SubtypeOf[T any]() *TypeFilter {
	return &TypeFilter{types: []reflect.Type{reflect.TypeOf((*T)(nil)).Elem()}, subtypes: true}
}

// AllowSubtypes derives a filter that checks assignability instead of type
// identity.
func (f *TypeFilter) AllowSubtypes() *TypeFilter {
	return &TypeFilter{types: f.types, subtypes: true}
}

func (f *TypeFilter) Run(value any) (any, error) {
	t := reflect.TypeOf(value)
	for _, want := range f.types {
		if t == want {
			return value, nil
		}
		if f.subtypes && t != nil && t.AssignableTo(want) {
			return value, nil
		}
	}
	got := "nil"
	if t != nil {
		got = t.String()
	}
	if len(f.types) == 1 {
		return nil, fail(Msgf(msgWrongType, map[string]any{
			"type":       f.types[0].String(),
			"wrong_type": got,
		}))
	}
	names := make([]string, len(f.types))
	for i, t := range f.types {
		names[i] = t.String()
	}
	return nil, fail(Msgf(msgWrongTypeOneOf, map[string]any{
		"types":      strings.Join(names, ", "),
		"wrong_type": got,
	}))
}

// ---- Range ----

// RangeFilter bounds a numeric (or string, compared lexicographically) value.
// A nil bound is unbounded.
type RangeFilter struct {
	min, max               any
	minMessage, maxMessage string
}

// Range bounds a value between min and max inclusive. Pass nil to leave a
// side unbounded.
func Range(min, max any) *RangeFilter {
	return &RangeFilter{min: min, max: max, minMessage: msgMin, maxMessage: msgMax}
}

// Min bounds a value from below only.
func Min(min any) *RangeFilter { return Range(min, nil) }

// Max bounds a value from above only.
func Max(max any) *RangeFilter { return Range(nil, max) }

// WithMessages derives a filter with custom bound messages; an empty string
// keeps the default. Messages may use the {min} and {max} placeholders.
func (f *RangeFilter) WithMessages(minMessage, maxMessage string) *RangeFilter {
	g := *f
	if minMessage != "" {
		g.minMessage = minMessage
	}
	if maxMessage != "" {
		g.maxMessage = maxMessage
	}
	return &g
}

func (f *RangeFilter) Run(value any) (any, error) {
	if f.min != nil {
		c, err := compare(value, f.min)
		if err != nil {
			return nil, err
		}
		if c < 0 {
			return nil, fail(Msgf(f.minMessage, map[string]any{"min": f.min}))
		}
	}
	if f.max != nil {
		c, err := compare(value, f.max)
		if err != nil {
			return nil, err
		}
		if c > 0 {
			return nil, fail(Msgf(f.maxMessage, map[string]any{"max": f.max}))
		}
	}
	return value, nil
}

// compare orders two values: numbers by magnitude, strings byte-wise.
// Incomparable values are a schema bug and surface as a plain error.
func compare(a, b any) (int, error) {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			switch {
			case fa < fb:
				return -1, nil
			case fa > fb:
				return 1, nil
			}
			return 0, nil
		}
	}
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return strings.Compare(sa, sb), nil
		}
	}
	return 0, fmt.Errorf("naval: cannot compare %T with %T", a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	if n, ok := v.(interface{ Float64() (float64, error) }); ok {
		if f, err := n.Float64(); err == nil {
			return f, true
		}
	}
	return 0, false
}

// ---- Length ----

// LengthFilter bounds the length of a string (in runes), slice, array or map.
type LengthFilter struct {
	min, max                           int // max < 0 means unbounded
	empty, tooShort, tooLong, exactLen string
}

// Length bounds a value's length between min and max inclusive.
func Length(min, max int) *LengthFilter {
	return &LengthFilter{
		min: min, max: max,
		empty: msgEmpty, tooShort: msgTooShort, tooLong: msgTooLong, exactLen: msgExactLength,
	}
}

// MinLength bounds the length from below only.
func MinLength(min int) *LengthFilter { return Length(min, -1) }

// MaxLength bounds the length from above only.
func MaxLength(max int) *LengthFilter { return Length(0, max) }

// ExactLength requires one precise length.
func ExactLength(n int) *LengthFilter { return Length(n, n) }

// WithMessages derives a filter with custom messages; empty strings keep the
// defaults. Available placeholders: {min_length}, {max_length}, {length}.
func (f *LengthFilter) WithMessages(empty, tooShort, tooLong, exactLen string) *LengthFilter {
	g := *f
	if empty != "" {
		g.empty = empty
	}
	if tooShort != "" {
		g.tooShort = tooShort
	}
	if tooLong != "" {
		g.tooLong = tooLong
	}
	if exactLen != "" {
		g.exactLen = exactLen
	}
	return &g
}

func (f *LengthFilter) Run(value any) (any, error) {
	l, err := lengthOf(value)
	if err != nil {
		return nil, err
	}
	if l < f.min {
		switch {
		case l == 0:
			return nil, fail(Msg(f.empty))
		case f.min == f.max:
			return nil, fail(Msgf(f.exactLen, map[string]any{"length": f.min}))
		default:
			return nil, fail(Msgf(f.tooShort, map[string]any{"min_length": f.min}))
		}
	}
	if f.max >= 0 && l > f.max {
		if f.min == f.max {
			return nil, fail(Msgf(f.exactLen, map[string]any{"length": f.min}))
		}
		return nil, fail(Msgf(f.tooLong, map[string]any{"max_length": f.max}))
	}
	return value, nil
}

func lengthOf(value any) (int, error) {
	if s, ok := value.(string); ok {
		return utf8.RuneCountInString(s), nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), nil
	}
	return 0, fmt.Errorf("naval: value of type %T has no length", value)
}

// ---- Regex ----

// RegexFilter matches a string value against a pattern.
type RegexFilter struct {
	re      *regexp.Regexp
	message string
}

// Regex compiles the pattern, anchoring it with ^ and $ when not already
// anchored, so the whole value must match. It panics on an invalid pattern;
// use RegexCompiled for patterns built at runtime.
func Regex(pattern string) *RegexFilter {
	if !strings.HasPrefix(pattern, "^") {
		pattern = "^" + pattern
	}
	if !strings.HasSuffix(pattern, "$") {
		pattern = pattern + "$"
	}
	return RegexCompiled(regexp.MustCompile(pattern))
}

// RegexCompiled wraps a precompiled pattern, used exactly as given.
func RegexCompiled(re *regexp.Regexp) *RegexFilter {
	return &RegexFilter{re: re, message: msgIncorrectValue}
}

// WithMessage derives a filter with a custom failure message.
func (f *RegexFilter) WithMessage(message string) *RegexFilter {
	return &RegexFilter{re: f.re, message: message}
}

func (f *RegexFilter) Run(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("naval: Regex expects a string, got %T", value)
	}
	if !f.re.MatchString(s) {
		return nil, fail(Msg(f.message))
	}
	return value, nil
}

// ---- In ----

// InFilter checks membership: element of a slice or array, key of a map, or
// substring of a string.
type InFilter struct {
	collection any
	message    string
}

// In builds a membership check over the given container.
func In(collection any) *InFilter {
	return &InFilter{collection: collection, message: msgIncorrectValue}
}

// WithMessage derives a filter with a custom failure message.
func (f *InFilter) WithMessage(message string) *InFilter {
	return &InFilter{collection: f.collection, message: message}
}

func (f *InFilter) Run(value any) (any, error) {
	ok, err := contains(f.collection, value)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fail(Msg(f.message))
	}
	return value, nil
}

func contains(collection, value any) (bool, error) {
	if s, ok := collection.(string); ok {
		sub, ok := value.(string)
		return ok && strings.Contains(s, sub), nil
	}
	rv := reflect.ValueOf(collection)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if reflect.DeepEqual(rv.Index(i).Interface(), value) {
				return true, nil
			}
		}
		return false, nil
	case reflect.Map:
		kv := reflect.ValueOf(value)
		if !kv.IsValid() || !kv.Type().AssignableTo(rv.Type().Key()) {
			return false, nil
		}
		return rv.MapIndex(kv).IsValid(), nil
	}
	return false, fmt.Errorf("naval: %T does not support membership tests", collection)
}

// ---- Assert ----

// AssertFilter checks a predicate and leaves the value unchanged.
type AssertFilter struct {
	test    func(any) bool
	message string
}

// Assert builds a predicate check with the default "Incorrect value."
// message.
func Assert(test func(any) bool) *AssertFilter {
	return &AssertFilter{test: test, message: msgIncorrectValue}
}

// WithMessage derives a filter with a custom failure message.
func (f *AssertFilter) WithMessage(message string) *AssertFilter {
	return &AssertFilter{test: f.test, message: message}
}

func (f *AssertFilter) Run(value any) (any, error) {
	if !f.test(value) {
		return nil, fail(Msg(f.message))
	}
	return value, nil
}

// ---- Apply ----

// ApplyFilter runs an arbitrary unary function and translates its errors into
// validation failures. An optional catch predicate narrows which errors are
// translated; the rest propagate untouched.
type ApplyFilter struct {
	fn      func(any) (any, error)
	catch   func(error) bool
	message string // empty: use the error's own text
}

// Apply wraps fn, which may be func(any) (any, error), func(any) any, or any
// unary function (invoked through reflection, with panics recovered into
// errors). Apply panics when fn has an unusable shape.
func Apply(fn any) *ApplyFilter {
	return &ApplyFilter{fn: asUnary(fn)}
}

// Catch derives a filter that only translates errors matched by pred into
// validation failures; unmatched errors propagate as-is.
func (f *ApplyFilter) Catch(pred func(error) bool) *ApplyFilter {
	g := *f
	g.catch = pred
	return &g
}

// WithMessage derives a filter whose failures carry message instead of the
// underlying error's text.
func (f *ApplyFilter) WithMessage(message string) *ApplyFilter {
	g := *f
	g.message = message
	return &g
}

func (f *ApplyFilter) Run(value any) (any, error) {
	out, err := f.fn(value)
	if err == nil {
		return out, nil
	}
	if f.catch != nil && !f.catch(err) {
		return nil, err
	}
	if f.message != "" {
		return nil, fail(Msg(f.message))
	}
	return nil, fail(Msg(err.Error()))
}

// asUnary normalizes a function value into func(any) (any, error).
func asUnary(fn any) func(any) (any, error) {
	switch g := fn.(type) {
	case func(any) (any, error):
		return g
	case func(any) any:
		return func(v any) (any, error) { return g(v), nil }
	}
	rf := reflect.ValueOf(fn)
	rt := rf.Type()
	if rf.Kind() != reflect.Func || rt.NumIn() != 1 || rt.NumOut() < 1 || rt.NumOut() > 2 {
		panic(fmt.Sprintf("naval: %T is not a usable unary function", fn))
	}
	errType := reflect.TypeOf((*error)(nil)).Elem()
	if rt.NumOut() == 2 && !rt.Out(1).Implements(errType) {
		panic(fmt.Sprintf("naval: %T second result must be an error", fn))
	}
	return func(v any) (out any, err error) {
		defer func() {
			if r := recover(); r != nil {
				out, err = nil, fmt.Errorf("%v", r)
			}
		}()
		av := reflect.ValueOf(v)
		in := rt.In(0)
		if !av.IsValid() {
			av = reflect.Zero(in)
		} else if !av.Type().AssignableTo(in) {
			if !av.Type().ConvertibleTo(in) {
				return nil, fmt.Errorf("cannot call with %T", v)
			}
			av = av.Convert(in)
		}
		res := rf.Call([]reflect.Value{av})
		if len(res) == 2 && !res[1].IsNil() {
			return nil, res[1].Interface().(error)
		}
		return res[0].Interface(), nil
	}
}

// ---- Do ----

// DoFilter composes filters into one, optionally overriding any inner failure
// with a single message.
type DoFilter struct {
	filters []Filter
	message string
}

// Do chains filters left to right. Raw values are coerced the same way chain
// declarations are: functions become Apply, containers become In. Do panics
// on a value that cannot be coerced.
func Do(filters ...any) *DoFilter {
	fs := make([]Filter, len(filters))
	for i, raw := range filters {
		f, err := toFilter(raw)
		if err != nil {
			panic(err.Error())
		}
		fs[i] = f
	}
	return &DoFilter{filters: fs}
}

// WithMessage derives a composition whose failures all surface as message.
func (f *DoFilter) WithMessage(message string) *DoFilter {
	return &DoFilter{filters: f.filters, message: message}
}

func (f *DoFilter) Run(value any) (any, error) {
	for _, flt := range f.filters {
		out, err := flt.Run(value)
		if err != nil {
			if _, ok := AsValidationError(err); ok && f.message != "" {
				return nil, fail(Msg(f.message))
			}
			return nil, err
		}
		value = out
	}
	return value, nil
}

// ---- int/float coercions ----

// ToInt converts numeric and numeric-string values to int64, with a
// localizable message instead of a raw parse error.
var ToInt Filter = Apply(coerceInt).WithMessage(msgShouldBeInt)

// ToFloat converts numeric and numeric-string values to float64, with a
// localizable message instead of a raw parse error.
var ToFloat Filter = Apply(coerceFloat).WithMessage(msgShouldBeNumber)

func coerceInt(v any) (any, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(n), 10, 64)
	}
	if f, ok := toFloat(v); ok {
		return int64(f), nil
	}
	return nil, fmt.Errorf("cannot convert %T to integer", v)
}

func coerceFloat(v any) (any, error) {
	if f, ok := toFloat(v); ok {
		return f, nil
	}
	if s, ok := v.(string); ok {
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	}
	return nil, fmt.Errorf("cannot convert %T to number", v)
}
