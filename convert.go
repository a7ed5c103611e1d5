/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package dax

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	uref "dirpx.dev/dax/utils/reflect"
)

var (
	stringerType = reflect.TypeFor[fmt.Stringer]()
	bytesType    = reflect.TypeFor[[]byte]()
)

// ConvertTo returns the node value as t.
//
// A value assignable to t is returned as is (a pointer to the value is
// tried too). Otherwise numbers convert between kinds when the value fits,
// strings parse into numbers and booleans, numbers and booleans format into
// strings, booleans and numbers map to 1/0, and reflect conversions cover
// the rest. Anything else is a *ConversionError.
func (n *objectNode) ConvertTo(t reflect.Type) (any, error) {
	cur := uref.Expose(n.current())
	if t == nil {
		return nil, &ConversionError{From: cur.Type(), Value: cur.Interface(), Reason: "nil target type"}
	}
	if cur.Type().AssignableTo(t) {
		return cur.Interface(), nil
	}
	if n.base.Type().AssignableTo(t) {
		return n.base.Interface(), nil
	}
	if n.base.CanAddr() && reflect.PointerTo(n.base.Type()).AssignableTo(t) {
		return n.base.Addr().Interface(), nil
	}

	v, err := convertValue(n.base, t)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

func convertValue(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	fail := func(reason string, err error) (reflect.Value, error) {
		return reflect.Value{}, &ConversionError{From: v.Type(), To: to, Value: v.Interface(), Reason: reason, Err: err}
	}
	out := reflect.New(to).Elem()

	switch {
	case to.Kind() == reflect.String:
		s, ok := formatString(v)
		if !ok {
			return fail("no string form", nil)
		}
		out.SetString(s)
		return out, nil

	case v.Kind() == reflect.String:
		if err := parseString(strings.TrimSpace(v.String()), out); err != nil {
			return fail("cannot parse", err)
		}
		return out, nil

	case isNumber(v.Kind()) && isNumber(to.Kind()):
		if reason := setNumber(v, out); reason != "" {
			return fail(reason, nil)
		}
		return out, nil

	case v.Kind() == reflect.Bool && isNumber(to.Kind()):
		var one reflect.Value
		if v.Bool() {
			one = reflect.ValueOf(1)
		} else {
			one = reflect.ValueOf(0)
		}
		setNumber(one, out)
		return out, nil

	case isNumber(v.Kind()) && to.Kind() == reflect.Bool:
		out.SetBool(!isZeroNumber(v))
		return out, nil
	}

	if v.Type().ConvertibleTo(to) {
		c, err := safeConvert(v, to)
		if err != nil {
			return fail("conversion panicked", err)
		}
		return c, nil
	}
	return fail("no conversion", nil)
}

// safeConvert is reflect.Value.Convert with panics reported as errors.
func safeConvert(v reflect.Value, to reflect.Type) (out reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return v.Convert(to), nil
}

func formatString(v reflect.Value) (string, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'g', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64), true
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true
	case reflect.String:
		return v.String(), true
	}
	if v.Type().ConvertibleTo(bytesType) && v.Kind() == reflect.Slice {
		return string(v.Convert(bytesType).Bytes()), true
	}
	if v.Type().Implements(stringerType) {
		return v.Interface().(fmt.Stringer).String(), true
	}
	if v.CanAddr() && reflect.PointerTo(v.Type()).Implements(stringerType) {
		return v.Addr().Interface().(fmt.Stringer).String(), true
	}
	return "", false
}

func parseString(s string, out reflect.Value) error {
	switch out.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 0, out.Type().Bits())
		if err != nil {
			return err
		}
		out.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, err := strconv.ParseUint(s, 0, out.Type().Bits())
		if err != nil {
			return err
		}
		out.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, out.Type().Bits())
		if err != nil {
			return err
		}
		out.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		out.SetBool(b)
	case reflect.Slice:
		if !bytesType.ConvertibleTo(out.Type()) {
			return fmt.Errorf("unsupported target %s", out.Type())
		}
		out.Set(reflect.ValueOf([]byte(s)).Convert(out.Type()))
	default:
		return fmt.Errorf("unsupported target %s", out.Type())
	}
	return nil
}

func isNumber(k reflect.Kind) bool {
	return isInt(k) || isUint(k) || k == reflect.Float32 || k == reflect.Float64
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isZeroNumber(v reflect.Value) bool {
	switch {
	case isInt(v.Kind()):
		return v.Int() == 0
	case isUint(v.Kind()):
		return v.Uint() == 0
	default:
		return v.Float() == 0
	}
}

// setNumber stores the number v into out and returns a non-empty reason
// when the value does not fit. Floats round half to even.
func setNumber(v, out reflect.Value) string {
	to := out.Kind()
	switch {
	case isInt(v.Kind()):
		i := v.Int()
		switch {
		case isInt(to):
			if out.OverflowInt(i) {
				return "overflow"
			}
			out.SetInt(i)
		case isUint(to):
			if i < 0 || out.OverflowUint(uint64(i)) {
				return "overflow"
			}
			out.SetUint(uint64(i))
		default:
			out.SetFloat(float64(i))
		}

	case isUint(v.Kind()):
		u := v.Uint()
		switch {
		case isInt(to):
			if u > math.MaxInt64 || out.OverflowInt(int64(u)) {
				return "overflow"
			}
			out.SetInt(int64(u))
		case isUint(to):
			if out.OverflowUint(u) {
				return "overflow"
			}
			out.SetUint(u)
		default:
			out.SetFloat(float64(u))
		}

	default:
		f := v.Float()
		if !isInt(to) && !isUint(to) {
			if out.OverflowFloat(f) {
				return "overflow"
			}
			out.SetFloat(f)
			return ""
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "not a finite number"
		}
		r := math.RoundToEven(f)
		switch {
		case isInt(to):
			if r < math.MinInt64 || r >= math.MaxInt64 || out.OverflowInt(int64(r)) {
				return "overflow"
			}
			out.SetInt(int64(r))
		default:
			if r < 0 || r >= math.MaxUint64 || out.OverflowUint(uint64(r)) {
				return "overflow"
			}
			out.SetUint(uint64(r))
		}
	}
	return ""
}
