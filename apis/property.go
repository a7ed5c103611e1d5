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

package apis

import (
	"fmt"
	"strings"
)

// PropertyMode controls how methods are surfaced as properties.
//
// # Overview
//
// Go has no properties. A property is therefore a convention over the
// method set of *T: a nullary method with a single non-error result reads
// the value, and an optional "Set" method with a single parameter of the
// same type writes it. PropertyMode selects the naming convention:
//
//   - Getters:  X() reads property "X", SetX(v) writes it.
//   - Prefixed: GetX() reads property "X", SetX(v) writes it.
//   - None:     no properties, every method stays a method.
//
// A property without a setter is get-only and rejects every assignment.
//
// # Contract
//
//   - Reading a property invokes its getter. With Getters, every nullary
//     single-result method is read as a property, so types whose nullary
//     methods have side effects should use Prefixed or None.
//   - Adding new values is allowed; existing values MUST NOT change their
//     semantics.
type PropertyMode int

const (
	// PropertyGetters exposes X() / SetX(v) pairs as property "X".
	// Opt-in: Get then runs every nullary single-result method.
	PropertyGetters PropertyMode = iota

	// PropertyPrefixed exposes GetX() / SetX(v) pairs as property "X".
	// This is the default.
	PropertyPrefixed

	// PropertyNone disables property discovery.
	PropertyNone
)

// String returns a human-readable representation of the PropertyMode value.
//
// For unknown or out-of-range values, String returns "Unknown(<n>)" and
// never panics, so corrupted values can still be surfaced in logs.
func (pm PropertyMode) String() string {
	switch pm {
	case PropertyGetters:
		return "Getters"
	case PropertyPrefixed:
		return "Prefixed"
	case PropertyNone:
		return "None"
	default:
		return fmt.Sprintf("Unknown(%d)", int(pm))
	}
}

// ParsePropertyMode parses a textual representation of a PropertyMode.
//
// Accepted (case-insensitive, whitespace-trimmed) inputs are the tokens
// produced by String: "Getters", "Prefixed" and "None". Any other input
// results in a non-nil error and PropertyNone; callers MUST NOT rely on the
// returned value in the error case.
func ParsePropertyMode(s string) (PropertyMode, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return PropertyNone, fmt.Errorf("property mode: empty value")
	}

	switch strings.ToUpper(trimmed) {
	case "GETTERS":
		return PropertyGetters, nil
	case "PREFIXED":
		return PropertyPrefixed, nil
	case "NONE":
		return PropertyNone, nil
	default:
		return PropertyNone, fmt.Errorf("property mode: unknown value %q", s)
	}
}

// MustParsePropertyMode is like ParsePropertyMode but panics on invalid input.
//
//	var mode = MustParsePropertyMode("prefixed")
func MustParsePropertyMode(s string) PropertyMode {
	mode, err := ParsePropertyMode(s)
	if err != nil {
		panic(err)
	}
	return mode
}

// MarshalText implements encoding.TextMarshaler.
// Unknown values are rejected rather than persisted as "Unknown(n)".
func (pm PropertyMode) MarshalText() ([]byte, error) {
	switch pm {
	case PropertyGetters, PropertyPrefixed, PropertyNone:
		return []byte(pm.String()), nil
	default:
		return nil, fmt.Errorf("property mode: cannot marshal unknown value %d", int(pm))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
// On failure *pm is left unchanged.
func (pm *PropertyMode) UnmarshalText(text []byte) error {
	value, err := ParsePropertyMode(string(text))
	if err != nil {
		return err
	}
	*pm = value
	return nil
}
