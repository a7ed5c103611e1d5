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

package dax_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"dirpx.dev/dax"
)

func TestEvaluate(t *testing.T) {
	n := mustCreate(t, dax.New(), &Root{Field: "x", Child: Child{Inner: "y"}, Count: 3})

	tests := []struct {
		expr string
		want any
	}{
		{"Count * 2 > 5", true},
		{"Count + 1", 4.0},
		{"[Child.Inner] == 'y'", true},
		{"Field + '!'", "x!"},
		{"Count > 1 && Field == 'x'", true},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := n.Evaluate(tt.expr)
			if err != nil {
				t.Fatalf("Evaluate(%q): %v", tt.expr, err)
			}
			if diff := cmp.Diff(tt.want, value(got)); diff != "" {
				t.Fatalf("Evaluate(%q) mismatch (-want +got):\n%s", tt.expr, diff)
			}
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	n := mustCreate(t, dax.New(), &Calc{})

	for _, expr := range []string{"Base >", "Missing > 1", "Add > 1"} {
		t.Run(expr, func(t *testing.T) {
			if _, err := n.Evaluate(expr); !errors.Is(err, dax.ErrExpression) {
				t.Fatalf("Evaluate(%q): want ErrExpression, got %v", expr, err)
			}
		})
	}

	if _, err := mustGet(t, n, "Add").Evaluate("1"); !errors.Is(err, dax.ErrNotFound) {
		t.Fatalf("method node Evaluate: %v", err)
	}
}
