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
	"reflect"
	"strings"

	"github.com/casbin/govaluate"
)

// Evaluate evaluates a govaluate expression whose variables are member
// names of the node:
//
//	node.Evaluate("Width * Height > 10")
//	node.Evaluate("[Child.Inner] == 'y'")
//
// A bracketed variable containing dots is read with GetIndexed. Numeric
// members take part in arithmetic as float64, as govaluate does.
func (n *objectNode) Evaluate(expr string) (Node, error) {
	exp, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return nil, accessError("evaluate", nil, n.typ, ErrExpression, expr, err)
	}
	result, err := exp.Eval(parameters{n})
	if err != nil {
		return nil, accessError("evaluate", nil, n.typ, ErrExpression, expr, err)
	}
	if result == nil {
		return nil, nil
	}
	return n.eng.wrap(reflect.ValueOf(result), n.useCache)
}

// parameters exposes a node to govaluate.
type parameters struct {
	node Node
}

// Ensure parameters implements govaluate.Parameters.
var _ govaluate.Parameters = parameters{}

// Get reads the member name, or a dotted member path.
func (p parameters) Get(name string) (any, error) {
	keys := strings.Split(name, ".")
	path := make([]any, len(keys))
	for i, k := range keys {
		path[i] = k
	}
	v, err := p.node.GetIndexed(path...)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	if v.IsMethod() {
		return nil, fmt.Errorf("%s is a method", name)
	}
	return v.Value(), nil
}
