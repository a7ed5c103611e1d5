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
)

// indexPath validates keys: at least one, all strings.
func indexPath(op string, n Node, keys []any) ([]string, error) {
	if len(keys) == 0 {
		return nil, accessError(op, nil, n.Type(), ErrInvalidIndex, "empty index", nil)
	}
	path := make([]string, len(keys))
	for i, k := range keys {
		s, ok := k.(string)
		if !ok {
			return nil, accessError(op, nil, n.Type(), ErrInvalidIndex, fmt.Sprintf("key %d is %T, not string", i, k), nil)
		}
		path[i] = s
	}
	return path, nil
}

// walk folds Get over path. Every intermediate result must be an object.
func walk(op string, n Node, path, full []string) (Node, error) {
	cur := n
	for i, name := range path {
		if i > 0 {
			switch {
			case cur == nil:
				return nil, accessError(op, full, n.Type(), ErrNotFound, fmt.Sprintf("%s is nil", path[i-1]), nil)
			case cur.IsMethod():
				return nil, accessError(op, full, n.Type(), ErrNotFound, fmt.Sprintf("%s is a method", path[i-1]), nil)
			}
		}
		next, err := cur.Get(name)
		if err != nil {
			return nil, withPath(err, full)
		}
		cur = next
	}
	return cur, nil
}

func getIndexed(n Node, keys []any) (Node, error) {
	path, err := indexPath("get", n, keys)
	if err != nil {
		return nil, err
	}
	return walk("get", n, path, path)
}

func setIndexed(n Node, value any, keys []any) error {
	path, err := indexPath("set", n, keys)
	if err != nil {
		return err
	}
	last := len(path) - 1

	parent := n
	if last > 0 {
		if parent, err = walk("set", n, path[:last], path); err != nil {
			return err
		}
		switch {
		case parent == nil:
			return accessError("set", path, n.Type(), ErrNotFound, fmt.Sprintf("%s is nil", path[last-1]), nil)
		case parent.IsMethod():
			return accessError("set", path, n.Type(), ErrNotFound, fmt.Sprintf("%s is a method", path[last-1]), nil)
		}
	}
	if err := parent.Set(path[last], value); err != nil {
		return withPath(err, path)
	}
	return nil
}
