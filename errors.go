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
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrNotFound is returned when a name resolves to no member or method,
	// or when no overload accepts the supplied arguments.
	ErrNotFound = errors.New("dax: not found")
	// ErrNotWritable is returned when assigning to a get-only member.
	ErrNotWritable = errors.New("dax: not writable")
	// ErrTypeMismatch is returned when a value is not assignable to a member.
	ErrTypeMismatch = errors.New("dax: type mismatch")
	// ErrConversion is matched by every *ConversionError.
	ErrConversion = errors.New("dax: conversion failed")
	// ErrInvalidIndex is returned for empty or non-string index paths.
	ErrInvalidIndex = errors.New("dax: invalid index")
	// ErrInvocation is returned when an invoked method panics or returns an error.
	ErrInvocation = errors.New("dax: invocation failed")
	// ErrNilObject is returned when wrapping a nil value.
	ErrNilObject = errors.New("dax: nil object")
	// ErrExpression is returned when an expression cannot be parsed or evaluated.
	ErrExpression = errors.New("dax: expression failed")
)

// AccessError describes a failed operation on a Node.
// Kind is one of the package sentinels, so errors.Is(err, ErrNotFound) works.
type AccessError struct {
	// Op is the failed operation ("get", "set", "invoke", ...).
	Op string
	// Path holds the names involved, outermost first.
	Path []string
	// Type is the type the operation was resolved against.
	Type reflect.Type
	// Kind is the sentinel classifying the failure.
	Kind error
	// Reason is a short human-readable explanation.
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

func (e *AccessError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if len(e.Path) > 0 {
		b.WriteByte(' ')
		b.WriteString(strings.Join(e.Path, "."))
	}
	if e.Type != nil {
		b.WriteString(" on ")
		b.WriteString(e.Type.String())
	}
	b.WriteString(": ")
	if e.Kind != nil {
		b.WriteString(e.Kind.Error())
	} else {
		b.WriteString("dax: failed")
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns Kind and Err.
func (e *AccessError) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

func accessError(op string, path []string, t reflect.Type, kind error, reason string, err error) *AccessError {
	return &AccessError{Op: op, Path: path, Type: t, Kind: kind, Reason: reason, Err: err}
}

// withPath returns a copy of err reporting path, if err is an *AccessError.
func withPath(err error, path []string) error {
	var ae *AccessError
	if !errors.As(err, &ae) {
		return err
	}
	c := *ae
	c.Path = append([]string(nil), path...)
	return &c
}

// ConversionError describes a value that could not be converted.
type ConversionError struct {
	From   reflect.Type
	To     reflect.Type
	Value  any
	Reason string
	Err    error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dax: cannot convert %v (type %v) to %v: %s: %v", e.Value, e.From, e.To, e.Reason, e.Err)
	}
	return fmt.Sprintf("dax: cannot convert %v (type %v) to %v: %s", e.Value, e.From, e.To, e.Reason)
}

// Unwrap returns the underlying cause.
func (e *ConversionError) Unwrap() error { return e.Err }

// Is reports whether target is ErrConversion.
func (e *ConversionError) Is(target error) bool { return target == ErrConversion }
