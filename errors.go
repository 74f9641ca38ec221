// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd

import (
	"errors"
	"fmt"
	"log"
)

// Errors recorded by a Manager. Operations of the algebra never return an
// error: they return the top terminal and record the cause, that can be
// tested with errors.Is on the value returned by Err.
var (
	ErrVariableMismatch = errors.New("operands labelled with different variables")
	ErrLengthMismatch   = errors.New("operands with paths of different lengths")
	ErrDangling         = errors.New("reference to a reclaimed object")
	ErrForeignManager   = errors.New("object belongs to another manager")
	ErrLabelType        = errors.New("incompatible arc labels")
	ErrVariable         = errors.New("invalid variable index")
	ErrValue            = errors.New("arc value out of range")
	ErrTopPaths         = errors.New("paths of the top terminal")
)

// Error returns the error status of the manager. We return an empty string if
// there are no errors.
func (m *Manager) Error() string {
	if m.error == nil {
		return ""
	}
	return m.error.Error()
}

// Errored returns true if there was an error during a computation.
func (m *Manager) Errored() bool {
	return m.error != nil
}

// Err returns the first error recorded since the last call to ResetError.
func (m *Manager) Err() error {
	return m.error
}

// ResetError clears the error status of the manager. Operation caches are
// also cleared, since they may hold Top results computed after the error.
func (m *Manager) ResetError() {
	if m.error != nil {
		m.cachereset()
	}
	m.error = nil
	m.errcount = 0
}

// Errcount returns the number of errors recorded since the last call to
// ResetError. Only the first one is kept in Err.
func (m *Manager) Errcount() int {
	return m.errcount
}

// seterror records an error and returns the index of the top terminal so that
// it can be used directly as the result of a computation. Format must use %w
// at most once, to wrap one of the sentinel errors. A failing operation usually
// fails at many places during a recursion, so we keep only the first cause and
// count the others.
func (m *Manager) seterror(format string, a ...interface{}) int32 {
	err := fmt.Errorf(format, a...)
	if _DEBUG {
		log.Panicln(err)
	}
	m.errcount++
	if m.error != nil {
		m.log.V(2).Info("operation yields top", "cause", err.Error())
		return top
	}
	m.log.V(1).Info("operation yields top", "cause", err.Error())
	m.error = err
	return top
}
