// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"sort"

	"golang.org/x/exp/maps"
)

const (
	Read     Permissions = 1
	Allocate             = 1<<1 | Read
	Write                = 1<<2 | Read

	None Permissions = 0
	All              = Read | Allocate | Write
)

// Keys maps a state key to the permissions an operation holds on it.
// Use [Keys.Add] to merge permissions instead of overwriting them.
type Keys map[string]Permissions

// All acceptable permission options
type Permissions byte

// Add unions [permission] into the permissions already held for [name].
func (k Keys) Add(name string, permission Permissions) {
	k[name] |= permission
}

// Sorted returns the key names in ascending byte order.
func (k Keys) Sorted() []string {
	names := maps.Keys(k)
	sort.Strings(names)
	return names
}

// Has returns true if [p] has all the permissions that are contained in require
func (p Permissions) Has(require Permissions) bool {
	return require&^p == 0
}

func (p Permissions) String() string {
	switch p {
	case None:
		return "none"
	case Read:
		return "read"
	case Allocate:
		return "allocate"
	case Write:
		return "write"
	case All:
		return "all"
	default:
		return "unknown"
	}
}
