// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/gm/msh"
	"github.com/xj361685640/IBAMR/shp"
)

// InfoFuncType defines a function that returns information about a certain element kind
type InfoFuncType func(cell *msh.Cell, vars []string) *Info

// AllocatorType defines a function that allocates an element
type AllocatorType func(cell *msh.Cell, rule *shp.Rule) Element

// GetInfo returns information about elements from factory
func GetInfo(kind string, cell *msh.Cell, vars []string) (info *Info, err error) {
	fcn, ok := infofactory[kind]
	if !ok {
		err = chk.Err("cannot get info for element {kind=%q, id=%d}", kind, cell.ID)
		return
	}
	info = fcn(cell, vars)
	if info == nil {
		err = chk.Err("info for element {kind=%q, type=%q, id=%d} is not available", kind, cell.TypeKey, cell.ID)
	}
	return
}

// New returns a new element from factory
func New(kind string, cell *msh.Cell, rule *shp.Rule) (ele Element, err error) {
	fcn, ok := allocators[kind]
	if !ok {
		err = chk.Err("cannot get allocator for element {kind=%q, id=%d}", kind, cell.ID)
		return
	}
	if rule.Key.CellType != cell.TypeIndex {
		err = chk.Err("rule %v cannot be used with element {type=%q, id=%d}", rule.Key, cell.TypeKey, cell.ID)
		return
	}
	ele = fcn(cell, rule)
	if ele == nil {
		err = chk.Err("element {kind=%q, type=%q, id=%d} is not available", kind, cell.TypeKey, cell.ID)
	}
	return
}

// SetInfoFunc sets a new callback function to return information about an element
func SetInfoFunc(kind string, fcn InfoFuncType) {
	if _, ok := infofactory[kind]; ok {
		chk.Panic("cannot set information function for %q because element kind exists already", kind)
	}
	infofactory[kind] = fcn
}

// SetAllocator sets a new callback function to allocate an element
func SetAllocator(kind string, fcn AllocatorType) {
	if _, ok := allocators[kind]; ok {
		chk.Panic("cannot set allocator function for %q because element kind exists already", kind)
	}
	allocators[kind] = fcn
}

// GetInfoFunc gets callback function to return information about an element
func GetInfoFunc(kind string) InfoFuncType {
	if fcn, ok := infofactory[kind]; ok {
		return fcn
	}
	chk.Panic("cannot get function for information about element %q", kind)
	return nil
}

// GetAllocator gets callback function to allocate an element
func GetAllocator(kind string) AllocatorType {
	if fcn, ok := allocators[kind]; ok {
		return fcn
	}
	chk.Panic("cannot get allocator function for element %q", kind)
	return nil
}

// infofactory holds all functions that return information about an element
var infofactory = make(map[string]InfoFuncType)

// allocators holds all element allocators
var allocators = make(map[string]AllocatorType)
