// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// Cache holds rules by key. It is not safe for concurrent use.
type Cache struct {
	rules map[Key]*Rule
}

// NewCache returns a new empty cache
func NewCache() *Cache {
	return &Cache{rules: make(map[Key]*Rule)}
}

// Get returns the rule of key; it is allocated on the first call
func (o *Cache) Get(key Key) (rule *Rule, err error) {
	if key.Order <= 0 {
		key.Order = DefaultOrder(key.CellType)
	}
	if rule, ok := o.rules[key]; ok {
		return rule, nil
	}
	rule, err = NewRule(key)
	if err != nil {
		return
	}
	o.rules[key] = rule
	return
}

// Len returns the number of rules in cache
func (o *Cache) Len() int { return len(o.rules) }

// Clear removes all rules
func (o *Cache) Clear() {
	o.rules = make(map[Key]*Rule)
}
