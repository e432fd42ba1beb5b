// Copyright 2026 The Packrat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packrat // modernc.org/packrat

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache stores successful parses across calls. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get returns the tree and the end offset of a previous successful
	// parse of input.
	Get(input string) (e Expr, end int, ok bool)
	Put(input string, e Expr, end int)
}

type cacheEntry struct {
	expr Expr
	end  int
}

type lruCache struct {
	c *lru.Cache[string, cacheEntry]
}

// NewLRUCache returns a Cache holding at most size entries, evicting the
// least recently used one first.
func NewLRUCache(size int) (Cache, error) {
	c, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, errorf("NewLRUCache: %v", err)
	}

	return &lruCache{c}, nil
}

// Get implements Cache.
func (c *lruCache) Get(input string) (e Expr, end int, ok bool) {
	v, ok := c.c.Get(input)
	if !ok {
		return nil, 0, false
	}

	return v.expr, v.end, true
}

// Put implements Cache.
func (c *lruCache) Put(input string, e Expr, end int) { c.c.Add(input, cacheEntry{e, end}) }
