// Copyright 2026 The Packrat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packrat // modernc.org/packrat

import (
	"fmt"
	"strings"
)

// Stats records the work done by a single parse.
type Stats struct {
	// Bodies counts rule body executions, memo hits excluded.
	Bodies [NumRules]int
	// Hits counts results served from the memo table.
	Hits [NumRules]int
	// Stores counts memo table slots populated.
	Stores int
	// Budget is the number of budget units consumed.
	Budget int
	// MaxDepth is the maximum rule nesting reached.
	MaxDepth int
}

// TotalBodies returns the sum of s.Bodies.
func (s *Stats) TotalBodies() (r int) {
	for _, v := range s.Bodies {
		r += v
	}
	return r
}

// TotalHits returns the sum of s.Hits.
func (s *Stats) TotalHits() (r int) {
	for _, v := range s.Hits {
		r += v
	}
	return r
}

// Add accumulates t into s.
func (s *Stats) Add(t *Stats) {
	for i := range s.Bodies {
		s.Bodies[i] += t.Bodies[i]
		s.Hits[i] += t.Hits[i]
	}
	s.Stores += t.Stores
	s.Budget += t.Budget
	if t.MaxDepth > s.MaxDepth {
		s.MaxDepth = t.MaxDepth
	}
}

func (s *Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "bodies %v, hits %v, stores %v, budget %v, depth %v", h(s.TotalBodies()), h(s.TotalHits()), h(s.Stores), h(s.Budget), h(s.MaxDepth))
	for i := Rule(0); i < NumRules; i++ {
		fmt.Fprintf(&b, "\n\t%-9s bodies %v, hits %v", i, h(s.Bodies[i]), h(s.Hits[i]))
	}
	return b.String()
}
