// elGFA: a validating parser for GFA and GFA2 assembly graph files.
// Copyright (c) 2026 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elgfa/blob/master/LICENSE.txt>.

package gfa

import (
	"sort"

	"github.com/exascience/pargo/parallel"
	psort "github.com/exascience/pargo/sort"
)

// Stats summarizes a graph.
type Stats struct {
	Dialect Format

	Segments, Links, Containments, Paths int
	Fragments, Edges, Gaps, Groups       int

	// Segments with a known length, and their total, maximum, and N50
	// length.
	KnownLengths int
	TotalLength  int64
	MaxLength    int64
	N50          int64

	// Segments no relational record refers to.
	Isolated int
}

type lengthSorter []int64

func (s lengthSorter) SequentialSort(i, j int) {
	sort.SliceStable(s[i:j], func(k, l int) bool {
		return s[i+k] > s[i+l]
	})
}

func (s lengthSorter) NewTemp() psort.StableSorter {
	return lengthSorter(make([]int64, len(s)))
}

func (s lengthSorter) Len() int {
	return len(s)
}

func (s lengthSorter) Less(i, j int) bool {
	return s[i] > s[j]
}

func (s lengthSorter) Assign(source psort.StableSorter) func(i, j, len int) {
	dst, src := s, source.(lengthSorter)
	return func(i, j, len int) {
		copy(dst[i:i+len], src[j:j+len])
	}
}

// n50 returns the length L such that segments of length L or more
// cover at least half of total. lengths must be sorted in decreasing
// order.
func n50(lengths []int64, total int64) int64 {
	var sum int64
	for _, l := range lengths {
		sum += l
		if 2*sum >= total {
			return l
		}
	}
	return 0
}

// ComputeStats computes summary statistics of the given graph.
func ComputeStats(g *Graph) Stats {
	stats := Stats{
		Dialect:      g.dialect,
		Segments:     len(g.segmentList),
		Links:        len(g.Links),
		Containments: len(g.Containments),
		Paths:        len(g.Paths),
		Fragments:    len(g.Fragments),
		Edges:        len(g.Edges),
		Gaps:         len(g.Gaps),
		Groups:       len(g.Groups),
		Isolated:     len(g.segmentList) - int(g.referenced.Count()),
	}
	lengths := make([]int64, 0, len(g.segmentList))
	for _, seg := range g.segmentList {
		if seg.HasLength() {
			lengths = append(lengths, seg.Length)
		}
	}
	stats.KnownLengths = len(lengths)
	if len(lengths) == 0 {
		return stats
	}
	parallel.Do(
		func() {
			segs := g.segmentList
			stats.TotalLength = int64(parallel.RangeReduceInt(0, len(segs), 0,
				func(low, high int) int {
					var total int64
					for i := low; i < high; i++ {
						if seg := segs[i]; seg.HasLength() {
							total += seg.Length
						}
					}
					return int(total)
				},
				func(x, y int) int { return x + y }))
		},
		func() {
			psort.StableSort(lengthSorter(lengths))
		},
	)
	stats.MaxLength = lengths[0]
	stats.N50 = n50(lengths, stats.TotalLength)
	return stats
}
