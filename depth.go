// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtoken

import "fmt"

// A depthSet is a growable bit vector recording, for each open nesting
// depth, whether the container at that depth is an object (true) or an
// array (false).
type depthSet struct {
	words []uint64
}

const depthSlack = 8 // words added beyond the required size on growth

func (d *depthSet) get(i int) bool {
	checkDepth(i)
	w := i >> 6
	if w >= len(d.words) {
		return false
	}
	return d.words[w]&(1<<(i&63)) != 0
}

func (d *depthSet) set(i int) {
	checkDepth(i)
	w := i >> 6
	if w >= len(d.words) {
		grown := make([]uint64, w+depthSlack)
		copy(grown, d.words)
		d.words = grown
	}
	d.words[w] |= 1 << (i & 63)
}

func (d *depthSet) clear(i int) {
	checkDepth(i)
	w := i >> 6
	if w >= len(d.words) {
		return // already clear
	}
	d.words[w] &^= 1 << (i & 63)
}

func checkDepth(i int) {
	if i < 0 {
		panic(fmt.Sprintf("negative depth %d", i))
	}
}
