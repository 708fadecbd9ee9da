package unitig

import "cdbg/vertex"

// sideBranchingLeft reports whether the side of a vertex facing
// sequence-left, given its class and its occurrence's Direction, is
// branching. In FWD orientation sequence-left is the vertex's
// canonical entry (back) side; in BWD orientation the mapping flips,
// since traversing the vertex backward means sequence-left is its
// canonical exit (front) side.
func sideBranchingLeft(class vertex.VertexClass, dir vertex.Direction) bool {
	if dir == vertex.FWD {
		return class.EntryBranching()
	}
	return class.ExitBranching()
}

// sideBranchingRight is the mirror of sideBranchingLeft for the side
// of the vertex facing sequence-right.
func sideBranchingRight(class vertex.VertexClass, dir vertex.Direction) bool {
	if dir == vertex.FWD {
		return class.ExitBranching()
	}
	return class.EntryBranching()
}

// IsUnipathStart reports whether a maximal unitig starts at curr
// relative to its left neighbor left. A boundary exists, per §4.3,
// when the adjacency is branching on either side: curr's own
// sequence-left side, or left's sequence-right side (the side facing
// curr).
func IsUnipathStart(currClass vertex.VertexClass, currDir vertex.Direction, leftClass vertex.VertexClass, leftDir vertex.Direction) bool {
	return sideBranchingLeft(currClass, currDir) || sideBranchingRight(leftClass, leftDir)
}

// IsUnipathEnd reports whether a maximal unitig ends at curr relative
// to its right neighbor right, mirroring IsUnipathStart.
func IsUnipathEnd(currClass vertex.VertexClass, currDir vertex.Direction, rightClass vertex.VertexClass, rightDir vertex.Direction) bool {
	return sideBranchingRight(currClass, currDir) || sideBranchingLeft(rightClass, rightDir)
}
