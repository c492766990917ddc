package hypergraph

import (
	"fmt"
	"strings"
)

// UnknownNodeError reports a reference to a node id that is not in the store.
type UnknownNodeError struct {
	IDs []string
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("unknown node id(s): %s", strings.Join(e.IDs, ", "))
}

// DuplicateNodeError reports an attempt to re-add an existing node id.
type DuplicateNodeError struct {
	ID string
}

func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("node %q already exists", e.ID)
}

// InvalidEdgeError reports a hyperedge with fewer than two distinct members.
type InvalidEdgeError struct {
	ID      string
	Members int
}

func (e *InvalidEdgeError) Error() string {
	return fmt.Sprintf("hyperedge %q has %d member(s), need at least 2", e.ID, e.Members)
}

// DuplicateEdgeError reports an attempt to re-add an existing edge id.
type DuplicateEdgeError struct {
	ID string
}

func (e *DuplicateEdgeError) Error() string {
	return fmt.Sprintf("hyperedge %q already exists", e.ID)
}

// UnknownEdgeError reports a reference to an edge id that is not in the store.
type UnknownEdgeError struct {
	ID string
}

func (e *UnknownEdgeError) Error() string {
	return fmt.Sprintf("unknown hyperedge id %q", e.ID)
}
