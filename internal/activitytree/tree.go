// Package activitytree enforces the shape of the activity hierarchy: a forest
// at most MaxDepth levels deep, with no cycles.
package activitytree

import (
	"context"
	"errors"
	"fmt"
)

// MaxDepth is the number of levels an activity chain may have, root included.
const MaxDepth = 3

var (
	ErrDepthExceeded = errors.New("activity hierarchy depth exceeded")
	ErrCycle         = errors.New("activity hierarchy cycle")
)

// Graph is the read access to activities the hierarchy checks need.
// ParentOf returns store.ErrNotFound for an unknown id.
type Graph interface {
	ParentOf(ctx context.Context, id int64) (*int64, error)
	IDsByName(ctx context.Context, name string) ([]int64, error)
	ChildrenOf(ctx context.Context, ids []int64) ([]int64, error)
}

// DepthOf counts the nodes from id up to its root. A root has depth 1.
func DepthOf(ctx context.Context, g Graph, id int64) (int, error) {
	visited := make(map[int64]struct{})
	depth := 0
	cur := id
	for {
		if _, seen := visited[cur]; seen {
			return 0, fmt.Errorf("activity %d reached twice walking up from %d: %w", cur, id, ErrCycle)
		}
		visited[cur] = struct{}{}

		parent, err := g.ParentOf(ctx, cur)
		if err != nil {
			return 0, fmt.Errorf("activity %d: %w", cur, err)
		}
		depth++
		if parent == nil {
			return depth, nil
		}
		cur = *parent
	}
}

// CheckParent reports whether a new child may be attached under parentID.
func CheckParent(ctx context.Context, g Graph, parentID int64) error {
	depth, err := DepthOf(ctx, g, parentID)
	if err != nil {
		return err
	}
	if depth >= MaxDepth {
		return fmt.Errorf("parent %d is at depth %d: %w", parentID, depth, ErrDepthExceeded)
	}
	return nil
}

// CheckMove reports whether activity id may be reparented under newParent.
// A nil newParent makes id a root, which never deepens the tree.
func CheckMove(ctx context.Context, g Graph, id int64, newParent *int64) error {
	if newParent == nil {
		return nil
	}
	if *newParent == id {
		return fmt.Errorf("activity %d cannot be its own parent: %w", id, ErrCycle)
	}

	height, members, err := subtree(ctx, g, []int64{id})
	if err != nil {
		return err
	}
	if _, inside := members[*newParent]; inside {
		return fmt.Errorf("activity %d is a descendant of %d: %w", *newParent, id, ErrCycle)
	}

	depth, err := DepthOf(ctx, g, *newParent)
	if err != nil {
		return err
	}
	if depth+height > MaxDepth {
		return fmt.Errorf("moving %d (height %d) under %d (depth %d): %w", id, height, *newParent, depth, ErrDepthExceeded)
	}
	return nil
}

// SubtreeHeight is the number of levels in the subtree rooted at id. A leaf has height 1.
func SubtreeHeight(ctx context.Context, g Graph, id int64) (int, error) {
	height, _, err := subtree(ctx, g, []int64{id})
	return height, err
}

// ResolveDescendants returns every activity called name together with all of
// their transitive children. Unknown names resolve to an empty set.
func ResolveDescendants(ctx context.Context, g Graph, name string) ([]int64, error) {
	roots, err := g.IDsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return []int64{}, nil
	}

	_, members, err := subtree(ctx, g, roots)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	return ids, nil
}

// subtree walks down from roots one level per query. Nodes already seen are
// not expanded again, so shared or repeated roots are harmless.
func subtree(ctx context.Context, g Graph, roots []int64) (int, map[int64]struct{}, error) {
	members := make(map[int64]struct{}, len(roots))
	frontier := make([]int64, 0, len(roots))
	for _, id := range roots {
		if _, ok := members[id]; ok {
			continue
		}
		members[id] = struct{}{}
		frontier = append(frontier, id)
	}

	height := 0
	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return 0, nil, err
		}
		height++

		children, err := g.ChildrenOf(ctx, frontier)
		if err != nil {
			return 0, nil, err
		}

		next := make([]int64, 0, len(children))
		for _, c := range children {
			if _, seen := members[c]; seen {
				continue
			}
			members[c] = struct{}{}
			next = append(next, c)
		}
		frontier = next
	}
	return height, members, nil
}
