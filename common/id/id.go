package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init initializes the Snowflake node with the given node ID.
// Only the first call has an effect.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New generates a new catalog-wide unique int64 ID.
// Buildings, activities and organizations all draw from the same node so IDs are
// time-ordered across tables.
func New() int64 {
	return node.Generate().Int64()
}
