package repo

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
)

// IDGenerator hands out opaque, time-ordered identifiers.
type IDGenerator interface {
	NewID() string
}

type snowflakeIDs struct {
	node *snowflake.Node
}

// NewSnowflakeIDs builds an IDGenerator for the given node (0-1023).
func NewSnowflakeIDs(nodeID int64) (IDGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("repo: snowflake node %d: %w", nodeID, err)
	}
	return &snowflakeIDs{node: node}, nil
}

func (s *snowflakeIDs) NewID() string {
	return s.node.Generate().String()
}

func defaultIDs() IDGenerator {
	ids, err := NewSnowflakeIDs(1)
	if err != nil {
		panic(err)
	}
	return ids
}

// Clock returns the current time. All stored timestamps are UTC.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}
