package idgen

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// Generator defines the interface for generating unique IDs
type Generator interface {
	GenerateID() string
}

// SnowflakeGenerator hands out screen-session ids.
type SnowflakeGenerator struct {
	node *snowflake.Node
	mu   sync.Mutex
}

// NewSnowflakeGenerator initializes a new ID generator.
// nodeID must be unique per server instance (0-1023) to prevent collisions.
func NewSnowflakeGenerator(nodeID int64) (*SnowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}

	return &SnowflakeGenerator{
		node: node,
	}, nil
}

// GenerateID returns a new unique id in base58, short enough for URLs.
func (g *SnowflakeGenerator) GenerateID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.node.Generate().Base58()
}
