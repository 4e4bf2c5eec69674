package uid

import "github.com/bwmarrin/snowflake"

// Snowflake generates 63-bit time-ordered numeric IDs.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a Snowflake generator for the given node number.
// Node numbers must be unique per running instance (0..1023).
func NewSnowflake(node int64) (*Snowflake, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: n}, nil
}

// Generate returns a new numeric ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
