package utils

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

// NewRequestID generates a request correlation id
func NewRequestID() string {
	return uuid.New().String()
}

// NewIDNode creates the snowflake node that numbers transactions. Node ids
// must differ between terminals sharing one archive.
func NewIDNode(nodeID int64) (*snowflake.Node, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", nodeID, err)
	}
	return node, nil
}

// ParseTransactionID parses the decimal form of a snowflake id.
func ParseTransactionID(s string) (snowflake.ID, error) {
	return snowflake.ParseString(s)
}
