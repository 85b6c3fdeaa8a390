package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// DateLayout calendar dates stored as plain strings
const DateLayout = "2006-01-02"

// Record id prefixes
const (
	ProductIDPrefix    = "prod-"
	SaleIDPrefix       = "SALE-"
	ReceivableIDPrefix = "R-"
	JobIDPrefix        = "M-"
)

// IDGenerator issues prefixed snowflake ids
type IDGenerator struct {
	node *snowflake.Node
}

// NewIDGenerator creates a generator for the given snowflake node (0-1023)
func NewIDGenerator(nodeID int64) (*IDGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}
	return &IDGenerator{node: node}, nil
}

// Next returns prefix followed by a new snowflake id
func (g *IDGenerator) Next(prefix string) string {
	return prefix + g.node.Generate().String()
}

// FormatDate formats t as a storage date in t's location
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
