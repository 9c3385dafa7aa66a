package services

import (
	"strings"

	"github.com/google/uuid"
)

// blockKeyLen is the length of generated block keys.
const blockKeyLen = 8

// NewBlockKey returns a random key for a new content block.
func NewBlockKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:blockKeyLen]
}
