package lambdautils

import (
	"sync"

	"github.com/google/uuid"
)

// Container identifies a warm lambda execution environment. The id is fixed
// by the first invocation served and never reset; it only feeds log lines.
type Container struct {
	once sync.Once
	id   string
}

// Claim returns the container id, setting it to candidate on the first call.
// An empty candidate is replaced with a random id.
func (c *Container) Claim(candidate string) string {
	c.once.Do(func() {
		if candidate == "" {
			candidate = uuid.New().String()
		}

		c.id = candidate
	})

	return c.id
}
