package restbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusIsOK(t *testing.T) {
	for code := 200; code <= 206; code++ {
		assert.True(t, Status(code).IsOK(), "status %d", code)
	}
	for _, code := range []int{100, 199, 207, 226, 301, 304, 400, 404, 429, 500, 503} {
		assert.False(t, Status(code).IsOK(), "status %d", code)
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "200 OK", StatusOK.String())
	assert.Equal(t, "404 Not Found", Status(404).String())
	assert.Equal(t, "Not Found", Status(404).Text())
	assert.Equal(t, "599", Status(599).String())
}
