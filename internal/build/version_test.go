package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, BuildDate
	t.Cleanup(func() { Version, Commit, BuildDate = oldV, oldC, oldD })

	Version, Commit, BuildDate = "1.2.0", "abc123", "2026-10-01"
	assert.Equal(t, "fwrelease 1.2.0 (commit abc123, built 2026-10-01)", String())
	assert.False(t, IsDevBuild())

	Version = "dev"
	assert.True(t, IsDevBuild())
}
