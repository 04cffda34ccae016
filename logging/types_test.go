package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetVerbosityFirstCallWins(t *testing.T) {
	Reset()
	defer Reset()

	SetVerbosity(LevelMerge | LevelGridTest)
	SetVerbosity(LevelOptimize) // ignored: once already fired

	assert.True(t, Enabled(LevelMerge))
	assert.True(t, Enabled(LevelGridTest))
	assert.False(t, Enabled(LevelOptimize))
	assert.True(t, Enabled(LevelMerge|LevelGridTest))
}

func TestEnabledDefaultsToNothing(t *testing.T) {
	Reset()
	defer Reset()

	assert.False(t, Enabled(LevelMerge))
	assert.False(t, Enabled(LevelSerumCircle))
}
