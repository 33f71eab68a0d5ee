package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimits_EffectiveMaxRemainingLength(t *testing.T) {
	assert.Equal(t, MaxVariableByteInteger, DefaultLimits().effectiveMaxRemainingLength())
	assert.Equal(t, uint32(100), Limits{MaxRemainingLength: 100}.effectiveMaxRemainingLength())
	assert.Equal(t, MaxVariableByteInteger, Limits{MaxRemainingLength: MaxVariableByteInteger + 1}.effectiveMaxRemainingLength())
}
