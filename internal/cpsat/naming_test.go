package cpsat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariableNames(t *testing.T) {
	assert.Equal(t, "x[1A,math,t1,2,3]", VarName("1A", "math", "t1", 2, 3))
	assert.Equal(t, "y[1A,math,2,3]", AggregateName("1A", "math", 2, 3))
	assert.Equal(t, "u[1A,morning,2,3]", UnitName("1A", "morning", 2, 3))
	assert.Equal(t, "start[1A,math,2,3]", StartName("1A", "math", 2, 3))
}
