package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillStatusDistributionZeroFills(t *testing.T) {
	dist := FillStatusDistribution(map[Status]int64{StatusTodo: 3}, 3)

	assert.Equal(t, int64(3), dist["Todo"])
	assert.Equal(t, int64(0), dist["InProgress"])
	assert.Equal(t, int64(0), dist["Completed"])
	assert.Equal(t, int64(3), dist["All"])
	assert.Len(t, dist, 4)
}

func TestFillPriorityDistributionZeroFills(t *testing.T) {
	dist := FillPriorityDistribution(map[Priority]int64{PriorityLow: 1, PriorityMedium: 2})

	assert.Equal(t, int64(1), dist["Low"])
	assert.Equal(t, int64(2), dist["Medium"])
	assert.Equal(t, int64(0), dist["High"])
	assert.Len(t, dist, 3)
}
