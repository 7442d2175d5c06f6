package utils

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_ConcurrentFirstUse(t *testing.T) {
	const callers = 16
	got := make([]*time.Location, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = Location()
		}(i)
	}
	wg.Wait()

	require.NotNil(t, got[0])
	for _, loc := range got {
		assert.Same(t, got[0], loc)
	}

	_, offset := time.Date(2025, 6, 2, 10, 0, 0, 0, got[0]).Zone()
	assert.Equal(t, istOffset, offset)
}

func TestParseDate(t *testing.T) {
	loc := Location()

	day, err := ParseDate("2025-06-03", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Tuesday, day.Weekday())
	assert.Equal(t, 0, day.Hour())

	_, err = ParseDate("2025-6-3", loc)
	assert.Error(t, err)
}
