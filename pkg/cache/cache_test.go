/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: cache_test.go
Description: Tests for the memoization layer: read-through computation,
error passthrough, invalidation, purge, and nil-receiver behavior.
*/

package cache_test

import (
	"errors"
	"testing"

	"github.com/kleascm/selector-forge/pkg/cache"
	"github.com/kleascm/selector-forge/pkg/classifier"
	"github.com/kleascm/selector-forge/pkg/interfaces"
	"github.com/kleascm/selector-forge/pkg/urlgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetOrCompute verifies a value is computed once and then served.
func TestGetOrCompute(t *testing.T) {
	m, err := cache.New[string, int](8)
	require.NoError(t, err)

	calls := 0
	compute := func() (int, error) {
		calls++
		return 42, nil
	}

	v, err := m.GetOrCompute("k", compute)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = m.GetOrCompute("k", compute)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)
}

// TestComputeErrorNotCached verifies failed computations are retried.
func TestComputeErrorNotCached(t *testing.T) {
	m, err := cache.New[string, int](8)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = m.GetOrCompute("k", func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, m.Len())

	v, err := m.GetOrCompute("k", func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

// TestInvalidateAndPurge verifies explicit clearing.
func TestInvalidateAndPurge(t *testing.T) {
	m, err := cache.New[string, string](8)
	require.NoError(t, err)

	_, _ = m.GetOrCompute("a", func() (string, error) { return "1", nil })
	_, _ = m.GetOrCompute("b", func() (string, error) { return "2", nil })
	require.Equal(t, 2, m.Len())

	m.Invalidate("a")
	_, ok := m.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())

	m.Purge()
	assert.Equal(t, 0, m.Len())
}

// TestNilMemoComputes verifies a nil cache degrades to plain computation.
func TestNilMemoComputes(t *testing.T) {
	var m *cache.Memo[string, int]

	v, err := m.GetOrCompute("k", func() (int, error) { return 9, nil })
	require.NoError(t, err)
	assert.Equal(t, 9, v)
	assert.Equal(t, 0, m.Len())
}

// TestMemoizedURLAnalysis verifies the intended pairing with the URL
// generalizer: same key, same pattern, one computation.
func TestMemoizedURLAnalysis(t *testing.T) {
	m, err := cache.New[string, *interfaces.URLAnalysis](16)
	require.NoError(t, err)
	g := urlgen.New(classifier.New())

	const raw = "https://dashboard.saas.com/org/98765/project/54321/settings"
	analyze := func() (*interfaces.URLAnalysis, error) {
		return g.Analyze(raw, interfaces.DefaultOptions())
	}

	first, err := m.GetOrCompute(raw, analyze)
	require.NoError(t, err)
	second, err := m.GetOrCompute(raw, analyze)
	require.NoError(t, err)

	// served from cache: same result value, not just an equal one
	assert.Same(t, first, second)
	assert.Equal(t, "https://dashboard.saas.com/org/*/project/*/settings", first.Pattern.PatternString)
}
