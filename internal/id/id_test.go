package id

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShort_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		s := Short()
		assert.Len(t, s, ShortLen)
		assert.True(t, IsHex(s), "Short() = %q, want hex", s)
		assert.True(t, IsShort(s))
	}
}

func TestShort_Concurrent(t *testing.T) {
	const goroutines = 20
	const perGoroutine = 50

	results := make(chan string, goroutines*perGoroutine)
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				results <- Short()
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool, goroutines*perGoroutine)
	for s := range results {
		if seen[s] {
			t.Fatalf("Short() generated duplicate: %s", s)
		}
		seen[s] = true
	}
}

func TestIsShort(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"e2e2d84ffb3c4f85", true},
		{"XXXXXXXXXXXXXXXX", true},
		{"e2e2d84ffb3c4f8", false},
		{"e2e2d84ffb3c4f851", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsShort(tt.in), tt.in)
	}
}

func TestIsHex(t *testing.T) {
	assert.True(t, IsHex("0123456789abcdef"))
	assert.False(t, IsHex("ABCDEF"))
	assert.False(t, IsHex("bucket-1"))
	assert.False(t, IsHex(""))
}
