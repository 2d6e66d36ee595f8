package renderer

import (
	"sync"
	"testing"
)

type generationResult struct {
	generation int
}

func newerGeneration(a, b generationResult) bool {
	return a.generation > b.generation
}

func TestPublishLatest(t *testing.T) {
	closed := make(chan struct{})
	close(closed)

	tests := []struct {
		name     string
		pending  *generationResult
		publish  generationResult
		done     <-chan struct{}
		expected int // generation left in the slot, 0 for empty
	}{
		{"empty slot", nil, generationResult{1}, nil, 1},
		{"replaces older pending", &generationResult{1}, generationResult{2}, nil, 2},
		{"stale result keeps newer pending", &generationResult{3}, generationResult{2}, nil, 3},
		{"cancelled stale result keeps newer pending", &generationResult{3}, generationResult{2}, closed, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := make(chan generationResult, 1)
			if tt.pending != nil {
				slot <- *tt.pending
			}

			PublishLatest(slot, tt.publish, newerGeneration, tt.done)

			select {
			case got := <-slot:
				if got.generation != tt.expected {
					t.Errorf("Expected generation %d in slot, got %d", tt.expected, got.generation)
				}
			default:
				if tt.expected != 0 {
					t.Errorf("Expected generation %d in slot, got empty slot", tt.expected)
				}
			}
		})
	}
}

func TestPublishLatest_ConcurrentKeepsNewest(t *testing.T) {
	slot := make(chan generationResult, 1)

	var wg sync.WaitGroup
	for g := 1; g <= 50; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			PublishLatest(slot, generationResult{g}, newerGeneration, nil)
		}(g)
	}
	wg.Wait()

	if got := <-slot; got.generation != 50 {
		t.Errorf("Expected newest generation 50 to survive, got %d", got.generation)
	}
}
