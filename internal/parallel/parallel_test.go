package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestFor_EachIndexOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 1}

	hits := make([]int32, 17)
	For(len(hits), func(i int) {
		atomic.AddInt32(&hits[i], 1)
	}, cfg)

	for i, h := range hits {
		if h != 1 {
			t.Errorf("index %d visited %d times", i, h)
		}
	}
}

func TestFor_Sequential(t *testing.T) {
	var order []int
	For(5, func(i int) {
		order = append(order, i)
	}, Sequential())

	for i, v := range order {
		if v != i {
			t.Fatalf("sequential config ran out of order: %v", order)
		}
	}
	if len(order) != 5 {
		t.Errorf("Expected 5 calls, got %d", len(order))
	}
}

func TestFor_Empty(t *testing.T) {
	For(0, func(_ int) {
		t.Fatal("f must not be called for n=0")
	}, DefaultConfig())
}
