package utils

import (
	"reflect"
	"testing"
)

func TestFixedQueue_Enqueue(t *testing.T) {
	type intTestCase struct {
		name      string
		initial   []int
		capacity  int
		items     []int
		wantSlice []int
		wantErr   bool
	}

	tests := []intTestCase{
		{
			name:      "enqueue single item",
			initial:   []int{},
			capacity:  3,
			items:     []int{1},
			wantSlice: []int{1},
		},
		{
			name:      "enqueue multiple items within capacity",
			initial:   []int{1},
			capacity:  3,
			items:     []int{2, 3},
			wantSlice: []int{1, 2, 3},
		},
		{
			name:      "overwrite when full",
			initial:   []int{1, 2, 3},
			capacity:  3,
			items:     []int{4},
			wantSlice: []int{2, 3, 4},
		},
		{
			name:      "batch larger than capacity keeps the newest",
			initial:   []int{1},
			capacity:  3,
			items:     []int{2, 3, 4, 5},
			wantSlice: []int{3, 4, 5},
		},
		{
			name:      "error on empty batch",
			initial:   []int{1},
			capacity:  3,
			items:     []int{},
			wantSlice: []int{1},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				q, err := NewFixedQueue[int](tt.capacity)
				if err != nil {
					t.Fatalf("failed to create queue: %v", err)
				}

				for _, v := range tt.initial {
					if err := q.Enqueue(v); err != nil {
						t.Fatalf("setup Enqueue error: %v", err)
					}
				}

				err = q.Enqueue(tt.items...)
				if (err != nil) != tt.wantErr {
					t.Errorf("Enqueue() error = %v, wantErr %v", err, tt.wantErr)
				}

				got := q.ToSlice()
				if !reflect.DeepEqual(got, tt.wantSlice) {
					t.Errorf("contents = %v, want %v", got, tt.wantSlice)
				}
			},
		)
	}
}

func TestFixedQueue_Evicts(t *testing.T) {
	q, _ := NewFixedQueue[string](2)

	if err := q.Enqueue(); err == nil {
		t.Fatal("expected error enqueuing nothing")
	}

	_ = q.Enqueue("a", "b", "c")

	if got := q.ToSlice(); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("ToSlice() = %v, want [b c]", got)
	}
	if q.Len() != 2 {
		t.Errorf("Len() = %d, want 2", q.Len())
	}
}

func TestFixedQueue_ToSliceDoesNotDrain(t *testing.T) {
	q, _ := NewFixedQueue[int](4)
	_ = q.Enqueue(1, 2)

	first := q.ToSlice()
	first[0] = 99

	if got := q.ToSlice(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("ToSlice() after mutation = %v, want [1 2]", got)
	}
}

func TestNewFixedQueue_InvalidCapacity(t *testing.T) {
	if _, err := NewFixedQueue[int](0); err == nil {
		t.Error("expected error for zero capacity")
	}
}
