package twothree_test

import (
	"errors"
	"fmt"

	"github.com/btree-query-bench/twothree/index/twothree"
)

func ExampleTree() {
	t := twothree.New[int]()
	for _, k := range []int{4, 1, 3, 2, 3} {
		t.Insert(k)
	}
	fmt.Println(t.Keys(), t.Len(), t.Height())

	t.Remove(1)
	t.Remove(2)
	lo, _ := t.Min()
	hi, _ := t.Max()
	fmt.Println(t.Keys(), lo, hi)

	t.Clear()
	_, err := t.Min()
	fmt.Println(errors.Is(err, twothree.ErrEmptyTree))

	// Output:
	// [1 2 3 4] 4 2
	// [3 4] 3 4
	// true
}
