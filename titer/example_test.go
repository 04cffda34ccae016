package titer_test

import (
	"fmt"

	"github.com/katalvlaran/cartograph/titer"
)

func ExampleFromStr() {
	t, err := titer.FromStr("<10")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(t, t.Kind(), t.LoggedWithThresholded())
	// Output: <10 less_than -1
}
