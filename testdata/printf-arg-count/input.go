package p

import "fmt"

func Report(name string, count int) {
	fmt.Printf("%s: %d\n", name, count)
	[|fmt.Printf("%d\n", count, name)|]
}
