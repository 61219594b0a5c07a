package p

func Sum(n int) int {
	total := 0
	for i := range n {
		total += i
	}
	return total
}

func [|double|](n int) int { return Sum(n) * 2 }
