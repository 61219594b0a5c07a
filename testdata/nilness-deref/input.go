package p

type node struct {
	next *node
	val  int
}

func Value(p *int) int {
	if p == nil {
		return [|*p|]
	}
	return *p
}

func Next(n *node) *node {
	if n != nil {
		return n.next
	}
	return n
}
