package main

type Container[T any] struct {
	items []T
}

func (c *Container[T]) Add(item T) {
	c.items = append(c.items, item)
}

func (c *Container[T]) Get(index int) T {
	return c.items[index]
}

func (c *Container[T]) {|unused:Size|}() int {
	return len(c.items)
}

func (c *Container[T]) {|unused:Clear|}() {
	c.items = c.items[:0]
}

type Processor[T any] interface {
	Process(item T) T
}

type Upper struct{}

func (Upper) Process(item string) string {
	return "processed: " + item
}

func (Upper) [|Validate|](item string) bool {
	return len(item) > 0
}

func apply[T any](p Processor[T], item T) T {
	return p.Process(item)
}

func [|mapKeys|][K comparable, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func main() {
	ints := &Container[int]{}
	ints.Add(42)
	_ = ints.Get(0)

	(&Container[string]{}).Add("hello")
	_ = apply[string](Upper{}, "test")
}
