package main

type Calculator struct {
	precision int
}

func (c *Calculator) Add(a, b float64) float64 {
	return a + b
}

// Subtract is kept for the plugin interface.
//
//nolint:unusedfunc // loaded by name from plugins
func (c *Calculator) Subtract(a, b float64) float64 {
	return a - b
}

// lint:ignore unusedfunc used by external tools
func (c *Calculator) Multiply(a, b float64) float64 {
	return a * b
}

func (c *Calculator) Scale(f float64) float64 { //nolint:errcheck,unusedfunc
	return f * float64(c.precision)
}

// A suppression for another linter does not apply.
//nolint:errcheck
func (c *Calculator) [|Negate|](a float64) float64 {
	return -a
}

func (c *Calculator) [|Divide|](a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

type Handler struct {
	name string
}

func (h *Handler) Handle(request string) string {
	return h.name + ": " + request
}

func (h *Handler) [|Process|](data []byte) []byte {
	return data
}

func main() {
	calc := &Calculator{precision: 2}
	_ = calc.Add(1, 2)

	handle := (&Handler{name: "test"}).Handle
	_ = handle("request")
}
