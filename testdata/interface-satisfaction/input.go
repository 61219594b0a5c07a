package shapes

import "fmt"

type shape interface {
	area() float64
	perimeter() float64
}

type square struct{ side float64 }

func (s square) area() float64      { return s.side * s.side }
func (s square) perimeter() float64 { return 4 * s.side }

// String satisfies fmt.Stringer.
func (s square) String() string { return fmt.Sprintf("square(%g)", s.side) }

func (s square) [|diagonal|]() float64 { return s.side * 1.414 }

// Exported methods of an importable package are left alone.
func (s square) Scale(f float64) square { return square{s.side * f} }

func Total(shapes ...shape) float64 {
	var sum float64
	for _, s := range shapes {
		sum += s.area()
	}
	return sum
}

var _ shape = square{}
