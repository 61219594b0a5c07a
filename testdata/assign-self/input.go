package p

type point struct{ x, y int }

func Move(p point, dx int) point {
	p.x += dx
	[|p.y = p.y|]
	q := p
	return q
}
