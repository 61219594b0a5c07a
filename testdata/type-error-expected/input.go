package p

func broken() int {
	return "not an int"
}
