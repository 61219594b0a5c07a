package p

// Unused, but unusedfunc is switched off for this case.
func helper() {}

func Reset(n int) int {
	{|assign:n = n|}
	return n
}
