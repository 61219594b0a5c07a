package main

import "strings"

// isEven and isOdd only call each other; nothing else reaches them.
func [|isEven|](n int) bool {
	if n == 0 {
		return true
	}
	return isOdd(n - 1)
}

func [|isOdd|](n int) bool {
	if n == 0 {
		return false
	}
	return isEven(n - 1)
}

// render is unused, so the helper it calls is unused as well.
func [|render|](words []string) string {
	return join(words)
}

func [|join|](words []string) string {
	return strings.Join(words, " ")
}

var greeting = shout("hello")

func shout(s string) string {
	return strings.ToUpper(s) + exclaim()
}

func exclaim() string { return "!" }

func main() {
	println(greeting)
}
