package main

import "fmt"

type Tree struct {
	label    string
	children []*Tree
}

func (t *Tree) Print() {
	t.print(0)
}

// Reached from Print; the recursive call alone would not count.
func (t *Tree) print(depth int) {
	fmt.Printf("%*s%s\n", depth*2, "", t.label)
	for _, c := range t.children {
		c.print(depth + 1)
	}
}

type Lexer struct {
	input []string
}

func (l *Lexer) Lex() int {
	return l.expr(0)
}

// expr and term only call each other after Lex enters.
func (l *Lexer) expr(pos int) int {
	if pos < len(l.input) && l.input[pos] == "(" {
		return l.term(pos + 1)
	}
	return pos
}

func (l *Lexer) term(pos int) int {
	if pos < len(l.input) && l.input[pos] == "[" {
		return l.expr(pos + 1)
	}
	return pos
}

// Only ever calls itself.
func (l *Lexer) [|skip|](pos int) int {
	if pos < len(l.input) {
		return l.skip(pos + 1)
	}
	return pos
}

func main() {
	(&Tree{label: "root"}).Print()
	fmt.Println((&Lexer{input: []string{"(", "["}}).Lex())
}
