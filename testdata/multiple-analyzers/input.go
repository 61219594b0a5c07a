package main

import "fmt"

func greet(name string) {
	[|fmt.Println("hello %s", name)|]
}

func {|unusedfunc:farewell|}(name string) {
	{|assign:name = name|}
	fmt.Println("bye", name)
}

func main() {
	greet("gopher")
}
