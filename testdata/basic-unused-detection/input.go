// Package main checks direct calls without interfaces or generics.
package main

type Account struct {
	Owner string
	Email string
}

func (a *Account) Name() string {
	return a.Owner
}

func (a *Account) Rename(owner string) {
	a.Owner = owner
}

// Exported but unreachable from outside package main.
func (a *Account) {|unusedfunc:Contact|}() string {
	return a.Email
}

func (a *Account) {|unusedfunc:touch|}(value string) {}

func run() {
	acct := &Account{Owner: "ada", Email: "ada@example.com"}
	acct.Rename(acct.Name() + " lovelace")
}

func main() {
	run()
}
