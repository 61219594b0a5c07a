package p

import (
	"fmt"
	"strings"
)

func Clean(s string) string {
	[|strings.TrimSpace|](s)
	[|fmt.Sprintf|]("%s!", s)
	strings.ToUpper(s)
	return s
}
