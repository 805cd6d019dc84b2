// cmd/p3io-design/main.go
package main

import (
	"p3io/internal/appshell"
	"p3io/internal/designapp"
)

func main() { appshell.Main(designapp.RunContext) }
