// cmd/p3io-boulder/main.go
package main

import (
	"p3io/internal/appshell"
	"p3io/internal/boulderapp"
)

func main() { appshell.Main(boulderapp.RunContext) }
