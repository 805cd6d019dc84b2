// cmd/p3io-thermo/main.go
package main

import (
	"p3io/internal/appshell"
	"p3io/internal/thermoapp"
)

func main() { appshell.Main(thermoapp.RunContext) }
