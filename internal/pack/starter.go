package pack

import (
	_ "embed"
	"fmt"
)

//go:embed starter.yaml
var starterYAML []byte

// Starter returns the built-in pack used when no pack file is given.
func Starter() *Pack {
	p, err := ParseYAML("starter.yaml", starterYAML)
	if err != nil {
		panic(fmt.Sprintf("wordiz: embedded starter pack: %v", err))
	}
	return p
}
