package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/suchimauz/artist-availability-engine/internal/adapters/in/cli"
)

func main() {
	if err := cli.NewRoot().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
