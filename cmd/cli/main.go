package main

import (
	"fmt"
	"os"

	"github.com/rfalmeida/facility-control/cmd/cli/root"

	_ "github.com/rfalmeida/facility-control/cmd/cli/access"
	_ "github.com/rfalmeida/facility-control/cmd/cli/areas"
	_ "github.com/rfalmeida/facility-control/cmd/cli/auth"
	_ "github.com/rfalmeida/facility-control/cmd/cli/resources"
	_ "github.com/rfalmeida/facility-control/cmd/cli/security"
)

func main() {
	if err := root.GetRoot().Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
