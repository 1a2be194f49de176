package main

import (
	"fmt"
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/bahasapas-lang/bahasapasc/cmd/bahasapasc/cmd"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"bahasapasc": runMain,
	}))
}

func runMain() int {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// TestCLIScripts drives the built bahasapasc binary end-to-end through
// testdata/script/*.txtar, the same way testscript golden-tests any CLI
// that reads files and reports an exit code.
func TestCLIScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
