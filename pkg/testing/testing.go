package testing

import (
	"os"
	"path"
	"runtime"
)

func init() {
	// tests run from the project root so that relative paths (logs/, testdata fixtures, .env)
	// resolve the same way they do for the binaries. usage is
	//
	//   in some_test.go,
	//   import (
	//     _ "liyu1981.xyz/maintenance-tracker/pkg/testing"
	//   )

	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "..", "..")
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
}
