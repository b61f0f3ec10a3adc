package symbolic

import (
	"testing"

	"mecore/testutil"
)

func TestSymbolicUsesStdlibOnly(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.NonStdlibImportForbidden, "expressions are shared by every layer")
}
