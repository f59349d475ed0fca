package inspect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/atcgen-project/atcgen/internal/atc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const accountAPISource = `package api

func Signup(username string, password string) (bool, error) {
	return username != "" && password != "", nil
}

func Balance(cents int) int {
	return cents * 2
}

func Tags() []string {
	return nil
}

func unexportedHelper() int {
	return 0
}
`

func writeTempAPI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api.go"), []byte(accountAPISource), 0o644))
	return dir
}

func TestLoadAPIPackageDiscoversExportedFunctions(t *testing.T) {
	dir := writeTempAPI(t)
	apiSet, err := LoadAPIPackage(dir)
	require.NoError(t, err)

	require.Contains(t, apiSet.Funcs, "Signup")
	signup := apiSet.Funcs["Signup"]
	assert.Equal(t, []atc.TypeExpr{atc.Const{Name: "string"}, atc.Const{Name: "string"}}, signup.Params)
	// trailing error result is stripped, leaving just the bool.
	assert.Equal(t, atc.Const{Name: "bool"}, signup.Return)

	require.Contains(t, apiSet.Funcs, "Balance")
	balance := apiSet.Funcs["Balance"]
	assert.Equal(t, []atc.TypeExpr{atc.Const{Name: "int"}}, balance.Params)
	assert.Equal(t, atc.Const{Name: "int"}, balance.Return)

	require.Contains(t, apiSet.Funcs, "Tags")
	assert.Equal(t, atc.Set{Element: atc.Const{Name: "string"}}, apiSet.Funcs["Tags"].Return)

	assert.NotContains(t, apiSet.Funcs, "unexportedHelper")
}

func TestLoadAPIPackageEmptyDirErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadAPIPackage(dir)
	assert.ErrorIs(t, err, ErrNoGoFiles)
}
