package module

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvandervort/graphoid-sub001/errs"
	"github.com/xvandervort/graphoid-sub001/exec"
	"github.com/xvandervort/graphoid-sub001/position"
	"github.com/xvandervort/graphoid-sub001/value"
)

func newManager(fs afero.Fs) *Manager {
	return NewManager(fs, "", exec.New)
}

func TestImportResolvesLocalFileFirst(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "greeting.gr", []byte(`greeting = "hi"`), 0644))

	m := newManager(fs)
	ns, err := m.Import("greeting", "main.gr")
	require.NoError(t, err)

	mp := ns.(*value.Map)
	v, err := mp.Get("greeting")
	require.NoError(t, err)
	assert.Equal(t, "hi", v.(value.Str).Val)
}

func TestImportFallsBackToStdlibPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/stdlib/math.gr", []byte(`pi = 3`), 0644))

	m := NewManager(fs, "/stdlib", exec.New)
	ns, err := m.Import("math", "main.gr")
	require.NoError(t, err)

	mp := ns.(*value.Map)
	v, err := mp.Get("pi")
	require.NoError(t, err)
	assert.Equal(t, float64(3), v.(value.Number).Val)
}

func TestImportPrefersNamespaceFolderModFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "utils/mod.gr", []byte(`x = 1`), 0644))

	m := newManager(fs)
	ns, err := m.Import("utils", "main.gr")
	require.NoError(t, err)
	mp := ns.(*value.Map)
	_, err = mp.Get("x")
	assert.NoError(t, err)
}

func TestImportMissingModuleRaisesModuleNotFound(t *testing.T) {
	fs := afero.NewMemMapFs()
	m := newManager(fs)
	_, err := m.Import("nope", "main.gr")
	require.Error(t, err)
	ge, ok := err.(*errs.GraphoidError)
	require.True(t, ok)
	assert.Equal(t, position.KindModuleNotFound, ge.Kind)
}

func TestImportCachesByResolvedPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "once.gr", []byte(`x = 1`), 0644))

	m := newManager(fs)
	first, err := m.Import("once", "main.gr")
	require.NoError(t, err)
	second, err := m.Import("once", "main.gr")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestCircularImportDetected(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "a.gr", []byte(`import "b"`), 0644))
	require.NoError(t, afero.WriteFile(fs, "b.gr", []byte(`import "a"`), 0644))

	m := newManager(fs)
	_, err := m.Import("a", "main.gr")
	require.Error(t, err)
}
