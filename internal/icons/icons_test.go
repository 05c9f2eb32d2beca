package icons

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	icon, ok := Lookup("Server")
	require.True(t, ok)
	require.Equal(t, Icon("Server"), icon)

	_, ok = Lookup("server")
	require.False(t, ok, "names are case sensitive")

	_, ok = Lookup("Rocket")
	require.False(t, ok)
}

func TestResolveFallsBack(t *testing.T) {
	require.Equal(t, Icon("Wifi"), Resolve("Wifi"))
	require.Equal(t, Fallback, Resolve("Rocket"))
	require.Equal(t, Fallback, Resolve(""))
	require.Equal(t, Fallback, Resolve(string(Fallback)+"X"))
}

func TestNamesSortedAndCopied(t *testing.T) {
	all := Names()
	require.True(t, sort.StringsAreSorted(all))
	require.Contains(t, all, string(Fallback))

	all[0] = "Mutated"
	require.NotEqual(t, "Mutated", Names()[0])
}

func TestSearch(t *testing.T) {
	require.Equal(t, Names(), Search(""))
	require.Equal(t, []string{"BarChart", "BarChart3"}, Search("barchart"))
	require.Equal(t, []string{"Cctv"}, Search("CCTV"))
	require.Empty(t, Search("rocket"))
}
