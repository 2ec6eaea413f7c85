package placement

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShouldRenderTrueExactlyOnce(t *testing.T) {
	rc := NewRenderContext()
	for _, kind := range []FragmentKind{KindSummary, KindPixPrice, KindTable} {
		require.True(t, rc.ShouldRender(kind))
		require.False(t, rc.ShouldRender(kind))
		require.True(t, rc.Emitted(kind))
	}
}

func TestRenderContextsAreIndependent(t *testing.T) {
	first := NewRenderContext()
	require.True(t, first.ShouldRender(KindSummary))

	second := NewRenderContext()
	require.False(t, second.Emitted(KindSummary))
	require.True(t, second.ShouldRender(KindSummary))
}

func TestNilContextNeverRenders(t *testing.T) {
	var rc *RenderContext
	require.False(t, rc.ShouldRender(KindSummary))
	require.False(t, rc.Emitted(KindSummary))
}
