package catalog_test

import (
	"testing"

	"github.com/jrsteele09/mobile-musician-api/catalog"
	"github.com/stretchr/testify/require"
)

func TestSkillLevel_IsValid(t *testing.T) {
	for _, l := range []string{"beginner", "intermediate", "advanced", "expert"} {
		require.True(t, catalog.SkillLevel(l).IsValid(), l)
	}
	for _, l := range []string{"", "Expert", "pro"} {
		require.False(t, catalog.SkillLevel(l).IsValid(), l)
	}
}
