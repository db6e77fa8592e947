package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFilesArePaired(t *testing.T) {
	ups, err := fs.Glob(files, "sql/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(files, "sql/*.down.sql")
	require.NoError(t, err)

	assert.NotEmpty(t, ups)
	assert.Equal(t, len(ups), len(downs))
}
