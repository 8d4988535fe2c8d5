package migrations_test

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/matyldajandova/handyhands-calculator-sub001/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_MigrationsAreReversible(t *testing.T) {
	files, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		t.Run(name, func(t *testing.T) {
			body, err := fs.ReadFile(migrations.FS, name)
			require.NoError(t, err)
			assert.Contains(t, string(body), "-- +goose Up")
			assert.Contains(t, string(body), "-- +goose Down")
			assert.True(t, strings.Index(string(body), "+goose Up") < strings.Index(string(body), "+goose Down"))
		})
	}
}
