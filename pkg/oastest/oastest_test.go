package oastest_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oaslint.dev/pkg/oaslint/internal/domain"
	m "oaslint.dev/pkg/oaslint/internal/model"
	"oaslint.dev/pkg/oaslint/pkg/oastest"
)

const cleanSchema = `openapi: 3.0.3
info:
  title: Pets
  version: "1.0.0"
  description: Pet store
  contact:
    name: API team
    url: https://example.com
    email: api@example.com
  license:
    name: MIT
    url: https://opensource.org/licenses/MIT
tags:
  - name: pets
    description: Pet operations
paths:
  /pets:
    get:
      operationId: listPets
      summary: List pets
      tags:
        - pets
      responses:
        "200":
          description: ok
`

func writeSchema(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestRun_CleanSchemas(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "openapi.yaml", cleanSchema)
	writeSchema(t, dir, "v2/openapi.yaml", cleanSchema)
	writeSchema(t, dir, "v2/drafts/broken.json", "42")

	oastest.RunWith(t, []oastest.Option{oastest.WithExclude("/drafts/")}, dir+"/...")
}

func TestCheck_Outcomes(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	t.Run("clean", func(t *testing.T) {
		outcome, err := oastest.Check(ctx, writeSchema(t, dir, "clean.yaml", cleanSchema))
		require.NoError(t, err)
		assert.Equal(t, m.OutcomePass, outcome.Kind)
	})

	t.Run("not an object", func(t *testing.T) {
		path := writeSchema(t, dir, "number.json", "42")

		outcome, err := oastest.Check(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, m.OutcomeFail, outcome.Kind)
		assert.Contains(t, outcome.ErrorMessage, "does not resolve to an object")
	})

	t.Run("invalid", func(t *testing.T) {
		outcome, err := oastest.Check(ctx, writeSchema(t, dir, "invalid.yaml", "openapi: 3.0.3\npaths: {}\n"))
		require.NoError(t, err)
		assert.Equal(t, m.OutcomeFail, outcome.Kind)
		assert.Equal(t, domain.MessageSchemaInvalid, outcome.ErrorMessage)
	})

	t.Run("warnings", func(t *testing.T) {
		undocumented := strings.Replace(cleanSchema, "      summary: List pets\n", "", 1)

		outcome, err := oastest.Check(ctx, writeSchema(t, dir, "warnings.yaml", undocumented))
		require.NoError(t, err)
		require.Equal(t, m.OutcomeMulti, outcome.Kind)
		require.Len(t, outcome.Tests, 1)
		assert.Equal(t,
			"operation should have summary or description - #/paths/~1pets/get (operation-summary-or-description)",
			outcome.Tests[0].Title,
		)
	})

	t.Run("transform", func(t *testing.T) {
		t.Setenv("OASTEST_TITLE", "Pets")
		templated := strings.Replace(cleanSchema, "title: Pets", "title: ${OASTEST_TITLE}", 1)

		outcome, err := oastest.Check(ctx, writeSchema(t, dir, "templated.yaml", templated),
			oastest.WithTransform(`\.yaml$`, "envsubst"))
		require.NoError(t, err)
		assert.Equal(t, m.OutcomePass, outcome.Kind)
	})
}
