package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchultarsky101/pcli2-mcp/internal/errors"
)

func matchSpec() Spec {
	return Spec{
		Command: []string{"match", "geometric"},
		Args: []Arg{
			{Key: "uuid", Flag: "--uuid", Kind: KindString},
			{Key: "path", Flag: "--path", Kind: KindString},
			{Key: "threshold", Flag: "--threshold", Kind: KindNumber},
			{Key: "limit", Flag: "--limit", Kind: KindInt},
			{Key: "folder", Flag: "--folder", Kind: KindStringOrList},
			{Key: "metadata", Flag: "--metadata", Kind: KindBool},
		},
		Require: []Requirement{{Keys: []string{"uuid", "path"}}},
	}
}

func TestTranslateRequiredKey(t *testing.T) {
	spec := Spec{
		Command: []string{"tenant", "use"},
		Args:    []Arg{{Key: "name", Flag: "--name", Kind: KindString}},
		Require: []Requirement{{Keys: []string{"name"}}},
	}

	t.Run("missing", func(t *testing.T) {
		_, err := spec.Translate(map[string]any{})
		require.Error(t, err)

		var missing *errors.MissingRequiredError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "name", missing.Key)
		assert.Equal(t, "Missing required argument: 'name'", err.Error())
	})

	t.Run("wrong type counts as missing", func(t *testing.T) {
		_, err := spec.Translate(map[string]any{"name": 42.0})
		assert.Error(t, err)
	})

	t.Run("present", func(t *testing.T) {
		argv, err := spec.Translate(map[string]any{"name": "acme"})
		require.NoError(t, err)
		assert.Equal(t, []string{"tenant", "use", "--name", "acme"}, argv)
	})
}

func TestTranslateOneOf(t *testing.T) {
	spec := matchSpec()

	t.Run("neither set fails", func(t *testing.T) {
		_, err := spec.Translate(map[string]any{"threshold": 0.9})
		require.Error(t, err)

		var oneOf *errors.MissingOneOfError
		require.ErrorAs(t, err, &oneOf)
		assert.Equal(t, []string{"uuid", "path"}, oneOf.Keys)
	})

	t.Run("exactly one set succeeds", func(t *testing.T) {
		argv, err := spec.Translate(map[string]any{"uuid": "a1"})
		require.NoError(t, err)
		assert.Equal(t, []string{"match", "geometric", "--uuid", "a1"}, argv)

		argv, err = spec.Translate(map[string]any{"path": "/a/b.prt"})
		require.NoError(t, err)
		assert.Equal(t, []string{"match", "geometric", "--path", "/a/b.prt"}, argv)
	})

	t.Run("both set are both forwarded", func(t *testing.T) {
		argv, err := spec.Translate(map[string]any{"uuid": "a1", "path": "/a/b.prt"})
		require.NoError(t, err)
		assert.Equal(t, []string{"match", "geometric", "--uuid", "a1", "--path", "/a/b.prt"}, argv)
	})
}

func TestTranslateBool(t *testing.T) {
	spec := matchSpec()

	t.Run("true emits bare flag once", func(t *testing.T) {
		argv, err := spec.Translate(map[string]any{"uuid": "a1", "metadata": true})
		require.NoError(t, err)
		assert.Equal(t, []string{"match", "geometric", "--uuid", "a1", "--metadata"}, argv)
	})

	t.Run("false omits flag", func(t *testing.T) {
		argv, err := spec.Translate(map[string]any{"uuid": "a1", "metadata": false})
		require.NoError(t, err)
		assert.NotContains(t, argv, "--metadata")
	})

	t.Run("non-boolean omits flag", func(t *testing.T) {
		argv, err := spec.Translate(map[string]any{"uuid": "a1", "metadata": "yes"})
		require.NoError(t, err)
		assert.NotContains(t, argv, "--metadata")
	})
}

func TestTranslateNumbers(t *testing.T) {
	spec := matchSpec()

	t.Run("threshold is stringified", func(t *testing.T) {
		argv, err := spec.Translate(map[string]any{"uuid": "a1", "threshold": 0.85})
		require.NoError(t, err)
		assert.Equal(t, []string{"match", "geometric", "--uuid", "a1", "--threshold", "0.85"}, argv)
	})

	t.Run("integer kind accepts integral values", func(t *testing.T) {
		argv, err := spec.Translate(map[string]any{"uuid": "a1", "limit": 20.0})
		require.NoError(t, err)
		assert.Equal(t, []string{"match", "geometric", "--uuid", "a1", "--limit", "20"}, argv)
	})

	t.Run("integer kind drops fractional and negative values", func(t *testing.T) {
		argv, err := spec.Translate(map[string]any{"uuid": "a1", "limit": 1.5})
		require.NoError(t, err)
		assert.NotContains(t, argv, "--limit")

		argv, err = spec.Translate(map[string]any{"uuid": "a1", "limit": -2.0})
		require.NoError(t, err)
		assert.NotContains(t, argv, "--limit")
	})

	t.Run("string where number expected is omitted", func(t *testing.T) {
		argv, err := spec.Translate(map[string]any{"uuid": "a1", "threshold": "0.9"})
		require.NoError(t, err)
		assert.NotContains(t, argv, "--threshold")
	})
}

func TestTranslateStringOrList(t *testing.T) {
	spec := matchSpec()

	t.Run("bare string equals single-element array", func(t *testing.T) {
		single, err := spec.Translate(map[string]any{"uuid": "a1", "folder": "parts"})
		require.NoError(t, err)

		listed, err := spec.Translate(map[string]any{"uuid": "a1", "folder": []any{"parts"}})
		require.NoError(t, err)

		assert.Equal(t, single, listed)
		assert.Equal(t, []string{"match", "geometric", "--uuid", "a1", "--folder", "parts"}, single)
	})

	t.Run("array expands in order", func(t *testing.T) {
		argv, err := spec.Translate(map[string]any{"uuid": "a1", "folder": []any{"a", "b", "c"}})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"match", "geometric", "--uuid", "a1",
			"--folder", "a", "--folder", "b", "--folder", "c",
		}, argv)
	})

	t.Run("non-string elements are dropped", func(t *testing.T) {
		argv, err := spec.Translate(map[string]any{"uuid": "a1", "folder": []any{"a", 7.0, "b"}})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"match", "geometric", "--uuid", "a1",
			"--folder", "a", "--folder", "b",
		}, argv)
	})
}

func TestTranslatePositional(t *testing.T) {
	spec := Spec{
		Args: []Arg{
			{Key: "command", Kind: KindPositional},
			{Key: "subcommand", Kind: KindPositional},
			{Key: "args", Kind: KindPositionalList},
		},
		Require: []Requirement{{Keys: []string{"command"}}},
	}

	t.Run("full invocation", func(t *testing.T) {
		argv, err := spec.Translate(map[string]any{
			"command":    "tenant",
			"subcommand": "list",
			"args":       []any{"--format", "json"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"tenant", "list", "--format", "json"}, argv)
	})

	t.Run("subcommand omitted", func(t *testing.T) {
		argv, err := spec.Translate(map[string]any{"command": "status"})
		require.NoError(t, err)
		assert.Equal(t, []string{"status"}, argv)
	})

	t.Run("command required", func(t *testing.T) {
		_, err := spec.Translate(map[string]any{"args": []any{"x"}})
		assert.Error(t, err)
	})
}

func TestTranslateIgnoresUnknownKeys(t *testing.T) {
	spec := matchSpec()

	argv, err := spec.Translate(map[string]any{"uuid": "a1", "future_option": "whatever"})
	require.NoError(t, err)
	assert.Equal(t, []string{"match", "geometric", "--uuid", "a1"}, argv)
}

func TestTranslateNilArguments(t *testing.T) {
	spec := Spec{
		Command: []string{"tenant", "list"},
		Args:    []Arg{{Key: "format", Flag: "--format", Kind: KindEnum, Enum: []string{"json", "csv"}}},
	}

	argv, err := spec.Translate(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"tenant", "list"}, argv)
}

func TestTranslateDeterministic(t *testing.T) {
	spec := matchSpec()
	args := map[string]any{"uuid": "a1", "threshold": 0.8, "folder": []any{"x", "y"}, "metadata": true}

	first, err := spec.Translate(args)
	require.NoError(t, err)

	for range 10 {
		next, err := spec.Translate(args)
		require.NoError(t, err)
		assert.Equal(t, first, next)
	}
}

func TestSpecLabel(t *testing.T) {
	assert.Equal(t, "pcli2 tenant use", Spec{Command: []string{"tenant", "use"}}.Label("pcli2"))
	assert.Equal(t, "pcli2", Spec{}.Label("pcli2"))
}
