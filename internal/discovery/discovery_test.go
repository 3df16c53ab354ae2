package discovery

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFileSystemDiscoveryWalksDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.graphql"), "type B { id: ID }")
	writeFile(t, filepath.Join(root, "a.graphqls"), "type A { id: ID }")
	writeFile(t, filepath.Join(root, "nested", "c.gql"), "type C { id: ID }")
	writeFile(t, filepath.Join(root, "README.md"), "# not a schema")

	d := NewFileSystemDiscovery(root)
	files, err := d.Files()
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "a.graphqls"),
		filepath.Join(root, "b.graphql"),
		filepath.Join(root, "nested", "c.gql"),
	}, files)

	sources, err := d.Sources(context.Background())
	require.NoError(t, err)
	require.Len(t, sources, 3)
	require.Equal(t, filepath.Join(root, "a.graphqls"), sources[0].Name)
	require.Equal(t, "type A { id: ID }", sources[0].Input)
	require.Equal(t, "type C { id: ID }", sources[2].Input)

	dirs, err := d.Dirs()
	require.NoError(t, err)
	require.Equal(t, []string{root, filepath.Join(root, "nested")}, dirs)
}

func TestFileSystemDiscoveryExplicitFiles(t *testing.T) {
	root := t.TempDir()
	schema := filepath.Join(root, "schema.txt")
	writeFile(t, schema, "type Query { a: Int }")

	files, err := NewFileSystemDiscovery(schema, schema).Files()
	require.NoError(t, err)
	require.Equal(t, []string{schema}, files)
}

func TestFileSystemDiscoveryErrors(t *testing.T) {
	_, err := NewFileSystemDiscovery(filepath.Join(t.TempDir(), "missing")).Sources(context.Background())
	require.Error(t, err)

	_, err = NewFileSystemDiscovery(t.TempDir()).Sources(context.Background())
	require.ErrorIs(t, err, ErrNoSources)
}

func TestInMemoryDiscovery(t *testing.T) {
	d := NewInMemoryDiscovery(
		InMemorySource{Name: "a.graphql", Content: "type A { id: ID }"},
		InMemorySource{Name: "b.graphql", Content: "type B { id: ID }"},
	)
	sources, err := d.Sources(context.Background())
	require.NoError(t, err)
	require.Len(t, sources, 2)
	require.Equal(t, "b.graphql", sources[1].Name)

	_, err = NewInMemoryDiscovery().Sources(context.Background())
	require.ErrorIs(t, err, ErrNoSources)
}

func TestIsSchemaFile(t *testing.T) {
	require.True(t, IsSchemaFile("a/b.graphql"))
	require.True(t, IsSchemaFile("b.gql"))
	require.False(t, IsSchemaFile("b.json"))
}

func TestFileSystemDiscoveryExclude(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "schema.graphql"), "type Query { a: Int }")
	writeFile(t, filepath.Join(root, "out.graphql"), "type Query { a: Int }")

	d := NewFileSystemDiscovery(root).Exclude(filepath.Join(root, "out.graphql"), "")
	files, err := d.Files()
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(root, "schema.graphql")}, files)
	require.True(t, d.Excluded(filepath.Join(root, "out.graphql")))
}
