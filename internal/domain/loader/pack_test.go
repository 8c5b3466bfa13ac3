package loader_test

import (
	"testing"

	"github.com/modcheck/modcheck/internal/domain"
	"github.com/modcheck/modcheck/internal/domain/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPackIndex = `{
  "formatVersion": 1,
  "game": "minecraft",
  "versionId": "1.0.0",
  "name": "Fabulously Optimized",
  "files": [
    {
      "path": "mods/sodium.jar",
      "hashes": {"sha1": "a1b2", "sha512": "c3d4"},
      "env": {"client": "required", "server": "unsupported"},
      "downloads": ["https://cdn.modrinth.com/data/AANobbMI/versions/sodium.jar"],
      "fileSize": 1024
    }
  ],
  "dependencies": {"minecraft": "1.20.1", "fabric-loader": "0.14.21"}
}`

func TestPackValidator_Pass(t *testing.T) {
	result, err := loader.PackValidator{}.Validate(newArchive("modrinth.index.json", validPackIndex))
	require.NoError(t, err)
	assert.Equal(t, domain.Pass(), result)
}

func TestPackValidator_MissingManifest(t *testing.T) {
	_, err := loader.PackValidator{}.Validate(newArchive("overrides/config/sodium.json", "{}"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Pack manifest is missing.")
}

func TestPackValidator_MalformedJSON(t *testing.T) {
	_, err := loader.PackValidator{}.Validate(newArchive("modrinth.index.json", `{"formatVersion": "one"}`))
	assert.ErrorIs(t, err, domain.ErrManifest)
}

func TestPackValidator_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		index string
		want  string
	}{
		{
			name:  "unknown game",
			index: `{"formatVersion": 1, "game": "terraria", "versionId": "1", "name": "x", "dependencies": {"minecraft": "1.20.1"}}`,
			want:  "Game terraria does not exist!",
		},
		{
			name:  "unsupported format",
			index: `{"formatVersion": 2, "game": "minecraft"}`,
			want:  "Pack format version 2",
		},
		{
			name:  "escaping path",
			index: `{"formatVersion": 1, "game": "minecraft", "versionId": "1", "name": "x", "dependencies": {"minecraft": "1.20.1"}, "files": [{"path": "mods/../../evil.jar", "hashes": {"sha1": "a", "sha512": "b"}, "downloads": ["https://x"]}]}`,
			want:  "is not inside the pack",
		},
		{
			name:  "absolute path",
			index: `{"formatVersion": 1, "game": "minecraft", "versionId": "1", "name": "x", "dependencies": {"minecraft": "1.20.1"}, "files": [{"path": "/etc/passwd", "hashes": {"sha1": "a", "sha512": "b"}, "downloads": ["https://x"]}]}`,
			want:  "is not inside the pack",
		},
		{
			name:  "windows path",
			index: `{"formatVersion": 1, "game": "minecraft", "versionId": "1", "name": "x", "dependencies": {"minecraft": "1.20.1"}, "files": [{"path": "C:\\mods\\a.jar", "hashes": {"sha1": "a", "sha512": "b"}, "downloads": ["https://x"]}]}`,
			want:  "is not inside the pack",
		},
		{
			name:  "missing sha512",
			index: `{"formatVersion": 1, "game": "minecraft", "versionId": "1", "name": "x", "dependencies": {"minecraft": "1.20.1"}, "files": [{"path": "mods/a.jar", "hashes": {"sha1": "a"}, "downloads": ["https://x"]}]}`,
			want:  "missing a sha512 hash",
		},
		{
			name:  "bad env",
			index: `{"formatVersion": 1, "game": "minecraft", "versionId": "1", "name": "x", "dependencies": {"minecraft": "1.20.1"}, "files": [{"path": "mods/a.jar", "hashes": {"sha1": "a", "sha512": "b"}, "env": {"client": "maybe"}, "downloads": ["https://x"]}]}`,
			want:  `invalid client environment "maybe"`,
		},
		{
			name:  "no downloads",
			index: `{"formatVersion": 1, "game": "minecraft", "versionId": "1", "name": "x", "dependencies": {"minecraft": "1.20.1"}, "files": [{"path": "mods/a.jar", "hashes": {"sha1": "a", "sha512": "b"}}]}`,
			want:  "has no download URLs",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.PackValidator{}.Validate(newArchive("modrinth.index.json", tt.index))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPackValidator_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		index string
		field string
	}{
		{"versionId", `{"formatVersion": 1, "game": "minecraft", "name": "x", "dependencies": {"minecraft": "1"}}`, "versionId"},
		{"name", `{"formatVersion": 1, "game": "minecraft", "versionId": "1", "dependencies": {"minecraft": "1"}}`, "name"},
		{"minecraft dependency", `{"formatVersion": 1, "game": "minecraft", "versionId": "1", "name": "x", "dependencies": {}}`, "dependencies.minecraft"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.PackValidator{}.Validate(newArchive("modrinth.index.json", tt.index))
			require.Error(t, err)
			assert.ErrorIs(t, err, loader.ErrMissingField)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestResourcePackValidator(t *testing.T) {
	pass, err := loader.ResourcePackValidator{}.Validate(newArchive(
		"pack.mcmeta", `{"pack": {"pack_format": 15, "description": {"text": "Faithful"}}}`,
		"assets/minecraft/textures/block/stone.png", "",
	))
	require.NoError(t, err)
	assert.Equal(t, domain.Pass(), pass)

	_, err = loader.ResourcePackValidator{}.Validate(newArchive("assets/minecraft/textures/block/stone.png", ""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	for _, meta := range []string{`{"pack": {}}`, `{}`, `{"pack": {"pack_format": 0}}`, `{"pack": `} {
		_, err := loader.ResourcePackValidator{}.Validate(newArchive("pack.mcmeta", meta))
		assert.ErrorIs(t, err, domain.ErrManifest, meta)
	}
}

func TestPluginValidator(t *testing.T) {
	pass, err := loader.PluginValidator{}.Validate(newArchive(
		"plugin.yml", "name: LuckPerms\nversion: 5.4.102\nmain: me.lucko.luckperms.bukkit.LPBukkitBootstrap\napi-version: '1.13'\n",
	))
	require.NoError(t, err)
	assert.Equal(t, domain.Pass(), pass)

	paper, err := loader.PluginValidator{}.Validate(newArchive(
		"paper-plugin.yml", "name: Chunky\nversion: 1.3.92\nmain: org.popcraft.chunky.ChunkyBukkit\n",
	))
	require.NoError(t, err)
	assert.True(t, paper.Primary())

	_, err = loader.PluginValidator{}.Validate(newArchive("A.class", ""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = loader.PluginValidator{}.Validate(newArchive("plugin.yml", "name: [unterminated"))
	assert.ErrorIs(t, err, domain.ErrManifest)

	_, err = loader.PluginValidator{}.Validate(newArchive("plugin.yml", "name: LuckPerms\nversion: 5.4\n"))
	assert.ErrorIs(t, err, loader.ErrMissingField)
	assert.Contains(t, err.Error(), "main")
}
