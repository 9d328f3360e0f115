package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/gogen/pkg/validator"

	"github.com/idelchi/stegecrypt/internal/config"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.Config
		wantErr string
	}{
		{
			name: "encrypt ok",
			cfg:  config.Config{Op: config.OpEncrypt, Parallel: 1, Key: "key.txt", Inputs: []string{"a"}},
		},
		{
			name:    "encrypt missing key",
			cfg:     config.Config{Op: config.OpEncrypt, Parallel: 1, Inputs: []string{"a"}},
			wantErr: "--key is a required field",
		},
		{
			name:    "encrypt bad key extension",
			cfg:     config.Config{Op: config.OpEncrypt, Parallel: 1, Key: "key.bin", Inputs: []string{"a"}},
			wantErr: "--key must be a key file",
		},
		{
			name: "key extension is case insensitive",
			cfg:  config.Config{Op: config.OpEncrypt, Parallel: 1, Key: "KEY.JPEG", Inputs: []string{"a"}},
		},
		{
			name:    "encrypt without input",
			cfg:     config.Config{Op: config.OpEncrypt, Parallel: 1, Key: "k.txt"},
			wantErr: "--input is a required field",
		},
		{
			name: "encrypt output with several inputs",
			cfg: config.Config{
				Op: config.OpEncrypt, Parallel: 1, Key: "k.txt",
				Inputs: []string{"a", "b"}, Output: "c",
			},
			wantErr: "--output cannot be combined with several inputs",
		},
		{
			name:    "decrypt default output needs suffix",
			cfg:     config.Config{Op: config.OpDecrypt, Parallel: 1, Key: "k.txt", Inputs: []string{"a.bin"}},
			wantErr: "must end in .stegecrypt",
		},
		{
			name: "decrypt explicit output",
			cfg: config.Config{
				Op: config.OpDecrypt, Parallel: 1, Key: "k.txt",
				Inputs: []string{"a.bin"}, Output: "a",
			},
		},
		{
			name:    "unknown suite",
			cfg:     config.Config{Op: config.OpEncrypt, Parallel: 1, Key: "k.txt", Inputs: []string{"a"}, Suite: "des"},
			wantErr: "--suite must be aes-gcm or chacha20-poly1305",
		},
		{
			name:    "parallel zero",
			cfg:     config.Config{Op: config.OpEncrypt, Key: "k.txt", Inputs: []string{"a"}},
			wantErr: "--parallel must be 1 or greater",
		},
		{
			name: "embed ok",
			cfg: config.Config{
				Op: config.OpEmbed, Parallel: 1,
				Image: "c.png", Data: "d", Output: "o.png",
			},
		},
		{
			name: "embed bmp carrier",
			cfg: config.Config{
				Op: config.OpEmbed, Parallel: 1,
				Image: "c.bmp", Data: "d", Output: "o.PNG",
			},
		},
		{
			name: "embed lossy carrier",
			cfg: config.Config{
				Op: config.OpEmbed, Parallel: 1,
				Image: "c.jpg", Data: "d", Output: "o.png",
			},
			wantErr: "--image must be a lossless image",
		},
		{
			name: "embed lossy output",
			cfg: config.Config{
				Op: config.OpEmbed, Parallel: 1,
				Image: "c.png", Data: "d", Output: "o.jpg",
			},
			wantErr: "--output must be a .png file",
		},
		{
			name:    "embed missing data",
			cfg:     config.Config{Op: config.OpEmbed, Parallel: 1, Image: "c.png", Output: "o.png"},
			wantErr: "--data is a required field",
		},
		{
			name: "hide needs key",
			cfg: config.Config{
				Op: config.OpHide, Parallel: 1,
				Image: "c.png", Data: "d", Output: "o.png",
			},
			wantErr: "--key is a required field",
		},
		{
			name: "extract ok",
			cfg:  config.Config{Op: config.OpExtract, Parallel: 1, Image: "s.png", Output: "out"},
		},
		{
			name:    "reveal needs key",
			cfg:     config.Config{Op: config.OpReveal, Parallel: 1, Image: "s.png", Output: "out"},
			wantErr: "--key is a required field",
		},
		{
			name: "capacity ok",
			cfg:  config.Config{Op: config.OpCapacity, Parallel: 1, Image: "s.tiff"},
		},
		{
			name: "delete onto own input",
			cfg: config.Config{
				Op: config.OpEncrypt, Parallel: 1, Key: "k.txt", Delete: true,
				Inputs: []string{"notes.txt"}, Output: "./notes.txt",
			},
			wantErr: "--output must differ from the input when --delete is set",
		},
		{
			name: "decrypt delete onto own input",
			cfg: config.Config{
				Op: config.OpDecrypt, Parallel: 1, Key: "k.txt", Delete: true,
				Inputs: []string{"dir/../a.stegecrypt"}, Output: "a.stegecrypt",
			},
			wantErr: "--output must differ from the input when --delete is set",
		},
		{
			name: "delete with separate output",
			cfg: config.Config{
				Op: config.OpEncrypt, Parallel: 1, Key: "k.txt", Delete: true,
				Inputs: []string{"notes.txt"}, Output: "notes.bin",
			},
		},
		{
			name: "overwrite without delete",
			cfg: config.Config{
				Op: config.OpEncrypt, Parallel: 1, Key: "k.txt",
				Inputs: []string{"notes.txt"}, Output: "notes.txt",
			},
		},
		{
			name:    "inspect needs input",
			cfg:     config.Config{Op: config.OpInspect, Parallel: 1},
			wantErr: "--input is a required field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, validator.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultOutput(t *testing.T) {
	t.Parallel()

	enc := config.Config{Op: config.OpEncrypt}
	dec := config.Config{Op: config.OpDecrypt}

	assert.Equal(t, "notes.txt.stegecrypt", enc.DefaultOutput("notes.txt"))
	assert.Equal(t, "notes.txt", dec.DefaultOutput("notes.txt.stegecrypt"))
}

func TestSamePath(t *testing.T) {
	t.Parallel()

	assert.True(t, config.SamePath("a/b.txt", "./a/../a/b.txt"))
	assert.False(t, config.SamePath("a/b.txt", "a/b.txt.stegecrypt"))
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "stegecrypt.jsonc")

	content := `{
		// comments are allowed
		"key": "from-file.txt",
		"suite": "chacha20-poly1305",
		"parallel": 3,
		"input": ["a", "b"],
	}`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	t.Setenv("STEGECRYPT_KEY", "from-env.txt")

	v := config.NewViper()
	v.Set("config", file)

	cfg, err := config.Load(v, config.OpEncrypt)
	require.NoError(t, err)

	assert.Equal(t, config.OpEncrypt, cfg.Op)
	assert.Equal(t, "from-env.txt", cfg.Key)
	assert.Equal(t, "chacha20-poly1305", cfg.Suite)
	assert.Equal(t, 3, cfg.Parallel)
	assert.Equal(t, []string{"a", "b"}, cfg.Inputs)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	v := config.NewViper()
	v.Set("config", filepath.Join(t.TempDir(), "missing.jsonc"))

	_, err := config.Load(v, config.OpEncrypt)
	require.ErrorContains(t, err, "reading config file")
}
