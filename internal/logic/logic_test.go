package logic_test

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/stegecrypt/internal/config"
	"github.com/idelchi/stegecrypt/internal/errdefs"
	"github.com/idelchi/stegecrypt/internal/logic"
	"github.com/idelchi/stegecrypt/pkg/stegecrypt"
)

type fixture struct {
	dir     string
	key     string
	carrier string
	out     bytes.Buffer
	errOut  bytes.Buffer
}

func newFixture(t *testing.T, width, height int) *fixture {
	t.Helper()

	f := &fixture{dir: t.TempDir()}

	f.key = f.write(t, "key.txt", []byte("key123"))

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x + y), A: 0xff}) //nolint:gosec
		}
	}

	var buf bytes.Buffer
	require.NoError(t, stegecrypt.EncodePNG(&buf, img))

	f.carrier = f.write(t, "carrier.png", buf.Bytes())

	return f
}

func (f *fixture) write(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func (f *fixture) path(name string) string {
	return filepath.Join(f.dir, name)
}

func (f *fixture) reporter() *logic.Reporter {
	return logic.NewReporter(&f.out, &f.errOut, false)
}

func TestCryptBatch(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 8, 8)

	contents := map[string][]byte{
		"a.txt": []byte("alpha"),
		"b.txt": {},
		"c.txt": bytes.Repeat([]byte("gamma"), 1000),
	}

	inputs := make([]string, 0, len(contents))
	for name, data := range contents {
		inputs = append(inputs, f.write(t, name, data))
	}

	enc := &config.Config{
		Op: config.OpEncrypt, Parallel: 2, Key: f.key, Inputs: inputs,
		Suite: "chacha20-poly1305", Delete: true, Stats: true,
	}
	require.NoError(t, logic.Run(enc, f.reporter()))

	encrypted := make([]string, 0, len(inputs))

	for _, in := range inputs {
		assert.NoFileExists(t, in)
		assert.FileExists(t, in+config.Extension)

		encrypted = append(encrypted, in+config.Extension)
	}

	assert.Contains(t, f.out.String(), "Processed")
	assert.Contains(t, f.errOut.String(), "Processed: 3")

	dec := &config.Config{Op: config.OpDecrypt, Parallel: 2, Key: f.key, Inputs: encrypted}
	require.NoError(t, logic.Run(dec, f.reporter()))

	for name, want := range contents {
		got, err := os.ReadFile(f.path(name))
		require.NoError(t, err)
		assert.Equal(t, len(want), len(got))
		assert.True(t, bytes.Equal(want, got), name)
	}
}

func TestCryptExplicitOutput(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 8, 8)
	in := f.write(t, "plain.bin", []byte("hello world"))
	out := f.path("sealed.bin")

	cfg := &config.Config{Op: config.OpEncrypt, Parallel: 1, Key: f.key, Inputs: []string{in}, Output: out}
	require.NoError(t, logic.Run(cfg, f.reporter()))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, int64(64), info.Size())
}

func TestDecryptWrongKey(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 8, 8)
	in := f.write(t, "plain.txt", []byte("secret"))

	enc := &config.Config{Op: config.OpEncrypt, Parallel: 1, Key: f.key, Inputs: []string{in}}
	require.NoError(t, logic.Run(enc, f.reporter()))

	other := f.write(t, "other.txt", []byte("key124"))
	out := f.path("restored.txt")

	dec := &config.Config{
		Op: config.OpDecrypt, Parallel: 1, Key: other,
		Inputs: []string{in + config.Extension}, Output: out,
	}

	err := logic.Run(dec, f.reporter())
	require.ErrorIs(t, err, errdefs.ErrIntegrity)
	assert.NoFileExists(t, out)
	assert.Contains(t, f.errOut.String(), "Error processing")
}

func TestMissingKeyFile(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 8, 8)
	in := f.write(t, "plain.txt", []byte("secret"))

	cfg := &config.Config{Op: config.OpEncrypt, Parallel: 1, Key: f.path("nope.txt"), Inputs: []string{in}}
	require.ErrorIs(t, logic.Run(cfg, f.reporter()), errdefs.ErrKeyDerivation)
}

func TestEmbedExtract(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 100, 100)
	data := f.write(t, "data.bin", bytes.Repeat([]byte{0xde, 0xad}, 300))
	stegoPath := f.path("stego.png")
	extracted := f.path("extracted.bin")

	embed := &config.Config{Op: config.OpEmbed, Parallel: 1, Image: f.carrier, Data: data, Output: stegoPath}
	require.NoError(t, logic.Run(embed, f.reporter()))

	extract := &config.Config{Op: config.OpExtract, Parallel: 1, Image: stegoPath, Output: extracted}
	require.NoError(t, logic.Run(extract, f.reporter()))

	want, err := os.ReadFile(data)
	require.NoError(t, err)

	got, err := os.ReadFile(extracted)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestHideReveal(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 100, 100)
	data := f.write(t, "data.txt", []byte("hello world"))
	stegoPath := f.path("stego.png")
	revealed := f.path("revealed.txt")

	hide := &config.Config{
		Op: config.OpHide, Parallel: 1, Key: f.key,
		Image: f.carrier, Data: data, Output: stegoPath,
	}
	require.NoError(t, logic.Run(hide, f.reporter()))

	inspect := &config.Config{Op: config.OpInspect, Parallel: 1, Image: stegoPath}
	require.NoError(t, logic.Run(inspect, f.reporter()))
	assert.Contains(t, f.out.String(), "Version:    1 (aes-gcm)")
	assert.Contains(t, f.out.String(), "Ciphertext: 11 bytes")

	reveal := &config.Config{Op: config.OpReveal, Parallel: 1, Key: f.key, Image: stegoPath, Output: revealed}
	require.NoError(t, logic.Run(reveal, f.reporter()))

	got, err := os.ReadFile(revealed)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), got)

	wrong := f.write(t, "wrong.txt", []byte("not the key"))
	reveal.Key = wrong
	reveal.Output = f.path("never.txt")

	require.ErrorIs(t, logic.Run(reveal, f.reporter()), errdefs.ErrIntegrity)
	assert.NoFileExists(t, reveal.Output)
}

func TestHideCapacity(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 8, 8)
	data := f.write(t, "data.txt", []byte("hello world"))
	out := f.path("stego.png")

	hide := &config.Config{
		Op: config.OpHide, Parallel: 1, Key: f.key,
		Image: f.carrier, Data: data, Output: out,
	}

	require.ErrorIs(t, logic.Run(hide, f.reporter()), errdefs.ErrCapacity)
	assert.NoFileExists(t, out)
}

func TestCapacity(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 100, 100)
	data := f.write(t, "data.bin", make([]byte, 3700))

	cfg := &config.Config{Op: config.OpCapacity, Parallel: 1, Image: f.carrier, Data: data}
	require.NoError(t, logic.Run(cfg, f.reporter()))

	out := f.out.String()
	assert.Contains(t, out, "(100x100)")
	assert.Contains(t, out, "Capacity:  30000 bits")
	assert.Contains(t, out, "Payload:   3746 bytes")
	assert.Contains(t, out, "embed:   fits")
	assert.Contains(t, out, "hide:    does not fit")
}

func TestInspectFiles(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 8, 8)
	in := f.write(t, "plain.txt", []byte("abc"))

	enc := &config.Config{
		Op: config.OpEncrypt, Parallel: 1, Key: f.key,
		Inputs: []string{in}, Suite: "chacha20-poly1305", Quiet: true,
	}
	require.NoError(t, logic.Run(enc, f.reporter()))

	cfg := &config.Config{Op: config.OpInspect, Parallel: 1, Inputs: []string{in + config.Extension}}
	require.NoError(t, logic.Run(cfg, f.reporter()))
	assert.Contains(t, f.out.String(), "Version:    2 (chacha20-poly1305)")

	cfg.Inputs = []string{in}
	require.ErrorIs(t, logic.Run(cfg, f.reporter()), errdefs.ErrFormat)
}

func TestQuietSuppressesResults(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 8, 8)
	in := f.write(t, "plain.txt", []byte("abc"))

	var out, errOut bytes.Buffer

	cfg := &config.Config{Op: config.OpEncrypt, Parallel: 1, Key: f.key, Inputs: []string{in}, Quiet: true}
	require.NoError(t, logic.Run(cfg, logic.NewReporter(&out, &errOut, true)))

	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())
}

func TestDeleteKeepsOverwrittenInput(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 8, 8)
	in := f.write(t, "plain.txt", []byte("secret"))

	// Validation normally rejects this; the batch must still not delete its own result.
	cfg := &config.Config{
		Op: config.OpEncrypt, Parallel: 1, Key: f.key,
		Inputs: []string{in}, Output: in, Delete: true,
	}
	require.NoError(t, logic.Run(cfg, f.reporter()))

	data, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Len(t, data, stegecrypt.ContainerSize(len("secret")))
	assert.Contains(t, f.errOut.String(), "keeping it")
	assert.NotContains(t, f.out.String(), "Deleted")
}

func TestDecryptChecksFormatBeforeKey(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 8, 8)
	in := f.write(t, "plain.txt.stegecrypt", []byte("not a container"))

	for _, key := range []string{f.write(t, "empty.txt", nil), f.path("missing.txt")} {
		cfg := &config.Config{Op: config.OpDecrypt, Parallel: 1, Key: key, Inputs: []string{in}}

		err := logic.Run(cfg, f.reporter())
		require.ErrorIs(t, err, errdefs.ErrFormat)
		assert.NotErrorIs(t, err, errdefs.ErrKeyDerivation)
	}

	sealed := f.write(t, "sealed.txt", []byte("x"))
	enc := &config.Config{Op: config.OpEncrypt, Parallel: 1, Key: f.key, Inputs: []string{sealed}}
	require.NoError(t, logic.Run(enc, f.reporter()))

	dec := &config.Config{
		Op: config.OpDecrypt, Parallel: 1, Key: f.write(t, "blank.txt", nil),
		Inputs: []string{sealed + config.Extension}, Output: f.path("out.txt"),
	}
	require.ErrorIs(t, logic.Run(dec, f.reporter()), errdefs.ErrKeyDerivation)
}
