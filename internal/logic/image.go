package logic

import (
	"encoding/hex"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/stegecrypt/internal/config"
	"github.com/idelchi/stegecrypt/internal/fileutil"
	"github.com/idelchi/stegecrypt/pkg/stegecrypt"
)

// RunEmbed hides the data file in the carrier image.
func RunEmbed(cfg *config.Config, r *Reporter) error {
	return single(cfg, r, cfg.Data, func() (int64, error) {
		payload, err := os.ReadFile(cfg.Data)
		if err != nil {
			return 0, fmt.Errorf("reading data file: %w", err)
		}

		return embedInto(cfg, r, payload)
	})
}

// RunHide encrypts the data file and hides the container in the carrier image.
func RunHide(cfg *config.Config, r *Reporter) error {
	return single(cfg, r, cfg.Data, func() (int64, error) {
		key, err := stegecrypt.LoadKey(cfg.Key)
		if err != nil {
			return 0, err
		}

		suite, err := parseSuite(cfg)
		if err != nil {
			return 0, err
		}

		plaintext, err := os.ReadFile(cfg.Data)
		if err != nil {
			return 0, fmt.Errorf("reading data file: %w", err)
		}

		payload, err := stegecrypt.EncryptWithKey(plaintext, key,
			stegecrypt.WithSuite(suite), stegecrypt.WithProgress(r.Progress))
		if err != nil {
			return 0, err
		}

		return embedInto(cfg, r, payload)
	})
}

// RunExtract writes the payload hidden in the image to the output file.
func RunExtract(cfg *config.Config, r *Reporter) error {
	return single(cfg, r, cfg.Image, func() (int64, error) {
		img, err := loadImage(cfg.Image)
		if err != nil {
			return 0, err
		}

		payload, err := stegecrypt.Extract(img, stegecrypt.WithProgress(r.Progress))
		if err != nil {
			return 0, err
		}

		return fileutil.WriteFile(cfg.Output, payload)
	})
}

// RunReveal extracts the container hidden in the image and decrypts it.
func RunReveal(cfg *config.Config, r *Reporter) error {
	return single(cfg, r, cfg.Image, func() (int64, error) {
		img, err := loadImage(cfg.Image)
		if err != nil {
			return 0, err
		}

		progress := stegecrypt.WithProgress(r.Progress)

		payload, err := stegecrypt.Extract(img, progress)
		if err != nil {
			return 0, err
		}

		plaintext, err := stegecrypt.DecryptWithKeyFunc(payload, func() (stegecrypt.Key, error) {
			return stegecrypt.LoadKey(cfg.Key)
		}, progress)
		if err != nil {
			return 0, err
		}

		return fileutil.WriteFile(cfg.Output, plaintext)
	})
}

// RunCapacity reports how much data the carrier image can hold. With --data
// it also reports whether that file fits, as is and encrypted.
func RunCapacity(cfg *config.Config, r *Reporter) error {
	img, err := loadImage(cfg.Image)
	if err != nil {
		return err
	}

	bits := stegecrypt.Capacity(img)
	maxPayload := stegecrypt.MaxPayload(img)
	b := img.Bounds()

	fmt.Fprintf(r.out, "Image:     %s (%dx%d)\n", cfg.Image, b.Dx(), b.Dy())
	fmt.Fprintf(r.out, "Capacity:  %d bits\n", bits)
	fmt.Fprintf(r.out, "Payload:   %d bytes (%s)\n", maxPayload, humanize.IBytes(uint64(maxPayload))) //nolint:gosec
	fmt.Fprintf(r.out, "Encrypted: up to %d bytes of plaintext\n", max(0, maxPayload-stegecrypt.ContainerSize(0)))

	if cfg.Data == "" {
		return nil
	}

	info, err := os.Stat(cfg.Data)
	if err != nil {
		return fmt.Errorf("getting file info for %q: %w", cfg.Data, err)
	}

	size := int(info.Size())
	encrypted := stegecrypt.ContainerSize(size)

	fmt.Fprintf(r.out, "Data:      %s (%s)\n", cfg.Data, humanize.IBytes(uint64(size))) //nolint:gosec
	fmt.Fprintf(r.out, "  embed:   %s\n", fits(size, maxPayload))
	fmt.Fprintf(r.out, "  hide:    %s\n", fits(encrypted, maxPayload))

	return nil
}

// RunInspect prints container headers without decrypting them. Inputs are
// container files; --image inspects the container hidden in a stego image.
func RunInspect(cfg *config.Config, r *Reporter) error {
	if cfg.Image != "" {
		img, err := loadImage(cfg.Image)
		if err != nil {
			return err
		}

		payload, err := stegecrypt.Extract(img)
		if err != nil {
			return err
		}

		if err := printHeader(r.out, cfg.Image, payload); err != nil {
			return err
		}
	}

	for _, input := range cfg.Inputs {
		data, err := os.ReadFile(input) //nolint:gosec // path is a command-line input
		if err != nil {
			return fmt.Errorf("reading %q: %w", input, err)
		}

		if err := printHeader(r.out, input, data); err != nil {
			return fmt.Errorf("inspecting %q: %w", input, err)
		}
	}

	return nil
}

func printHeader(w io.Writer, name string, data []byte) error {
	header, err := stegecrypt.Inspect(data)
	if err != nil {
		return err
	}

	suite := stegecrypt.Suite(header.Version)

	fmt.Fprintf(w, "%s\n", name)
	fmt.Fprintf(w, "  Version:    %d (%s)\n", header.Version, suite)
	fmt.Fprintf(w, "  Salt:       %s\n", hex.EncodeToString(header.Salt))
	fmt.Fprintf(w, "  Nonce:      %s\n", hex.EncodeToString(header.Nonce))
	fmt.Fprintf(w, "  Ciphertext: %d bytes\n", header.CiphertextLength)
	fmt.Fprintf(w, "  Size:       %s\n", humanize.IBytes(uint64(len(data))))

	return nil
}

// single runs one image job with the same reporting and stats as a batch.
func single(cfg *config.Config, r *Reporter, input string, fn func() (int64, error)) error {
	start := time.Now()
	stats := Stats{Inputs: 1}

	size, err := fn()
	if err != nil {
		stats.Errors++
	} else {
		stats.Processed++
		stats.Size = size

		r.Processed(Result{Input: input, Output: cfg.Output, OutputSize: size})
	}

	if cfg.Stats {
		stats.Duration = time.Since(start)
		r.PrintStats(stats)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Op, err)
	}

	return nil
}

// embedInto embeds payload into the configured carrier and writes the PNG.
func embedInto(cfg *config.Config, r *Reporter, payload []byte) (int64, error) {
	carrier, err := loadImage(cfg.Image)
	if err != nil {
		return 0, err
	}

	out, err := stegecrypt.Embed(carrier, payload, stegecrypt.WithProgress(r.Progress))
	if err != nil {
		return 0, err
	}

	return fileutil.WriteAtomic(cfg.Output, func(w io.Writer) error {
		return stegecrypt.EncodePNG(w, out)
	})
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // path is a command-line input
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, err := stegecrypt.DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}

	return img, nil
}

func fits(need, available int) string {
	if need <= available {
		return fmt.Sprintf("fits (%d of %d bytes)", need, available)
	}

	return fmt.Sprintf("does not fit (needs %d bytes, %d available)", need, available)
}
