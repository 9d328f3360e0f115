// Package logic implements the file-level workflows behind each command.
package logic

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/stegecrypt/internal/config"
	"github.com/idelchi/stegecrypt/internal/fileutil"
	"github.com/idelchi/stegecrypt/pkg/stegecrypt"
)

// Run executes the operation selected in cfg.
func Run(cfg *config.Config, r *Reporter) error {
	switch cfg.Op {
	case config.OpEncrypt, config.OpDecrypt:
		return RunCrypt(cfg, r)
	case config.OpEmbed:
		return RunEmbed(cfg, r)
	case config.OpExtract:
		return RunExtract(cfg, r)
	case config.OpHide:
		return RunHide(cfg, r)
	case config.OpReveal:
		return RunReveal(cfg, r)
	case config.OpCapacity:
		return RunCapacity(cfg, r)
	case config.OpInspect:
		return RunInspect(cfg, r)
	default:
		return fmt.Errorf("unknown operation %q", cfg.Op)
	}
}

// job produces one output file from one input.
type job struct {
	input  string
	output string
	run    func(input, output string) (int64, error)
}

// runBatch processes jobs on up to cfg.Parallel workers and prints results
// as they complete. The first error is returned after every job finished.
//
//nolint:cyclop // parallel processing pipeline with printer goroutine
func runBatch(cfg *config.Config, r *Reporter, jobs []job) error {
	start := time.Now()

	results := make(chan Result, len(jobs))

	group := errgroup.Group{}
	group.SetLimit(max(1, cfg.Parallel))

	printed := make(chan struct{})

	stats := Stats{Inputs: len(jobs)}

	go func() {
		defer close(printed)

		for res := range results {
			if res.Error != nil {
				stats.Errors++

				r.Failed(res.Input, res.Error)

				continue
			}

			stats.Processed++
			stats.Size += res.OutputSize

			r.Processed(res)

			if cfg.Delete {
				if err := deleteInput(res); err != nil {
					r.Failed(res.Input, err)
				} else {
					r.Deleted(res.Input)
				}
			}
		}
	}()

	for _, j := range jobs {
		group.Go(func() error {
			size, err := j.run(j.input, j.output)
			if err != nil {
				results <- Result{Input: j.input, Error: err}

				return err
			}

			results <- Result{Input: j.input, Output: j.output, OutputSize: size}

			return nil
		})
	}

	err := group.Wait()

	close(results)

	<-printed

	if cfg.Stats {
		stats.Duration = time.Since(start)
		r.PrintStats(stats)
	}

	return err
}

// deleteInput removes the input of a successful result. It refuses when the
// output replaced the input, which would delete the result itself.
func deleteInput(res Result) error {
	in, err := os.Stat(res.Input)
	if err != nil {
		return fmt.Errorf("deleting input: %w", err)
	}

	if out, err := os.Stat(res.Output); err == nil && os.SameFile(in, out) {
		return fmt.Errorf("deleting input: %q was overwritten by its output, keeping it", res.Input)
	}

	if err := os.Remove(res.Input); err != nil {
		return fmt.Errorf("deleting input: %w", err)
	}

	return nil
}

// RunCrypt encrypts or decrypts every input. The key is derived once and
// shared by all workers. On decrypt it is derived only once a container has
// been decoded, so non-container inputs report a format error first.
func RunCrypt(cfg *config.Config, r *Reporter) error {
	loadKey := sync.OnceValues(func() (stegecrypt.Key, error) {
		return stegecrypt.LoadKey(cfg.Key)
	})

	var transform func([]byte) ([]byte, error)

	switch cfg.Op {
	case config.OpDecrypt:
		transform = func(data []byte) ([]byte, error) {
			return stegecrypt.DecryptWithKeyFunc(data, loadKey)
		}
	default:
		key, err := loadKey()
		if err != nil {
			return err
		}

		suite, err := parseSuite(cfg)
		if err != nil {
			return err
		}

		transform = func(data []byte) ([]byte, error) {
			return stegecrypt.EncryptWithKey(data, key, stegecrypt.WithSuite(suite))
		}
	}

	jobs := make([]job, 0, len(cfg.Inputs))

	for _, input := range cfg.Inputs {
		jobs = append(jobs, job{
			input:  input,
			output: cfg.OutputFor(input),
			run: func(input, output string) (int64, error) {
				return transformFile(input, output, cfg.PreserveTimestamps, transform)
			},
		})
	}

	if err := runBatch(cfg, r, jobs); err != nil {
		return fmt.Errorf("%s: %w", cfg.Op, err)
	}

	return nil
}

// transformFile reads input fully, applies fn and writes the result
// atomically to output.
func transformFile(input, output string, preserveTimestamps bool, fn func([]byte) ([]byte, error)) (int64, error) {
	info, err := os.Stat(input)
	if err != nil {
		return 0, fmt.Errorf("getting file info for %q: %w", input, err)
	}

	data, err := os.ReadFile(input) //nolint:gosec // path is a command-line input
	if err != nil {
		return 0, fmt.Errorf("reading %q: %w", input, err)
	}

	out, err := fn(data)
	if err != nil {
		return 0, err
	}

	if _, err := fileutil.WriteFile(output, out); err != nil {
		return 0, err
	}

	size, err := fileutil.FinalizeOutput(output, preserveTimestamps, info.ModTime())
	if err != nil {
		return 0, fmt.Errorf("finalizing output: %w", err)
	}

	return size, nil
}

func parseSuite(cfg *config.Config) (stegecrypt.Suite, error) {
	suite, err := stegecrypt.ParseSuite(cfg.Suite)
	if err != nil {
		return 0, fmt.Errorf("--suite: %w", err)
	}

	return suite, nil
}
