package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	govalidator "github.com/go-playground/validator/v10"

	"github.com/idelchi/gogen/pkg/validator"

	"github.com/idelchi/stegecrypt/internal/encryption"
)

// Accepted file extensions, compared case-insensitively.
var (
	KeyFileExtensions = []string{".txt", ".png", ".jpg", ".jpeg"} //nolint:gochecknoglobals
	CarrierExtensions = []string{".png", ".bmp", ".tif", ".tiff"} //nolint:gochecknoglobals
)

// Validate validates the configuration against the struct tags and the
// per-operation requirements.
func (c *Config) Validate() error {
	v, err := newValidator()
	if err != nil {
		return err
	}

	if errs := v.Validate(c); errs != nil {
		return fmt.Errorf("validating configuration: %w", errors.Join(errs...))
	}

	return nil
}

// newValidator registers the custom tags with their messages. Field names in
// messages are taken from the label tag.
func newValidator() (*validator.Validator, error) {
	v := validator.NewValidator()

	v.Validator().RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
		if name == "" || name == "-" {
			return fld.Name
		}

		return name
	})

	custom := []struct {
		tag string
		fn  func(validator.FieldLevel) bool
		msg string
	}{
		{"keyfile", hasExtension(KeyFileExtensions...), "{0} must be a key file with extension " + strings.Join(KeyFileExtensions, ", ")},
		{"carrier", hasExtension(CarrierExtensions...), "{0} must be a lossless image with extension " + strings.Join(CarrierExtensions, ", ")},
		{"pngout", validatePNGOutput, "{0} must be a .png file"},
		{"suite", validateSuite, "{0} must be aes-gcm or chacha20-poly1305"},
		{"single", validateSingle, "{0} cannot be combined with several inputs"},
		{"decryptable", validateDecryptable, "{0} must end in " + Extension + " when --output is not set"},
		{"distinct", validateDistinct, "{0} must differ from the input when --delete is set"},
	}

	for _, c := range custom {
		if err := v.RegisterValidationAndTranslation(c.tag, c.fn, c.msg); err != nil {
			return nil, fmt.Errorf("registering %s validation: %w", c.tag, err)
		}
	}

	v.Validator().RegisterStructValidation(validateOperation, Config{})

	return v, nil
}

// hasExtension accepts strings ending in one of exts.
func hasExtension(exts ...string) func(validator.FieldLevel) bool {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(exts, strings.ToLower(filepath.Ext(fl.Field().String())))
	}
}

func validateSuite(fl validator.FieldLevel) bool {
	_, err := encryption.ParseSuite(fl.Field().String())

	return err == nil
}

// parent returns the Config owning the field under validation.
func parent(fl validator.FieldLevel) (Config, bool) {
	cfg, ok := reflect.Indirect(fl.Parent()).Interface().(Config)

	return cfg, ok
}

// validatePNGOutput requires a .png output for operations that write images.
func validatePNGOutput(fl validator.FieldLevel) bool {
	cfg, ok := parent(fl)
	if !ok || cfg.Output == "" || (cfg.Op != OpEmbed && cfg.Op != OpHide) {
		return true
	}

	return strings.EqualFold(filepath.Ext(cfg.Output), ".png")
}

// validateSingle rejects an explicit output shared by several inputs.
func validateSingle(fl validator.FieldLevel) bool {
	cfg, ok := parent(fl)

	return !ok || cfg.Output == "" || !cfg.Batch()
}

// validateDecryptable requires the container extension on decrypt inputs
// whose output name is derived from them.
func validateDecryptable(fl validator.FieldLevel) bool {
	cfg, ok := parent(fl)
	if !ok || cfg.Op != OpDecrypt || cfg.Output != "" {
		return true
	}

	for _, in := range cfg.Inputs {
		if !strings.HasSuffix(in, Extension) {
			return false
		}
	}

	return true
}

// validateDistinct rejects --delete when an output would overwrite its own
// input, since deleting the input would then delete the result.
func validateDistinct(fl validator.FieldLevel) bool {
	cfg, ok := parent(fl)
	if !ok || !cfg.Delete {
		return true
	}

	for _, in := range cfg.Inputs {
		if SamePath(in, cfg.OutputFor(in)) {
			return false
		}
	}

	return true
}

// SamePath reports whether a and b name the same location after cleaning
// and resolving them against the working directory.
func SamePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)

	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}

	return absA == absB
}

// validateOperation enforces the flags each operation needs.
func validateOperation(sl govalidator.StructLevel) {
	cfg, ok := reflect.Indirect(sl.Current()).Interface().(Config)
	if !ok {
		return
	}

	require := func(value, field, label string) {
		if value == "" {
			sl.ReportError(value, label, field, "required", "")
		}
	}

	requireInputs := func() {
		if len(cfg.Inputs) == 0 {
			sl.ReportError(cfg.Inputs, "--input", "Inputs", "required", "")
		}
	}

	switch cfg.Op {
	case OpEncrypt, OpDecrypt:
		require(cfg.Key, "Key", "--key")
		requireInputs()
	case OpEmbed, OpHide:
		require(cfg.Image, "Image", "--image")
		require(cfg.Data, "Data", "--data")
		require(cfg.Output, "Output", "--output")

		if cfg.Op == OpHide {
			require(cfg.Key, "Key", "--key")
		}
	case OpExtract, OpReveal:
		require(cfg.Image, "Image", "--image")
		require(cfg.Output, "Output", "--output")

		if cfg.Op == OpReveal {
			require(cfg.Key, "Key", "--key")
		}
	case OpCapacity:
		require(cfg.Image, "Image", "--image")
	case OpInspect:
		if cfg.Image == "" {
			requireInputs()
		}
	}
}
