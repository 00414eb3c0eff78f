package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/PhantomInTheWire/nineslice/pkg/slicer"
	"github.com/PhantomInTheWire/nineslice/pkg/storage"
	"github.com/alecthomas/kong"
)

const description = `Cuts an image into the nine tiles of a 9-slice: four corners, four edges and a center.

Tiles are written as <output-dir>/<base-name><Position>.png. Zero-area tiles are not written.`

type S3 struct {
	Endpoint  string `help:"S3-compatible endpoint URL, e.g. http://localhost:9000." env:"NINESLICE_S3_ENDPOINT"`
	Region    string `help:"Bucket region." default:"us-east-1" env:"NINESLICE_S3_REGION"`
	Bucket    string `help:"Upload the written tiles to this bucket." env:"NINESLICE_S3_BUCKET"`
	Prefix    string `help:"Key prefix for uploaded tiles." env:"NINESLICE_S3_PREFIX"`
	AccessKey string `help:"Static access key. Default credential chain when empty." env:"NINESLICE_S3_ACCESS_KEY"`
	SecretKey string `help:"Static secret key." env:"NINESLICE_S3_SECRET_KEY"`
}

// CLI is the command line of the slicer. Every flag can also come from the
// TOML file given by --config (or DefaultPath) and from its NINESLICE_*
// environment variable.
type CLI struct {
	Config kong.ConfigFlag `help:"TOML config file." placeholder:"FILE"`

	SourcePath string `short:"s" help:"Image to slice." placeholder:"FILE" env:"NINESLICE_SOURCE_PATH"`
	OutputDir  string `short:"o" help:"Destination directory, created if absent." default:"." placeholder:"DIR" env:"NINESLICE_OUTPUT_DIR"`
	BaseName   string `short:"b" help:"Tile file name prefix. Defaults to the source file name without extension." env:"NINESLICE_BASE_NAME"`

	Top    int `help:"Inset from the top edge in pixels." env:"NINESLICE_TOP"`
	Right  int `help:"Inset from the right edge in pixels." env:"NINESLICE_RIGHT"`
	Bottom int `help:"Inset from the bottom edge in pixels." env:"NINESLICE_BOTTOM"`
	Left   int `help:"Inset from the left edge in pixels." env:"NINESLICE_LEFT"`

	Parallel bool `help:"Write tiles concurrently." env:"NINESLICE_PARALLEL"`

	S3 S3 `embed:"" prefix:"s3-"`
}

// Validate is called by kong once flags, environment and config files are
// resolved.
func (c *CLI) Validate() error {
	if c.SourcePath == "" {
		return errors.New("no source image: pass --source-path or set source_path in the config file")
	}
	return nil
}

// Options converts the parsed command line for slicer.Image.
func (c *CLI) Options() slicer.Options {
	base := c.BaseName
	if base == "" {
		base = strings.TrimSuffix(filepath.Base(c.SourcePath), filepath.Ext(c.SourcePath))
	}
	return slicer.Options{
		OutputDir: c.OutputDir,
		BaseName:  base,
		Insets: slicer.Insets{
			Top:    c.Top,
			Right:  c.Right,
			Bottom: c.Bottom,
			Left:   c.Left,
		},
		Parallel: c.Parallel,
	}
}

// Storage returns the upload target, and false when no bucket is set.
func (c *CLI) Storage() (storage.S3Config, bool) {
	return storage.S3Config{
		Endpoint:  c.S3.Endpoint,
		Region:    c.S3.Region,
		AccessKey: c.S3.AccessKey,
		SecretKey: c.S3.SecretKey,
		Bucket:    c.S3.Bucket,
		Prefix:    c.S3.Prefix,
	}, c.S3.Bucket != ""
}

// NewParser builds the kong parser for cli. Extra options are appended,
// which lets tests swap out Exit and the config search paths.
func NewParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	opts := []kong.Option{
		kong.Name("slicer"),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Configuration(TOML, DefaultPath),
	}
	return kong.New(cli, append(opts, options...)...)
}
