package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/PhantomInTheWire/nineslice/pkg/config"
	"github.com/PhantomInTheWire/nineslice/pkg/slicer"
	"github.com/PhantomInTheWire/nineslice/pkg/storage"
	"github.com/allape/gogger"
)

var l = gogger.New("main")

func main() {
	var cli config.CLI
	parser, err := config.NewParser(&cli)
	if err != nil {
		l.Error().Fatalln("build command line:", err)
	}
	_, err = parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	opts := cli.Options()
	tiles, err := slicer.Image(cli.SourcePath, opts)
	if err != nil {
		l.Error().Fatalln("slice:", err)
	}

	written := 0
	for _, tile := range tiles {
		if tile.Skipped {
			fmt.Printf("skipped %s: zero-area region %v\n", tile.Position, tile.Rect)
			continue
		}
		fmt.Printf("wrote %s (%dx%d)\n", tile.Path, tile.Rect.Dx(), tile.Rect.Dy())
		written++
	}
	fmt.Printf("Sliced %s %v into %d tiles\n", cli.SourcePath, opts.Insets, written)

	s3cfg, ok := cli.Storage()
	if !ok {
		return
	}
	if err := upload(s3cfg, tiles); err != nil {
		l.Error().Fatalln("upload:", err)
	}
}

func upload(cfg storage.S3Config, tiles []slicer.Tile) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	u, err := storage.NewUploader(ctx, cfg)
	if err != nil {
		return err
	}
	if err := u.EnsureBucket(ctx); err != nil {
		return err
	}
	keys, err := u.UploadTiles(ctx, tiles)
	if err != nil {
		return err
	}
	for _, key := range keys {
		fmt.Printf("uploaded s3://%s/%s\n", cfg.Bucket, key)
	}
	return nil
}
