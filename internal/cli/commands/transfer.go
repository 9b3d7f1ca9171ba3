package commands

import (
	"FileKeeper/internal/cli/api"
	"FileKeeper/internal/config"
	"FileKeeper/internal/model"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

type uploadCmd struct{}

func (uploadCmd) Name() string        { return "upload" }
func (uploadCmd) Description() string { return "Upload local file (images get thumbnails)" }
func (uploadCmd) Usage() string {
	return "upload [-public] [-parent <id>] [-name <name>] <path>"
}

func (uploadCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	public := fs.Bool("public", false, "")
	parent := fs.String("parent", "", "")
	name := fs.String("name", "", "")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return ErrUsage
	}
	path := fs.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	nf := api.NewFile{
		Name:     *name,
		Type:     typeForName(path),
		ParentID: *parent,
		IsPublic: *public,
		Data:     data,
	}
	if nf.Name == "" {
		nf.Name = filepath.Base(path)
	}

	client, err := authedClient(cfg)
	if err != nil {
		return err
	}
	f, err := client.CreateFile(ctx, nf)
	if err != nil {
		return err
	}
	printFile(f)
	return nil
}

// typeForName image для изображений по расширению, иначе file.
func typeForName(name string) model.FileType {
	if strings.HasPrefix(mime.TypeByExtension(filepath.Ext(name)), "image/") {
		return model.TypeImage
	}
	return model.TypeFile
}

type getCmd struct{}

func (getCmd) Name() string        { return "get" }
func (getCmd) Description() string { return "Download file content (- writes to stdout)" }
func (getCmd) Usage() string       { return "get [-size 500|250|100] <id> <out|->" }

func (getCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	size := fs.String("size", "", "")
	if err := fs.Parse(args); err != nil || fs.NArg() != 2 {
		return ErrUsage
	}
	id, out := fs.Arg(0), fs.Arg(1)

	// публичные файлы доступны и без входа
	client, err := authedClient(cfg)
	if errors.Is(err, errNotLoggedIn) {
		client, err = anonClient(cfg), nil
	}
	if err != nil {
		return err
	}
	data, contentType, err := client.Download(ctx, id, *size)
	if err != nil {
		return err
	}

	if out == "-" {
		_, err = Out.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o600); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Saved %d bytes (%s) to %s\n", len(data), contentType, out)
	return nil
}

func init() {
	RegisterCmd(uploadCmd{})
	RegisterCmd(getCmd{})
}
