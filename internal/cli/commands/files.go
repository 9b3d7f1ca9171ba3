package commands

import (
	"FileKeeper/internal/cli/api"
	"FileKeeper/internal/config"
	"FileKeeper/internal/model"
	"context"
	"fmt"
	"strconv"
)

type lsCmd struct{}

func (lsCmd) Name() string        { return "ls" }
func (lsCmd) Description() string { return "List files in folder (20 per page)" }
func (lsCmd) Usage() string       { return "ls [parentId] [page]" }

func (lsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 2 {
		return ErrUsage
	}
	var parentID string
	page := 0
	if len(args) > 0 {
		parentID = args[0]
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 0 {
			return ErrUsage
		}
		page = n
	}

	client, err := authedClient(cfg)
	if err != nil {
		return err
	}
	list, err := client.ListFiles(ctx, parentID, page)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "Нет файлов")
		return nil
	}
	for i := range list {
		printFile(&list[i])
	}
	return nil
}

type mkdirCmd struct{}

func (mkdirCmd) Name() string        { return "mkdir" }
func (mkdirCmd) Description() string { return "Create folder" }
func (mkdirCmd) Usage() string       { return "mkdir <name> [parentId]" }

func (mkdirCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	nf := api.NewFile{Name: args[0], Type: model.TypeFolder}
	if len(args) == 2 {
		nf.ParentID = args[1]
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

type infoCmd struct{}

func (infoCmd) Name() string        { return "info" }
func (infoCmd) Description() string { return "Show file metadata" }
func (infoCmd) Usage() string       { return "info <id>" }

func (infoCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	client, err := authedClient(cfg)
	if err != nil {
		return err
	}
	f, err := client.GetFile(ctx, args[0])
	if err != nil {
		return err
	}
	printFile(f)
	return nil
}

type visibilityCmd struct {
	public bool
}

func (c visibilityCmd) Name() string {
	if c.public {
		return "publish"
	}
	return "unpublish"
}

func (c visibilityCmd) Description() string {
	if c.public {
		return "Make file readable by anyone"
	}
	return "Make file private"
}

func (c visibilityCmd) Usage() string { return c.Name() + " <id>" }

func (c visibilityCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	client, err := authedClient(cfg)
	if err != nil {
		return err
	}
	f, err := client.SetVisibility(ctx, args[0], c.public)
	if err != nil {
		return err
	}
	printFile(f)
	return nil
}

func init() {
	RegisterCmd(lsCmd{})
	RegisterCmd(mkdirCmd{})
	RegisterCmd(infoCmd{})
	RegisterCmd(visibilityCmd{public: true})
	RegisterCmd(visibilityCmd{public: false})
}
