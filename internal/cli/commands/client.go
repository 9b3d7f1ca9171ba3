package commands

import (
	"FileKeeper/internal/cli/api"
	fsrepo "FileKeeper/internal/cli/repo/fs"
	"FileKeeper/internal/config"
	"FileKeeper/internal/model"
	"errors"
	"fmt"
)

var errNotLoggedIn = errors.New("not logged in, run: fkcli login <email>")

func tokenStore(cfg *config.Config) fsrepo.AuthFSStore {
	return fsrepo.AuthFSStore{TokenFile: cfg.TokenFile}
}

func anonClient(cfg *config.Config) *api.Client {
	return api.New(cfg.ServerURL(), "")
}

// authedClient клиент с сохранённым токеном сессии.
func authedClient(cfg *config.Config) (*api.Client, error) {
	token, err := tokenStore(cfg).Load()
	if errors.Is(err, fsrepo.ErrNoToken) {
		return nil, errNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	return api.New(cfg.ServerURL(), token), nil
}

func printFile(f *model.FileView) {
	parent := "root"
	if !f.ParentID.IsRoot() {
		parent = f.ParentID.ID()
	}
	fmt.Fprintf(Out, "- %s  %-6s  %s  public=%t  parent=%s\n", f.ID, f.Type, f.Name, f.IsPublic, parent)
}
