package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"git.home.luguber.info/inful/hakkan/internal/config"
	"git.home.luguber.info/inful/hakkan/internal/markdown"
	"git.home.luguber.info/inful/hakkan/internal/site"
)

// DiscoverCmd implements the 'discover' command.
type DiscoverCmd struct{}

func (d *DiscoverCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	return RunDiscover(context.Background(), cfg, os.Stdout)
}

// RunDiscover parses every post below the content directory and prints one
// tab separated line per post, most recent first: key, url, tags, fingerprint.
// Nothing is written to the output directory.
func RunDiscover(ctx context.Context, cfg *config.Config, w io.Writer) error {
	files, err := site.Discover(cfg.ContentDir())
	if err != nil {
		return err
	}
	idx, err := site.NewBuilder(cfg.BaseURL, markdown.New(), cfg.Build.Workers).Build(ctx, files)
	if err != nil {
		return err
	}
	for _, key := range idx.KeysDescending() {
		p, _ := idx.Post(key)
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Key, p.URL, strings.Join(p.Tags, ","), p.Fingerprint); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "%d posts, %d tags, %d years\n", idx.Len(), len(idx.Tags()), len(idx.Years()))
	return err
}
