package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nishant0207/online-filesharing/internal/client/models"
	"github.com/nishant0207/online-filesharing/internal/client/view"
)

func usageErr(usage string) error {
	return fmt.Errorf("usage: %s", usage)
}

// refreshAll re-fetches both base collections. Failures are logged but not
// fatal: the user can retry with "refresh".
func (a *App) refreshAll(ctx context.Context) {
	if err := a.store.RefreshOwned(ctx, "", models.FilterAll); err != nil {
		a.log.Warn(ctx, "refreshing owned files", "error", err)
	}
	if err := a.store.RefreshShared(ctx); err != nil {
		a.log.Warn(ctx, "refreshing shared files", "error", err)
	}
}

// refresh re-fetches from the server. An optional sort key and filter are
// forwarded for server-side ordering. A refresh starts a fresh view: the
// active search query and local sort are cleared.
func (a *App) refresh(ctx context.Context, args []string) error {
	var (
		sort   models.SortKey
		filter models.FilterKey
	)
	for _, arg := range args {
		switch arg {
		case "newest", "oldest", "alphabetical", "size":
			sort = models.SortKey(arg)
		case "uploaded", "shared":
			filter = models.FilterKey(arg)
		default:
			return usageErr("refresh [newest|oldest|alphabetical|size] [uploaded|shared]")
		}
	}

	if err := a.store.RefreshOwned(ctx, sort, filter); err != nil {
		return err
	}
	if err := a.store.RefreshShared(ctx); err != nil {
		return err
	}
	a.resetView()
	printlnFn("Refreshed.")
	return nil
}

func (a *App) list(ctx context.Context) error {
	query, sortKey := a.viewState()
	owned := view.Search(a.store.Owned(), query)
	if sortKey != "" {
		owned = view.SortOwned(owned, sortKey)
	}
	printRecords("Your files", owned)
	return nil
}

// listShared searches the shared base only; local sort never applies to it.
func (a *App) listShared(ctx context.Context) error {
	query, _ := a.viewState()
	printRecords("Shared with you", view.Search(a.store.Shared(), query))
	return nil
}

// search sets the active filename filter. With no argument the filter is
// cleared. The query applies to both listings until cleared or refreshed.
func (a *App) search(args []string) {
	query := strings.Join(args, " ")
	a.setSearch(query)
	if strings.TrimSpace(query) == "" {
		printlnFn("Search cleared.")
		return
	}
	printlnFn("Searching for:", query)
}

// sortBy sets the local ordering of the owned listing. Only orderings the
// client can compute locally are accepted; the rest are server-side and go
// through "refresh".
func (a *App) sortBy(args []string) error {
	if len(args) != 1 {
		return usageErr("sort <newest|alphabetical>")
	}
	switch key := models.SortKey(args[0]); key {
	case models.SortNewest, models.SortAlphabetical:
		a.setSort(key)
		printlnFn("Sorting by:", args[0])
		return nil
	default:
		return usageErr("sort <newest|alphabetical>")
	}
}

func (a *App) upload(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageErr("upload <path>")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	record, err := a.store.Upload(ctx, filepath.Base(args[0]), f)
	if err != nil {
		return err
	}

	printlnFn("Uploaded", record.Filename, "with id", record.ID)
	return nil
}

func (a *App) download(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageErr("download <id>")
	}
	url, err := a.store.DownloadOwned(ctx, args[0])
	if err != nil {
		return err
	}
	printlnFn("Download URL:", url)
	return nil
}

func (a *App) downloadShared(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageErr("fetch <id>")
	}
	url, err := a.store.DownloadShared(ctx, args[0])
	if err != nil {
		return err
	}
	printlnFn("Download URL:", url)
	return nil
}

func (a *App) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageErr("delete <id>")
	}
	if err := a.store.DeleteOwned(ctx, args[0]); err != nil {
		return err
	}
	printlnFn("Deleted", args[0])
	return nil
}

func (a *App) star(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageErr("star <id>")
	}
	return a.store.ToggleStar(ctx, args[0])
}

func printRecords(title string, records []models.FileRecord) {
	printlnFn(fmt.Sprintf("%s (%d):", title, len(records)))
	for _, r := range records {
		marker := " "
		if r.Starred {
			marker = "*"
		}
		line := fmt.Sprintf("%s %-36s  %-30s  %s", marker, r.ID, r.Filename, r.CreatedAt.Format("2006-01-02 15:04"))
		if len(r.SharedWith) > 0 {
			line += "  shared with: " + strings.Join(r.SharedWith, ", ")
		}
		printlnFn(line)
	}
}
