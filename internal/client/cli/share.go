package cli

import (
	"context"
	"strconv"
)

func (a *App) share(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageErr("share <id> <email>")
	}
	if err := a.store.ShareWith(ctx, args[0], args[1]); err != nil {
		return err
	}
	printlnFn("Shared with", args[1])
	return nil
}

// link generates a public link for an owned file. The optional minutes
// argument overrides the default expiry.
func (a *App) link(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usageErr("link <id> [minutes]")
	}

	minutes := 0
	if len(args) == 2 {
		m, err := strconv.Atoi(args[1])
		if err != nil {
			return usageErr("link <id> [minutes]")
		}
		minutes = m
	}

	pl, err := a.store.GeneratePublicLink(ctx, args[0], minutes)
	if err != nil {
		return err
	}

	printlnFn("Public link:", pl.URL)
	if !pl.ExpiresAt.IsZero() {
		printlnFn("Expires at:", pl.ExpiresAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func (a *App) unshare(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageErr("unshare <id>")
	}
	if err := a.store.RemoveSharedGrant(ctx, args[0]); err != nil {
		return err
	}
	printlnFn("Removed", args[0], "from your shared files")
	return nil
}
