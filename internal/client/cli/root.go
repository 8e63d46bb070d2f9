package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return "(not logged in)"
	}
	s := a.session.Session().Identity
	if query, _ := a.viewState(); query != "" {
		s = s + " search:" + query
	}
	return fmt.Sprintf("(%s)", s)
}

// Root runs the command loop on stdin until EOF or an exit command.
func (a *App) Root(ctx context.Context) {
	printlnFn("File sharing client (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
