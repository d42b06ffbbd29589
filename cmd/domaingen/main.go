// domaingen generates domain-model boilerplate for Go types annotated with
// //domain:derive directives.
//
// Usage:
//
//	domaingen build [dirs...]   generate code (default ".", "dir/..." for a tree)
//	domaingen lint [dirs...]    report diagnostics only
//	domaingen check [dirs...]   fail when generated files are out of date
//	domaingen init [dir]        write a starter .domaingen.yaml
//	domaingen version
//
// Typically invoked from a go:generate line:
//
//	//go:generate go run github.com/lex00/domaingen/cmd/domaingen build .
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
