package main

import (
	"context"
	"fmt"

	"github.com/kbukum/paykit/version"
)

func runVersion(_ context.Context, a *app, args []string) int {
	var asJSON bool
	fs := a.newFlagSet("version")
	fs.BoolVar(&asJSON, "json", false, "print JSON")
	if code := a.parse(fs, args); code >= 0 {
		return code
	}

	if asJSON {
		return a.printJSON(version.GetVersionInfo())
	}
	fmt.Fprintf(a.stdout, "paykit %s\n", version.GetFullVersion())
	fmt.Fprintf(a.stdout, "client %s, api %s\n", version.PluginInfo(), version.APIVersion)
	return exitOK
}
