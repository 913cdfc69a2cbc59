package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/stafflens/goalboard/cmd/cli/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Get     commands.GetCmd   `cmd:"" help:"Fetch the organization's goals"`
		Set     commands.SetCmd   `cmd:"" help:"Edit and save goal targets"`
		Org     commands.OrgCmd   `cmd:"" help:"Show the caller's organization"`
		Token   commands.TokenCmd `cmd:"" help:"Generate an access token"`
		Debug   bool              `help:"Enable debug mode."`
		Version kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
