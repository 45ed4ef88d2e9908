package main

import (
	"fmt"
	"runtime"
	"strings"

	cli "github.com/urfave/cli/v3"

	"mdbc/common"
	"mdbc/convert"
	"mdbc/misc"
)

const buildHelp = `
SOURCE:
    book sources, either of:
        directory - every language is a subdirectory, images live in the images directory next to them
        zip archive - every language is a top level directory in the archive, images are not converted

    Chapter files and directories are named "<order>[_<word>]*", chapters are
    sorted by the chain of order tokens.

DESTINATION:
    directory for produced documents, if absent - current working directory.
    Output names come from document.output_name_template.

IMAGES:
    Image links in merged document point to "<images_dir>/..." relative to
    SOURCE. epub and pdf embed images, md and html outputs only reference
    them: such outputs show images when DESTINATION is SOURCE or when the
    images directory is copied next to them.
`

const dumpconfigHelp = `
DESTINATION:
    file name to write configuration to, if absent - STDOUT

Without --default writes configuration in effect: embedded defaults with
values from configuration file applied on top.
`

// newApp describes command line. Actions and lifecycle hooks get program
// state from context.
func newApp() *cli.Command {
	return &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "builds books from trees of markdown chapters",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          setupEnv,
		After:           teardownEnv,
		OnUsageError:    passUsageError,
		ExitErrHandler:  logExitError,
		CommandNotFound: unknownCommand,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "write detailed log and produce report archive for troubleshooting"},
		},
		Commands: []*cli.Command{
			{
				Name:         "build",
				Usage:        "Builds book(s) from markdown sources",
				OnUsageError: passUsageError,
				Action:       convert.Run,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "lang", Aliases: []string{"l"},
						Usage: "build only language `LANG` (repeatable), overrides sources.languages"},
					&cli.StringSliceFlag{Name: "to",
						Usage: "output `TYPE` (repeatable, supported types: " + strings.Join(common.OutputFmtNames(), ", ") + "), overrides document.formats"},
					&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "replace already existing output documents"},
					&cli.BoolFlag{Name: "keep", Aliases: []string{"k"}, Usage: "do not remove merged markdown and generated images"},
				},
				ArgsUsage:          "SOURCE [DESTINATION]",
				CustomHelpTemplate: cli.CommandHelpTemplate + buildHelp,
			},
			{
				Name:  "dumpconfig",
				Usage: "Writes default or effective configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "write embedded defaults"},
				},
				OnUsageError:       passUsageError,
				Action:             dumpConfig,
				ArgsUsage:          "[DESTINATION]",
				CustomHelpTemplate: fmt.Sprint(cli.CommandHelpTemplate, dumpconfigHelp),
			},
		},
	}
}
