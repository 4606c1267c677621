// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
			Value: true,
		},
	}
}

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "formation",
			Aliases: []string{"f"},
			Usage:   "Only plays run from this formation (e.g. trips, full-house)",
		},
		&cli.StringFlag{
			Name:    "play-type",
			Aliases: []string{"t"},
			Usage:   "Only plays of this type (e.g. inside-run, deep-pass)",
		},
	}
}

// setupCommand handles first-run setup for config and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create config.toml if missing, initialize the database and run migrations",
		Action: r.Setup,
	}
}

// authCommand handles account and session operations
func authCommand(r *Runner) *cli.Command {
	credentialFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "email",
			Aliases: []string{"e"},
			Usage:   "Account email (prompted when omitted)",
		},
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"p"},
			Usage:   "Account password (prompted when omitted)",
		},
	}

	return &cli.Command{
		Name:  "auth",
		Usage: "Manage your huddle account",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Log in and store the session locally",
				Flags:  credentialFlags,
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create an account and log in",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "username",
						Aliases: []string{"u"},
						Usage:   "Display name (prompted when omitted)",
					},
				}, credentialFlags...),
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Forget the stored session",
				Action: r.AuthLogout,
			},
			{
				Name:  "profile",
				Usage: "Change your username and email",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "username",
						Aliases: []string{"u"},
						Usage:   "New username (prompted when omitted)",
					},
					&cli.StringFlag{
						Name:    "email",
						Aliases: []string{"e"},
						Usage:   "New email (prompted when omitted)",
					},
				},
				Action: r.AuthProfile,
			},
			{
				Name:   "status",
				Usage:  "Show the signed-in account",
				Flags:  jsonFlags(),
				Action: r.AuthStatus,
			},
		},
	}
}

// playsCommand handles browsing, uploading and saving plays
func playsCommand(r *Runner) *cli.Command {
	uploadFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "type",
			Usage: "Play type (prompted when omitted)",
		},
		&cli.StringFlag{
			Name:  "formation",
			Usage: "Formation",
		},
		&cli.StringFlag{
			Name:  "caption",
			Usage: "Caption shown with the clip",
		},
	}

	return &cli.Command{
		Name:  "plays",
		Usage: "Browse and contribute plays",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List plays, newest first",
				Flags:  append(filterFlags(), jsonFlags()...),
				Action: r.PlaysList,
			},
			{
				Name:   "fyp",
				Usage:  "List your recommended plays",
				Flags:  jsonFlags(),
				Action: r.PlaysForYou,
			},
			{
				Name:   "today",
				Usage:  "Show the play of the day",
				Flags:  jsonFlags(),
				Action: r.PlaysToday,
			},
			{
				Name:  "upload",
				Usage: "Upload a clip",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "Video URL (prompted when omitted)",
					},
				}, uploadFlags...),
				Action: r.PlaysUpload,
			},
			{
				Name:  "share",
				Usage: "Add a clip shared from another platform",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "url"},
				},
				Flags:  uploadFlags,
				Action: r.PlaysShare,
			},
			{
				Name:  "save",
				Usage: "Save a play to your playbook",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.PlaysSave,
			},
			{
				Name:  "like",
				Usage: "Toggle a local like on a play",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.PlaysLike,
			},
			{
				Name:  "open",
				Usage: "Open a clip in the browser",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "url"},
				},
				Action: r.PlaysOpen,
			},
		},
	}
}

// playbookCommand handles the saved plays collection
func playbookCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playbook",
		Aliases: []string{"pb"},
		Usage:   "Work with your saved plays",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List saved plays",
				Flags:  append(filterFlags(), jsonFlags()...),
				Action: r.PlaybookList,
			},
			{
				Name:  "export",
				Usage: "Export saved plays to CSV, Markdown or text",
				Flags: append(filterFlags(),
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format: csv, md or txt",
						Value: "md",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output base path (csv), directory (md) or file (txt)",
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Document title for Markdown exports",
						Value: "Playbook",
					},
				),
				Action: r.PlaybookExport,
			},
		},
	}
}

// feedCommand returns the top-level TUI command for the interactive feed.
func feedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "feed",
		Aliases: []string{"tui", "ui"},
		Usage:   "Launch the interactive play feed",
		Flags: append(filterFlags(),
			&cli.StringFlag{
				Name:  "view",
				Usage: "Starting view: home, search or playbook",
				Value: "home",
			},
			&cli.StringFlag{
				Name:  "player",
				Usage: "Override the player backend (mpv or none)",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the TUI runs",
				Value: "./tmp/huddle-tui.log",
			},
		),
		Action: r.Feed,
	}
}
