package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/huddle/internal/formatter"
	"github.com/desertthunder/huddle/internal/models"
	"github.com/desertthunder/huddle/internal/shared"
	"github.com/urfave/cli/v3"
)

func (r *Runner) fetchPlaybook(ctx context.Context, filter models.FilterSelection) (*models.Playbook, error) {
	api, err := r.client()
	if err != nil {
		return nil, err
	}

	book, err := api.Playbook(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := r.likes.Annotate(book.Plays); err != nil {
		r.logger.Warn("failed to read local likes", "error", err)
	}
	return book, nil
}

// PlaybookList lists the caller's saved plays.
func (r *Runner) PlaybookList(ctx context.Context, cmd *cli.Command) error {
	book, err := r.fetchPlaybook(ctx, filterFromFlags(cmd))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(book, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Playbook · " + formatter.PlayCount(len(book.Plays)))
	if len(book.Plays) == 0 {
		return r.writePlain("Your playbook is empty\nSave plays with `huddle plays save <id>`\n")
	}
	for i, p := range book.Plays {
		r.writePlay(i, p)
	}
	if book.DiagramURL != "" {
		r.writePlainln("Diagram: %s", book.DiagramURL)
	}
	return nil
}

// PlaybookExport writes the playbook to disk as csv, md or txt.
func (r *Runner) PlaybookExport(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	switch format {
	case "csv", "md", "txt":
	default:
		return fmt.Errorf("%w: format must be csv, md or txt, got %q", shared.ErrInvalidFlag, format)
	}

	book, err := r.fetchPlaybook(ctx, filterFromFlags(cmd))
	if err != nil {
		return err
	}

	output := cmd.String("output")
	r.logger.Info("exporting playbook", "format", format, "plays", len(book.Plays))

	switch format {
	case "csv":
		result, err := formatter.WriteCSVExport(book, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %s\n", formatter.PlayCount(len(book.Plays)))
		r.writePlain("  %s\n", result.PlaysFile)
		return r.writePlain("  %s\n", result.MetadataFile)
	case "md":
		result, err := formatter.WriteMarkdownExport(book, output, cmd.String("title"))
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %s to %s\n", formatter.PlayCount(len(book.Plays)), result.Directory)
		for _, f := range result.Files {
			r.writePlain("  %s\n", f)
		}
		return nil
	default:
		path, err := formatter.WriteTextExport(book, output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Exported %s to %s\n", formatter.PlayCount(len(book.Plays)), path)
	}
}
