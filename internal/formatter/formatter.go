// package formatter provides functions to export playbook data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/huddle/internal/models"
	"github.com/desertthunder/huddle/internal/shared"
)

var csvHeaders = []string{"ID", "Formation", "Play Type", "Caption", "Tags", "Shared By", "Created At", "Video URL"}

// ExportToCSV converts a playbook to CSV with columns: ID, Formation, Play Type, Caption, Tags, Shared By, Created At, Video URL
func ExportToCSV(book *models.Playbook) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, play := range book.Plays {
		record := []string{
			play.ID,
			models.FormationLabel(play.Formation),
			models.PlayTypeLabel(play.PlayType),
			play.Caption,
			strings.Join(play.Tags, ";"),
			play.SharedBy,
			play.CreatedAt,
			play.VideoURL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a playbook to Markdown, grouped by formation, with an optional diagram image
func ExportToMarkdown(book *models.Playbook, title, diagramFilename string) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Playbook"
	}
	buf.WriteString(fmt.Sprintf("# %s\n\n", title))

	if diagramFilename != "" {
		buf.WriteString(fmt.Sprintf("![Diagram](%s)\n\n", diagramFilename))
	}

	buf.WriteString(fmt.Sprintf("**Plays**: %d\n\n", len(book.Plays)))

	for _, group := range groupByFormation(book.Plays) {
		buf.WriteString(fmt.Sprintf("## %s\n\n", group.label))
		for i, play := range group.plays {
			line := fmt.Sprintf("%d. [%s](%s)", i+1, play.Title(), play.VideoURL)
			if play.PlayType != "" {
				line += fmt.Sprintf(" (%s)", models.PlayTypeLabel(play.PlayType))
			}
			if len(play.Tags) > 0 {
				line += " `" + strings.Join(play.Tags, "` `") + "`"
			}
			buf.WriteString(line + "\n")
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a playbook to plain text format
func ExportToText(book *models.Playbook) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Plays: %d\n\n", len(book.Plays)))
	for i, play := range book.Plays {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, play.Title(), play.VideoURL))
	}

	return buf.Bytes(), nil
}

type formationGroup struct {
	label string
	plays []models.Play
}

// groupByFormation keeps vocabulary order; unknown formations follow in first-seen order and untagged plays come last.
func groupByFormation(plays []models.Play) []formationGroup {
	byKey := map[string][]models.Play{}
	var unknown []string
	for _, play := range plays {
		if _, seen := byKey[play.Formation]; !seen && play.Formation != "" && !models.IsFormation(play.Formation) {
			unknown = append(unknown, play.Formation)
		}
		byKey[play.Formation] = append(byKey[play.Formation], play)
	}

	groups := []formationGroup{}
	for _, f := range models.Formations {
		if ps := byKey[f.Value]; len(ps) > 0 {
			groups = append(groups, formationGroup{label: f.Label, plays: ps})
		}
	}
	for _, key := range unknown {
		groups = append(groups, formationGroup{label: key, plays: byKey[key]})
	}
	if ps := byKey[""]; len(ps) > 0 {
		groups = append(groups, formationGroup{label: "Other", plays: ps})
	}
	return groups
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// playbookMetadata is the summary written next to a CSV export.
type playbookMetadata struct {
	Plays      int            `json:"plays"`
	DiagramURL string         `json:"diagram_url,omitempty"`
	Formations map[string]int `json:"formations"`
	PlayTypes  map[string]int `json:"play_types"`
	ExportedAt string         `json:"exported_at"`
}

// ToMetadataJSON generates a JSON summary of the playbook (counts per formation and play type)
func ToMetadataJSON(book *models.Playbook) ([]byte, error) {
	meta := playbookMetadata{
		Plays:      len(book.Plays),
		DiagramURL: book.DiagramURL,
		Formations: map[string]int{},
		PlayTypes:  map[string]int{},
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, p := range book.Plays {
		if p.Formation != "" {
			meta.Formations[p.Formation]++
		}
		if p.PlayType != "" {
			meta.PlayTypes[p.PlayType]++
		}
	}
	return shared.MarshalJSON(meta, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	PlaysFile    string
	MetadataFile string
}

// WriteCSVExport exports a playbook to CSV format with accompanying metadata JSON file.
//
// Defaults to "playbook" as the base filename & creates {base}_plays.csv and {base}_metadata.json
func WriteCSVExport(book *models.Playbook, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = "playbook"
	}

	csvData, err := ExportToCSV(book)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	playsFile := baseFilepath + "_plays.csv"
	if err := os.WriteFile(playsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(book)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		PlaysFile:    playsFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory string
	Files     []string
	Diagram   string
}

// WriteMarkdownExport exports a playbook to Markdown format in a dedicated directory.
//
// Directory name defaults to "playbook".
// When the playbook carries a diagram URL the image is downloaded next to the README; a failed download only warns.
func WriteMarkdownExport(book *models.Playbook, outputDir, title string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = "playbook"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var diagramFilename string
	if book.DiagramURL != "" {
		imageData, err := DownloadImage(book.DiagramURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download diagram: %v\n", err)
		} else {
			diagramFilename = "diagram" + imageExt(book.DiagramURL)
			diagramPath := filepath.Join(outputDir, diagramFilename)
			if err := os.WriteFile(diagramPath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save diagram: %v\n", err)
				diagramFilename = ""
			} else {
				result.Diagram = diagramPath
				result.Files = append(result.Files, diagramPath)
			}
		}
	}

	mdData, err := ExportToMarkdown(book, title, diagramFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextExport exports a playbook to plain text format.
//
// Defaults to playbook.txt as the filename.
func WriteTextExport(book *models.Playbook, path string) (string, error) {
	if path == "" {
		path = "playbook.txt"
	}

	textData, err := ExportToText(book)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return path, nil
}

func imageExt(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	switch ext := strings.ToLower(filepath.Ext(url)); ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg":
		return ext
	default:
		return ".png"
	}
}

// PlayCount formats a count with its noun.
func PlayCount(n int) string {
	if n == 1 {
		return "1 play"
	}
	return strconv.Itoa(n) + " plays"
}
