package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/huddle/internal/models"
)

// Credentials holds the values collected by [NewLoginForm], [NewRegisterForm] and [NewProfileForm].
type Credentials struct {
	Email    string
	Password string
	Username string
}

// Theme returns a huh theme matching the TUI palette.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(lipgloss.Color("#7D56F4")).
		PaddingLeft(1)
	t.Focused.Title = styles.accent
	t.Focused.Description = styles.dim
	t.Focused.ErrorIndicator = styles.err
	t.Focused.ErrorMessage = styles.err
	t.Focused.SelectSelector = styles.ok.SetString("› ")
	t.Focused.SelectedOption = styles.ok
	t.Focused.FocusedButton = lipgloss.NewStyle().
		Background(lipgloss.Color("#7D56F4")).
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true).
		Padding(0, 1)
	t.Focused.Next = t.Focused.FocusedButton

	t.Blurred.Base = t.Blurred.Base.
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true).
		PaddingLeft(1)
	t.Blurred.Title = styles.dim

	return t
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func validEmail(s string) error {
	if err := required("email")(s); err != nil {
		return err
	}
	if !strings.Contains(s, "@") {
		return fmt.Errorf("enter a valid email")
	}
	return nil
}

// NewLoginForm asks for email and password.
func NewLoginForm(c *Credentials) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Log in to huddle"),
			huh.NewInput().
				Title("Email").
				Value(&c.Email).
				Validate(validEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&c.Password).
				Validate(required("password")),
		),
	).WithTheme(Theme())
}

// NewRegisterForm asks for username, email and password.
func NewRegisterForm(c *Credentials) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Create a huddle account"),
			huh.NewInput().
				Title("Username").
				Value(&c.Username).
				Validate(required("username")),
			huh.NewInput().
				Title("Email").
				Value(&c.Email).
				Validate(validEmail),
			huh.NewInput().
				Title("Password").
				Description("At least 6 characters").
				EchoMode(huh.EchoModePassword).
				Value(&c.Password).
				Validate(func(s string) error {
					if len(s) < 6 {
						return fmt.Errorf("password must be at least 6 characters")
					}
					return nil
				}),
		),
	).WithTheme(Theme())
}

// NewProfileForm edits username and email, starting from the values already in c.
func NewProfileForm(c *Credentials) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Edit profile"),
			huh.NewInput().
				Title("Username").
				Value(&c.Username).
				Validate(required("username")),
			huh.NewInput().
				Title("Email").
				Value(&c.Email).
				Validate(validEmail),
		),
	).WithTheme(Theme())
}

func vocabularyOptions(options []models.Option, blank string) []huh.Option[string] {
	out := make([]huh.Option[string], 0, len(options)+1)
	if blank != "" {
		out = append(out, huh.NewOption(blank, ""))
	}
	for _, o := range options {
		out = append(out, huh.NewOption(o.Label, o.Value))
	}
	return out
}

// NewUploadForm collects a clip upload. Fields already set on p are kept as defaults.
func NewUploadForm(p *models.NewPlay) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Upload a play"),
			huh.NewInput().
				Title("Video URL").
				Value(&p.URL).
				Validate(func(s string) error {
					return models.NewPlay{URL: s, Type: models.PlayTypes[0].Value}.Validate()
				}),
			huh.NewSelect[string]().
				Title("Play type").
				Options(vocabularyOptions(models.PlayTypes, "")...).
				Value(&p.Type),
			huh.NewSelect[string]().
				Title("Formation").
				Description("Optional").
				Options(vocabularyOptions(models.Formations, "Not sure")...).
				Value(&p.Formation),
			huh.NewText().
				Title("Caption").
				Value(&p.Caption),
		),
	).WithTheme(Theme())
}
