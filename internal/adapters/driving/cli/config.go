package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/adcheck/internal/core/domain"
	"github.com/custodia-labs/adcheck/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change settings stored in config.toml.

Keys use dot notation, for example keywords.sheets.spreadsheet.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and save it.

Available keys:
  ` + strings.Join(services.ConfigKeys, "\n  ") + `

plaintext.encodings takes a comma-separated list, e.g. utf-8,cp949.
keywords.cache takes true or false.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	s := rt.Settings

	cmd.Println("Keyword Source")
	cmd.Printf("  Source:       %s (%s)\n", s.KeywordSource, s.KeywordSource.Description())
	switch s.KeywordSource {
	case domain.KeywordSourceFile:
		cmd.Printf("  File:         %s\n", valueOr(s.KeywordFile, "(not set)"))
	case domain.KeywordSourceGitHub:
		cmd.Printf("  Repository:   %s\n", valueOr(s.GitHub.Repository, "(not set)"))
		cmd.Printf("  Path:         %s\n", s.GitHub.Path)
		cmd.Printf("  Ref:          %s\n", valueOr(s.GitHub.Ref, "(default branch)"))
	default:
		cmd.Printf("  Spreadsheet:  %s\n", valueOr(s.Sheets.Spreadsheet, "(not set)"))
		cmd.Printf("  Worksheet:    %s\n", s.Sheets.Worksheet)
		cmd.Printf("  Columns:      %s (keyword), %s (note)\n", s.Sheets.KeywordColumn, s.Sheets.NoteColumn)
		cmd.Printf("  Start row:    %d\n", s.Sheets.StartRow)
		cmd.Printf("  Credentials:  %s\n", valueOr(s.Sheets.CredentialsFile, "(application default)"))
	}
	cmd.Printf("  Cache:        %t\n", s.KeywordCache)
	cmd.Println()

	cmd.Println("Style")
	cmd.Printf("  Font:         %s\n", s.Style.FontName)
	cmd.Printf("  Alert:        #%s\n", s.Style.AlertColor.Hex())
	cmd.Printf("  Accent:       #%s\n", s.Style.AccentColor.Hex())
	cmd.Println()

	cmd.Println("Output")
	cmd.Printf("  Prefix:       %q\n", s.OutputPrefix)
	cmd.Printf("  Directory:    %s\n", s.OutputDir)
	cmd.Printf("  Encodings:    %s\n", strings.Join(s.Encodings, ", "))

	if rt.Config != nil {
		cmd.Println()
		cmd.Printf("Config file: %s\n", rt.Config.Path())
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, raw := args[0], args[1]

	value, err := parseConfigValue(key, raw)
	if err != nil {
		return err
	}
	if err := services.ValidateSetting(key, value); err != nil {
		return err
	}

	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	if rt.Config == nil {
		return errors.New("config store not configured")
	}
	if err := rt.Config.Set(key, value); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}

	cmd.Printf("Set %s = %v\n", key, value)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	if rt.Config == nil {
		return errors.New("config store not configured")
	}
	fmt.Fprintln(cmd.OutOrStdout(), rt.Config.Path())
	return nil
}

// parseConfigValue converts a command-line string to the type stored for key.
func parseConfigValue(key, raw string) (any, error) {
	switch key {
	case services.KeyStartRow:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		return n, nil
	case services.KeyKeywordCache:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		return b, nil
	case services.KeyEncodings:
		var encodings []string
		for _, e := range strings.Split(raw, ",") {
			if e = strings.TrimSpace(e); e != "" {
				encodings = append(encodings, e)
			}
		}
		if len(encodings) == 0 {
			return nil, fmt.Errorf("%w: %s needs at least one encoding", domain.ErrInvalidInput, key)
		}
		return encodings, nil
	default:
		return raw, nil
	}
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
