package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
)

const (
	outFlag = "out"
	inFlag  = "in"
)

var exportFlags = map[string]cobraflags.Flag{
	outFlag: &cobraflags.StringFlag{
		Name:  outFlag,
		Value: "-",
		Usage: "File to write the backup to, - for stdout",
	},
}

var importFlags = map[string]cobraflags.Flag{
	inFlag: &cobraflags.StringFlag{
		Name:  inFlag,
		Value: "",
		Usage: "Backup file to restore (required), - for stdin",
	},
}

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the schema and seed the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "initialized %s backend\n", s.backend.Kind)
			return nil
		},
	}
}

func newExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a full backup document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			doc, err := s.uc.Backup.ExportJSON(cmd.Context())
			if err != nil {
				return err
			}
			out := exportFlags[outFlag].GetString()
			if out == "-" || out == "" {
				_, err = cmd.OutOrStdout().Write(append(doc, '\n'))
				return err
			}
			if err := os.WriteFile(out, doc, 0o600); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "backup written to %s\n", out)
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, exportFlags)
	return cmd
}

func newImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace all data with a backup document",
		Long: `Replace all data with a backup document.

The document must be a JSON object with at least the users and products arrays.
A rejected document leaves the current data untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := importFlags[inFlag].GetString()
			if in == "" {
				return fmt.Errorf("--%s is required", inFlag)
			}
			var (
				doc []byte
				err error
			)
			if in == "-" {
				doc, err = io.ReadAll(cmd.InOrStdin())
			} else {
				doc, err = os.ReadFile(in)
			}
			if err != nil {
				return fmt.Errorf("read %s: %w", in, err)
			}

			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.uc.Backup.Import(cmd.Context(), doc); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "backup imported")
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, importFlags)
	return cmd
}

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the dashboard statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			stats, err := s.uc.Analytics.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		},
	}
}
