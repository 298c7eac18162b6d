package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"blogposts/app/services"

	"github.com/spf13/cobra"
)

var errInMemory = errors.New("command needs an on-disk database, in_memory is set")

func newInitCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if c.cfg.InMemory {
				return errInMemory
			}
			if dbExists(c.cfg) {
				fmt.Fprintln(out, "Database already exists. Use 'clean' first if you want to reinitialize.")
				return nil
			}

			if err := os.MkdirAll(c.cfg.DBPath, 0755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}
			repo, err := openStore(c.cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			if err := repo.Close(); err != nil {
				return fmt.Errorf("failed to close database: %w", err)
			}

			fmt.Fprintln(out, "Database initialized successfully")
			return nil
		},
	}
}

func newCleanCmd(c *cli) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if c.cfg.InMemory {
				return errInMemory
			}
			if !dbExists(c.cfg) {
				fmt.Fprintln(out, "Database is already clean (does not exist)")
				return nil
			}

			if !yes && !confirm(cmd.InOrStdin(), out, "Are you sure you want to clean the database? This cannot be undone.") {
				fmt.Fprintln(out, "Operation cancelled")
				return nil
			}

			if err := os.RemoveAll(c.cfg.DBPath); err != nil {
				return fmt.Errorf("failed to clean database: %w", err)
			}
			fmt.Fprintln(out, "Database cleaned successfully")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newBackupCmd(c *cli) *cobra.Command {
	var backupDir string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create a backup of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if c.cfg.InMemory {
				return errInMemory
			}
			if !dbExists(c.cfg) {
				fmt.Fprintln(out, "No database exists to backup")
				return nil
			}

			if err := os.MkdirAll(backupDir, 0755); err != nil {
				return fmt.Errorf("failed to create backup directory: %w", err)
			}

			repo, err := openStore(c.cfg)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer repo.Close()

			backupFile := filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
			f, err := os.Create(backupFile)
			if err != nil {
				return fmt.Errorf("failed to create backup file: %w", err)
			}
			defer f.Close()

			if err := repo.Backup(cmd.Context(), f); err != nil {
				return fmt.Errorf("failed to backup database: %w", err)
			}

			fmt.Fprintf(out, "Database backed up successfully to %s\n", backupFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&backupDir, "dir", "data/backups", "directory to write the backup file to")
	return cmd
}

func newRestoreCmd(c *cli) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore the database from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			backupFile := args[0]
			if c.cfg.InMemory {
				return errInMemory
			}

			fi, err := os.Stat(backupFile)
			if err != nil {
				return fmt.Errorf("backup file does not exist: %s", backupFile)
			}
			if fi.Size() == 0 {
				return fmt.Errorf("backup file is empty: %s", backupFile)
			}

			if dbExists(c.cfg) {
				if !yes && !confirm(cmd.InOrStdin(), out, "Existing database found. Do you want to replace it?") {
					fmt.Fprintln(out, "Operation cancelled")
					return nil
				}
				if err := os.RemoveAll(c.cfg.DBPath); err != nil {
					return fmt.Errorf("failed to remove existing database: %w", err)
				}
			}

			if err := os.MkdirAll(c.cfg.DBPath, 0755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}

			repo, err := openStore(c.cfg)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer repo.Close()

			f, err := os.Open(backupFile)
			if err != nil {
				return fmt.Errorf("failed to open backup file: %w", err)
			}
			defer f.Close()

			if err := repo.Restore(cmd.Context(), f); err != nil {
				return fmt.Errorf("failed to restore database: %w", err)
			}

			fmt.Fprintln(out, "Database restored successfully")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "replace an existing database without asking")
	return cmd
}

func newSeedCmd(c *cli) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert fake posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("count must be positive, got %d", count)
			}
			if c.cfg.InMemory {
				return errInMemory
			}

			repo, err := openStore(c.cfg)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer repo.Close()

			posts, err := services.NewPostService(repo.Posts()).SeedPosts(cmd.Context(), count)
			if err != nil {
				return fmt.Errorf("failed to seed database: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d posts\n", len(posts))
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 10, "number of posts to insert")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "blogposts version %s\n", cliVersion)
			return nil
		},
	}
}
