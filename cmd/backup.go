package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wallet/renderer"
	"github.com/google/subcommands"
)

type backupCmd struct{}

func (*backupCmd) Name() string     { return "backup" }
func (*backupCmd) Synopsis() string { return "create a backup now" }
func (*backupCmd) Usage() string {
	return `yw backup

  Copies the assets, debts and rates collections into a new backup.
`
}

func (c *backupCmd) SetFlags(f *flag.FlagSet) {}

func (c *backupCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := OpenWallet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening wallet: %v\n", err)
		return subcommands.ExitFailure
	}

	id, err := w.Backups.Create()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating backup: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created backup %d.\n", id)
	return subcommands.ExitSuccess
}

type backupsCmd struct{}

func (*backupsCmd) Name() string     { return "backups" }
func (*backupsCmd) Synopsis() string { return "list backups, newest first" }
func (*backupsCmd) Usage() string {
	return `yw backups

  Lists every stored backup, newest first.
`
}

func (c *backupsCmd) SetFlags(f *flag.FlagSet) {}

func (c *backupsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := OpenWallet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening wallet: %v\n", err)
		return subcommands.ExitFailure
	}

	list, err := w.Backups.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing backups: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.BackupsMarkdown(list))
	return subcommands.ExitSuccess
}

// restoreCmd holds the flags for the 'restore' subcommand.
type restoreCmd struct {
	id int64
}

func (*restoreCmd) Name() string     { return "restore" }
func (*restoreCmd) Synopsis() string { return "restore a backup" }
func (*restoreCmd) Usage() string {
	return `yw restore -id <id>

  Writes every record of the backup back into the live collections,
  overwriting by id. Nothing is deleted: records created after the
  backup survive the restore.
`
}

func (c *restoreCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Backup id to restore.")
}

func (c *restoreCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := OpenWallet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening wallet: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := w.Backups.Restore(c.id); err != nil {
		fmt.Fprintf(os.Stderr, "Error restoring backup %d: %v\n", c.id, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Restored backup %d.\n", c.id)
	return subcommands.ExitSuccess
}

// rmBackupCmd holds the flags for the 'rm-backup' subcommand.
type rmBackupCmd struct {
	id int64
}

func (*rmBackupCmd) Name() string     { return "rm-backup" }
func (*rmBackupCmd) Synopsis() string { return "delete a backup" }
func (*rmBackupCmd) Usage() string {
	return `yw rm-backup -id <id>

  Deletes one backup. The live collections are untouched.
`
}

func (c *rmBackupCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Backup id to delete.")
}

func (c *rmBackupCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := OpenWallet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening wallet: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := w.Backups.Delete(c.id); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting backup %d: %v\n", c.id, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted backup %d.\n", c.id)
	return subcommands.ExitSuccess
}
