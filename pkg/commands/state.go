package commands

import (
	"fmt"

	"tickit/pkg/database"
)

// HandleStateCommand processes -state commands on the local store
func HandleStateCommand(env *Env, cmd string, skipConfirm bool) error {
	switch cmd {
	case "list":
		entries, err := env.State.Entries()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			env.printf("Local state is empty.\n")
		}
		for _, e := range entries {
			env.printf("%-20s %-40s %s\n", e.Key, displayValue(e), e.LastModified.Format("2006-01-02 15:04"))
		}
		return nil

	case "purge":
		// Show confirmation unless -yes flag is used
		if !skipConfirm && !env.confirm("This signs you out and clears calendar events, matrix and theme. Continue?") {
			env.printf("Operation cancelled.\n")
			return nil
		}
		n, err := env.State.Purge()
		if err != nil {
			return err
		}
		env.printf("Successfully deleted %d entr(ies)\n", n)
		return nil
	}
	return fmt.Errorf("unknown state command: %s (use list or purge)", cmd)
}

// displayValue hides the token and shortens long JSON blobs
func displayValue(e database.Entry) string {
	if e.Key == database.KeyToken && len(e.Value) > 8 {
		return e.Value[:4] + "…" + e.Value[len(e.Value)-4:]
	}
	if r := []rune(e.Value); len(r) > 40 {
		return string(r[:39]) + "…"
	}
	return e.Value
}
