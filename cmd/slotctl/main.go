// slotctl is a small CLI for poking at a single slot interactively and for
// running scripted scenarios against one.
//
// Usage:
//
//	slotctl                         Start the interactive REPL
//	slotctl run [flags] <file>      Run a JSONC scenario file
//
// Commands (in REPL):
//
//	construct <id> <health>   Place a record into the slot
//	get                       Freshly access the occupant
//	set <health>              Update the occupant's health in place
//	destroy                   Tear down the occupant
//	stale                     Read through the handle from the last construct
//	refresh                   Revalidate that handle against the current occupant
//	gen                       Show the construction generation
//	info                      Show slot state
//	help                      Show this help
//	exit / quit / q           Exit
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/calvinalkan/memslot/internal/cli"
	"github.com/calvinalkan/memslot/pkg/slot"
)

func main() {
	out := cli.NewIO(os.Stdout, os.Stderr)

	if len(os.Args) > 1 && os.Args[1] == "run" {
		os.Exit(cli.NewRunCommand().Run(out, os.Args[2:]))
	}

	if len(os.Args) > 1 {
		printUsage()
		os.Exit(1)
	}

	err := runREPL()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  slotctl                         Start the interactive REPL\n")
	fmt.Fprintf(os.Stderr, "  slotctl run [flags] <file>      Run a JSONC scenario file\n")
	fmt.Fprintf(os.Stderr, "\nRun 'slotctl run --help' for scenario runner options.\n")
}

// REPL is the interactive command loop. It owns one slot and retains the
// handle minted by the most recent construct so the stale-handle contract
// can be demonstrated interactively.
type REPL struct {
	slot     *slot.Slot[cli.Record]
	retained slot.Handle[cli.Record]
	liner    *liner.State
}

// historyFile returns the path to the history file.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".slotctl_history")
}

func runREPL() error {
	r := &REPL{slot: slot.New[cli.Record]()}

	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(historyFile()); err == nil {
		r.liner.ReadHistory(f)
		f.Close()
	}

	fmt.Println("slotctl - single-slot buffer REPL")
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()

	for {
		line, err := r.liner.Prompt("slot> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println("\nBye!")

				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "exit", "quit", "q":
			fmt.Println("Bye!")

			r.saveHistory()

			return nil

		case "help", "?":
			r.printHelp()

		case "construct", "new":
			r.cmdConstruct(args)

		case "get", "access":
			r.cmdGet()

		case "set":
			r.cmdSet(args)

		case "destroy", "del":
			r.cmdDestroy()

		case "stale":
			r.cmdStale()

		case "refresh":
			r.cmdRefresh()

		case "gen", "generation":
			r.cmdGeneration()

		case "info":
			r.cmdInfo()

		case "clear", "cls":
			fmt.Print("\033[H\033[2J")

		default:
			fmt.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}

	r.saveHistory()

	return nil
}

// saveHistory persists command history to disk.
func (r *REPL) saveHistory() {
	if path := historyFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			r.liner.WriteHistory(f)
			f.Close()
		}
	}
}

// completer provides tab completion for commands.
func (r *REPL) completer(line string) []string {
	commands := []string{
		"construct", "new", "get", "access",
		"set", "destroy", "del",
		"stale", "refresh",
		"gen", "generation", "info",
		"clear", "cls",
		"help", "exit", "quit", "q",
	}

	var completions []string

	lower := strings.ToLower(line)
	for _, cmd := range commands {
		if strings.HasPrefix(cmd, lower) {
			completions = append(completions, cmd)
		}
	}

	return completions
}

func (r *REPL) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  construct <id> <health>   Place a record into the slot")
	fmt.Println("  get                       Freshly access the occupant")
	fmt.Println("  set <health>              Update the occupant's health in place")
	fmt.Println("  destroy                   Tear down the occupant")
	fmt.Println("  stale                     Read through the handle from the last construct")
	fmt.Println("  refresh                   Revalidate that handle against the current occupant")
	fmt.Println("  gen                       Show the construction generation")
	fmt.Println("  info                      Show slot state")
	fmt.Println("  help                      Show this help")
	fmt.Println("  exit / quit / q           Exit")
	fmt.Println()
	fmt.Println("A handle stays pinned to the construction that minted it. After a")
	fmt.Println("destroy, 'stale' shows the old handle failing while 'get' observes")
	fmt.Println("the current occupant.")
}

func (r *REPL) cmdConstruct(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: construct <id> <health>")

		return
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Printf("Error parsing id: %v\n", err)

		return
	}

	health, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		fmt.Printf("Error parsing health: %v\n", err)

		return
	}

	h, err := r.slot.Construct(cli.Record{ID: id, Health: health})
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	r.retained = h

	fmt.Printf("OK: constructed {id:%d health:%d} (generation %d)\n", id, health, h.Generation())
}

func (r *REPL) cmdGet() {
	h, err := r.slot.Access()
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	v, err := h.Value()
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Printf("ID:      %d\n", v.ID)
	fmt.Printf("Health:  %d\n", v.Health)
	fmt.Printf("Via:     fresh handle (generation %d)\n", h.Generation())
}

func (r *REPL) cmdSet(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: set <health>")

		return
	}

	health, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Printf("Error parsing health: %v\n", err)

		return
	}

	h, err := r.slot.Access()
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	err = h.Update(func(rec *cli.Record) { rec.Health = health })
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Printf("OK: health=%d\n", health)
}

func (r *REPL) cmdDestroy() {
	err := r.slot.Destroy()
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Println("OK: destroyed (retained handle is now stale)")
}

func (r *REPL) cmdStale() {
	v, err := r.retained.Value()
	if err != nil {
		fmt.Printf("Retained handle (generation %d): %v\n", r.retained.Generation(), err)

		return
	}

	fmt.Printf("Retained handle is still live: {id:%d health:%d} (generation %d)\n",
		v.ID, v.Health, r.retained.Generation())
}

func (r *REPL) cmdRefresh() {
	fresh, err := r.retained.Refresh()
	if err != nil {
		if errors.Is(err, slot.ErrForeignHandle) {
			fmt.Println("Error: nothing retained yet (construct first)")

			return
		}

		fmt.Printf("Error: %v\n", err)

		return
	}

	r.retained = fresh

	v, err := fresh.Value()
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Printf("OK: refreshed to generation %d: {id:%d health:%d}\n", fresh.Generation(), v.ID, v.Health)
}

func (r *REPL) cmdGeneration() {
	fmt.Printf("Generation: %d\n", r.slot.Generation())
}

func (r *REPL) cmdInfo() {
	fmt.Printf("Slot Info:\n")
	fmt.Printf("  Live:        %v\n", r.slot.Live())
	fmt.Printf("  Generation:  %d\n", r.slot.Generation())

	if r.retained.Generation() == 0 {
		fmt.Printf("  Retained:    (none)\n")

		return
	}

	fmt.Printf("  Retained:    generation %d, valid=%v\n", r.retained.Generation(), r.retained.Valid())
}
