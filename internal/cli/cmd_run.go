package cli

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// NewRunCommand returns the "slotctl run" command.
func NewRunCommand() *Command {
	flags := flag.NewFlagSet("run", flag.ContinueOnError)
	output := flags.StringP("output", "o", "", "write the report to this path (atomic rename)")

	return &Command{
		Flags: flags,
		Usage: "run [flags] <scenario-file>",
		Short: "Execute a scenario file against a fresh slot",
		Long: "Execute a scripted construct/destroy/expect sequence from a JSONC\n" +
			"scenario file against a fresh slot and report per-step outcomes.\n" +
			"With --output, the report is also written to disk atomically; a\n" +
			"sibling .lock file serializes concurrent runs against the same path.",
		Exec: func(o *IO, args []string) error {
			if len(args) < 1 {
				return errors.New("missing scenario file path")
			}

			scenario, err := LoadScenario(args[0])
			if err != nil {
				return err
			}

			result := RunScenario(scenario)

			if *output != "" {
				lock, lockErr := acquireReportLock(*output, LockTimeout)
				if lockErr != nil {
					return fmt.Errorf("acquiring report lock: %w", lockErr)
				}
				defer lock.release()

				writeErr := WriteReport(*output, result)
				if writeErr != nil {
					return writeErr
				}
			}

			o.Printf("%s", FormatReport(result))

			if !result.Passed() {
				return fmt.Errorf("scenario %q failed: %d of %d steps", scenario.Name, result.Failed, len(result.Steps))
			}

			return nil
		},
	}
}
