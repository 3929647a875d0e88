// authcli is a demo and debugging tool for the authentication protocol.
// It builds a small authenticated tree, runs path lookups against an owning
// store, hands the produced disclosure tape over as a file, and replays the
// same lookup against a verifier built from that file.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/authds/authds/proving"
	"github.com/authds/authds/shared"
	"github.com/authds/authds/tapeio"
	"github.com/authds/authds/tree"
	"github.com/authds/authds/verifying"
)

var (
	tapePath string
	pathArg  string
	logLevel string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:           "authcli",
	Short:         "authenticated data structure demo tool",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "build the sample tree, run a lookup and write the disclosure tape",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		prover, err := proving.NewProver(proving.WithLogger(logger))
		if err != nil {
			return err
		}
		root, err := buildSample(prover)
		if err != nil {
			return err
		}
		path, err := parsePath(pathArg)
		if err != nil {
			return err
		}

		value, ok, err := tree.Lookup(prover, root, path)
		if err != nil {
			return fmt.Errorf("lookup failure: %w", err)
		}
		if !ok {
			fmt.Println("lookup: no value at path", pathArg)
		} else if verbose {
			fmt.Print("lookup: ", spew.Sdump(value))
		} else {
			fmt.Println("lookup:", value)
		}

		if tapePath != "" {
			if err := tapeio.Save(tapePath, prover.Tape()); err != nil {
				return err
			}
			fmt.Printf("wrote %v tape entries to %v\n", prover.Len(), tapePath)
		}
		printTape(prover.Tape())
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "replay a lookup against a verifier built from a tape file",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		tape, err := tapeio.Load(tapePath)
		if err != nil {
			return err
		}
		verifier, err := verifying.NewVerifier(tape, verifying.WithLogger(logger))
		if err != nil {
			return err
		}
		root, err := buildSample(verifier)
		if err != nil {
			return err
		}
		path, err := parsePath(pathArg)
		if err != nil {
			return err
		}

		value, ok, err := tree.Lookup(verifier, root, path)
		switch {
		case errors.Is(err, shared.ErrTapeExhausted):
			return fmt.Errorf("verification failure: tape truncated after %v entries: %w",
				verifier.Consumed(), err)
		case err != nil:
			var mismatch shared.CommitmentMismatchError
			if errors.As(err, &mismatch) {
				return fmt.Errorf("verification failure: %w", mismatch)
			}
			return err
		case !ok:
			fmt.Println("verified lookup: no value at path", pathArg)
		default:
			fmt.Println("verified lookup:", value)
		}
		fmt.Printf("consumed %v of %v tape entries\n", verifier.Consumed(), len(tape))
		return nil
	},
}

var tapeCmd = &cobra.Command{
	Use:   "tape",
	Short: "inspect the entries of a tape file",
	RunE: func(cmd *cobra.Command, args []string) error {
		tape, err := tapeio.Load(tapePath)
		if err != nil {
			return err
		}
		printTape(tape)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&tapePath, "tape", "tape.bin", "disclosure tape file path")
	rootCmd.PersistentFlags().StringVar(&pathArg, "path", "right,right", "lookup path, comma separated left/right steps")
	rootCmd.PersistentFlags().StringVar(&logLevel, "logLevel", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "dump looked up values verbosely")
	rootCmd.AddCommand(demoCmd, verifyCmd, tapeCmd)
}

// buildSample assembles the demo tree: the left child of the root is a leaf
// holding 1, the right child is a branch whose own children are leaves
// holding 3 and 2.
func buildSample(db shared.Database) (*tree.Tree[int], error) {
	inner, err := tree.NewBranch(db, tree.NewLeaf(3), tree.NewLeaf(2))
	if err != nil {
		return nil, err
	}
	return tree.NewBranch(db, tree.NewLeaf(1), inner)
}

func parsePath(s string) ([]tree.Direction, error) {
	if s == "" {
		return nil, nil
	}
	var path []tree.Direction
	for _, step := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(step)) {
		case "left", "l":
			path = append(path, tree.Left)
		case "right", "r":
			path = append(path, tree.Right)
		default:
			return nil, fmt.Errorf("invalid path step %q; expected: left or right", step)
		}
	}
	return path, nil
}

func newLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

func printTape(tape []string) {
	hasher := shared.DefaultHasher()
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Position", "Entry", "Commitment"})
	for i, entry := range tape {
		c := shared.Commitment(hasher.Digest([]byte(entry)))
		table.Append([]string{fmt.Sprint(i), entry, c.String()})
	}
	table.Render()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
