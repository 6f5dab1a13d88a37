package logreader

import (
	stderrors "errors"

	"github.com/palchukovsky/logreader/pkg/errors"
	"github.com/palchukovsky/logreader/pkg/logging"
	"github.com/palchukovsky/logreader/pkg/reader"
	"github.com/palchukovsky/logreader/pkg/ui"
	"github.com/spf13/cobra"
)

// reportedError marks an error whose message has already been printed
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already shown to the user
func IsReported(err error) bool {
	var reported *reportedError
	return stderrors.As(err, &reported)
}

func printUsage(cmd *cobra.Command, opts *options) {
	_ = opts.printer.Print(cmd.UsageString())
}

// reportFlagError prints a flag parsing failure and the usage. Flags are
// parsed before setup, so the printer may not exist yet.
func reportFlagError(cmd *cobra.Command, opts *options, err error) error {
	printer := opts.printer
	if printer == nil {
		printer = ui.NewPrinter(cmd.OutOrStdout(), ui.FormatAuto)
	}
	_ = printer.Errorf(MsgFlagError, err)
	if !cmd.HasParent() {
		_ = printer.Print(MsgFlagDashTip + "\n")
	}
	_ = printer.Print(cmd.UsageString())
	return &reportedError{err: errors.Wrap(err, errors.ErrUsage, "invalid flags")}
}

// runFilter opens the file, installs the mask and copies matching lines to
// the command output
func runFilter(cmd *cobra.Command, opts *options, args []string) error {
	logger := logging.GetLogger("cmd.filter")

	if len(args) != 2 {
		printUsage(cmd, opts)
		return &reportedError{err: errors.Newf(errors.ErrUsage, "expected 2 arguments, got %d", len(args))}
	}
	mask, path := args[0], args[1]

	rd := reader.New(reader.WithMaxRules(opts.cfg.Mask.MaxRules))
	if err := rd.Open(path); err != nil {
		logger.Debug().Err(err).Msg("Open failed")
		_ = opts.printer.Errorf(MsgFailedOpen, opts.printer.Subject("Path", path))
		return &reportedError{err: err}
	}
	defer func() {
		if err := rd.Close(); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Failed to close file")
		}
	}()

	if err := rd.SetFilter(&mask); err != nil {
		logger.Debug().Err(err).Msg("Mask compilation failed")
		_ = opts.printer.Errorf(MsgFailedParse, opts.printer.Subject("Mask", mask))
		printUsage(cmd, opts)
		return &reportedError{err: err}
	}

	stats, err := rd.Copy(cmd.OutOrStdout(), opts.cfg.Reader.BufferSize)
	if err != nil {
		return err
	}
	logger.Debug().
		Int("scanned", stats.Scanned).
		Int("matched", stats.Matched).
		Int("truncated", stats.Truncated).
		Msg("Filter finished")
	return nil
}
