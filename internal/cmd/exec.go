package cmd

import (
	"context"
	"errors"
	"io"
	"strings"

	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

func expandCommand(command, path string) string {
	return strings.ReplaceAll(command, "{}", path)
}

// runCommand interprets command in-process, so the hook behaves the same on
// every platform. A non-zero exit status is returned, not treated as an error.
func runCommand(ctx context.Context, command, dir string, stdout, stderr io.Writer) (int, error) {
	file, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return -1, err
	}

	runner, err := interp.New(interp.Dir(dir), interp.StdIO(nil, stdout, stderr))
	if err != nil {
		return -1, err
	}

	err = runner.Run(ctx, file)
	if err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			return int(status), nil
		}

		return -1, err
	}

	return 0, nil
}

var (
	errExecFailed  = errors.New("exec command failed")
	errTooManyArgs = errors.New("at most one filename is accepted")
)
