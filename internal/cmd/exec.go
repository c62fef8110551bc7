package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/prog/internal/log"
)

// RunContext runs name with args in dir and returns the trimmed stderr as
// the error when it fails. A cancelled context is reported as ctx.Err().
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := run(ctx, dir, name, args, false)
	return err
}

// OutputContext is like RunContext but returns stdout.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	return run(ctx, dir, name, args, true)
}

// RunStreaming runs a command with its output attached to the given writers.
// Used for git clone so progress output reaches the terminal.
func RunStreaming(ctx context.Context, dir string, stdout, stderr io.Writer, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	c.Stdout = stdout
	c.Stderr = stderr
	err := c.Run()
	done(time.Since(start))
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

func run(ctx context.Context, dir, name string, args []string, capture bool) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	var stdout, stderr bytes.Buffer
	if capture {
		c.Stdout = &stdout
	}
	c.Stderr = &stderr

	err := c.Run()
	done(time.Since(start))

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.New(msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
