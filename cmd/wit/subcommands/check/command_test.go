package check_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	apierr "github.com/golemcloud/witkit-api-types/errors"
	"github.com/golemcloud/witkit-api-types/exports"
	"github.com/golemcloud/witkit-api-types/types"
	"github.com/golemcloud/witkit-api-types/values"
	"github.com/golemcloud/witkit/cmd/wit/metadata"
	"github.com/golemcloud/witkit/cmd/wit/subcommands/check"
	"github.com/golemcloud/witkit/cmd/wit/subcommands/common"
	"github.com/golemcloud/witkit/cmd/wit/subcommands/internal/commandline"
	"github.com/golemcloud/witkit/cmd/wit/subcommands/logger"
	"github.com/youta-t/flarc"
)

func sampleMetadata() exports.Metadata {
	return exports.Metadata{
		Exports: []exports.Export{
			exports.Function{
				Name: "set-limit",
				Parameters: []types.Field{
					{Name: "limit", Type: types.U8{}},
				},
			},
		},
	}
}

func TestCheckTask(t *testing.T) {
	type When struct {
		function string
		doc      values.Value
		docErr   error
		loadErr  error
	}
	type Then struct {
		stdout    string
		err       error
		violation bool
		errText   string
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			load := func(path string) (exports.Metadata, error) {
				if path != "./metadata.yaml" {
					t.Errorf("unexpected path: %s", path)
				}
				return sampleMetadata(), when.loadErr
			}
			loadDocument := func(path string) (values.Value, error) {
				if path != "./args.yaml" {
					t.Errorf("unexpected path: %s", path)
				}
				return when.doc, when.docErr
			}
			testee := check.Task(load, loadDocument)

			stdout := bytes.Buffer{}
			err := testee(
				context.Background(),
				logger.Null(),
				common.CommonFlags{Format: "yaml"},
				commandline.MockCommandline[check.Flag]{
					Fullname_: "wit check",
					Stdout_:   &stdout,
					Stderr_:   io.Discard,
					Flags_:    check.Flag{},
					Args_: map[string][]string{
						check.ARG_METADATA:  {"./metadata.yaml"},
						check.ARG_FUNCTION:  {when.function},
						check.ARG_ARGUMENTS: {"./args.yaml"},
					},
				},
				[]any{},
			)

			if then.violation {
				em := &apierr.ErrorMessage{}
				if !errors.As(err, &em) {
					t.Errorf("error should be a violation, but: %v", err)
				}
			} else if then.errText != "" {
				if err == nil || !strings.Contains(err.Error(), then.errText) {
					t.Errorf("error %v should contain %q", err, then.errText)
				}
			} else if then.err == nil {
				if err != nil {
					t.Fatal(err)
				}
			} else if !errors.Is(err, then.err) {
				t.Errorf("unexpected error: %v", err)
			}

			if stdout.String() != then.stdout {
				t.Errorf(
					"unmatch:\n===actual===\n%s\n===expected===\n%s",
					stdout.String(), then.stdout,
				)
			}
		}
	}

	t.Run("well-typed arguments get OK", theory(
		When{
			function: "set-limit",
			doc:      values.Array{values.Number("100")},
		},
		Then{stdout: "OK\n"},
	))

	t.Run("the first violation is printed verbatim", theory(
		When{
			function: "set-limit",
			doc:      values.Array{values.Number("300")},
		},
		Then{
			stdout:    "limit: value 300 is not within the range of 0 to 255\n",
			violation: true,
		},
	))

	t.Run("too many arguments are a violation", theory(
		When{
			function: "set-limit",
			doc:      values.Array{values.Number("1"), values.Number("2")},
		},
		Then{
			stdout:    "expected 1 arguments, but found 2\n",
			violation: true,
		},
	))

	t.Run("non-array documents are rejected", theory(
		When{
			function: "set-limit",
			doc:      values.Object{},
		},
		Then{stdout: "", errText: "arguments should be an array"},
	))

	t.Run("unknown functions are usage errors", theory(
		When{
			function: "no-such-fn",
			doc:      values.Array{},
		},
		Then{stdout: "", err: flarc.ErrUsage},
	))

	{
		expectedError := errors.New("fake error")
		t.Run("when loading metadata fails, it returns the error", theory(
			When{function: "set-limit", loadErr: expectedError},
			Then{stdout: "", err: expectedError},
		))
		t.Run("when loading arguments fails, it returns the error", theory(
			When{function: "set-limit", docErr: expectedError},
			Then{stdout: "", err: expectedError},
		))
	}
}

func TestCheckTask_watch(t *testing.T) {
	newMock := func(stdout io.Writer, metadataPath, argumentsPath string) commandline.MockCommandline[check.Flag] {
		return commandline.MockCommandline[check.Flag]{
			Fullname_: "wit check",
			Stdout_:   stdout,
			Stderr_:   io.Discard,
			Flags_:    check.Flag{Watch: true},
			Args_: map[string][]string{
				check.ARG_METADATA:  {metadataPath},
				check.ARG_FUNCTION:  {"set-limit"},
				check.ARG_ARGUMENTS: {argumentsPath},
			},
		}
	}

	// the watcher is real even when the loaders are fakes, so the
	// watched paths have to exist.
	touchTargets := func(t *testing.T) (metadataPath, argumentsPath string) {
		dir := t.TempDir()
		metadataPath = filepath.Join(dir, "metadata.yaml")
		argumentsPath = filepath.Join(dir, "args.yaml")
		for _, p := range []string{metadataPath, argumentsPath} {
			if err := os.WriteFile(p, []byte("{}\n"), 0o644); err != nil {
				t.Fatal(err)
			}
		}
		return
	}

	// an already-interrupted context lets a single pass run and then
	// stops the loop, deterministically.
	t.Run("it stops silently when interrupted", func(t *testing.T) {
		metadataPath, argumentsPath := touchTargets(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		load := func(string) (exports.Metadata, error) { return sampleMetadata(), nil }
		loadDocument := func(string) (values.Value, error) {
			return values.Array{values.Number("100")}, nil
		}
		testee := check.Task(load, loadDocument)

		stdout := bytes.Buffer{}
		err := testee(
			ctx, logger.Null(), common.CommonFlags{},
			newMock(&stdout, metadataPath, argumentsPath),
			[]any{},
		)
		if err != nil {
			t.Fatal(err)
		}
		if stdout.String() != "OK\n" {
			t.Errorf("stdout should have a single OK, but: %q", stdout.String())
		}
	})

	t.Run("violations do not stop watching", func(t *testing.T) {
		metadataPath, argumentsPath := touchTargets(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		load := func(string) (exports.Metadata, error) { return sampleMetadata(), nil }
		loadDocument := func(string) (values.Value, error) {
			return values.Array{values.Number("300")}, nil
		}
		testee := check.Task(load, loadDocument)

		stdout := bytes.Buffer{}
		err := testee(
			ctx, logger.Null(), common.CommonFlags{},
			newMock(&stdout, metadataPath, argumentsPath),
			[]any{},
		)
		if err != nil {
			t.Fatal(err) // watch mode reports violations, not fails on them
		}
		expected := "limit: value 300 is not within the range of 0 to 255\n"
		if stdout.String() != expected {
			t.Errorf(
				"unmatch:\n===actual===\n%s\n===expected===\n%s",
				stdout.String(), expected,
			)
		}
	})

	t.Run("broken files are logged, not fatal", func(t *testing.T) {
		metadataPath, argumentsPath := touchTargets(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		expectedError := errors.New("fake error")
		load := func(string) (exports.Metadata, error) {
			return exports.Metadata{}, expectedError
		}
		loadDocument := func(string) (values.Value, error) {
			return values.Null{}, nil
		}
		testee := check.Task(load, loadDocument)

		stdout := bytes.Buffer{}
		logbuf := bytes.Buffer{}
		err := testee(
			ctx, log.New(&logbuf, "", log.LstdFlags), common.CommonFlags{},
			newMock(&stdout, metadataPath, argumentsPath),
			[]any{},
		)
		if err != nil {
			t.Fatal(err)
		}
		if stdout.String() != "" {
			t.Errorf("stdout should be quiet, but: %q", stdout.String())
		}
		if !strings.Contains(logbuf.String(), expectedError.Error()) {
			t.Errorf("the cause should be logged, but: %q", logbuf.String())
		}
	})

	t.Run("it re-checks when the argument document changes", func(t *testing.T) {
		dir := t.TempDir()
		metadataPath := filepath.Join(dir, "metadata.yaml")
		argumentsPath := filepath.Join(dir, "args.yaml")

		if err := os.WriteFile(metadataPath, []byte(`
exports:
  - type: Function
    name: set-limit
    parameters:
      - name: limit
        typ: { type: U8 }
    results: []
`), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(argumentsPath, []byte("- 100\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		testee := check.Task(metadata.Load, metadata.LoadDocument)
		stdout := &syncBuffer{}
		done := make(chan error, 1)
		go func() {
			done <- testee(
				ctx, logger.Null(), common.CommonFlags{},
				newMock(stdout, metadataPath, argumentsPath),
				[]any{},
			)
		}()

		awaitOKs(t, stdout, 1)

		if err := os.WriteFile(argumentsPath, []byte("- 42\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		awaitOKs(t, stdout, 2)

		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Fatal(err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("the task does not stop on interrupt")
		}
	})
}

// awaitOKs waits until stdout holds at least n "OK" lines. A single
// file update can be delivered as several fsnotify events, so the pass
// count is a floor, not an exact number.
func awaitOKs(t *testing.T, stdout *syncBuffer, n int) {
	t.Helper()

	deadline := time.Now().Add(10 * time.Second)
	if dl, ok := t.Deadline(); ok && dl.Add(-1*time.Second).Before(deadline) {
		deadline = dl.Add(-1 * time.Second)
	}

	for {
		if n <= strings.Count(stdout.String(), "OK\n") {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("timeout: %d OKs expected, but stdout is %q", n, stdout.String())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
