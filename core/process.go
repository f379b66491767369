package core

import (
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// HealthPath is the endpoint polled for readiness; any status below 500
	// means the server is up and serving the shell route.
	HealthPath = "/ws/"

	readyPollInterval = 500 * time.Millisecond
	stopGracePeriod   = 10 * time.Second
)

type ProcessOpts struct {
	Command       []string // e.g. {"go", "run", "./cmd/wisdom"}
	Dir           string   // working directory of the subprocess
	Port          int
	WorkspaceRoot string
	ExtraEnv      []string
}

// AppProcess is the application-under-test subprocess. It is created once
// per run and must be stopped exactly once, on every exit path.
type AppProcess struct {
	cmd  *exec.Cmd
	done chan struct{}
	stop sync.Once
}

// StartApp launches the application with dev mode, the bound port and the
// workspace root injected through the environment. Stdout and stderr are
// merged into the run's debug log.
func StartApp(opts ProcessOpts) (*AppProcess, error) {
	if len(opts.Command) == 0 {
		return nil, fmt.Errorf("empty application command")
	}

	cmd := exec.Command(opts.Command[0], opts.Command[1:]...)
	cmd.Dir = opts.Dir
	cmd.Env = append(os.Environ(),
		"WISDOM_DEV=1",
		fmt.Sprintf("WISDOM_PORT=%d", opts.Port),
		"WISDOM_WORKSPACE_ROOT="+opts.WorkspaceRoot,
	)
	cmd.Env = append(cmd.Env, opts.ExtraEnv...)

	out := logrus.StandardLogger().WriterLevel(logrus.DebugLevel)
	cmd.Stdout = out
	cmd.Stderr = out

	logrus.Infof("Starting application: %v (port %d)", opts.Command, opts.Port)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("cannot start application: %v", err)
	}

	p := &AppProcess{cmd: cmd, done: make(chan struct{})}
	go func() {
		_ = cmd.Wait()
		close(p.done)
	}()
	return p, nil
}

// AwaitReady polls the health endpoint until the application answers with a
// status in [200, 500). Connection failures are swallowed and retried.
func AwaitReady(baseURL string, timeout time.Duration) error {
	target := baseURL + HealthPath
	client := &http.Client{Timeout: time.Second}

	err := PollUntil(func() (bool, error) {
		resp, err := client.Get(target)
		if err != nil {
			return false, nil
		}
		resp.Body.Close()
		return resp.StatusCode >= 200 && resp.StatusCode < 500, nil
	}, readyPollInterval, timeout)

	if err != nil {
		return fmt.Errorf("%w: %s", ErrReadinessTimeout, target)
	}
	logrus.Debug("Application ready at ", target)
	return nil
}

// Stop terminates the subprocess: no-op if it already exited, graceful
// termination first, forced kill after the grace period. Safe to call more
// than once; meant to run from the outermost deferred cleanup of a run.
func (p *AppProcess) Stop() {
	if p == nil {
		return
	}
	p.stop.Do(func() {
		select {
		case <-p.done:
			return
		default:
		}

		logrus.Debug("Stopping application")
		if err := p.cmd.Process.Signal(syscall.SIGTERM); err != nil {
			logrus.Warnf("Cannot signal application: %v", err)
		}

		select {
		case <-p.done:
		case <-time.After(stopGracePeriod):
			logrus.Warn("Application did not exit, killing")
			_ = p.cmd.Process.Kill()
			<-p.done
		}
	})
}

// Exited reports whether the subprocess has terminated.
func (p *AppProcess) Exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}
