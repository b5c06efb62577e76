package lifecycle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/aspiredu/pkg/lifecycle"
)

type checker struct {
	ready atomic.Bool
}

func (c *checker) Ready() bool { return c.ready.Load() }

func TestReadyAfterStartup(t *testing.T) {
	lc := lifecycle.New()
	if lc.Ready() {
		t.Error("should not be ready before WaitForStartup")
	}

	lc.WaitForStartup()

	if !lc.Ready() {
		t.Error("should be ready after WaitForStartup")
	}
}

func TestReadyRequiresCheckers(t *testing.T) {
	lc := lifecycle.New()
	db := &checker{}
	lc.Require(db)
	lc.WaitForStartup()

	if lc.Ready() {
		t.Error("should not be ready while a required subsystem is not")
	}

	db.ready.Store(true)
	if !lc.Ready() {
		t.Error("should be ready once every required subsystem is")
	}
}

func TestStartupHooksExecute(t *testing.T) {
	lc := lifecycle.New()

	var count atomic.Int32
	for range 3 {
		lc.OnStartup(func() {
			count.Add(1)
		})
	}

	lc.WaitForStartup()

	if got := count.Load(); got != 3 {
		t.Errorf("startup hooks: got %d, want 3", got)
	}
}

func TestShutdownHooksExecute(t *testing.T) {
	lc := lifecycle.New()

	var cleaned atomic.Bool
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		cleaned.Store(true)
	})

	lc.WaitForStartup()

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	if !cleaned.Load() {
		t.Error("shutdown hook did not execute")
	}
}

func TestShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()

	release := make(chan struct{})
	defer close(release)

	lc.OnShutdown(func() {
		<-release
	})

	if err := lc.Shutdown(10 * time.Millisecond); err == nil {
		t.Error("expected timeout error")
	}
}
