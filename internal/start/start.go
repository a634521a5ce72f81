// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package start supervises one archivist batch job: it runs the job,
// cancels it on SIGINT, and gives it a grace period to unwind before
// forcing a return.
package start

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// JobFunc is one archivist batch job: encode or decode a set of
// inputs under ctx, returning the first error encountered.
type JobFunc func(ctx context.Context) error

// Supervise runs job, listening for an interrupt signal. On interrupt
// it cancels job's context and waits up to gracePeriod for job to
// return before giving up and returning whatever error job produced
// (or nil, if none had been recorded yet).
func Supervise(ctx context.Context, gracePeriod time.Duration, job JobFunc) error {
	notify := make(chan os.Signal, 3)
	signal.Notify(notify, os.Interrupt)
	defer signal.Stop(notify)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	once := &sync.Once{}
	done := make(chan struct{})
	closeDone := func() { once.Do(func() { close(done) }) }

	var jobErr atomic.Value
	go func() {
		if err := job(ctx); err != nil {
			jobErr.Store(err)
		}
		closeDone()
	}()

	select {
	case <-notify:
	case <-done:
	}
	cancel()

	go func() {
		<-time.After(gracePeriod)
		closeDone()
	}()
	<-done

	if err, ok := jobErr.Load().(error); ok {
		return err
	}
	return nil
}

// RunAll fans out runs under one errgroup.Group: each run gets its own
// goroutine sharing a derived context, and the first error cancels the
// others' context promptly. This is how the encode/decode subcommands
// archive or restore more than one input file concurrently.
func RunAll(ctx context.Context, runs ...func(ctx context.Context) error) error {
	group, ctx := errgroup.WithContext(ctx)
	for _, run := range runs {
		run := run
		group.Go(func() error { return run(ctx) })
	}
	return group.Wait()
}
