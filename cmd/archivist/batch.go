// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"time"

	"github.com/solidcoredata/archivist/internal/start"
)

// gracePeriod bounds how long a batch job gets to unwind after an
// interrupt before start.Supervise gives up on it.
const gracePeriod = 5 * time.Second

// runBounded runs jobs under start.RunAll, admitting at most
// concurrency of them at once via a semaphore so a large batch doesn't
// open every input file simultaneously.
func runBounded(ctx context.Context, concurrency int, jobs []func(context.Context) error) error {
	if concurrency < 1 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)
	bounded := make([]func(context.Context) error, len(jobs))
	for i, job := range jobs {
		job := job
		bounded[i] = func(ctx context.Context) error {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			defer func() { <-sem }()
			return job(ctx)
		}
	}
	return start.RunAll(ctx, bounded...)
}
