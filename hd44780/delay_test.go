// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDelayerFunc(t *testing.T) {
	var got []time.Duration
	f := DelayerFunc(func(d time.Duration) { got = append(got, d) })
	f.DelayMicroseconds(40)
	f.DelayMilliseconds(2)
	if diff := cmp.Diff(got, []time.Duration{40 * time.Microsecond, 2 * time.Millisecond}); diff != "" {
		t.Errorf("difference (-got +want):\n%s", diff)
	}
}

// Delays are minimums.
func TestDelayers(t *testing.T) {
	for name, d := range map[string]Delayer{"Sleep": Sleep{}, "Spin": Spin{}, "Yield": Yield{}} {
		start := time.Now()
		d.DelayMicroseconds(200)
		if e := time.Since(start); e < 200*time.Microsecond {
			t.Errorf("%s.DelayMicroseconds(200) took %s", name, e)
		}
		start = time.Now()
		d.DelayMilliseconds(1)
		if e := time.Since(start); e < time.Millisecond {
			t.Errorf("%s.DelayMilliseconds(1) took %s", name, e)
		}
	}
}
