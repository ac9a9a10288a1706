//go:build e2e

package parallel

import (
	"testing"
	"time"
)

const pause = time.Second

func TestCart_First(t *testing.T) {
	t.Parallel()
	time.Sleep(pause)
}

func TestCart_Second(t *testing.T) {
	t.Parallel()
	time.Sleep(pause)
}

func TestCart_Third(t *testing.T) {
	t.Parallel()
	time.Sleep(pause)
}
