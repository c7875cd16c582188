package predictor

import (
	"errors"
	"testing"
	"time"
)

func collect(l *Loader) ([]int, Outcome) {
	l.Start()
	var milestones []int
	for p := range l.Progress() {
		milestones = append(milestones, p)
	}
	return milestones, <-l.Outcome()
}

func TestLoader_Success(t *testing.T) {
	pipeline := &Pipeline{}
	l := newLoaderWithBuild(func() (*Pipeline, error) {
		return pipeline, nil
	}, 0, nil)

	milestones, out := collect(l)

	want := []int{10, 30, 80, 100}
	if len(milestones) != len(want) {
		t.Fatalf("progress = %v, want %v", milestones, want)
	}
	for i, m := range want {
		if milestones[i] != m {
			t.Errorf("progress[%d] = %d, want %d", i, milestones[i], m)
		}
	}
	if out.Err != nil {
		t.Fatalf("outcome error = %v, want nil", out.Err)
	}
	if out.Pipeline != pipeline {
		t.Error("outcome does not carry the constructed pipeline")
	}
}

func TestLoader_ProgressMonotone(t *testing.T) {
	l := newLoaderWithBuild(func() (*Pipeline, error) {
		return &Pipeline{}, nil
	}, 0, nil)

	milestones, _ := collect(l)
	for i := 1; i < len(milestones); i++ {
		if milestones[i] < milestones[i-1] {
			t.Fatalf("progress decreased: %v", milestones)
		}
	}
}

func TestLoader_Failure(t *testing.T) {
	loadErr := errors.New("model file not found")
	l := newLoaderWithBuild(func() (*Pipeline, error) {
		return nil, loadErr
	}, 0, nil)

	milestones, out := collect(l)

	// No progress after the failure point.
	want := []int{10, 30}
	if len(milestones) != len(want) {
		t.Fatalf("progress = %v, want %v", milestones, want)
	}
	if !errors.Is(out.Err, loadErr) {
		t.Fatalf("outcome error = %v, want %v", out.Err, loadErr)
	}
	if out.Pipeline != nil {
		t.Error("failure outcome must not carry a pipeline")
	}
}

func TestLoader_ExactlyOneOutcome(t *testing.T) {
	l := newLoaderWithBuild(func() (*Pipeline, error) {
		return &Pipeline{}, nil
	}, 0, nil)

	// Repeated Start calls must not spawn a second load.
	l.Start()
	l.Start()

	for range l.Progress() {
	}
	<-l.Outcome()

	select {
	case out := <-l.Outcome():
		t.Fatalf("received a second outcome: %+v", out)
	case <-time.After(50 * time.Millisecond):
	}
}
