package commands

import (
	"errors"
	"testing"

	"todo/internal/service"
	"todo/internal/testutil"
)

func TestParseTaskRef(t *testing.T) {
	ref, rest, err := ParseTaskRef([]string{"2", "new", "text"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != "2" || len(rest) != 2 {
		t.Errorf("expected ref 2 and two remaining args, got %q %v", ref, rest)
	}
}

func TestParseTaskRef_Missing(t *testing.T) {
	for _, args := range [][]string{nil, {}, {"  "}} {
		if _, _, err := ParseTaskRef(args); !errors.Is(err, ErrTaskRefRequired) {
			t.Errorf("%v: expected ErrTaskRefRequired, got %v", args, err)
		}
	}
}

func refStore() *testutil.FakeService {
	return testutil.NewFakeService(
		testutil.Task("abcd1111", "one", false),
		testutil.Task("abcd2222", "two", true),
		testutil.Task("ffff0000", "three", false),
	)
}

func TestResolveTask_Number(t *testing.T) {
	svc := refStore()
	task, err := ResolveTask(svc, "2")
	if err != nil || task.ID != "abcd2222" {
		t.Errorf("expected abcd2222, got %+v err=%v", task, err)
	}
}

func TestResolveTask_NumberUsesFilter(t *testing.T) {
	svc := refStore()
	svc.SetFilter(service.FilterActive)
	task, err := ResolveTask(svc, "2")
	if err != nil || task.ID != "ffff0000" {
		t.Errorf("expected second active task, got %+v err=%v", task, err)
	}
}

func TestResolveTask_NumberOutOfRange(t *testing.T) {
	svc := refStore()
	for _, ref := range []string{"0", "4", "99999999999999999999"} {
		if _, err := ResolveTask(svc, ref); !errors.Is(err, ErrNotFound) {
			t.Errorf("%s: expected ErrNotFound, got %v", ref, err)
		}
	}
}

func TestResolveTask_ID(t *testing.T) {
	svc := refStore()
	task, err := ResolveTask(svc, "ffff0000")
	if err != nil || task.Text != "three" {
		t.Errorf("expected exact id match, got %+v err=%v", task, err)
	}
}

func TestResolveTask_Prefix(t *testing.T) {
	svc := refStore()
	task, err := ResolveTask(svc, "ffff")
	if err != nil || task.ID != "ffff0000" {
		t.Errorf("expected prefix match, got %+v err=%v", task, err)
	}

	if _, err := ResolveTask(svc, "abcd"); !errors.Is(err, ErrAmbiguous) {
		t.Errorf("expected ErrAmbiguous, got %v", err)
	}
	if _, err := ResolveTask(svc, "fff"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected short prefix to be rejected, got %v", err)
	}
	if _, err := ResolveTask(svc, "zzzz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
