package corepolicy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfirmAlwaysYesAlwaysNo(t *testing.T) {
	yes := &Engine{Policy: AlwaysYes}
	if ok, err := yes.Confirm("delete", "foo"); !ok || err != nil {
		t.Fatalf("AlwaysYes should short-circuit true, got %v %v", ok, err)
	}

	no := &Engine{Policy: AlwaysNo}
	if ok, err := no.Confirm("delete", "foo"); ok || err != nil {
		t.Fatalf("AlwaysNo should short-circuit false, got %v %v", ok, err)
	}
}

func TestResolveConflictAlwaysPolicies(t *testing.T) {
	yes := &Engine{Policy: AlwaysYes}
	if r, err := yes.ResolveConflict("foo.tar.gz"); r != Overwrite || err != nil {
		t.Fatalf("AlwaysYes should overwrite, got %v %v", r, err)
	}

	no := &Engine{Policy: AlwaysNo}
	if r, err := no.ResolveConflict("foo.tar.gz"); r != Cancel || err != nil {
		t.Fatalf("AlwaysNo should cancel, got %v %v", r, err)
	}
}

func TestRenamePathAppendsToFullStem(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "archive.tar.gz")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := RenamePath(target)
	want := filepath.Join(dir, "archive_1.tar.gz")
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRenamePathProbesUntilFree(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "out.zip")
	for _, name := range []string{"out.zip", "out_1.zip", "out_2.zip"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got := RenamePath(base)
	want := filepath.Join(dir, "out_3.zip")
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestCreateOrResolveFreshPathSucceeds(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "fresh.txt")

	e := &Engine{Policy: AlwaysYes}
	w, final, err := e.CreateOrResolve(target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()
	if final != target {
		t.Fatalf("got final path %q want %q", final, target)
	}
}

func TestCreateOrResolveAlwaysYesOverwrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "exists.txt")
	if err := os.WriteFile(target, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := &Engine{Policy: AlwaysYes}
	w, final, err := e.CreateOrResolve(target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()
	if final != target {
		t.Fatalf("expected overwrite at same path, got %q", final)
	}
}

func TestParseYesNoAnswerRecognizesDefaultAndExplicitAnswers(t *testing.T) {
	cases := []struct {
		line      string
		wantYes   bool
		wantRecog bool
	}{
		{"\n", true, true},
		{"", true, true},
		{"y\n", true, true},
		{"Yes\n", true, true},
		{"n\n", false, true},
		{"NO\n", false, true},
		{"r\n", false, false},
		{"maybe\n", false, false},
	}
	for _, tc := range cases {
		gotYes, gotRecog := parseYesNoAnswer(tc.line)
		if gotYes != tc.wantYes || gotRecog != tc.wantRecog {
			t.Errorf("parseYesNoAnswer(%q) = (%v, %v), want (%v, %v)", tc.line, gotYes, gotRecog, tc.wantYes, tc.wantRecog)
		}
	}
}

func TestParseConflictAnswerRecognizesAllThreeChoices(t *testing.T) {
	cases := []struct {
		line      string
		want      Resolution
		wantRecog bool
	}{
		{"\n", Overwrite, true},
		{"y\n", Overwrite, true},
		{"n\n", Cancel, true},
		{"r\n", Rename, true},
		{"rename\n", Rename, true},
		{"RENAME\n", Rename, true},
		{"maybe\n", Cancel, false},
	}
	for _, tc := range cases {
		got, gotRecog := parseConflictAnswer(tc.line)
		if got != tc.want || gotRecog != tc.wantRecog {
			t.Errorf("parseConflictAnswer(%q) = (%v, %v), want (%v, %v)", tc.line, got, gotRecog, tc.want, tc.wantRecog)
		}
	}
}

func TestCreateOrResolveAlwaysNoCancels(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "exists.txt")
	if err := os.WriteFile(target, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := &Engine{Policy: AlwaysNo}
	w, final, err := e.CreateOrResolve(target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != nil || final != "" {
		t.Fatalf("expected cancellation, got writer=%v final=%q", w, final)
	}
}
