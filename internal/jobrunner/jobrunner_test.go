package jobrunner

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/archio-dev/archio/internal/corefmt"
	"github.com/archio-dev/archio/internal/pipeline"
)

func makeGzipArchive(t *testing.T, dir, name, content string) string {
	t.Helper()
	src := filepath.Join(dir, name+".txt")
	if err := os.WriteFile(src, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	err := pipeline.Encode(pipeline.EncodeRequest{
		Chain:   corefmt.Chain{corefmt.Gzip},
		Sources: []string{src},
		Dest:    &buf,
	})
	if err != nil {
		t.Fatal(err)
	}

	archivePath := filepath.Join(dir, name+".txt.gz")
	if err := os.WriteFile(archivePath, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return archivePath
}

func TestRunDecodesJobsInParallel(t *testing.T) {
	dir := t.TempDir()
	destDir := t.TempDir()

	var jobs []Job
	for i, name := range []string{"one", "two", "three"} {
		archivePath := makeGzipArchive(t, dir, name, "content-"+name)
		jobs = append(jobs, Job{
			Label: name,
			Request: pipeline.DecodeRequest{
				Chain:      corefmt.Chain{corefmt.Gzip},
				SourcePath: archivePath,
				DestDir:    filepath.Join(destDir, name),
			},
		})
		_ = i
	}

	results, err := Run(jobs, 2)
	if err != nil {
		t.Fatalf("unexpected aggregate error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("job %s failed: %v", r.Label, r.Err)
		}
		if r.Summary.FilesUnpacked != 1 {
			t.Fatalf("job %s: expected 1 file, got %d", r.Label, r.Summary.FilesUnpacked)
		}
	}
}

func TestRunAggregatesFailures(t *testing.T) {
	jobs := []Job{
		{Label: "missing", Request: pipeline.DecodeRequest{
			Chain:      corefmt.Chain{corefmt.Gzip},
			SourcePath: "/nonexistent/path.gz",
			DestDir:    t.TempDir(),
		}},
	}

	_, err := Run(jobs, 1)
	if err == nil {
		t.Fatal("expected an aggregated error")
	}
}

func TestThreadsDefaultsToCPUCount(t *testing.T) {
	if Threads(0) <= 0 {
		t.Fatal("expected a positive default thread count")
	}
	if Threads(4) != 4 {
		t.Fatalf("expected explicit thread count to be honored, got %d", Threads(4))
	}
}
