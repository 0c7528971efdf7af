package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrison/trname/internal/filelock"
	"github.com/harrison/trname/internal/logger"
	"github.com/harrison/trname/internal/models"
	"github.com/harrison/trname/internal/walker"
)

func TestRunRequiresTarget(t *testing.T) {
	if _, err := execute(t); err == nil {
		t.Error("expected an error without a target directory")
	}
}

func TestRunInvalidTarget(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "file.txt")
	writeTestFile(t, file)

	tests := []struct {
		name   string
		target string
	}{
		{"missing", filepath.Join(tmpDir, "missing")},
		{"not a directory", file},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.target)
			if !errors.Is(err, walker.ErrNotDirectory) {
				t.Errorf("expected ErrNotDirectory, got %v", err)
			}
		})
	}
}

func TestRunRenamesAndPrintsSummary(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "Şarkı Sözü.txt"))
	writeTestFile(t, filepath.Join(root, "Klasör", "Öğe.txt"))

	output, err := execute(t, "-s", "-u", "-d", root)
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}

	for _, want := range []string{"Sarki_Sozu.txt", "Klasor", filepath.Join("Klasor", "Oge.txt")} {
		if !exists(filepath.Join(root, want)) {
			t.Errorf("expected %s to exist", want)
		}
	}
	if !strings.Contains(output, "=== Rename Summary ===") {
		t.Errorf("summary missing from output: %s", output)
	}
	if !strings.Contains(output, "Renamed: 3") {
		t.Errorf("expected 3 renames in summary, got: %s", output)
	}
	if strings.Contains(output, "[RENAME]") {
		t.Errorf("renames should not be logged at default verbosity, got: %s", output)
	}
}

func TestRunDryRun(t *testing.T) {
	root := t.TempDir()
	original := filepath.Join(root, "Güneş.txt")
	writeTestFile(t, original)

	output, err := execute(t, "-D", "-v", root)
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}

	if !exists(original) || exists(filepath.Join(root, "Gunes.txt")) {
		t.Error("dry run must not rename")
	}
	if !strings.Contains(output, "[DRY-RUN] FILE") {
		t.Errorf("expected a dry-run line at -v, got: %s", output)
	}
	if !strings.Contains(output, "Would rename: 1") {
		t.Errorf("expected dry-run summary, got: %s", output)
	}
}

func TestRunVerbosityIsClamped(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "clean.txt"))

	output, err := execute(t, "-vvv", root)
	if err != nil {
		t.Fatalf("-vvv should be accepted, got %v", err)
	}
	if !strings.Contains(output, "(no changes)") {
		t.Errorf("expected debug output at maximum verbosity, got: %s", output)
	}
}

func TestRunExtensionsFlag(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "Ağ.txt"))
	writeTestFile(t, filepath.Join(root, "Göl.JPG"))
	writeTestFile(t, filepath.Join(root, "Dağ.png"))

	if _, err := execute(t, "-e", "txt", "-e", ".jpg", root); err != nil {
		t.Fatalf("run returned error: %v", err)
	}

	if !exists(filepath.Join(root, "Ag.txt")) {
		t.Error("Ağ.txt should be renamed")
	}
	if !exists(filepath.Join(root, "Gol.JPG")) {
		t.Error("Göl.JPG should be renamed")
	}
	if !exists(filepath.Join(root, "Dağ.png")) {
		t.Error("Dağ.png should be left alone")
	}
}

func TestRunNoAsciify(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "Çok  Güzel.txt"))

	if _, err := execute(t, "-n", "-s", root); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if !exists(filepath.Join(root, "Çok Güzel.txt")) {
		t.Error("expected only whitespace to be collapsed")
	}
}

func TestRunConfigProfile(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "Yeni Dosya.TXT"))

	profile := filepath.Join(t.TempDir(), "profile.yaml")
	content := "underscore: true\nlowercase: true\ndry_run: true\n"
	if err := os.WriteFile(profile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write profile: %v", err)
	}

	// profile asks for a dry run
	if _, err := execute(t, "--config", profile, root); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if !exists(filepath.Join(root, "Yeni Dosya.TXT")) {
		t.Fatal("profile dry_run should prevent renaming")
	}

	// an explicit flag wins over the profile
	if _, err := execute(t, "--config", profile, "--dry-run=false", root); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if !exists(filepath.Join(root, "yeni_dosya.txt")) {
		t.Error("expected profile options to be applied once dry run is overridden")
	}
}

func TestRunConfigErrors(t *testing.T) {
	root := t.TempDir()

	_, err := execute(t, "--config", filepath.Join(root, "missing.yaml"), root)
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("expected missing config error, got %v", err)
	}

	_, err = execute(t, "--log-level", "loud", root)
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("expected invalid configuration error, got %v", err)
	}
}

func TestRunRefusesLockedTree(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "Ş.txt"))

	lock, err := filelock.AcquireTreeLock(root)
	if err != nil {
		t.Fatalf("failed to take lock: %v", err)
	}
	defer lock.Release()

	_, err = execute(t, root)
	if !errors.Is(err, filelock.ErrLocked) {
		t.Errorf("expected ErrLocked, got %v", err)
	}
	if !exists(filepath.Join(root, "Ş.txt")) {
		t.Error("locked tree must not be touched")
	}
}

func TestRunWritesLogFile(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "Işık.txt"))
	logDir := filepath.Join(t.TempDir(), "logs")

	if _, err := execute(t, "-v", "--log-dir", logDir, root); err != nil {
		t.Fatalf("run returned error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(logDir, logger.LatestLogName))
	if err != nil {
		t.Fatalf("expected a run log behind latest.log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "[RENAME] FILE") || !strings.Contains(content, "Isik.txt") {
		t.Errorf("run log should record the rename, got:\n%s", content)
	}
	if !strings.Contains(content, "Renamed: 1") {
		t.Errorf("run log should contain the summary, got:\n%s", content)
	}
}

func TestRunRejectsLogDirInsideTarget(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "Ş.txt"))

	_, err := execute(t, "--log-dir", filepath.Join(root, "logs"), root)
	if err == nil || !strings.Contains(err.Error(), "must be outside the target") {
		t.Errorf("expected log directory error, got %v", err)
	}
	if !exists(filepath.Join(root, "Ş.txt")) {
		t.Error("tree must not be touched when the log directory is rejected")
	}
}

func TestIsWithin(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "data", "music")
	tests := []struct {
		path string
		want bool
	}{
		{root, true},
		{filepath.Join(root, "logs"), true},
		{filepath.Join(root, "a", "b"), true},
		{filepath.Join(string(filepath.Separator), "data"), false},
		{filepath.Join(string(filepath.Separator), "data", "music-logs"), false},
		{filepath.Join(string(filepath.Separator), "data", "..music"), false},
	}
	for _, tt := range tests {
		got, err := isWithin(root, tt.path)
		if err != nil {
			t.Fatalf("isWithin(%q) error = %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("isWithin(%q, %q) = %v, want %v", root, tt.path, got, tt.want)
		}
	}
}

type countingLogger struct {
	logs      int
	summaries int
}

func (c *countingLogger) Log(level logger.Level, message string) { c.logs++ }

func (c *countingLogger) LogSummary(summary *models.Summary) { c.summaries++ }

func TestMultiLoggerForwards(t *testing.T) {
	a, b := &countingLogger{}, &countingLogger{}
	ml := &multiLogger{loggers: []walker.Logger{a, b}}

	ml.Log(logger.LevelInfo, "one")
	ml.Log(logger.LevelWarn, "two")
	ml.LogSummary(&models.Summary{})

	for i, l := range []*countingLogger{a, b} {
		if l.logs != 2 || l.summaries != 1 {
			t.Errorf("logger %d got %d logs and %d summaries, want 2 and 1", i, l.logs, l.summaries)
		}
	}
}

func TestRunInvalidTargetCreatesNothing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	logDir := filepath.Join(t.TempDir(), "logs")

	lockPath, err := filelock.LockPathFor(os.TempDir(), missing)
	if err != nil {
		t.Fatalf("LockPathFor() error = %v", err)
	}

	_, err = execute(t, "--log-dir", logDir, missing)
	if !errors.Is(err, walker.ErrNotDirectory) {
		t.Fatalf("expected ErrNotDirectory, got %v", err)
	}
	if exists(logDir) {
		t.Error("no run log should be created for an invalid target")
	}
	if exists(lockPath) {
		t.Error("no lock file should be created for an invalid target")
	}
}

func TestRunRemovesLockFile(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "Ş.txt"))

	lockPath, err := filelock.LockPathFor(os.TempDir(), root)
	if err != nil {
		t.Fatalf("LockPathFor() error = %v", err)
	}

	if _, err := execute(t, root); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if exists(lockPath) {
		t.Errorf("lock file %s should be removed after the run", lockPath)
	}
}

func TestRunWarningsGoToStderr(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "Ağ.txt"))
	writeTestFile(t, filepath.Join(root, "Ag.txt"))
	writeTestFile(t, filepath.Join(root, "Böcek.txt"))

	cmd := NewRootCommand()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs([]string{"-v", root})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("run returned error: %v", err)
	}

	if !strings.Contains(stderr.String(), "[COLLISION]") {
		t.Errorf("collision warning should go to stderr, got stderr: %s", stderr.String())
	}
	if strings.Contains(stdout.String(), "[COLLISION]") {
		t.Errorf("collision warning should not go to stdout, got: %s", stdout.String())
	}
	if !strings.Contains(stdout.String(), "[RENAME] FILE") || !strings.Contains(stdout.String(), "=== Rename Summary ===") {
		t.Errorf("renames and summary should go to stdout, got: %s", stdout.String())
	}
}

func TestRunTwiceRenamesNothingNew(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "Rapor  .şablon"))
	writeTestFile(t, filepath.Join(root, "Çok   Güzel Dosya.TXT"))

	first, err := execute(t, "-s", root)
	if err != nil {
		t.Fatalf("first run returned error: %v", err)
	}
	if !strings.Contains(first, "Renamed: 2") {
		t.Errorf("first run should rename both files, got: %s", first)
	}
	if !exists(filepath.Join(root, "Rapor.sablon")) || !exists(filepath.Join(root, "Cok Guzel Dosya.TXT")) {
		t.Errorf("unexpected names after first run")
	}

	second, err := execute(t, "-s", root)
	if err != nil {
		t.Fatalf("second run returned error: %v", err)
	}
	if !strings.Contains(second, "Renamed: 0") || !strings.Contains(second, "Unchanged: 2") {
		t.Errorf("second run should leave everything unchanged, got: %s", second)
	}
}
