package jsonstore_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/Makepad-fr/todo/internal/command"
	"github.com/Makepad-fr/todo/internal/model"
	"github.com/Makepad-fr/todo/internal/store/jsonstore"
	"github.com/Makepad-fr/todo/internal/todo"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_MissingFileCreatesEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")

	l, st, err := jsonstore.Load[model.Text](path, "alice")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if st != jsonstore.Created {
		t.Errorf("expected status created, got %s", st)
	}
	if l.Owner() != "alice" || l.Len() != 0 {
		t.Errorf("unexpected list: owner=%q len=%d", l.Owner(), l.Len())
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("load must not create the file, stat err = %v", err)
	}
}

func TestLoad_MissingFileWithoutOwner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")

	_, _, err := jsonstore.Load[model.Text](path, "  ")

	if !errors.Is(err, jsonstore.ErrOwnerRequired) {
		t.Fatalf("expected ErrOwnerRequired, got %v", err)
	}
}

func TestLoad_ExistingFileIgnoresOwner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	writeFile(t, path, `{"tasks": ["a", "b"], "name": "bob"}`)

	l, st, err := jsonstore.Load[model.Text](path, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if st != jsonstore.Loaded {
		t.Errorf("expected status loaded, got %s", st)
	}
	if l.Owner() != "bob" {
		t.Errorf("expected owner from file, got %q", l.Owner())
	}
	if !slices.Equal(l.Tasks(), []model.Text{"a", "b"}) {
		t.Errorf("unexpected tasks: %v", l.Tasks())
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"truncated", `{"tasks": ["a"`},
		{"not an object", `["a", "b"]`},
		{"null document", `null`},
		{"missing tasks", `{"name": "alice"}`},
		{"missing name", `{"tasks": []}`},
		{"null tasks", `{"tasks": null, "name": "alice"}`},
		{"wrong task type", `{"tasks": [1, 2], "name": "alice"}`},
		{"null task", `{"tasks": ["a", null], "name": "alice"}`},
		{"wrong name type", `{"tasks": [], "name": 7}`},
		{"trailing garbage", `{"tasks": [], "name": "alice"} x`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasks.json")
			writeFile(t, path, tt.content)

			l, _, err := jsonstore.Load[model.Text](path, "alice")

			if !errors.Is(err, jsonstore.ErrDecode) {
				t.Fatalf("expected ErrDecode, got %v", err)
			}
			if l != nil {
				t.Errorf("corrupt file must not yield a list")
			}
			got, rerr := os.ReadFile(path)
			if rerr != nil || string(got) != tt.content {
				t.Errorf("corrupt file was modified")
			}
		})
	}
}

func TestLoad_UnreadableFile(t *testing.T) {
	dir := t.TempDir()

	// A directory where the file should be cannot be read as one.
	_, _, err := jsonstore.Load[model.Text](dir, "alice")

	if !errors.Is(err, jsonstore.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		owner string
		tasks []model.Text
	}{
		{"empty", "alice", nil},
		{"single", "alice", []model.Text{"buy oat milk"}},
		{"several", "bob", []model.Text{"one", "two", "three"}},
		{"special characters", "zoë", []model.Text{`say "hi"`, "a <b> & c", "línea\nnueva", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasks.json")
			want := todo.Restore(tt.owner, tt.tasks)

			if err := jsonstore.Save(path, want); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, _, err := jsonstore.Load[model.Text](path, "someone-else")
			if err != nil {
				t.Fatalf("load: %v", err)
			}

			if got.Owner() != want.Owner() {
				t.Errorf("owner: want %q, got %q", want.Owner(), got.Owner())
			}
			if !slices.Equal(got.Tasks(), want.Tasks()) {
				t.Errorf("tasks: want %q, got %q", want.Tasks(), got.Tasks())
			}
		})
	}
}

func TestSave_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")

	if err := jsonstore.Save(path, todo.New[model.Text]("alice")); err != nil {
		t.Fatalf("save: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "{\n  \"tasks\": [],\n  \"name\": \"alice\"\n}\n"
	if string(b) != want {
		t.Errorf("unexpected file content:\n%s", b)
	}
}

func TestSave_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	writeFile(t, path, strings.Repeat("x", 4096))

	if err := jsonstore.Save(path, todo.Restore("alice", []model.Text{"a"})); err != nil {
		t.Fatalf("save: %v", err)
	}

	l, _, err := jsonstore.Load[model.Text](path, "")
	if err != nil {
		t.Fatalf("load after overwrite: %v", err)
	}
	if l.Len() != 1 {
		t.Errorf("expected 1 task, got %d", l.Len())
	}
}

func TestSave_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tasks.json")

	if err := jsonstore.Save(path, todo.New[model.Text]("alice")); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %v", err)
	}
}

func TestSave_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	writeFile(t, blocker, "")

	// The parent "directory" is a regular file.
	err := jsonstore.Save(filepath.Join(blocker, "tasks.json"), todo.New[model.Text]("alice"))

	if !errors.Is(err, jsonstore.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
}

func TestUse_SavesAfterSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	s := jsonstore.Session{Path: path, Owner: "alice"}

	err := jsonstore.Use(s, func(l *todo.List[model.Text]) error {
		return l.Apply(command.Add(model.Text("buy milk")), nil)
	})
	if err != nil {
		t.Fatalf("use: %v", err)
	}

	l, _, err := jsonstore.Load[model.Text](path, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !slices.Equal(l.Tasks(), []model.Text{"buy milk"}) {
		t.Errorf("unexpected tasks: %v", l.Tasks())
	}
}

func TestUse_SavesAfterCommandError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	s := jsonstore.Session{Path: path, Owner: "alice"}

	err := jsonstore.Use(s, func(l *todo.List[model.Text]) error {
		return l.Apply(command.Remove[model.Text](1), nil)
	})

	if !errors.Is(err, todo.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	l, st, err := jsonstore.Load[model.Text](path, "")
	if err != nil {
		t.Fatalf("save should have run after the failed command: %v", err)
	}
	if st != jsonstore.Loaded || l.Owner() != "alice" || l.Len() != 0 {
		t.Errorf("unexpected saved list: status=%s owner=%q len=%d", st, l.Owner(), l.Len())
	}
}

func TestUse_NoSaveWhenLoadFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	writeFile(t, path, "{broken")
	called := false
	saved := false
	s := jsonstore.Session{
		Path:   path,
		Owner:  "alice",
		OnSave: func(string, int, error) { saved = true },
	}

	err := jsonstore.Use(s, func(*todo.List[model.Text]) error {
		called = true
		return nil
	})

	if !errors.Is(err, jsonstore.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	if called || saved {
		t.Errorf("fn called=%v, saved=%v; want neither", called, saved)
	}
}

// danglingLink returns a path that reads as missing but cannot be written:
// a symlink into a directory that does not exist.
func danglingLink(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	if err := os.Symlink(filepath.Join(dir, "missing", "tasks.json"), path); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	return path
}

func TestUse_JoinsSaveError(t *testing.T) {
	s := jsonstore.Session{Path: danglingLink(t), Owner: "alice"}
	called := false

	err := jsonstore.Use(s, func(l *todo.List[model.Text]) error {
		called = true
		return l.Apply(command.Modify(3, model.Text("x")), nil)
	})

	if !called {
		t.Fatalf("load should succeed on a missing file, got %v", err)
	}

	if !errors.Is(err, todo.ErrIndexOutOfRange) {
		t.Errorf("expected command error in %v", err)
	}
	if !errors.Is(err, jsonstore.ErrIO) {
		t.Errorf("expected save error in %v", err)
	}
}

func TestUse_SaveErrorAfterSuccess(t *testing.T) {
	var saveErr error
	s := jsonstore.Session{
		Path:   danglingLink(t),
		Owner:  "alice",
		OnSave: func(_ string, _ int, err error) { saveErr = err },
	}

	err := jsonstore.Use(s, func(l *todo.List[model.Text]) error {
		return l.Apply(command.Add(model.Text("x")), nil)
	})

	if !errors.Is(err, jsonstore.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
	if !errors.Is(saveErr, jsonstore.ErrIO) {
		t.Errorf("OnSave should see the save error, got %v", saveErr)
	}
}

func TestUse_Hooks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	var loadStatus jsonstore.Status = -1
	var savedTasks = -1
	s := jsonstore.Session{
		Path:   path,
		Owner:  "alice",
		OnLoad: func(_ string, st jsonstore.Status, _ int) { loadStatus = st },
		OnSave: func(_ string, n int, err error) {
			if err == nil {
				savedTasks = n
			}
		},
	}

	err := jsonstore.Use(s, func(l *todo.List[model.Text]) error {
		return l.Apply(command.Add(model.Text("x")), nil)
	})
	if err != nil {
		t.Fatalf("use: %v", err)
	}

	if loadStatus != jsonstore.Created {
		t.Errorf("expected created, got %v", loadStatus)
	}
	if savedTasks != 1 {
		t.Errorf("expected 1 saved task, got %d", savedTasks)
	}
}

func TestScenario_PersistAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	steps := []command.Command[model.Text]{
		command.Add(model.Text("buy milk")),
		command.Add(model.Text("walk dog")),
		command.Modify(1, model.Text("buy oat milk")),
		command.Remove[model.Text](2),
	}

	// One command per process run, as the CLI does it.
	for _, c := range steps {
		err := jsonstore.Use(jsonstore.Session{Path: path, Owner: "alice"}, func(l *todo.List[model.Text]) error {
			return l.Apply(c, nil)
		})
		if err != nil {
			t.Fatalf("%s: %v", c, err)
		}
	}

	l, _, err := jsonstore.Load[model.Text](path, "")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if l.Owner() != "alice" || !slices.Equal(l.Tasks(), []model.Text{"buy oat milk"}) {
		t.Errorf("unexpected list: owner=%q tasks=%v", l.Owner(), l.Tasks())
	}
}
