package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func mustRun(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: suitcase %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope to contain data key; got: %v", env)
	}
	return env
}

func writeImage(t *testing.T, dir string, b []byte) string {
	t.Helper()
	p := filepath.Join(dir, "photo.jpg")
	if err := os.WriteFile(p, b, 0o644); err != nil {
		t.Fatalf("write image fixture: %v", err)
	}
	return p
}

func TestItemsLifecycle(t *testing.T) {
	dir := t.TempDir()
	img := writeImage(t, dir, []byte{0xff, 0xd8, 0x01})

	added := mustRun(t, "--dir", dir, "items", "add",
		"--name", "Kettle", "--price", "29.99", "--description", "Electric kettle", "--image", img)
	data, _ := added["data"].(map[string]any)
	id, _ := data["id"].(float64)
	if id == 0 {
		t.Fatalf("expected assigned id; got: %#v", added["data"])
	}
	if purchased, _ := data["purchased"].(bool); purchased {
		t.Fatalf("new item must start not purchased")
	}

	listed := mustRun(t, "--dir", dir, "items", "list")
	xs, ok := listed["data"].([]any)
	if !ok || len(xs) != 1 {
		t.Fatalf("expected 1 item; got: %#v", listed["data"])
	}
	row, _ := xs[0].(map[string]any)
	if row["name"] != "Kettle" {
		t.Fatalf("unexpected row: %#v", row)
	}
	if n, _ := row["imageBytes"].(float64); n != 3 {
		t.Fatalf("expected imageBytes=3; got: %#v", row)
	}

	idArg := jsonID(id)
	toggled := mustRun(t, "--dir", dir, "items", "toggle", idArg)
	if p, _ := toggled["data"].(map[string]any)["purchased"].(bool); !p {
		t.Fatalf("expected purchased=true after toggle; got: %#v", toggled["data"])
	}
	toggled = mustRun(t, "--dir", dir, "items", "toggle", idArg)
	if p, _ := toggled["data"].(map[string]any)["purchased"].(bool); p {
		t.Fatalf("expected toggle round trip to restore; got: %#v", toggled["data"])
	}

	edited := mustRun(t, "--dir", dir, "items", "edit", idArg, "--name", "Teapot")
	ed, _ := edited["data"].(map[string]any)
	if ed["name"] != "Teapot" {
		t.Fatalf("expected rename; got: %#v", ed)
	}
	// Unset flags kept their values.
	if ed["description"] != "Electric kettle" {
		t.Fatalf("description should be preserved; got: %#v", ed)
	}
	if n, _ := ed["imageBytes"].(float64); n != 3 {
		t.Fatalf("image should be preserved; got: %#v", ed)
	}

	mustRun(t, "--dir", dir, "items", "delete", idArg)
	listed = mustRun(t, "--dir", dir, "items", "list")
	if xs, _ := listed["data"].([]any); len(xs) != 0 {
		t.Fatalf("expected empty list after delete; got: %#v", listed["data"])
	}

	// Delete again: still a success.
	mustRun(t, "--dir", dir, "items", "delete", idArg)
}

func TestItemsAddValidation(t *testing.T) {
	dir := t.TempDir()
	img := writeImage(t, dir, []byte{1})

	_, stderr, err := runCLI(t, []string{"--dir", dir, "items", "add",
		"--name", "Kettle", "--price", "cheap", "--description", "d", "--image", img})
	if err == nil {
		t.Fatalf("expected error for unparseable price")
	}
	if !strings.Contains(string(stderr), "price") {
		t.Fatalf("expected price fault on stderr; got: %s", stderr)
	}

	listed := mustRun(t, "--dir", dir, "items", "list")
	if xs, _ := listed["data"].([]any); len(xs) != 0 {
		t.Fatalf("rejected add must not persist anything; got: %#v", listed["data"])
	}
}

func TestItemsShowIncludesImage(t *testing.T) {
	dir := t.TempDir()
	imgBytes := []byte{0xca, 0xfe}
	img := writeImage(t, dir, imgBytes)

	added := mustRun(t, "--dir", dir, "items", "add",
		"--name", "A", "--price", "1", "--description", "d", "--image", img)
	id, _ := added["data"].(map[string]any)["id"].(float64)

	shown := mustRun(t, "--dir", dir, "items", "show", jsonID(id))
	data, _ := shown["data"].(map[string]any)
	// encoding/json base64-encodes []byte.
	if data["image"] != "yv4=" {
		t.Fatalf("expected image blob in show output; got: %#v", data)
	}
}

func TestItemsShowMissing(t *testing.T) {
	dir := t.TempDir()

	_, stderr, err := runCLI(t, []string{"--dir", dir, "items", "show", "42"})
	if err == nil {
		t.Fatalf("expected not-found error")
	}
	if !strings.Contains(string(stderr), "not found") {
		t.Fatalf("expected not-found message; got: %s", stderr)
	}
}

func TestItemsDelegate(t *testing.T) {
	dir := t.TempDir()
	img := writeImage(t, dir, []byte{1})

	added := mustRun(t, "--dir", dir, "items", "add",
		"--name", "Kettle", "--price", "29.99", "--description", "Electric kettle", "--image", img)
	id, _ := added["data"].(map[string]any)["id"].(float64)

	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "items", "delegate", jsonID(id), "--to", "555-0100"})
	if err != nil {
		t.Fatalf("delegate failed: %v\nstderr: %s", err, stderr)
	}
	out := string(stdout)
	for _, want := range []string{"To: 555-0100", "Item: Kettle", "Price: 29.99", "Description: Electric kettle"} {
		if !strings.Contains(out, want) {
			t.Fatalf("delegate output missing %q:\n%s", want, out)
		}
	}
}

// jsonID renders a decoded JSON id (float64) back to its decimal form.
func jsonID(id float64) string {
	return strconv.FormatInt(int64(id), 10)
}
