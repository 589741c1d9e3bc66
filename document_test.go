package plkit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plkit/plkit/codec"
	"github.com/plkit/plkit/value"
)

func TestNewIsEmptyDictionary(t *testing.T) {
	doc := New()
	root := doc.Root()
	if root.Value().Kind != value.DictionaryKind {
		t.Fatalf("root is %s", root.Value().Kind)
	}
	if root.NumChildren() != 0 {
		t.Errorf("new document has %d children", root.NumChildren())
	}
}

func TestEditThroughDocument(t *testing.T) {
	doc, err := Decode([]byte("servers:\n- host: a\n- host: b\n"), codec.YAMLFormat)
	if err != nil {
		t.Fatal(err)
	}
	n, err := doc.Find("$.servers[1].host")
	if err != nil || n == nil {
		t.Fatalf("find: %v %v", n, err)
	}
	doc.Editor().SetValue(n, value.FromString("c"))
	d, err := doc.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(d), "host: c") {
		t.Errorf("edit missing from encode:\n%s", d)
	}
	if !doc.Editor().Undo() {
		t.Fatal("undo declined")
	}
	d, err = doc.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(d), "host: b") {
		t.Errorf("undo missing from encode:\n%s", d)
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.yaml")
	if err := os.WriteFile(path, []byte("a: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	doc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Format() != codec.YAMLFormat {
		t.Errorf("format %s", doc.Format())
	}
	n, err := doc.Find("$.a")
	if err != nil || n == nil {
		t.Fatalf("find: %v %v", n, err)
	}
	doc.Editor().SetValue(n, value.FromInt(2))
	if err := doc.Save(); err != nil {
		t.Fatal(err)
	}
	d, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "a: 2\n" {
		t.Errorf("saved %q", string(d))
	}
}

func TestSaveAsTracksPath(t *testing.T) {
	doc := New()
	if err := doc.Save(); err == nil {
		t.Error("save without a file succeeded")
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := doc.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	if doc.Path() != path {
		t.Errorf("path %q", doc.Path())
	}
	if err := doc.Save(); err != nil {
		t.Error(err)
	}
}

func TestSetFormat(t *testing.T) {
	doc, err := Decode([]byte(`{"a": 1}`), codec.JSONFormat)
	if err != nil {
		t.Fatal(err)
	}
	doc.SetFormat(codec.YAMLFormat)
	d, err := doc.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "a: 1\n" {
		t.Errorf("encode %q", string(d))
	}
}

func TestSetRootClearsHistory(t *testing.T) {
	doc := New()
	doc.Editor().InsertItem(doc.Root(), 0, "", value.FromInt(1))
	if !doc.Editor().CanUndo() {
		t.Fatal("insert left no history")
	}
	doc.SetRoot(value.FromArray(nil))
	if doc.Editor().CanUndo() || doc.Editor().CanRedo() {
		t.Error("history survived a root replacement")
	}
	if doc.Root().Value().Kind != value.ArrayKind {
		t.Errorf("root is %s", doc.Root().Value().Kind)
	}
}
