// Package plkit edits property-list documents: typed values, a lazy
// tree projection over them, and undoable mutations, with YAML and
// JSON codecs.
//
// # Usage
//
// To open, edit and save a document:
//
//	doc, err := plkit.Load("settings.yaml")
//	if err != nil { ... }
//	n, err := doc.Find("$.servers")
//	if err != nil { ... }
//	doc.Editor().InsertItem(n, 0, "", value.FromString("localhost"))
//	err = doc.Save()
//
// A Document is a single editing session and is not safe for
// concurrent use.
package plkit

import (
	"errors"
	"os"

	"github.com/plkit/plkit/codec"
	"github.com/plkit/plkit/edit"
	"github.com/plkit/plkit/tree"
	"github.com/plkit/plkit/value"
)

// Document is one editing session: a tree over a document value and
// the editor holding its undo history.
type Document struct {
	tree   *tree.Tree
	editor *edit.Editor
	format codec.Format
	path   string
}

// New returns a document holding an empty dictionary.
func New() *Document {
	return &Document{tree: tree.New(), editor: &edit.Editor{}}
}

// Decode reads a document in the given format. The new document has
// an empty undo history.
func Decode(d []byte, f codec.Format, opts ...codec.DecodeOption) (*Document, error) {
	v, err := codec.Decode(d, f, opts...)
	if err != nil {
		return nil, err
	}
	return &Document{
		tree:   tree.FromValue(v),
		editor: &edit.Editor{},
		format: f,
	}, nil
}

// Load reads the file at path, guessing the format from its suffix.
func Load(path string) (*Document, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(d, codec.FormatForPath(path))
	if err != nil {
		return nil, err
	}
	doc.path = path
	return doc, nil
}

// Encode renders the document in its own format.
func (doc *Document) Encode(opts ...codec.EncodeOption) ([]byte, error) {
	return codec.Encode(doc.Root().Value(), doc.format, opts...)
}

// Save writes the document back to the file it was loaded from. The
// write is a temp file rename, so a crash never leaves a torn
// document behind.
func (doc *Document) Save() error {
	if doc.path == "" {
		return errors.New("document has no file")
	}
	return doc.SaveAs(doc.path)
}

// SaveAs writes the document to path and makes path the document's
// file. The format follows the document, not the new suffix.
func (doc *Document) SaveAs(path string) error {
	d, err := doc.Encode()
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, d, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	doc.path = path
	return nil
}

// Path is the file the document was loaded from or last saved to, ""
// for documents built in memory.
func (doc *Document) Path() string {
	return doc.path
}

func (doc *Document) Format() codec.Format {
	return doc.format
}

// SetFormat switches the encoding Save and Encode use.
func (doc *Document) SetFormat(f codec.Format) {
	doc.format = f
}

// Root is the document's root node.
func (doc *Document) Root() *tree.Node {
	return doc.tree.Root()
}

// Editor mutates this document and holds its undo history.
func (doc *Document) Editor() *edit.Editor {
	return doc.editor
}

// Find resolves a path like "$.servers[2].host" to a node. A missing
// dictionary key resolves to (nil, nil).
func (doc *Document) Find(path string) (*tree.Node, error) {
	return doc.tree.Find(path)
}

// SetRoot replaces the whole document and clears the undo history.
func (doc *Document) SetRoot(v *value.Value) *tree.Node {
	n := doc.tree.SetRoot(v)
	doc.editor.Reset()
	return n
}
