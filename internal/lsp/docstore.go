package lsp

import "sync"

type document struct {
	text    string
	version int
	// gen increases on every mutation, including saves that keep the
	// editor version.
	gen uint64
}

// docStore holds the open documents. Only the editor's notifications write
// to it; analysis works on copies returned by get and snapshot.
type docStore struct {
	mu   sync.RWMutex
	docs map[string]document
	gen  uint64
}

func newDocStore() *docStore {
	return &docStore{docs: make(map[string]document)}
}

func (d *docStore) open(uri, text string, version int) document {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	doc := document{text: text, version: version, gen: d.gen}
	d.docs[uri] = doc
	return doc
}

// change applies edits to an open document. Changes to unknown documents
// are dropped.
func (d *docStore) change(uri string, version int, changes []textDocumentContentChangeEvent) (document, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	doc, ok := d.docs[uri]
	if !ok {
		return document{}, false
	}
	d.gen++
	doc = document{text: applyChanges(doc.text, changes), version: version, gen: d.gen}
	d.docs[uri] = doc
	return doc, true
}

func (d *docStore) save(uri string, text *string) (document, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	doc, ok := d.docs[uri]
	if !ok {
		return document{}, false
	}
	d.gen++
	doc.gen = d.gen
	if text != nil {
		doc.text = *text
	}
	d.docs[uri] = doc
	return doc, true
}

func (d *docStore) close(uri string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.docs[uri]
	delete(d.docs, uri)
	return ok
}

func (d *docStore) get(uri string) (document, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	doc, ok := d.docs[uri]
	return doc, ok
}

// snapshot copies uri to text for every open document.
func (d *docStore) snapshot() map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string]string, len(d.docs))
	for uri, doc := range d.docs {
		out[uri] = doc.text
	}
	return out
}

func (d *docStore) uris() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, 0, len(d.docs))
	for uri := range d.docs {
		out = append(out, uri)
	}
	return out
}

func (d *docStore) count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.docs)
}
