package mocks

import (
	"image"
	"sync"

	"github.com/user/slidextract/pkg/ports"
)

// DocumentWriter is a mock implementation of ports.DocumentWriter.
type DocumentWriter struct {
	NewDocumentFunc func(opts ports.DocumentOptions) (ports.Document, error)

	// AddPageErr and CommitErr are injected into created documents.
	AddPageErr error
	CommitErr  error

	mu        sync.Mutex
	Documents []*Document
}

func (m *DocumentWriter) NewDocument(opts ports.DocumentOptions) (ports.Document, error) {
	if m.NewDocumentFunc != nil {
		return m.NewDocumentFunc(opts)
	}
	doc := &Document{Options: opts, AddPageErr: m.AddPageErr, CommitErr: m.CommitErr}
	m.mu.Lock()
	m.Documents = append(m.Documents, doc)
	m.mu.Unlock()
	return doc, nil
}

// Last returns the most recently created document, or nil.
func (m *DocumentWriter) Last() *Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Documents) == 0 {
		return nil
	}
	return m.Documents[len(m.Documents)-1]
}

var _ ports.DocumentWriter = (*DocumentWriter)(nil)

// Document is a mock implementation of ports.Document that keeps its pages in memory.
type Document struct {
	Options    ports.DocumentOptions
	AddPageErr error
	CommitErr  error

	Pages         []image.Image
	CommittedPath string
	Committed     bool
	Discarded     bool
}

func (m *Document) AddPage(img image.Image) error {
	if m.AddPageErr != nil {
		return m.AddPageErr
	}
	m.Pages = append(m.Pages, img)
	return nil
}

func (m *Document) PageCount() int {
	return len(m.Pages)
}

func (m *Document) Commit(path string) error {
	if m.CommitErr != nil {
		return m.CommitErr
	}
	m.Committed = true
	m.CommittedPath = path
	return nil
}

func (m *Document) Discard() error {
	if !m.Committed {
		m.Discarded = true
	}
	return nil
}

var _ ports.Document = (*Document)(nil)
