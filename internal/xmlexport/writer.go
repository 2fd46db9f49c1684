package xmlexport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	manifestFile      = "exports.json"
	defaultMaxHistory = 50
)

// Writer persists export documents under a base directory and keeps a
// manifest of recent exports, pruning the oldest beyond maxHistory.
type Writer struct {
	basePath   string
	maxHistory int
	now        func() time.Time
}

// NewWriter constructs a writer rooted at basePath.
func NewWriter(basePath string, maxHistory int) *Writer {
	if maxHistory <= 0 {
		maxHistory = defaultMaxHistory
	}
	return &Writer{
		basePath:   basePath,
		maxHistory: maxHistory,
		now:        time.Now,
	}
}

// BasePath exposes the writer root path (primarily for testing).
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// Save writes the document to an explicit path chosen by the caller, creating
// parent directories as needed. The write is atomic: a temp file is renamed
// into place so a failed write never corrupts an existing export.
func Save(path, document string) error {
	if path == "" {
		return fmt.Errorf("xmlexport: save path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("xmlexport: create directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(document), 0o644); err != nil {
		return fmt.Errorf("xmlexport: write: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("xmlexport: rename: %w", err)
	}
	return nil
}

// WriteDocument saves the document under the writer's base directory with the
// given name (".xml" appended when missing) and records it in the manifest.
// Writing an identical document to an existing file is a no-op apart from the
// manifest update.
func (w *Writer) WriteDocument(name, document string) (string, error) {
	if w == nil {
		return "", fmt.Errorf("xmlexport: writer not configured")
	}
	if name == "" {
		name = fmt.Sprintf("contests_%s.xml", w.now().UTC().Format("20060102_150405"))
	}
	if !strings.HasSuffix(name, ".xml") {
		name += ".xml"
	}

	target := filepath.Join(w.basePath, name)
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, []byte(document)) {
		return target, w.updateManifest(name)
	}
	if err := Save(target, document); err != nil {
		return "", err
	}
	return target, w.updateManifest(name)
}

// Manifest records recent exports, newest last.
type Manifest struct {
	Exports     []ManifestEntry `json:"exports"`
	LastWritten time.Time       `json:"last_written"`
}

// ManifestEntry describes one saved export document.
type ManifestEntry struct {
	File      string    `json:"file"`
	WrittenAt time.Time `json:"written_at"`
}

// ReadManifest loads the manifest, returning an empty manifest when none
// exists yet.
func (w *Writer) ReadManifest() (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(w.basePath, manifestFile))
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, nil
		}
		return Manifest{}, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

func (w *Writer) updateManifest(name string) error {
	m, err := w.ReadManifest()
	if err != nil {
		// A corrupt manifest is rebuilt rather than blocking exports.
		m = Manifest{}
	}

	now := w.now().UTC()
	kept := m.Exports[:0]
	for _, entry := range m.Exports {
		if entry.File != name {
			kept = append(kept, entry)
		}
	}
	m.Exports = append(kept, ManifestEntry{File: name, WrittenAt: now})
	m.LastWritten = now

	for len(m.Exports) > w.maxHistory {
		oldest := m.Exports[0]
		m.Exports = m.Exports[1:]
		_ = os.Remove(filepath.Join(w.basePath, oldest.File))
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return Save(filepath.Join(w.basePath, manifestFile), string(data))
}
