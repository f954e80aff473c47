// Package store persists scenes as four canonical JSON documents: data,
// template, theme, and a metadata document referencing the other three by
// relative path.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/scenefold/scenefold/internal/scene"
	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

const (
	dataFile     = "data.json"
	templateFile = "template.json"
	themeFile    = "theme.json"
	metadataFile = "scene.json"
)

// Metadata is the top-level document tying the three scene documents
// together.
type Metadata struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Data     string `json:"data"`
	Template string `json:"template"`
	Theme    string `json:"theme"`
}

// SavedScene reports where a scene was persisted.
type SavedScene struct {
	Location string
	Files    []string
}

// Store is the persistence capability consumed by the pipeline.
type Store interface {
	SaveScene(s *scene.Scene, id string) (*SavedScene, error)
	LoadScene(id string) (*scene.Scene, error)
}

// FileStore persists scenes under a base directory, one subdirectory per
// scene ID.
type FileStore struct {
	baseDir string
	mu      sync.Mutex
}

// NewFileStore creates a FileStore rooted at baseDir.
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{baseDir: baseDir}
}

// SaveScene writes the four documents for the scene, replacing any
// previous versions. Each file is written to a temporary path and renamed
// into place.
func (s *FileStore) SaveScene(sc *scene.Scene, id string) (*SavedScene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, scenefolderrors.NewFileSystemError(dir, err)
	}

	meta := Metadata{
		ID:       id,
		Name:     sc.Template.TemplateName,
		Data:     dataFile,
		Template: templateFile,
		Theme:    themeFile,
	}

	documents := []struct {
		name    string
		payload any
	}{
		{dataFile, sc.Data},
		{templateFile, sc.Template},
		{themeFile, sc.Theme},
		{metadataFile, meta},
	}

	files := make([]string, 0, len(documents))
	for _, doc := range documents {
		path := filepath.Join(dir, doc.name)
		if err := writeJSON(path, doc.payload); err != nil {
			return nil, err
		}
		files = append(files, path)
	}

	return &SavedScene{Location: dir, Files: files}, nil
}

// LoadScene reads the metadata document for the scene ID and reassembles
// the scene from the three documents it references.
func (s *FileStore) LoadScene(id string) (*scene.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Join(s.baseDir, id)

	var meta Metadata
	if err := readJSON(filepath.Join(dir, metadataFile), &meta); err != nil {
		return nil, err
	}

	var data scene.SceneData
	if err := readJSON(filepath.Join(dir, meta.Data), &data); err != nil {
		return nil, err
	}

	var tmpl scene.Template
	if err := readJSON(filepath.Join(dir, meta.Template), &tmpl); err != nil {
		return nil, err
	}

	var theme scene.Theme
	if err := readJSON(filepath.Join(dir, meta.Theme), &theme); err != nil {
		return nil, err
	}

	return &scene.Scene{Data: &data, Template: &tmpl, Theme: &theme}, nil
}

func writeJSON(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return scenefolderrors.NewFileSystemError(path, err)
	}
	data = append(data, '\n')

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return scenefolderrors.NewFileSystemError(tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return scenefolderrors.NewFileSystemError(path, err)
	}
	return nil
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return scenefolderrors.NewFileSystemError(path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return scenefolderrors.NewFileSystemError(path, err)
	}
	return nil
}
