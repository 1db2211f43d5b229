package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"skytheme/codec"
	"skytheme/model"
	"skytheme/style"
)

// Artifact names written by Build.
const (
	StylesheetFile = "skytheme.css"
	TailwindFile   = "tailwind.theme.json"
	ThemesFile     = "themes.yaml"
)

// ErrInvalidName is returned for artifact names that would escape the dist
// directory.
var ErrInvalidName = errors.New("invalid artifact name")

// Store provides persistent storage for generated style artifacts.
type Store struct {
	baseDir string
	mu      sync.Mutex
}

// New creates a new Store instance with the given base directory.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Dir is the directory artifacts are written to.
func (s *Store) Dir() string {
	return filepath.Join(s.baseDir, "dist")
}

// EnsureDirs creates the necessary directory structure for storing artifacts.
func (s *Store) EnsureDirs() error {
	return os.MkdirAll(s.Dir(), 0o755)
}

// SaveArtifact atomically replaces the named artifact.
func (s *Store) SaveArtifact(name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.Dir(), 0o755); err != nil {
		return err
	}

	path := filepath.Join(s.Dir(), name)
	f, err := os.CreateTemp(s.Dir(), "."+name+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// Read returns the contents of the named artifact.
func (s *Store) Read(name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.ReadFile(filepath.Join(s.Dir(), name))
}

// List returns the stored artifacts sorted by name.
func (s *Store) List() ([]model.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var artifacts []model.Artifact
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, model.Artifact{
			Name:    e.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime().UTC().Format(time.RFC3339),
		})
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].Name < artifacts[j].Name
	})
	return artifacts, nil
}

// Build renders every artifact for themes and saves them.
func Build(s *Store, themes []model.Theme, content []string) error {
	tailwind, err := codec.MarshalDocument(style.TailwindConfig(themes, content))
	if err != nil {
		return fmt.Errorf("render %s: %w", TailwindFile, err)
	}
	table, err := codec.Marshal(codec.FormatYAML, themes)
	if err != nil {
		return fmt.Errorf("render %s: %w", ThemesFile, err)
	}

	outputs := []struct {
		name string
		data []byte
	}{
		{StylesheetFile, []byte(style.Stylesheet(themes))},
		{TailwindFile, tailwind},
		{ThemesFile, table},
	}
	for _, o := range outputs {
		if err := s.SaveArtifact(o.name, o.data); err != nil {
			return fmt.Errorf("save %s: %w", o.name, err)
		}
	}
	return nil
}

func checkName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
