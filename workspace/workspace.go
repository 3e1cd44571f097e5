package workspace

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/incipit/pae"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("incipit.workspace")

// Extensions lists the file extensions treated as incipit files.
var Extensions = []string{".pae", ".yaml", ".yml"}

type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	opts    []pae.Option
	files   map[string]*FileInfo
}

type FileInfo struct {
	Path    string
	Content []byte
	Record  pae.Record
	Result  *pae.Result
	// Diagnostics holds the diagnostics of the last parse, including
	// the one that failed a strict import.
	Diagnostics []pae.Diagnostic
	ParseErr    error
}

// OK reports whether the file imported without any diagnostic.
func (f *FileInfo) OK() bool {
	return f.ParseErr == nil && len(f.Diagnostics) == 0
}

// HasErrors reports whether the import failed or raised an error-level
// diagnostic. Lenient warnings do not count.
func (f *FileInfo) HasErrors() bool {
	if f.ParseErr != nil {
		return true
	}
	for _, d := range f.Diagnostics {
		if d.Severity == pae.SeverityError {
			return true
		}
	}
	return false
}

// New returns an empty workspace. opts are applied to every parse.
func New(rootDir string, opts ...pae.Option) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		opts:    opts,
		files:   make(map[string]*FileInfo),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// IsIncipitFile reports whether path has one of Extensions.
func IsIncipitFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (w *Workspace) ScanAll() error {
	return filepath.Walk(w.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != w.rootDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsIncipitFile(path) {
			w.ScanFile(path)
		}
		return nil
	})
}

func (w *Workspace) ScanFile(path string) (*FileInfo, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return w.UpdateFile(path, content), nil
}

// UpdateFile parses content and stores it under path, replacing the
// previous version.
func (w *Workspace) UpdateFile(path string, content []byte) *FileInfo {
	f := &FileInfo{
		Path:    path,
		Content: content,
	}

	rec, err := pae.ReadRecord(path, content)
	if err != nil {
		f.ParseErr = err
	} else {
		f.Record = rec
		p := pae.New(append([]pae.Option{pae.WithLogger(log)}, w.opts...)...)
		f.Result, f.ParseErr = p.Parse(rec)
		f.Diagnostics = p.Diagnostics()
	}
	if f.ParseErr != nil {
		log.Infof("%s: %s", path, f.ParseErr)
	}

	w.mu.Lock()
	w.files[path] = f
	w.mu.Unlock()
	return f
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *FileInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Files returns the known files sorted by path.
func (w *Workspace) Files() []*FileInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()
	files := make([]*FileInfo, 0, len(w.files))
	for _, f := range w.files {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}
