package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/bindery/pkg/core"
	"github.com/aretw0/bindery/pkg/git"
)

// DefaultSystemDir is the hidden directory holding bindery's own state.
const DefaultSystemDir = ".bindery"

// ConfigFile is the per-corpus configuration file. It lives at the corpus
// root and is never treated as a document.
const ConfigFile = "bindery.yaml"

// Config holds the configuration for the filesystem corpus repository.
type Config struct {
	Path         string
	AutoInit     bool
	Gitless      bool
	MustExist    bool
	Strict       bool
	ReadOnly     bool
	Logger       *slog.Logger
	SystemDir    string // e.g. ".bindery"
	ErrorHandler func(error)
}

// Repository implements core.Repository using the filesystem and Git.
type Repository struct {
	Path   string
	git    *git.Client
	cache  *cache
	config Config

	mu            sync.RWMutex
	serializers   map[string]Serializer
	watcherActive bool
	lastReconcile *time.Time
}

// NewRepository creates a new filesystem-backed corpus repository.
func NewRepository(config Config) *Repository {
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	return &Repository{
		Path:        config.Path,
		git:         git.NewClient(config.Path, config.SystemDir+".lock", config.Logger),
		config:      config,
		cache:       newCache(config.Path, config.SystemDir),
		serializers: DefaultSerializers(config.Strict),
	}
}

// RegisterSerializer installs a custom serializer for a file extension.
func (r *Repository) RegisterSerializer(ext string, s Serializer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.serializers[ext] = s
}

func (r *Repository) serializer(ext string) (Serializer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.serializers[ext]
	return s, ok
}

// Begin starts a new transaction.
func (r *Repository) Begin(ctx context.Context) (core.Transaction, error) {
	if r.config.ReadOnly {
		return nil, core.ErrReadOnly
	}
	return NewTransaction(r), nil
}

// Initialize performs the necessary setup for the repository (mkdir, git init).
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.ReadOnly {
		// Read-only corpora are opened as-is; no mkdir, no git init.
		info, err := os.Stat(r.Path)
		if err != nil {
			return fmt.Errorf("corpus path not readable: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("corpus path is not a directory: %s", r.Path)
		}
		return nil
	}

	// 1. Directory Initialization
	if r.config.MustExist {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("corpus path does not exist: %s", r.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("corpus path is not a directory: %s", r.Path)
		}
	} else {
		if err := os.MkdirAll(r.Path, 0755); err != nil {
			return fmt.Errorf("failed to create corpus directory: %w", err)
		}
	}

	// 2. Git Initialization
	if !r.config.Gitless {
		if !git.IsInstalled() {
			return fmt.Errorf("git is not installed")
		}

		wasNewRepo := false
		if !r.git.IsRepo() {
			if r.config.AutoInit {
				if err := r.git.Init(); err != nil {
					return fmt.Errorf("failed to git init: %w", err)
				}
				wasNewRepo = true
			} else {
				return fmt.Errorf("path is not a git repository: %s", r.Path)
			}
		}

		// Ensure .gitignore has the system directory
		mod, err := r.ensureIgnore()
		if err != nil {
			return fmt.Errorf("failed to ensure .gitignore: %w", err)
		}

		if mod && wasNewRepo {
			// If we just created the repo, commit the .gitignore to start clean
			if err := r.git.Add(".gitignore"); err != nil {
				return fmt.Errorf("failed to add .gitignore: %w", err)
			}
			if err := r.git.Commit(fmt.Sprintf("chore: configure %s ignore", r.config.SystemDir)); err != nil {
				return fmt.Errorf("failed to commit .gitignore: %w", err)
			}
		}
	}

	return nil
}

func (r *Repository) ensureIgnore() (bool, error) {
	ignorePath := filepath.Join(r.Path, ".gitignore")
	ignoreEntry := r.config.SystemDir + "/"

	content, err := os.ReadFile(ignorePath)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == ignoreEntry {
			return false, nil
		}
	}

	f, err := os.OpenFile(ignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		if _, err := f.WriteString("\n"); err != nil {
			return false, err
		}
	}

	if _, err := f.WriteString(ignoreEntry + "\n"); err != nil {
		return false, err
	}

	return true, nil
}

// Sync synchronizes the repository with its remote.
func (r *Repository) Sync(ctx context.Context) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if r.config.Gitless {
		return fmt.Errorf("cannot sync in gitless mode")
	}
	if !r.git.IsRepo() {
		return fmt.Errorf("path is not a git repository: %s", r.Path)
	}

	unlock, err := r.git.Lock()
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	return r.git.Sync()
}

// filenameFor resolves the on-disk filename and extension for a document ID.
func filenameFor(id string) (filename, ext string) {
	ext = filepath.Ext(id)
	filename = id
	if ext == "" {
		ext = ".md"
		filename = id + ext
	}
	return filename, ext
}

// Save persists a binding to the filesystem and commits it to Git.
//
// Workflow:
//  1. Validate ID and determine the extension (default .md).
//  2. Create parent directories.
//  3. Serialize (front matter + body) and write atomically to disk.
//  4. Update the front-matter index.
//  5. (If Git enabled) 'git add' and 'git commit' with context change reason.
func (r *Repository) Save(ctx context.Context, b core.Binding) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if b.ID == "" {
		return fmt.Errorf("binding has no ID")
	}

	filename, ext := filenameFor(b.ID)
	fullPath := filepath.Join(r.Path, filename)

	s, ok := r.serializer(ext)
	if !ok {
		return fmt.Errorf("no serializer for extension %q", ext)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	data, err := s.Serialize(b)
	if err != nil {
		return fmt.Errorf("failed to serialize binding: %w", err)
	}

	if err := writeFileAtomic(fullPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if info, err := os.Stat(fullPath); err == nil {
		r.cache.Set(filepath.ToSlash(filename), &indexEntry{
			ID:           b.ID,
			Frontmatter:  core.FrontmatterOf(b.Metadata),
			LastModified: info.ModTime(),
		})
		if err := r.cache.Save(); err != nil && r.config.Logger != nil {
			r.config.Logger.Debug("index save failed", "error", err)
		}
	}

	if !r.config.Gitless {
		unlock, err := r.git.Lock()
		if err != nil {
			return fmt.Errorf("failed to acquire git lock: %w", err)
		}
		defer unlock()

		if err := r.git.Add(filename); err != nil {
			return fmt.Errorf("failed to git add: %w", err)
		}

		msg := "update " + b.ID
		if val, ok := ctx.Value(core.ChangeReasonKey).(string); ok && val != "" {
			msg = val
		}

		if err := r.git.Commit(msg); err != nil {
			return fmt.Errorf("failed to git commit: %w", err)
		}
	}

	return nil
}

// Get retrieves a binding from the filesystem.
func (r *Repository) Get(ctx context.Context, id string) (core.Binding, error) {
	filename, ext := filenameFor(id)
	fullPath := filepath.Join(r.Path, filename)

	f, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return core.Binding{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
		}
		return core.Binding{}, err
	}
	defer f.Close()

	s, ok := r.serializer(ext)
	if !ok {
		return core.Binding{}, fmt.Errorf("no serializer for extension %q", ext)
	}

	b, err := s.Parse(f)
	if err != nil {
		return core.Binding{}, fmt.Errorf("failed to parse document %s: %w", id, err)
	}
	b.ID = id

	return *b, nil
}

// List scans the corpus for all documents.
//
// Strategy:
//  1. Load the persistent front-matter index.
//  2. Walk the directory tree (skipping .git, the system dir and the root
//     config file).
//  3. For each supported file: on index hit (mtime match) return a shallow
//     document carrying only indexed front matter; on miss, fully parse and
//     refresh the index.
//  4. Persist the index.
//
// Shallow documents have empty Content; callers that need bodies (linting)
// hydrate via Get.
func (r *Repository) List(ctx context.Context) ([]core.Binding, error) {
	var docs []core.Binding

	if err := r.cache.Load(); err != nil && r.config.Logger != nil {
		r.config.Logger.Debug("index load failed, rebuilding", "error", err)
	}
	seen := make(map[string]bool)

	err := filepath.WalkDir(r.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" || d.Name() == r.config.SystemDir {
				return filepath.SkipDir
			}
			return nil
		}

		if !supportedFile(d.Name()) {
			return nil
		}

		relPath, err := filepath.Rel(r.Path, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if relPath == ConfigFile {
			return nil
		}

		id := idFor(relPath)

		info, err := d.Info()
		if err != nil {
			return nil
		}
		mtime := info.ModTime()

		seen[relPath] = true

		if entry, hit := r.cache.Get(relPath, mtime); hit {
			docs = append(docs, core.Binding{
				ID:       entry.ID,
				Metadata: metadataOf(entry.Frontmatter),
			})
			return nil
		}

		doc, err := r.Get(ctx, id)
		if err != nil {
			if r.config.Logger != nil {
				r.config.Logger.Debug("skipping unparseable document", "id", id, "error", err)
			}
			return nil
		}

		r.cache.Set(relPath, &indexEntry{
			ID:           id,
			Frontmatter:  core.FrontmatterOf(doc.Metadata),
			LastModified: mtime,
		})

		docs = append(docs, doc)
		return nil
	})

	if err != nil {
		return nil, err
	}

	r.cache.Prune(seen)
	if !r.config.ReadOnly {
		if err := r.cache.Save(); err != nil && r.config.Logger != nil {
			r.config.Logger.Debug("index save failed", "error", err)
		}
	}

	return docs, nil
}

// Delete removes a binding.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}

	filename, _ := filenameFor(id)
	fullPath := filepath.Join(r.Path, filename)

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}

	r.cache.Delete(filepath.ToSlash(filename))
	if err := r.cache.Save(); err != nil && r.config.Logger != nil {
		r.config.Logger.Debug("index save failed", "error", err)
	}

	if r.config.Gitless {
		if err := os.Remove(fullPath); err != nil {
			return fmt.Errorf("failed to remove file: %w", err)
		}
		return nil
	}

	unlock, err := r.git.Lock()
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	if err := r.git.Rm(filename); err != nil {
		return fmt.Errorf("failed to git rm: %w", err)
	}

	msg := "delete " + id
	if val, ok := ctx.Value(core.ChangeReasonKey).(string); ok && val != "" {
		msg = val
	}

	if err := r.git.Commit(msg); err != nil {
		return fmt.Errorf("failed to git commit: %w", err)
	}

	return nil
}

// supportedFile reports whether a filename has a corpus-relevant extension.
func supportedFile(name string) bool {
	switch filepath.Ext(name) {
	case ".md", ".yaml", ".yml", ".json":
		return !strings.HasPrefix(name, TempFilePrefix)
	default:
		return false
	}
}

// idFor maps a relative path to a document ID.
// Markdown files drop the extension so IDs round-trip through Get.
func idFor(relPath string) string {
	if strings.HasSuffix(relPath, ".md") {
		return strings.TrimSuffix(relPath, ".md")
	}
	return relPath
}

// metadataOf reconstructs a metadata map from indexed front matter.
func metadataOf(fm core.Frontmatter) core.Metadata {
	meta := make(core.Metadata)
	if fm.ID != "" {
		meta[core.KeyID] = fm.ID
	}
	if fm.Version != "" {
		meta[core.KeyVersion] = fm.Version
	}
	if fm.DerivedFrom != "" {
		meta[core.KeyDerivedFrom] = fm.DerivedFrom
	}
	if fm.EnforcedBy != "" {
		meta[core.KeyEnforcedBy] = fm.EnforcedBy
	}
	if fm.LastModified != "" {
		meta[core.KeyLastModified] = fm.LastModified
	}
	return meta
}

// IsGitInstalled checks if git is available in the system path.
func IsGitInstalled() bool {
	return git.IsInstalled()
}
