package catview

import (
	"context"
	"hash/fnv"
	"os"
	"path"
	"sort"
	"sync"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	"github.com/dendrascience/tidy-counts/organize"
)

var (
	_ fs.FS                 = (*FS)(nil)
	_ fs.NodeStringLookuper = (*Dir)(nil)
	_ fs.HandleReadDirAller = (*Dir)(nil)
	_ fs.HandleReadAller    = (*File)(nil)
)

// FS is a read-only view of a source tree in the organized layout.
type FS struct {
	SourceDir string
	Policy    organize.MatchPolicy
	mounted   time.Time
	root      *Dir
}

// Dir is a directory in the view: the root, a category or a period.
type Dir struct {
	name     string
	inode    uint64
	mtime    time.Time
	children map[string]fs.Node
}

// File is a plot served from its source path.
type File struct {
	name   string
	inode  uint64
	source string
	mu     sync.Mutex
	data   []byte
}

// NewFS plans an organize run over sourceDir and builds the view from it.
// The view is fixed at construction; files added to the source later are
// not visible until the next mount.
func NewFS(sourceDir string, policy organize.MatchPolicy) (*FS, error) {
	copies, err := organize.Plan(sourceDir, "", policy)
	if err != nil {
		return nil, err
	}
	f := &FS{
		SourceDir: sourceDir,
		Policy:    policy,
		mounted:   time.Now(),
	}
	f.root = f.newDir("")
	for _, c := range copies {
		category := f.root.subdir(f, c.Node.Category)
		period := category.subdir(f, c.Node.Category+"/"+c.Period.String())
		name := c.Node.TargetName()
		period.children[name] = &File{
			name:   name,
			inode:  inodeFor(c.Node.Category + "/" + c.Period.String() + "/" + name),
			source: c.Node.Path,
		}
	}
	return f, nil
}

func (f *FS) newDir(p string) *Dir {
	return &Dir{
		name:     p,
		inode:    inodeFor(p),
		mtime:    f.mounted,
		children: make(map[string]fs.Node),
	}
}

// Root returns the root directory node
func (f *FS) Root() (fs.Node, error) {
	return f.root, nil
}

// inodeFor derives a stable inode from a path in the view. The root is 1.
func inodeFor(p string) uint64 {
	if p == "" {
		return 1
	}
	h := fnv.New64a()
	h.Write([]byte(p))
	ino := h.Sum64()
	if ino <= 1 {
		ino += 2
	}
	return ino
}

// subdir returns the child directory at full view path p, creating it when
// needed.
func (d *Dir) subdir(f *FS, p string) *Dir {
	base := path.Base(p)
	if n, ok := d.children[base].(*Dir); ok {
		return n
	}
	n := f.newDir(p)
	d.children[base] = n
	return n
}

// Attr returns directory attributes
func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = d.inode
	a.Mode = os.ModeDir | 0o555
	a.Mtime = d.mtime
	a.Ctime = d.mtime
	a.Atime = d.mtime
	return nil
}

// Lookup resolves a name in the directory.
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	if n, ok := d.children[name]; ok {
		return n, nil
	}
	return nil, fuse.ENOENT
}

// ReadDirAll lists the directory in name order.
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	names := make([]string, 0, len(d.children))
	for name := range d.children {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]fuse.Dirent, 0, len(names))
	for _, name := range names {
		switch n := d.children[name].(type) {
		case *Dir:
			entries = append(entries, fuse.Dirent{Inode: n.inode, Name: name, Type: fuse.DT_Dir})
		case *File:
			entries = append(entries, fuse.Dirent{Inode: n.inode, Name: name, Type: fuse.DT_File})
		}
	}
	return entries, nil
}

// Attr reports the size and times of the source file.
func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	info, err := os.Stat(f.source)
	if err != nil {
		return err
	}
	a.Inode = f.inode
	a.Mode = 0o444
	a.Size = uint64(info.Size())
	a.Mtime = info.ModTime()
	a.Ctime = info.ModTime()
	a.Atime = time.Now()
	return nil
}

// ReadAll reads the whole source file, caching it for later reads.
func (f *File) ReadAll(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.data != nil {
		return f.data, nil
	}
	data, err := os.ReadFile(f.source)
	if err != nil {
		return nil, err
	}
	f.data = data
	return data, nil
}
