package organize

import (
	"fmt"
	"os"
	"path/filepath"
)

// Node is a file found two levels below the source root.
type Node struct {
	Site     string // first-level directory
	Category string // second-level directory
	Name     string // file name
	Path     string // full source path
}

// TargetName is the file name the node is copied to: site_name.
func (n Node) TargetName() string {
	return n.Site + "_" + n.Name
}

// TargetPath returns targetDir/category/period/site_name for n. targetDir
// is kept as given, so "./out" yields "./out/...".
func TargetPath(targetDir string, n Node, p Period) string {
	return under(targetDir, n.Category, p.String(), n.TargetName())
}

// under joins elem below base without cleaning base. filepath.Join would
// drop a leading "./" from reported paths.
func under(base string, elem ...string) string {
	rel := filepath.Join(elem...)
	if base == "" {
		return rel
	}
	if os.IsPathSeparator(base[len(base)-1]) {
		return base + rel
	}
	return base + string(filepath.Separator) + rel
}

// isDir follows symlinks, so a link to a directory counts as one.
func isDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		// dangling links are skipped like any other non-directory
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// Walk calls fn for every file at sourceDir/site/category/file, depth first
// and in name order. Entries that are not directories at the site or category
// level are skipped, as are directories at the file level. The first error
// from the filesystem or from fn stops the walk and is returned.
func Walk(sourceDir string, fn func(Node) error) error {
	info, err := os.Stat(sourceDir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", sourceDir, ErrNotDirectory)
	}

	sites, err := os.ReadDir(sourceDir)
	if err != nil {
		return err
	}
	for _, site := range sites {
		sitePath := under(sourceDir, site.Name())
		ok, err := isDir(sitePath)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		categories, err := os.ReadDir(sitePath)
		if err != nil {
			return err
		}
		for _, category := range categories {
			categoryPath := under(sitePath, category.Name())
			ok, err := isDir(categoryPath)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}

			files, err := os.ReadDir(categoryPath)
			if err != nil {
				return err
			}
			for _, f := range files {
				filePath := under(categoryPath, f.Name())
				leafDir, err := isDir(filePath)
				if err != nil {
					return err
				}
				if leafDir {
					continue
				}
				err = fn(Node{
					Site:     site.Name(),
					Category: category.Name(),
					Name:     f.Name(),
					Path:     filePath,
				})
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}
