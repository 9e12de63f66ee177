package registry

import "path/filepath"

// ComponentsDir returns the directory holding source-of-truth component
// submissions inside a registry repository.
func ComponentsDir(root string) string {
	return filepath.Join(root, "components", "registry", "components")
}

// IndexPath returns the location of the generated component catalog.
func IndexPath(root string) string {
	return filepath.Join(root, "components", "registry", "index.json")
}

// SubmissionPath returns the location of the named component's
// submission file inside the components directory.
func SubmissionPath(dir, name string) string {
	return filepath.Join(dir, name+".json")
}

// MetaPath returns the location of the named component's enrichment
// output, next to its submission file.
func MetaPath(dir, name string) string {
	return filepath.Join(dir, name+".meta.json")
}
