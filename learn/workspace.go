package learn

import (
	"io/fs"
	"os"
	"path/filepath"

	"abhyaasi/models"
)

// Materialize writes the module's starter files under dir/moduleID and
// returns that root. Files the user already edited are left alone.
func Materialize(dir, moduleID string, task models.CodingTask) (string, error) {
	root := filepath.Join(dir, moduleID)
	for path, contents := range task.StarterFiles {
		full := filepath.Join(root, filepath.FromSlash(path))
		if _, err := os.Stat(full); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return "", err
		}
		if err := os.WriteFile(full, []byte(contents), 0o644); err != nil {
			return "", err
		}
	}
	return root, nil
}

// Collect reads the workspace back as a submission payload keyed by
// slash-separated relative paths.
func Collect(dir, moduleID string) (map[string]string, error) {
	root := filepath.Join(dir, moduleID)
	files := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		contents, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(contents)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
