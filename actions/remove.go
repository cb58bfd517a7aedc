package actions

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/itchio/headway/united"

	"github.com/devnought/sc-util/failure"
)

type treeStats struct {
	files int64
	bytes int64
}

// removeTree deletes path recursively. A missing path is a no-op, even while
// the game runs. A symlink is removed without touching what it points to.
func (t *Tool) removeTree(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Nothing to remove at (%s)", path)
			return nil
		}
		return failure.Wrap(failure.IoFailure, path, err)
	}

	err = t.ensureGameStopped()
	if err != nil {
		return err
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if t.settings.DryRun {
			fmt.Fprintf(t.settings.Out, "would remove %s (symlink)\n", path)
			return nil
		}
		log.Printf("delete symlink (%s)", path)
		err = os.Remove(path)
		if err != nil {
			return failure.Wrap(failure.IoFailure, path, err)
		}
		return nil
	}

	stats := measureTree(path)
	size := united.FormatBytes(stats.bytes)

	if t.settings.DryRun {
		fmt.Fprintf(t.settings.Out, "would remove %s (%s)\n", path, size)
		return nil
	}

	log.Printf("delete (%s)/, %d files, %s", path, stats.files, size)
	err = os.RemoveAll(path)
	if err != nil {
		return failure.Wrap(failure.IoFailure, path, err)
	}

	return nil
}

// measureTree is best-effort, unreadable entries are skipped.
func measureTree(path string) treeStats {
	var stats treeStats
	filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("skipping (%s) while measuring: %v", p, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		stats.files++
		stats.bytes += info.Size()
		return nil
	})
	return stats
}
