package conf

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/evelake/xtree/lib/tree"
)

// Weights is the on-disk form of the heuristic scorer weights. The
// default relative magnitudes (5/10/1) are empirical; keep them unless
// a measurement says otherwise.
type Weights struct {
	Imbalance    int64 `yaml:"imbalance"`
	RedViolation int64 `yaml:"redViolation"`
	Depth        int64 `yaml:"depth"`
}

func (w Weights) Scorer() tree.ScorerWeights {
	return tree.ScorerWeights{
		Imbalance:    w.Imbalance,
		RedViolation: w.RedViolation,
		Depth:        w.Depth,
	}
}

func LoadWeights(path string) (Weights, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return Weights{}, err
	}
	w := Weights{}
	if err = yaml.Unmarshal(buf, &w); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// WatchWeights reloads path on every write/create and hands the result
// to onChange. The watcher runs until ctx is canceled. The parent
// directory is watched, not the file, so editors that replace the file
// on save keep triggering reloads.
func WatchWeights(ctx context.Context, path string, onChange func(Weights)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err = watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return err
	}

	target := filepath.Clean(path)
	go func() {
		defer func() {
			_ = watcher.Close()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					if w, lerr := LoadWeights(path); lerr == nil {
						onChange(w)
					}
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return nil
}
