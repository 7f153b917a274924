package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/boyter/gocodewalker"
	"gopkg.in/yaml.v3"
)

// modelExtensions are the file extensions Discover reads.
var modelExtensions = []string{"yaml", "yml"}

// Discover loads every model file below dir and builds a registry.
// The walk honors .gitignore and .ignore files. Files are read in
// lexical path order.
func Discover(ctx context.Context, dir string) (*Registry, error) {
	paths, err := modelFiles(dir)
	if err != nil {
		return nil, err
	}

	var models []Model
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fileModels, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		models = append(models, fileModels...)
	}

	return New(models...)
}

// LoadFile reads the models declared in one YAML file. The file is a
// stream of documents, each holding a single model or a list of models.
func LoadFile(path string) ([]Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model file: %w", err)
	}
	defer f.Close()

	models, err := decodeModels(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return models, nil
}

func decodeModels(r io.Reader) ([]Model, error) {
	var models []Model

	decoder := yaml.NewDecoder(r)
	for {
		var doc yaml.Node
		if err := decoder.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if len(doc.Content) == 0 {
			continue
		}

		node := doc.Content[0]
		if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
			continue
		}

		switch node.Kind {
		case yaml.SequenceNode:
			var list []Model
			if err := node.Decode(&list); err != nil {
				return nil, err
			}
			models = append(models, list...)
		case yaml.MappingNode:
			var m Model
			if err := node.Decode(&m); err != nil {
				return nil, err
			}
			models = append(models, m)
		default:
			return nil, fmt.Errorf("line %d: expected a model or a list of models", node.Line)
		}
	}

	return models, nil
}

// modelFiles lists the model files below root.
func modelFiles(root string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("failed to read models directory: %w", err)
	}

	fileListQueue := make(chan *gocodewalker.File, 100)

	fileWalker := gocodewalker.NewFileWalker(root, fileListQueue)
	fileWalker.AllowListExtensions = modelExtensions

	var walkErr error
	fileWalker.SetErrorHandler(func(e error) bool {
		walkErr = e
		return true
	})

	var paths []string
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for f := range fileListQueue {
			paths = append(paths, f.Location)
		}
	}()

	if err := fileWalker.Start(); err != nil {
		return nil, fmt.Errorf("failed to walk models directory: %w", err)
	}

	wg.Wait()
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk models directory: %w", walkErr)
	}

	sort.Strings(paths)
	return paths, nil
}
