package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulePrefix = "shelflife/internal/modules/"

// TestHexagonalLayerImports walks every non-test source file under
// internal/modules and rejects imports that cross layer boundaries:
// other modules may only be reached through port/in and dto, inbound
// adapters see nothing but port/in and dto, and the inner layers never
// import outward.
func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	fset := token.NewFileSet()
	walkErr := filepath.WalkDir(filepath.Join("..", "modules"), func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		slash := filepath.ToSlash(path)
		owner, layer := classify(slash)
		if owner == "" || layer == "" {
			return nil
		}
		file, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		for _, imp := range file.Imports {
			target := strings.Trim(imp.Path.Value, `"`)
			if !strings.Contains(target, modulePrefix) {
				continue
			}
			if reason := checkImport(owner, layer, target); reason != "" {
				t.Fatalf("%s (%s layer) imports %s: %s", slash, layer, target, reason)
			}
		}
		return nil
	})
	if walkErr != nil {
		t.Fatalf("walk modules: %v", walkErr)
	}
}

var layers = []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"}

// classify extracts the owning module and layer from a slash path under
// internal/modules, or empty strings for files outside the layout.
func classify(path string) (module, layer string) {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p == "modules" && i+1 < len(parts) {
			module = parts[i+1]
			break
		}
	}
	for _, l := range layers {
		if strings.Contains(path, "/"+l+"/") {
			layer = l
			break
		}
	}
	return module, layer
}

func inLayer(importPath, layer string) bool {
	return strings.Contains(importPath, "/"+layer+"/") || strings.HasSuffix(importPath, "/"+layer)
}

// checkImport returns a non-empty reason when the import is forbidden.
func checkImport(module, layer, importPath string) string {
	if !strings.Contains(importPath, "/internal/modules/"+module+"/") {
		switch {
		case inLayer(importPath, "service"), inLayer(importPath, "usecase"), inLayer(importPath, "adapter/in"), inLayer(importPath, "adapter/out"):
			return "cross-module imports may only target port/in, port/out, dto, or domain"
		case inLayer(importPath, "port/in"), inLayer(importPath, "dto"):
			return ""
		}
	}
	switch layer {
	case "adapter/in":
		if !inLayer(importPath, "port/in") && !inLayer(importPath, "dto") {
			return "inbound adapters depend on port/in and dto only"
		}
	case "usecase":
		if inLayer(importPath, "adapter/in") || inLayer(importPath, "adapter/out") {
			return "usecases must not reach into adapters"
		}
	case "service":
		if inLayer(importPath, "adapter/in") || inLayer(importPath, "adapter/out") || inLayer(importPath, "usecase") {
			return "services depend on domain and ports only"
		}
	case "domain":
		if !inLayer(importPath, "domain") {
			return "domain imports nothing outside domain"
		}
	}
	return ""
}
