package javascript

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZacxDev/go-static-blog/config"
	"github.com/ZacxDev/go-static-blog/utils"
	"github.com/evanw/esbuild/pkg/api"
	"github.com/pkg/errors"
)

// CompileJSTargets bundles every target into outputRoot/<out_dir> with a
// content hash in the file name, and returns the public path of each bundle
// keyed by target name.
func CompileJSTargets(targets map[string]config.JavascriptTarget, outputRoot string) (map[string]string, error) {
	emitted := make(map[string]string, len(targets))
	for targetName, target := range targets {
		outDir, err := filepath.Abs(filepath.Join(outputRoot, target.OutDir))
		if err != nil {
			return nil, errors.WithStack(err)
		}

		result := api.Build(api.BuildOptions{
			EntryPoints:       []string{target.Source},
			Bundle:            true,
			MinifyWhitespace:  true,
			MinifyIdentifiers: true,
			MinifySyntax:      true,
			Engines: []api.Engine{
				{Name: api.EngineChrome, Version: "100"},
				{Name: api.EngineFirefox, Version: "100"},
				{Name: api.EngineSafari, Version: "15"},
				{Name: api.EngineEdge, Version: "100"},
			},
			Sourcemap: api.SourceMapExternal,
			Write:     false,
			Outdir:    outDir,
		})

		if len(result.Errors) > 0 {
			return nil, errors.Errorf("error bundling %s: %s", target.Source, result.Errors[0].Text)
		}

		// Source maps last, so their script's hash is already known.
		var regularFiles []api.OutputFile
		var mapFiles []api.OutputFile

		for _, out := range result.OutputFiles {
			if strings.EqualFold(filepath.Ext(out.Path), ".map") {
				mapFiles = append(mapFiles, out)
			} else {
				regularFiles = append(regularFiles, out)
			}
		}

		sortedFiles := append(regularFiles, mapFiles...)

		srcToHash := make(map[string]string)

		for _, out := range sortedFiles {
			base := filepath.Base(out.Path)
			ext := base[strings.Index(base, "."):]
			isMap := ext == ".js.map"
			fileNameWithoutExt := base[:len(base)-len(ext)]

			var hashForFileName string
			if isMap {
				hashForFileName = srcToHash[fileNameWithoutExt]
				if hashForFileName == "" {
					return nil, errors.Errorf("source map %s can not find hash for its source file", fileNameWithoutExt)
				}
			} else {
				safeHash := strings.ReplaceAll(out.Hash, "/", "")
				srcToHash[fileNameWithoutExt] = safeHash
				hashForFileName = safeHash
			}

			name := fmt.Sprintf("%s_%s%s", fileNameWithoutExt, hashForFileName, ext)

			contents := out.Contents
			if !isMap {
				contents = append(append([]byte{}, out.Contents...), fmt.Sprintf("//# sourceMappingURL=%s.map", name)...)
			}

			if err := utils.WriteFile(filepath.Join(outDir, name), contents); err != nil {
				return nil, err
			}

			if !isMap {
				emitted[targetName] = "/" + path.Join(filepath.ToSlash(target.OutDir), name)
			}
		}
	}

	return emitted, nil
}

// ScriptTags renders one deferred script tag per bundle, ordered by target
// name.
func ScriptTags(emitted map[string]string) string {
	names := make([]string, 0, len(emitted))
	for name := range emitted {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "<script src=\"%s\" defer></script>\n", emitted[name])
	}
	return b.String()
}
