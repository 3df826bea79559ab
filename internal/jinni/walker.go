package jinni

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// walkState carries the configuration and shared resources that stay
// constant across one Context Walker invocation (one walk target).
// Per-directory state (the two rule-file layer lists) is threaded
// through the recursive descent as plain slices, not stored here, so
// that Go's slice value semantics give push-then-pop for free: each
// stack frame owns its own slice header and appending to it never
// affects a sibling's or ancestor's view of the stack.
type walkState struct {
	ctx               context.Context
	walkTarget        string
	projectRoot       string
	overrideActive    bool
	overrideRules     []string
	baseLayer         RuleLayer
	explicitTargets   map[string]bool
	listOnly          bool
	includeSizeInList bool
	ledger            *SizeLedger
	limitBytes        int64
	sink              *OutputSink
	debugExplain      bool
	notes             *[]string
	seen              map[string]bool
}

// walkDirectory performs the top-down, deterministic descent of walk
// target dir described in spec.md §4.5, steps 1-7.
func walkDirectory(dir string, st *walkState) error {
	if st.overrideActive {
		st.baseLayer = overrideLayer(st.overrideRules)
	} else {
		st.baseLayer = defaultsLayer()
	}
	return walkDir(dir, nil, nil, st)
}

// walkDir descends into absDir, carrying two separately-accumulated
// rule-file layer lists rather than one interleaved stack: per
// spec.md §3's composition rule and
// original_source/jinni/context_walker.py's own
// `DEFAULT_RULES + gitignore_files_in_path + context_files_in_path`
// assembly, every .gitignore layer from the walk target down to the
// current directory is applied before any .contextfiles layer, not
// depth-by-depth interleaved.
func walkDir(absDir string, gitignoreLayers, contextfileLayers []RuleLayer, st *walkState) error {
	if st.ctx != nil {
		select {
		case <-st.ctx.Done():
			return ErrCancelled
		default:
		}
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", absDir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	if !st.overrideActive {
		relDir, err := filepath.Rel(st.walkTarget, absDir)
		if err != nil {
			return fmt.Errorf("computing anchor for %s: %w", absDir, err)
		}
		relDir = filepath.ToSlash(relDir)
		anchor := ""
		if relDir != "." {
			anchor = relDir + "/"
		}

		if hasName(entries, GitignoreFilename) {
			lines := LoadDiscoveredRuleFile(filepath.Join(absDir, GitignoreFilename))
			gitignoreLayers = append(gitignoreLayers, compileLayer(SourceGitignore, anchor, lines))
		}
		if hasName(entries, ContextFilename) {
			lines := LoadDiscoveredRuleFile(filepath.Join(absDir, ContextFilename))
			contextfileLayers = append(contextfileLayers, compileLayer(SourceContextfile, anchor, lines))
		}
	}

	spec := NewEffectiveSpec(composeLayers(st.baseLayer, gitignoreLayers, contextfileLayers))

	for _, entry := range entries {
		absPath := filepath.Join(absDir, entry.Name())

		// relPath is walk-target relative and feeds only rule
		// classification, whose layer anchors are themselves
		// walk-target relative (spec.md §4.5). outPath is
		// project-root relative and is what ends up in the output,
		// per spec.md §4.6's output-relativity rule.
		relPath, err := filepath.Rel(st.walkTarget, absPath)
		if err != nil {
			return fmt.Errorf("computing relative path for %s: %w", absPath, err)
		}
		relPath = filepath.ToSlash(relPath)
		outPath := outputRelPath(st.projectRoot, absPath)

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.Mode()&os.ModeSymlink != 0 {
			continue
		}

		explicit := st.explicitTargets[canonicalPath(absPath)]

		if entry.IsDir() {
			if !explicit {
				if spec.Classify(relPath, true) == Excluded {
					continue
				}
			}
			if err := walkDir(absPath, gitignoreLayers, contextfileLayers, st); err != nil {
				return err
			}
			continue
		}

		if !explicit {
			if spec.Classify(relPath, false) == Excluded {
				continue
			}
		}

		if err := st.processCandidate(absPath, outPath, info.Size()); err != nil {
			return err
		}
	}

	return nil
}

// processCandidate is shared by the walker and the Orchestrator's
// direct handling of file targets: binary-classify, process, account,
// and enforce the size budget. outPath is project-root relative, the
// path that appears in the output and in debug notes (spec.md §4.6).
func (st *walkState) processCandidate(absPath, outPath string, size int64) error {
	key := canonicalPath(absPath)
	if st.seen[key] {
		return nil
	}
	st.seen[key] = true

	if IsBinary(absPath) {
		if st.debugExplain && st.notes != nil {
			*st.notes = append(*st.notes, fmt.Sprintf("skipped (binary): %s", outPath))
		}
		return nil
	}

	entry := EntryRecord{AbsPath: absPath, RelPath: outPath, Size: size}
	pf, err := ProcessFile(entry, st.listOnly, st.includeSizeInList, st.ledger)
	if err != nil {
		if st.debugExplain && st.notes != nil {
			*st.notes = append(*st.notes, fmt.Sprintf("skipped (read error): %s: %v", outPath, err))
		}
		return nil
	}

	st.sink.Add(pf)

	if !st.listOnly {
		st.ledger.AddContent(pf.Bytes)
		if st.ledger.TotalBytes > st.limitBytes {
			return &DetailedContextSizeError{
				LimitBytes:    st.limitBytes,
				ObservedBytes: st.ledger.TotalBytes,
				LargestFiles:  st.ledger.LargestFiles(),
			}
		}
	}

	return nil
}

// composeLayers builds one directory's effective layer order: the
// base (defaults or override) layer, then every .gitignore layer from
// the walk target down to this directory, then every .contextfiles
// layer over the same span. Always allocates a fresh slice so the
// result cannot alias a caller's backing array.
func composeLayers(base RuleLayer, gitignoreLayers, contextfileLayers []RuleLayer) []RuleLayer {
	all := make([]RuleLayer, 0, 1+len(gitignoreLayers)+len(contextfileLayers))
	all = append(all, base)
	all = append(all, gitignoreLayers...)
	all = append(all, contextfileLayers...)
	return all
}

func hasName(entries []os.DirEntry, name string) bool {
	for _, e := range entries {
		if !e.IsDir() && e.Name() == name {
			return true
		}
	}
	return false
}

// canonicalPath normalizes a path for use as an explicit-target /
// dedup key: absolute and lexically cleaned. Symlinks are not
// resolved here because targets are matched against the paths the
// caller supplied, not the files they may point through.
func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return filepath.Clean(abs)
}
