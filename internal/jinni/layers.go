package jinni

// compileLayer turns raw pattern lines into a RuleLayer anchored at
// anchor (forward-slash, walk-target relative, "" for the walk
// target itself).
func compileLayer(source RuleSourceKind, anchor string, lines []string) RuleLayer {
	patterns := make([]*Pattern, 0, len(lines))
	for _, line := range lines {
		patterns = append(patterns, CompilePattern(line))
	}
	return RuleLayer{Source: source, Anchor: anchor, Patterns: patterns}
}

// defaultsLayer compiles the built-in exclusion layer, anchored at
// the walk target root.
func defaultsLayer() RuleLayer {
	return compileLayer(SourceDefaults, "", DefaultPatterns)
}

// overrideLayer compiles caller-supplied override rules as the sole
// layer of an EffectiveSpec.
func overrideLayer(rules []string) RuleLayer {
	return compileLayer(SourceOverride, "", LoadPatternLines(rules))
}
