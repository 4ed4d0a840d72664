package markdowncmd

// FeatureGates exposes runtime feature toggles required by markdown command
// handlers. Callers supply closures that read from the blog configuration so
// handlers stay decoupled from it while honouring feature flags.
type FeatureGates struct {
	MarkdownEnabled func() bool
}

func (g FeatureGates) markdownEnabled() bool {
	if g.MarkdownEnabled == nil {
		return true
	}
	return g.MarkdownEnabled()
}
