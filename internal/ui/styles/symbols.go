package styles

// Symbols marks the kind of each entry in the find picker and the state
// of a path in list tables.
type Symbols struct {
	Repo    string
	Owner   string
	Host    string
	Missing string
}

var defaultSymbols = Symbols{
	Repo:    "●",
	Owner:   "○",
	Host:    "◆",
	Missing: "✕",
}

var nerdfontSymbols = Symbols{
	Repo:    "\uea62", // nf-cod-repo
	Owner:   "\uea67", // nf-cod-person
	Host:    "\ueb01", // nf-cod-globe
	Missing: "\uea76", // nf-cod-close
}

var currentSymbols = defaultSymbols

// SetNerdfont switches between nerd font icons and plain unicode symbols.
func SetNerdfont(enabled bool) {
	if enabled {
		currentSymbols = nerdfontSymbols
	} else {
		currentSymbols = defaultSymbols
	}
}

// CurrentSymbols returns the active symbol set.
func CurrentSymbols() Symbols {
	return currentSymbols
}
