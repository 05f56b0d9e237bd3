package examples

import "fmt"

// Block is one example snippet destined for a single placeholder in a guide.
type Block struct {
	// Guide identifies the documentation page, e.g. "guide/lists".
	Guide string
	// Name identifies the placeholder within the guide.
	Name string
	// Code holds the lines between the markers, each with its original terminator.
	Code []string

	// Source and Line locate the begin marker for diagnostics.
	Source string
	Line   int
}

// String renders the block's identity for logs.
func (b Block) String() string {
	return fmt.Sprintf("%s#%s (%s:%d)", b.Guide, b.Name, b.Source, b.Line)
}
