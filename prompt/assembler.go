package prompt

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/w-h-a/rag/store"
)

// Assembler composes the grounding prompt sent to the generator: the
// instruction first, then the retrieved reviews in rank order, then the
// user's question last. Assembly is deterministic for the same inputs.
type Assembler struct {
	options Options
}

func (a *Assembler) Assemble(query string, results []store.Result) string {
	kept := results

	if a.options.MaxContextLength > 0 {
		base := len(a.options.Instruction) + len(contextHeader) + len(emptyContext) + len(questionHeader) + len(query)
		budget := a.options.MaxContextLength - base
		kept = a.options.Truncate(results, blockSize, budget)
	}

	var sb bytes.Buffer

	sb.WriteString(a.options.Instruction)
	sb.WriteString(contextHeader)

	if len(kept) == 0 {
		sb.WriteString(emptyContext)
	}

	for _, res := range kept {
		sb.WriteString(formatBlock(res))
	}

	// the question is never truncated
	sb.WriteString(questionHeader)
	sb.WriteString(query)

	return sb.String()
}

const (
	contextHeader  = "\n\nContext (Customer Reviews):\n"
	emptyContext   = "(no reviews matched this question)\n"
	questionHeader = "\nQuestion: "
)

func formatBlock(res store.Result) string {
	meta := res.Metadata

	tags := []string{}
	if len(meta.Cuisine) > 0 {
		tags = append(tags, meta.Cuisine)
	}
	if meta.Rating > 0 {
		tags = append(tags, fmt.Sprintf("%.1f stars", meta.Rating))
	}
	if len(meta.PriceRange) > 0 {
		tags = append(tags, meta.PriceRange)
	}

	source := meta.Restaurant
	if len(source) == 0 {
		source = "Unknown"
	}
	if len(tags) > 0 {
		source = fmt.Sprintf("%s (%s)", source, strings.Join(tags, ", "))
	}

	return fmt.Sprintf("- [%s] %s\n", source, res.Text)
}

func blockSize(res store.Result) int {
	return len(formatBlock(res))
}

func NewAssembler(opts ...Option) *Assembler {
	options := NewOptions(opts...)

	a := &Assembler{
		options: options,
	}

	return a
}
