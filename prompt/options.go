package prompt

import (
	"context"

	"github.com/w-h-a/rag/store"
)

const defaultInstruction = "You are a helpful and knowledgeable restaurant guide. " +
	"You help visitors find the best places to eat based on authentic customer reviews. " +
	"Recommend specific restaurants and dishes from the reviews provided. " +
	"Only use information from the reviews. If the reviews do not contain relevant " +
	"information, say you do not have enough information about that in the available reviews."

// TruncateFunc trims retrieved results so their formatted blocks fit the
// given character budget. size reports the formatted length of one result.
type TruncateFunc func(results []store.Result, size func(store.Result) int, budget int) []store.Result

// DropLeastSimilar removes results from the lowest-ranked end until the
// rest fit the budget.
func DropLeastSimilar(results []store.Result, size func(store.Result) int, budget int) []store.Result {
	kept := append([]store.Result(nil), results...)

	total := 0
	for _, res := range kept {
		total += size(res)
	}

	for total > budget && len(kept) > 0 {
		total -= size(kept[len(kept)-1])
		kept = kept[:len(kept)-1]
	}

	return kept
}

type Option func(*Options)

type Options struct {
	Instruction      string
	MaxContextLength int
	Truncate         TruncateFunc
	Context          context.Context
}

func WithInstruction(instruction string) Option {
	return func(o *Options) {
		o.Instruction = instruction
	}
}

func WithMaxContextLength(length int) Option {
	return func(o *Options) {
		o.MaxContextLength = length
	}
}

func WithTruncate(truncate TruncateFunc) Option {
	return func(o *Options) {
		o.Truncate = truncate
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Instruction:      defaultInstruction,
		MaxContextLength: 4000,
		Truncate:         DropLeastSimilar,
		Context:          context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
