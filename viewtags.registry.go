package viewtags

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/itsatony/go-viewtags/internal"
)

// TagParser turns the body of one tag into an Invocation.
// The two built-in parsers implement the component and view grammars; aliases
// such as {% ui 'Nav' %} can be added with NewComponentTagParser("ui").
type TagParser interface {
	TagName() string
	Parse(body string, tagPos, bodyPos Position, logger *zap.Logger) (*Invocation, error)
}

// GrammarTagParser parses a tag with one of the built-in grammars under any tag name
type GrammarTagParser struct {
	name    string
	grammar string
}

// NewComponentTagParser returns a parser using the component grammar:
//
//	'Name' ['variant'] [with {data}] [only]
func NewComponentTagParser(name string) *GrammarTagParser {
	return &GrammarTagParser{name: name, grammar: TagNameComponent}
}

// NewViewTagParser returns a parser using the view grammar:
//
//	<expr> [with] [<data>] [only]
func NewViewTagParser(name string) *GrammarTagParser {
	return &GrammarTagParser{name: name, grammar: TagNameView}
}

// TagName implements TagParser
func (p *GrammarTagParser) TagName() string {
	return p.name
}

// Parse implements TagParser
func (p *GrammarTagParser) Parse(body string, tagPos, bodyPos Position, logger *zap.Logger) (*Invocation, error) {
	parsed, err := internal.ParseTag(p.grammar, body, tagPos, bodyPos, logger)
	if err != nil {
		return nil, NewParseError(ErrMsgParseFailed, tagPos, err)
	}
	inv := newInvocation(parsed)
	inv.Tag = p.name
	return inv, nil
}

// tagRegistry holds tag parsers with first-come-wins semantics.
// It is safe for concurrent use.
type tagRegistry struct {
	parsers map[string]TagParser
	mu      sync.RWMutex
	logger  *zap.Logger
}

func newTagRegistry(logger *zap.Logger) *tagRegistry {
	return &tagRegistry{
		parsers: make(map[string]TagParser),
		logger:  logger,
	}
}

// register adds p unless its tag name is already taken
func (r *tagRegistry) register(p TagParser) error {
	if p == nil {
		return newCodedError(ErrCodeRegistry, ErrMsgNilParser, nil)
	}
	tag := p.TagName()
	if tag == "" {
		return newCodedError(ErrCodeRegistry, ErrMsgEmptyTagName, nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.parsers[tag]; exists {
		r.logger.Warn(LogMsgParserCollision,
			zap.String(LogFieldTag, tag),
			zap.String(LogFieldExisting, existing.TagName()),
		)
		return NewParserExistsError(tag)
	}

	r.parsers[tag] = p
	r.logger.Debug(LogMsgParserRegistered, zap.String(LogFieldTag, tag))
	return nil
}

func (r *tagRegistry) get(tag string) (TagParser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.parsers[tag]
	return p, ok
}

// names returns the registered tag names in sorted order
func (r *tagRegistry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
