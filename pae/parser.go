package pae

import (
	"fmt"

	"github.com/dhamidi/incipit/mei"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("incipit.pae")

type Option func(*Parser)

// WithStrict makes every diagnostic fail the import.
func WithStrict() Option {
	return func(p *Parser) {
		p.strict = true
	}
}

// WithMensural parses meter changes as mensuration signs regardless of
// the clef record.
func WithMensural() Option {
	return func(p *Parser) {
		p.forceMensural = true
	}
}

// WithFactory builds nodes with f instead of a fresh factory.
func WithFactory(f *mei.Factory) Option {
	return func(p *Parser) {
		p.factory = f
	}
}

// WithLogger reports diagnostics through l.
func WithLogger(l commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = l
	}
}

type passFunc func(*Parser) error

type pass struct {
	name string
	run  passFunc
}

// The order is significant: each pass relies on the spans recognized by
// the passes before it being consumed.
var passes = []pass{
	{"keysig", (*Parser).convertKeySig},
	{"clef", (*Parser).convertClef},
	{"metersig", (*Parser).convertMeterSigOrMensur},
	{"measure", (*Parser).convertMeasure},
	{"mrest", (*Parser).convertMRestOrMultiRest},
	{"pitch", (*Parser).convertPitch},
	{"octave", (*Parser).convertOctave},
	{"trill", (*Parser).convertTrill},
	{"fermata", (*Parser).convertFermata},
	{"accidental", (*Parser).convertAccidental},
	{"rest", (*Parser).convertRest},
	{"beam", (*Parser).convertBeam},
	{"gracegrp", (*Parser).convertGraceGrp},
	{"grace", (*Parser).convertGrace},
	{"duration", (*Parser).convertDuration},
	{"tie", (*Parser).convertTie},
}

// Parser imports one incipit at a time. It is not safe for concurrent use.
type Parser struct {
	strict        bool
	forceMensural bool
	mensural      bool
	factory       *mei.Factory
	log           commonlog.Logger

	tokens       []*Token
	diagnostics  []Diagnostic
	measureCount int
	repairs      int
	resolved     string
}

func New(opts ...Option) *Parser {
	p := &Parser{
		log: log,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.factory == nil {
		p.factory = mei.NewFactory()
	}
	return p
}

// Result is a successful import.
type Result struct {
	Doc         *mei.Doc
	Diagnostics []Diagnostic
	// Repairs counts the nodes removed by the hierarchy check.
	Repairs int
}

// HasErrors reports whether lenient parsing had to repair the input.
func (r *Result) HasErrors() bool {
	return len(r.Diagnostics) > 0
}

// Import parses a JSON or "@key: value" record and imports its data.
func Import(input string, opts ...Option) (*Result, error) {
	rec, err := ParseRecord(input)
	if err != nil {
		return nil, err
	}
	return New(opts...).Parse(rec)
}

func (p *Parser) Factory() *mei.Factory { return p.factory }

// Tokens returns the token stream of the last parse.
func (p *Parser) Tokens() []*Token { return p.tokens }

func (p *Parser) Diagnostics() []Diagnostic { return p.diagnostics }

// Resolved returns the token table as it was handed to the assembler,
// or at the point a strict import failed.
func (p *Parser) Resolved() string { return p.resolved }

func (p *Parser) reset() {
	p.clearTokenObjects()
	p.tokens = nil
	p.diagnostics = nil
	p.measureCount = 0
	p.repairs = 0
	p.resolved = ""
}

// Parse imports rec. A record without data is a fatal error in both
// modes. In strict mode the first diagnostic aborts the import and every
// node built so far is released.
func (p *Parser) Parse(rec Record) (*Result, error) {
	p.reset()

	data, ok := rec.Data()
	if !ok {
		p.log.Errorf("PAE: No 'data' key in the input")
		return nil, ErrNoData
	}
	p.mensural = p.forceMensural || rec.IsMensural()

	// There is always at least one measure.
	p.tokens = append([]*Token{p.newMeasureToken(-1)}, NewLexer(data).Tokenize()...)

	doc := mei.NewDoc(p.factory)
	doc.Key = rec[KeyKey]

	if err := p.convertRecord(doc, rec); err != nil {
		p.abort(doc)
		return nil, fmt.Errorf("record: %w", err)
	}

	for _, ps := range passes {
		if err := ps.run(p); err != nil {
			p.abort(doc)
			return nil, fmt.Errorf("%s: %w", ps.name, err)
		}
	}

	if err := p.checkHierarchy(); err != nil {
		p.abort(doc)
		return nil, fmt.Errorf("hierarchy: %w", err)
	}

	p.resolved = TokenTable(p.tokens)
	p.log.Debugf("tokens:\n%s", p.resolved)

	if err := p.assemble(doc); err != nil {
		p.abort(doc)
		return nil, fmt.Errorf("assemble: %w", err)
	}

	// Everything was handed over to the document.
	p.clearTokenObjects()

	return &Result{
		Doc:         doc,
		Diagnostics: p.diagnostics,
		Repairs:     p.repairs,
	}, nil
}

func (p *Parser) newMeasure() *mei.Measure {
	p.measureCount++
	return p.factory.NewMeasure(p.measureCount)
}

func (p *Parser) newMeasureToken(position int) *Token {
	tok := &Token{Position: position}
	tok.own(p.newMeasure())
	return tok
}

func (p *Parser) abort(doc *mei.Doc) {
	p.resolved = TokenTable(p.tokens)
	p.clearTokenObjects()
	p.release(doc.Score)
}

func (p *Parser) release(n mei.Node) {
	if err := p.factory.Release(n); err != nil {
		p.log.Debugf("%s", err)
	}
}

// clearTokenObjects releases the nodes still owned by tokens. After a
// successful assembly there should be none.
func (p *Parser) clearTokenObjects() {
	for _, tok := range p.tokens {
		if tok.closes != nil {
			tok.closes = nil
			continue
		}
		if n := tok.take(); n != nil {
			p.log.Debugf("Delete token %s", n.Kind())
			p.release(n)
		}
	}
}

// removeNode clears every token owning or closing n and releases n once.
// Control elements referring to n are removed with it.
func (p *Parser) removeNode(n mei.Node) {
	released := false
	for _, tok := range p.tokens {
		if tok.IsVoid() || tok.Object() != n {
			continue
		}
		if tok.node == n && !released {
			p.log.Debugf("Deleting %s", n.Kind())
			p.release(n)
			released = true
		}
		tok.consume()
		tok.take()
	}

	for _, tok := range p.tokens {
		r, ok := tok.node.(mei.Referrer)
		if !ok {
			continue
		}
		for _, ref := range r.Refs() {
			if ref == n {
				p.removeNode(r)
				break
			}
		}
	}
}
