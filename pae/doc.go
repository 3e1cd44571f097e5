// Package pae imports Plaine & Easie incipits into an MEI document.
//
// # Pipeline
//
// The data string is lexed into a slice of mutable tokens. A fixed
// sequence of passes then scans the slice, each recognizing one
// sub-grammar (key signature, clef, meter, barlines, notes, containers,
// durations, ties and so on). A pass consumes the characters it
// understands and attaches the node it built to a representative token:
//
//	data ──▶ Lexer ──▶ passes ──▶ checkHierarchy ──▶ assemble ──▶ mei.Doc
//
// After the passes, the hierarchy check places every layer element in
// the container open at its position and removes the ones that do not
// fit, repeating until the stream is consistent. The assembler then
// walks the tokens once and builds the tree.
//
// # Ownership
//
// A token owns at most one node. Closing tokens of beams and grace
// groups only refer to the node owned by the opening token. Nodes are
// handed over to the document by the assembler or released when they
// are removed, so a strict failure leaves no live node behind.
//
// # Modes
//
// In lenient mode every problem is recorded as a [Diagnostic] and a
// default is substituted. With [WithStrict] the first problem aborts the
// import and is returned as an [*Error].
//
// # Records
//
// [Import], [ParseRecord], [ParseRecordYAML] and [ReadRecord] accept the
// clef, key, keysig, timesig and data keys as JSON, "@key: value" lines
// or YAML. Only data is required.
package pae
