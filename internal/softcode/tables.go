// Package softcode holds the static PennMUSH name tables: commands, functions,
// built-in registers, usage docs and function signatures.
package softcode

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"fmt"
	"regexp"
	"slices"
	"sync"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/cases"
)

//go:embed signatures.toml
var signaturesTOML []byte

// Signature describes the call shape of a function for signature help.
type Signature struct {
	Label         string   `toml:"label"`
	Documentation string   `toml:"documentation"`
	Params        []string `toml:"params"`
}

// NameSet is an immutable case-insensitive set of names.
type NameSet struct {
	folded map[string]struct{}
}

func newNameSet(names []string) NameSet {
	c := cases.Fold()
	set := NameSet{folded: make(map[string]struct{}, len(names))}
	for _, n := range names {
		set.folded[c.String(n)] = struct{}{}
	}
	return set
}

// Has reports whether name is in the set, ignoring case.
func (s NameSet) Has(name string) bool {
	_, ok := s.folded[Fold(name)]
	return ok
}

func (s NameSet) Len() int {
	return len(s.folded)
}

// Fold returns the Unicode case fold of s. A fresh caser is used per call
// since cases.Caser is stateful.
func Fold(s string) string {
	return cases.Fold().String(s)
}

var (
	// Commands is the set of known commands, '@'-prefixed and bare verbs alike.
	Commands = newNameSet(commandNames)
	// Functions is the set of known softcode functions.
	Functions = newNameSet(functionNames)

	builtinRegisters = []string{"R", "B", "T", "n"}

	foldedCommandDocs  = foldKeys(commandDocs)
	foldedFunctionDocs = foldKeys(functionDocs)
)

func foldKeys(m map[string]string) map[string]string {
	c := cases.Fold()
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[c.String(k)] = v
	}
	return out
}

// CommandNames returns the command table in its canonical order.
func CommandNames() []string {
	return slices.Clone(commandNames)
}

// FunctionNames returns the function table in its canonical order.
func FunctionNames() []string {
	return slices.Clone(functionNames)
}

// BuiltinRegisters returns the single-letter registers that are always defined.
func BuiltinRegisters() []string {
	return slices.Clone(builtinRegisters)
}

// IsBuiltinRegister matches case-sensitively: %q<n> and %q<N> differ.
func IsBuiltinRegister(name string) bool {
	return slices.Contains(builtinRegisters, name)
}

// CommandDoc returns markdown usage text for a command, if any.
func CommandDoc(name string) (string, bool) {
	doc, ok := foldedCommandDocs[Fold(name)]
	return doc, ok
}

// FunctionDoc returns markdown usage text for a function, if any.
func FunctionDoc(name string) (string, bool) {
	doc, ok := foldedFunctionDocs[Fold(name)]
	return doc, ok
}

var (
	sigOnce  sync.Once
	sigTable map[string]Signature
	sigErr   error
)

func loadSignatures() {
	var raw map[string]Signature
	if _, err := toml.Decode(string(signaturesTOML), &raw); err != nil {
		sigErr = fmt.Errorf("decode signatures.toml: %w", err)
		return
	}
	c := cases.Fold()
	sigTable = make(map[string]Signature, len(raw))
	for name, sig := range raw {
		sigTable[c.String(name)] = sig
	}
}

// LookupSignature returns the signature of a function, ignoring case.
func LookupSignature(name string) (Signature, bool) {
	sigOnce.Do(loadSignatures)
	if sigErr != nil {
		return Signature{}, false
	}
	sig, ok := sigTable[Fold(name)]
	return sig, ok
}

// SignatureCount reports how many signatures were decoded, or the decode error.
func SignatureCount() (int, error) {
	sigOnce.Do(loadSignatures)
	return len(sigTable), sigErr
}

// TablesFingerprint identifies the contents of the built-in tables. It changes
// whenever a name, register or signature is added or removed.
var TablesFingerprint = sync.OnceValue(func() string {
	h := sha256.New()
	for _, table := range [][]string{commandNames, functionNames, builtinRegisters} {
		for _, name := range table {
			h.Write([]byte(name))
			h.Write([]byte{'\n'})
		}
		h.Write([]byte{0})
	}
	h.Write(signaturesTOML)
	return hex.EncodeToString(h.Sum(nil))[:12]
})

// Snippet returns the completion snippet for functions that ship one.
func Snippet(name string) (string, bool) {
	switch Fold(name) {
	case "if":
		return "if(${1:condition}, ${2:true}, ${3:false})$0", true
	case "switch":
		return "switch(${1:value}, ${2:pattern1}, ${3:result1}, ${4:default})$0", true
	}
	return "", false
}

var attrDefRx = regexp.MustCompile(`@set\s+\S+/([A-Za-z_]\w*)=`)

// DefinedAttributes collects the attribute names assigned with
// `@set obj/ATTR=` anywhere in lines. Names keep their original case.
func DefinedAttributes(lines []string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, line := range lines {
		for _, m := range attrDefRx.FindAllStringSubmatch(line, -1) {
			out[m[1]] = struct{}{}
		}
	}
	return out
}
